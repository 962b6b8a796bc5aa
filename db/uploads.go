package db

import (
	"context"
	"sync"
	"time"
)

// Upload is the metadata kept for one stored file. The file contents and any
// analysis derived from them are never persisted.
type Upload struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Kind       string    `json:"kind"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UploadRegistry records upload metadata. Backed by Postgres when a database
// is configured and by memory otherwise.
type UploadRegistry interface {
	InsertUpload(ctx context.Context, up Upload) error
	ListUploads(ctx context.Context, limit int) ([]Upload, error)
}

const insertUploadSQL = `
    INSERT INTO uploads (id, filename, kind, size_bytes, uploaded_by, created_at)
    VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
`

// InsertUpload implements UploadRegistry.
func (s *Store) InsertUpload(ctx context.Context, up Upload) error {
	_, err := s.pool.Exec(ctx, insertUploadSQL,
		up.ID, up.Filename, up.Kind, up.SizeBytes, up.UploadedBy, up.CreatedAt)
	return err
}

const listUploadsSQL = `
    SELECT id, filename, kind, size_bytes, COALESCE(uploaded_by, ''), created_at
    FROM uploads
    ORDER BY created_at DESC
    LIMIT $1
`

// ListUploads implements UploadRegistry, newest first.
func (s *Store) ListUploads(ctx context.Context, limit int) ([]Upload, error) {
	rows, err := s.pool.Query(ctx, listUploadsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uploads := make([]Upload, 0)
	for rows.Next() {
		var up Upload
		if err := rows.Scan(
			&up.ID,
			&up.Filename,
			&up.Kind,
			&up.SizeBytes,
			&up.UploadedBy,
			&up.CreatedAt,
		); err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, rows.Err()
}

// MemoryRegistry is the in-process UploadRegistry used when DATABASE_URL is
// unset.
type MemoryRegistry struct {
	mu      sync.RWMutex
	uploads []Upload
}

// NewMemoryRegistry builds an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{}
}

// InsertUpload implements UploadRegistry.
func (r *MemoryRegistry) InsertUpload(_ context.Context, up Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, up)
	return nil
}

// ListUploads implements UploadRegistry, newest first.
func (r *MemoryRegistry) ListUploads(_ context.Context, limit int) ([]Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Upload, 0, limit)
	for i := len(r.uploads) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.uploads[i])
	}
	return out, nil
}
