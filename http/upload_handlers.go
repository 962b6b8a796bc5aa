package http

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"geoanalyzer/db"
	"geoanalyzer/internal/ingest"
	"geoanalyzer/internal/vision"
)

var (
	spreadsheetExts = map[string]bool{".xlsx": true, ".xlsm": true, ".csv": true}
	imageExts       = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".gif": true, ".tiff": true, ".bmp": true,
	}
)

// handleUploadExcel stores a survey spreadsheet and returns ingest preview
// statistics.
// POST /api/v1/upload/excel
func (s *Server) handleUploadExcel(c *gin.Context) {
	path, upload, ok := s.saveUpload(c, "spreadsheet", spreadsheetExts)
	if !ok {
		return
	}

	table, err := ingest.Load(path)
	if err != nil {
		// Reject the file and clean up; a half-ingested spreadsheet is
		// useless to every analysis endpoint.
		_ = os.Remove(path)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.registerUpload(c, upload)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"filename":   upload.Filename,
			"statistics": ingest.Summarize(table),
		},
		"meta": gin.H{
			"size_bytes":  upload.SizeBytes,
			"uploaded_at": upload.CreatedAt.Format(time.RFC3339),
		},
	})
}

// handleUploadImage stores a site photograph and returns its dimensions.
// POST /api/v1/upload/image
func (s *Server) handleUploadImage(c *gin.Context) {
	path, upload, ok := s.saveUpload(c, "image", imageExts)
	if !ok {
		return
	}

	report := s.vision.Analyze(path)
	if report.Status != vision.StatusOK {
		_ = os.Remove(path)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": report.Error})
		return
	}

	s.registerUpload(c, upload)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"filename":   upload.Filename,
			"dimensions": report.Dimensions,
		},
		"meta": gin.H{
			"size_bytes":  upload.SizeBytes,
			"uploaded_at": upload.CreatedAt.Format(time.RFC3339),
		},
	})
}

// saveUpload validates and stores one multipart file under a uuid-prefixed
// name inside the upload directory.
func (s *Server) saveUpload(c *gin.Context, kind string, allowed map[string]bool) (string, db.Upload, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return "", db.Upload{}, false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type: " + ext})
		return "", db.Upload{}, false
	}
	if file.Size > s.cfg.MaxUploadBytes() {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload limit"})
		return "", db.Upload{}, false
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", db.Upload{}, false
	}

	id := uuid.NewString()
	stored := id + "_" + filepath.Base(file.Filename)
	path := filepath.Join(s.cfg.UploadDir, stored)
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", db.Upload{}, false
	}

	upload := db.Upload{
		ID:        id,
		Filename:  stored,
		Kind:      kind,
		SizeBytes: file.Size,
		CreatedAt: time.Now().UTC(),
	}
	if claims := currentClaims(c); claims != nil {
		upload.UploadedBy = claims.Username
	}
	return path, upload, true
}

// registerUpload records upload metadata; a registry failure is logged but
// does not fail the request, the file itself is already stored.
func (s *Server) registerUpload(c *gin.Context, upload db.Upload) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := s.uploads.InsertUpload(ctx, upload); err != nil {
		s.log.Warn().Err(err).Str("filename", upload.Filename).Msg("upload registry insert failed")
	}
}

// handleListUploads returns the newest upload records.
// GET /api/v1/uploads
func (s *Server) handleListUploads(c *gin.Context) {
	limit := s.cfg.DefaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	uploads, err := s.uploads.ListUploads(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": uploads,
		"meta": gin.H{"count": len(uploads)},
	})
}
