package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"geoanalyzer/db"
)

func TestMemoryRegistryNewestFirst(t *testing.T) {
	reg := db.NewMemoryRegistry()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := reg.InsertUpload(ctx, db.Upload{
			ID:        fmt.Sprintf("u-%d", i),
			Filename:  fmt.Sprintf("file-%d.csv", i),
			Kind:      "spreadsheet",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	uploads, err := reg.ListUploads(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(uploads) != 3 {
		t.Fatalf("expected 3 uploads, got %d", len(uploads))
	}
	if uploads[0].ID != "u-2" || uploads[2].ID != "u-0" {
		t.Fatalf("uploads should list newest first, got %v", uploads)
	}
}

func TestMemoryRegistryLimit(t *testing.T) {
	reg := db.NewMemoryRegistry()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := reg.InsertUpload(ctx, db.Upload{ID: fmt.Sprintf("u-%d", i)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	uploads, err := reg.ListUploads(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(uploads) != 2 || uploads[0].ID != "u-4" {
		t.Fatalf("limit should keep the 2 newest, got %v", uploads)
	}
}

func TestMemoryRegistryEmpty(t *testing.T) {
	uploads, err := db.NewMemoryRegistry().ListUploads(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(uploads) != 0 {
		t.Fatalf("empty registry should list nothing, got %v", uploads)
	}
}
