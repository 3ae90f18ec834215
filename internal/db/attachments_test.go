//go:build sqlite_fts5

// ABOUTME: Content-addressed attachment store tests
// ABOUTME: Validates hashing, dedup, retrieval, and missing-blob handling
package db

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAttachment(t *testing.T) {
	store := newTestStore(t)

	data := []byte{0x01, 0x02, 0x03}
	hash, err := store.StoreAttachment(data, "notes.txt", "text/plain")
	if err != nil {
		t.Fatalf("StoreAttachment failed: %v", err)
	}

	sum := sha256.Sum256(data)
	if want := hex.EncodeToString(sum[:]); hash != want {
		t.Errorf("got hash %s, want %s", hash, want)
	}

	got, name, mime, err := store.RetrieveAttachment(hash)
	if err != nil {
		t.Fatalf("RetrieveAttachment failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got bytes %v, want %v", got, data)
	}
	if name != "notes.txt" || mime != "text/plain" {
		t.Errorf("got %s/%s, want notes.txt/text/plain", name, mime)
	}

	meta, err := store.GetAttachment(hash)
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}
	if meta.FileSize != 3 {
		t.Errorf("got size %d, want 3", meta.FileSize)
	}
	if filepath.Dir(meta.FilePath) != store.AttachmentsDir() {
		t.Errorf("blob stored outside attachments dir: %s", meta.FilePath)
	}
}

func TestStoreAttachmentDedup(t *testing.T) {
	store := newTestStore(t)

	data := []byte("same bytes, different names")
	hash1, err := store.StoreAttachment(data, "report.txt", "text/plain")
	if err != nil {
		t.Fatalf("first store failed: %v", err)
	}
	hash2, err := store.StoreAttachment(data, "copy.txt", "text/plain")
	if err != nil {
		t.Fatalf("second store failed: %v", err)
	}
	if hash1 != hash2 {
		t.Fatalf("identical content hashed differently: %s vs %s", hash1, hash2)
	}

	// One metadata row, one blob file
	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM attachments").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d metadata rows, want 1", count)
	}
	files, err := os.ReadDir(store.AttachmentsDir())
	if err != nil {
		t.Fatalf("read attachments dir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("got %d blob files, want 1", len(files))
	}

	// The later store wins the filename metadata
	meta, err := store.GetAttachment(hash1)
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}
	if meta.OriginalFilename != "copy.txt" {
		t.Errorf("got filename %s, want copy.txt", meta.OriginalFilename)
	}
}

func TestRetrieveAttachmentMissing(t *testing.T) {
	store := newTestStore(t)

	_, _, _, err := store.RetrieveAttachment("0000000000000000000000000000000000000000000000000000000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRetrieveAttachmentBlobDeleted(t *testing.T) {
	store := newTestStore(t)

	hash, err := store.StoreAttachment([]byte("ephemeral"), "tmp.bin", "application/octet-stream")
	if err != nil {
		t.Fatalf("StoreAttachment failed: %v", err)
	}
	meta, err := store.GetAttachment(hash)
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}

	// Someone removed the blob out from under the store
	if err := os.Remove(meta.FilePath); err != nil {
		t.Fatalf("remove blob: %v", err)
	}

	_, _, _, err = store.RetrieveAttachment(hash)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for missing blob", err)
	}
}

func TestDeleteAttachment(t *testing.T) {
	store := newTestStore(t)

	hash, err := store.StoreAttachment([]byte("bye"), "bye.txt", "text/plain")
	if err != nil {
		t.Fatalf("StoreAttachment failed: %v", err)
	}
	meta, err := store.GetAttachment(hash)
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}

	if err := store.DeleteAttachment(hash); err != nil {
		t.Fatalf("DeleteAttachment failed: %v", err)
	}
	if _, err := os.Stat(meta.FilePath); !os.IsNotExist(err) {
		t.Error("blob file survived delete")
	}
	if _, err := store.GetAttachment(hash); !errors.Is(err, ErrNotFound) {
		t.Errorf("metadata row survived delete: %v", err)
	}
}

func TestDeleteAttachmentRowGoesFirst(t *testing.T) {
	store := newTestStore(t)

	hash, err := store.StoreAttachment([]byte("stuck"), "stuck.txt", "text/plain")
	if err != nil {
		t.Fatalf("StoreAttachment failed: %v", err)
	}
	meta, err := store.GetAttachment(hash)
	if err != nil {
		t.Fatalf("GetAttachment failed: %v", err)
	}

	// Make the blob unremovable: a non-empty directory at its path. The
	// delete must fail on the blob, but the metadata row has to be gone so
	// no row is ever left pointing at a missing blob.
	if err := os.Remove(meta.FilePath); err != nil {
		t.Fatalf("remove blob failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(meta.FilePath, "pin"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(meta.FilePath, "pin", "f"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := store.DeleteAttachment(hash); err == nil {
		t.Fatal("DeleteAttachment should fail when the blob cannot be removed")
	}
	if _, err := store.GetAttachment(hash); !errors.Is(err, ErrNotFound) {
		t.Errorf("metadata row survived failed blob removal: %v", err)
	}
}
