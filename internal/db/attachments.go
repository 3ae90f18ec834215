// ABOUTME: Content-addressed attachment storage keyed by SHA-256
// ABOUTME: Blobs live on disk; metadata rows live in the attachments table
package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StoreAttachment writes data to the attachments directory under its SHA-256
// hash and records a metadata row. Storing the same bytes again is
// deduplicated: the existing blob is kept and only the filename and mime type
// metadata are refreshed. Returns the content hash.
func (s *Store) StoreAttachment(data []byte, originalFilename, mimeType string) (string, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	var existingPath string
	err := s.db.QueryRow("SELECT filePath FROM attachments WHERE hash = ?", hash).
		Scan(&existingPath)
	switch {
	case err == sql.ErrNoRows:
		// New content, fall through to write the blob.
	case err != nil:
		return "", err
	default:
		_, err := s.db.Exec(
			"UPDATE attachments SET originalFilename = ?, mimeType = ? WHERE hash = ?",
			originalFilename, mimeType, hash)
		if err != nil {
			return "", wrapWriteErr(err)
		}
		return hash, nil
	}

	filePath := filepath.Join(s.attachmentsDir, hash+filepath.Ext(originalFilename))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write attachment blob: %w", err)
	}

	// Blob first, then metadata: a crash between the two leaves an orphan
	// file, never a metadata row pointing at nothing.
	_, err = s.db.Exec(`
		INSERT INTO attachments (hash, originalFilename, mimeType, filePath, fileSize, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, hash, originalFilename, mimeType, filePath, len(data), formatTime(time.Now()))
	if err != nil {
		return "", wrapWriteErr(err)
	}
	return hash, nil
}

// RetrieveAttachment returns the blob bytes plus the original filename and
// mime type for the given content hash. A missing metadata row or a missing
// blob file both report ErrNotFound.
func (s *Store) RetrieveAttachment(hash string) ([]byte, string, string, error) {
	a, err := s.GetAttachment(hash)
	if err != nil {
		return nil, "", "", err
	}
	data, err := os.ReadFile(a.FilePath)
	if os.IsNotExist(err) {
		return nil, "", "", fmt.Errorf("attachment blob %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, "", "", err
	}
	return data, a.OriginalFilename, a.MimeType, nil
}

// GetAttachment returns the metadata row for the given content hash, or
// ErrNotFound.
func (s *Store) GetAttachment(hash string) (*Attachment, error) {
	var a Attachment
	var createdAt string
	err := s.db.QueryRow(`
		SELECT hash, originalFilename, mimeType, filePath, fileSize, createdAt
		FROM attachments WHERE hash = ?
	`, hash).Scan(&a.Hash, &a.OriginalFilename, &a.MimeType, &a.FilePath, &a.FileSize, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("attachment %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Attachments returns all attachment metadata rows, newest first.
func (s *Store) Attachments() ([]Attachment, error) {
	rows, err := s.db.Query(`
		SELECT hash, originalFilename, mimeType, filePath, fileSize, createdAt
		FROM attachments ORDER BY createdAt DESC, hash
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attachment
	for rows.Next() {
		var a Attachment
		var createdAt string
		if err := rows.Scan(&a.Hash, &a.OriginalFilename, &a.MimeType, &a.FilePath, &a.FileSize, &createdAt); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAttachment removes both the metadata row and the blob file. The row
// goes first: if the blob removal then fails, the leftover is an orphaned
// file, never a metadata row pointing at nothing. A missing blob is
// tolerated.
func (s *Store) DeleteAttachment(hash string) error {
	a, err := s.GetAttachment(hash)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM attachments WHERE hash = ?", hash); err != nil {
		return wrapWriteErr(err)
	}
	if err := os.Remove(a.FilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment blob: %w", err)
	}
	return nil
}
