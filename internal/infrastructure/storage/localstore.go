package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/therapy"
	"github.com/sahay-inc/sahay/internal/shared/config"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

var (
	_ complaint.EvidenceStore = (*LocalStore)(nil)
	_ therapy.PackStore       = (*LocalStore)(nil)
)

// LocalStore keeps blobs on the local filesystem, encrypted at
// rest with XChaCha20-Poly1305. The object key is the SHA-256 of the
// plaintext, so identical uploads share one blob. Files are laid out as
// root/ab/cd/<hash> with the stored bytes being nonce || ciphertext.
type LocalStore struct {
	root   string
	aead   cipher.AEAD
	logger logger.Interface
}

// NewLocalStore creates the store root and prepares the at-rest cipher.
func NewLocalStore(cfg *config.StorageConfig, log logger.Interface) (*LocalStore, error) {
	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("storage encryption key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("storage encryption key must decode to %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage cipher: %w", err)
	}

	if err := os.MkdirAll(cfg.Root, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalStore{
		root:   cfg.Root,
		aead:   aead,
		logger: log,
	}, nil
}

// Put encrypts and stores content, returning the object key and the
// plaintext content hash. Re-putting identical content is a no-op.
func (s *LocalStore) Put(ctx context.Context, content []byte) (string, string, error) {
	if len(content) == 0 {
		return "", "", apperrors.NewValidationError("content is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	digest := sha256.Sum256(content)
	contentHash := hex.EncodeToString(digest[:])
	path := s.objectPath(contentHash)

	if _, err := os.Stat(path); err == nil {
		s.logger.Debugw("blob already stored", "object_key", contentHash)
		return contentHash, contentHash, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", "", fmt.Errorf("failed to stat blob: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, content, nil)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", "", fmt.Errorf("failed to create object directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a partial blob
	// under the final key.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".blob-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to close blob: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", "", fmt.Errorf("failed to move blob into place: %w", err)
	}

	s.logger.Debugw("blob stored", "object_key", contentHash, "size", len(content))
	return contentHash, contentHash, nil
}

// Get decrypts and returns the content stored under objectKey.
func (s *LocalStore) Get(ctx context.Context, objectKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sealed, err := os.ReadFile(s.objectPath(objectKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("object not found")
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("blob %s is truncated", objectKey)
	}

	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	content, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt blob %s: %w", objectKey, err)
	}

	digest := sha256.Sum256(content)
	if hex.EncodeToString(digest[:]) != objectKey {
		return nil, fmt.Errorf("blob %s failed integrity check", objectKey)
	}

	return content, nil
}

// Delete removes the blob stored under objectKey. Deleting a missing blob
// is not an error.
func (s *LocalStore) Delete(ctx context.Context, objectKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.objectPath(objectKey)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// objectPath shards blobs into two directory levels to keep listings small.
func (s *LocalStore) objectPath(objectKey string) string {
	if len(objectKey) < 4 {
		return filepath.Join(s.root, objectKey)
	}
	return filepath.Join(s.root, objectKey[:2], objectKey[2:4], objectKey)
}
