package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/shared/config"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()

	store, err := NewLocalStore(&config.StorageConfig{
		Root:          t.TempDir(),
		EncryptionKey: strings.Repeat("ab", 32),
	}, logger.NewLogger())
	require.NoError(t, err)
	return store
}

func TestNewLocalStoreRejectsBadKey(t *testing.T) {
	_, err := NewLocalStore(&config.StorageConfig{Root: t.TempDir(), EncryptionKey: "zz"}, logger.NewLogger())
	require.Error(t, err)

	_, err = NewLocalStore(&config.StorageConfig{Root: t.TempDir(), EncryptionKey: "abcd"}, logger.NewLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	content := []byte("photo bytes of a broken water pump")

	key, hash, err := store.Put(context.Background(), content)
	require.NoError(t, err)

	digest := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(digest[:]), hash)
	assert.Equal(t, hash, key)

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestPutStoresCiphertextOnDisk(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(&config.StorageConfig{Root: root, EncryptionKey: strings.Repeat("cd", 32)}, logger.NewLogger())
	require.NoError(t, err)

	content := []byte("sensitive evidence payload")
	key, _, err := store.Put(context.Background(), content)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, key[:2], key[2:4], key))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sensitive evidence payload")
	assert.Greater(t, len(raw), len(content))
}

func TestPutIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	content := []byte("same bytes twice")

	key1, hash1, err := store.Put(context.Background(), content)
	require.NoError(t, err)
	key2, hash2, err := store.Put(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Equal(t, hash1, hash2)
}

func TestPutRejectsEmptyContent(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Put(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGetMissingObject(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), strings.Repeat("00", 32))

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeleteRemovesBlob(t *testing.T) {
	store := newTestStore(t)

	key, _, err := store.Put(context.Background(), []byte("to be erased"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), key))

	_, err = store.Get(context.Background(), key)
	assert.True(t, apperrors.IsNotFoundError(err))

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(context.Background(), key))
}

func TestGetDetectsTamperedBlob(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(&config.StorageConfig{Root: root, EncryptionKey: strings.Repeat("ef", 32)}, logger.NewLogger())
	require.NoError(t, err)

	key, _, err := store.Put(context.Background(), []byte("original"))
	require.NoError(t, err)

	path := filepath.Join(root, key[:2], key[2:4], key)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = store.Get(context.Background(), key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}
