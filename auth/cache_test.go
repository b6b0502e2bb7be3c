package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadMissing(t *testing.T) {
	cache := NewCache(t.TempDir())

	_, ok := cache.Load(time.Now())
	assert.False(t, ok)
}

func TestCacheStoreAndLoad(t *testing.T) {
	now := time.Now()
	cache := NewCache(t.TempDir())

	tok := Token{Value: "abc", ExpiresOn: now.Add(time.Hour).Unix()}
	require.NoError(t, cache.Store(tok))

	got, ok := cache.Load(now)
	require.True(t, ok)
	assert.Equal(t, "abc", got.Value)
	assert.Equal(t, tok.ExpiresOn, got.ExpiresOn)
}

func TestCacheLoadExpired(t *testing.T) {
	now := time.Now()
	cache := NewCache(t.TempDir())

	require.NoError(t, cache.Store(Token{Value: "old", ExpiresOn: now.Add(-time.Minute).Unix()}))

	_, ok := cache.Load(now)
	assert.False(t, ok)
}

func TestCacheLoadNearExpiry(t *testing.T) {
	// Expires in two minutes, inside the five-minute buffer
	now := time.Now()
	cache := NewCache(t.TempDir())

	require.NoError(t, cache.Store(Token{Value: "near", ExpiresOn: now.Add(2 * time.Minute).Unix()}))

	_, ok := cache.Load(now)
	assert.False(t, ok)
}

func TestCacheLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir)
	require.NoError(t, os.WriteFile(cache.Path(), []byte("{not json"), 0o600))

	_, ok := cache.Load(time.Now())
	assert.False(t, ok)
}

func TestCacheStorePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cache := NewCache(dir)

	require.NoError(t, cache.Store(Token{Value: "abc", ExpiresOn: time.Now().Add(time.Hour).Unix()}))

	info, err := os.Stat(cache.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestCacheStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir)

	require.NoError(t, cache.Store(Token{Value: "abc", ExpiresOn: time.Now().Add(time.Hour).Unix()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, cacheFileName, entries[0].Name())
}
