package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "token_cache.json"

// Cache persists the current token between runs as a single JSON file.
type Cache struct {
	path string
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{path: filepath.Join(dir, cacheFileName)}
}

// DefaultCacheDir returns the per-user cache directory for the tool.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "adoq"), nil
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// Load returns the cached token when it is still valid at now. Missing,
// unreadable, or expired cache files are a miss, never an error.
func (c *Cache) Load(now time.Time) (Token, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Token{}, false
	}
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, false
	}
	if !tok.Valid(now) {
		return Token{}, false
	}
	return tok, true
}

// Store writes the token atomically with owner-only permissions.
func (c *Cache) Store(tok Token) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
