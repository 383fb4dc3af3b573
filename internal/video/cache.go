package video

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reditrend/internal/model"
)

// AssetCache is a content-addressed store mapping a generation prompt
// and target dimensions to a previously produced image on disk.
//
// Concurrent misses for the same key are allowed to generate
// redundantly: content is a pure function of the key, so duplicate
// writes are idempotent overwrites. No single-flight locking.
type AssetCache struct {
	dir string
}

// NewAssetCache creates a cache rooted at dir.
func NewAssetCache(dir string) (*AssetCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &AssetCache{dir: dir}, nil
}

// CacheKey derives the stable content hash for (prompt, dimensions).
func CacheKey(prompt string, dims model.Dimensions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%dx%d", prompt, dims.Width, dims.Height)))
	return hex.EncodeToString(sum[:])
}

// GetOrGenerate returns the cached asset for (prompt, dimensions) if
// present, otherwise invokes generate to produce the image bytes,
// stores them under the key and returns the new asset.
func (c *AssetCache) GetOrGenerate(prompt string, dims model.Dimensions, generate func() ([]byte, error)) (model.ImageAsset, error) {
	key := CacheKey(prompt, dims)
	path := filepath.Join(c.dir, key+".png")

	if info, err := os.Stat(path); err == nil {
		return model.ImageAsset{
			CacheKey:    key,
			LocalPath:   path,
			GeneratedAt: info.ModTime(),
		}, nil
	}

	data, err := generate()
	if err != nil {
		return model.ImageAsset{}, fmt.Errorf("generate image for key %s: %w", key[:12], err)
	}

	// Write via a unique temp file then rename, so a concurrent miss for
	// the same key never observes a half-written image.
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return model.ImageAsset{}, fmt.Errorf("create cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return model.ImageAsset{}, fmt.Errorf("write cache temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return model.ImageAsset{}, fmt.Errorf("close cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return model.ImageAsset{}, fmt.Errorf("commit cache entry: %w", err)
	}

	return model.ImageAsset{
		CacheKey:    key,
		LocalPath:   path,
		GeneratedAt: time.Now(),
	}, nil
}
