package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores serialized normalization results keyed by input content hash.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from raw input bytes. Two byte-identical
// observation sets always map to the same key, so a cache hit can serve
// the stored result without re-running the engine.
func Key(raw []byte) string {
	hash := sha256.Sum256(raw)
	return "crednorm:v1:" + hex.EncodeToString(hash[:])
}
