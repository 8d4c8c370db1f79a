package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey maps an arbitrary key (usually a feed URL or file path) to a
// 16 hex character filename stem.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}
