package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rbastos/kdpipe/internal/model"
)

// Cache memoizes classification results. Rate descriptions repeat heavily
// across financing lines (the same contract wording shows up for many
// records), so classification is keyed by the normalized text.
type Cache interface {
	Get(key string) (model.ClassificationResult, bool)
	Set(key string, result model.ClassificationResult)
}

// Key generates a cache key from normalized description text
func Key(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return "kdpipe:v1:" + hex.EncodeToString(hash[:])
}
