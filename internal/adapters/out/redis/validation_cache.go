// Package redis caches validation reports in Redis.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "transportorder:validation:v1:"

// ValidationCache stores reports under the SHA-256 of document type and
// content. Entries expire after ttl; a zero ttl keeps them forever.
type ValidationCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.ValidationCache = (*ValidationCache)(nil)

// NewValidationCache does not ping the server; the first lookup reports a
// connection problem.
func NewValidationCache(client *redis.Client, ttl time.Duration) *ValidationCache {
	return &ValidationCache{client: client, ttl: ttl}
}

// Get reports a miss as (zero, false, nil). Unreachable servers and corrupt
// entries are errors.
func (c *ValidationCache) Get(ctx context.Context, documentType kernel.DocumentType, xml string) (validation.Report, bool, error) {
	payload, err := c.client.Get(ctx, Key(documentType, xml)).Bytes()
	if errors.Is(err, redis.Nil) {
		return validation.Report{}, false, nil
	}
	if err != nil {
		return validation.Report{}, false, fmt.Errorf("read cached report: %w", err)
	}

	var report validation.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return validation.Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return report, true, nil
}

// Put overwrites any earlier report for the same document.
func (c *ValidationCache) Put(ctx context.Context, documentType kernel.DocumentType, xml string, report validation.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, Key(documentType, xml), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("write cached report: %w", err)
	}
	return nil
}

// Key is the cache key of one document.
func Key(documentType kernel.DocumentType, xml string) string {
	sum := sha256.New()
	sum.Write([]byte(documentType.String()))
	sum.Write([]byte{0})
	sum.Write([]byte(xml))
	return keyPrefix + hex.EncodeToString(sum.Sum(nil))
}
