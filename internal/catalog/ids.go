package catalog

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDProvider generates identifiers for sections and their sub-blocks.
type IDProvider interface {
	NewID(prefix string) string
}

// UUIDProvider issues random UUID-based ids.
type UUIDProvider struct{}

func (UUIDProvider) NewID(prefix string) string {
	if prefix == "" {
		return uuid.New().String()
	}
	return prefix + "-" + uuid.New().String()
}

// CounterProvider issues deterministic, monotonically increasing ids.
// Safe for concurrent use.
type CounterProvider struct {
	n atomic.Int64
}

func NewCounterProvider() *CounterProvider {
	return &CounterProvider{}
}

func (c *CounterProvider) NewID(prefix string) string {
	n := strconv.FormatInt(c.n.Add(1), 10)
	if prefix == "" {
		return n
	}
	return prefix + "-" + n
}
