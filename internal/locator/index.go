package locator

import (
	"context"

	"github.com/frherrer/GoE2E-PageForge/internal/driver"
)

// Index answers how many elements on the scanned page match a selector.
// Resolution treats a count of exactly one as proof of uniqueness.
type Index interface {
	Count(ctx context.Context, selector string) (int, error)
}

// DriverIndex counts selector matches through the live driver and memoizes
// results for the lifetime of the index, which is one analysis run. Pages are
// not re-scanned between lookups, so a cached count never goes stale.
type DriverIndex struct {
	drv   driver.Driver
	cache map[string]int
}

// NewDriverIndex returns an index backed by drv with an empty cache.
func NewDriverIndex(drv driver.Driver) *DriverIndex {
	return &DriverIndex{drv: drv, cache: make(map[string]int)}
}

// Count returns the number of elements matching selector, consulting the
// driver at most once per distinct selector.
func (i *DriverIndex) Count(ctx context.Context, selector string) (int, error) {
	if n, ok := i.cache[selector]; ok {
		return n, nil
	}
	n, err := i.drv.CountBySelector(ctx, selector)
	if err != nil {
		return 0, err
	}
	i.cache[selector] = n
	return n, nil
}
