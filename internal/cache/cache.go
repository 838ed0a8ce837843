// Package cache provides an in-process read-through cache for workspace
// transaction lists. Statistics queries aggregate over a workspace's full
// transaction history; caching the loaded list avoids re-reading hundreds
// of rows for every statistics request. Mutations invalidate the owning
// workspace's entry.
package cache

import (
	"github.com/dgraph-io/ristretto"

	"ledgerspace/internal/models"
)

// TransactionCache caches the full transaction list per workspace.
type TransactionCache struct {
	cache *ristretto.Cache
}

// DefaultMaxRows is the default cap on cached transaction rows across
// all workspaces.
const DefaultMaxRows = 100000

// NewTransactionCache creates a TransactionCache. Cost is counted in
// transactions; maxRows caps the total across all workspaces; 0 or a
// negative value uses DefaultMaxRows.
func NewTransactionCache(maxRows int64) (*TransactionCache, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxRows / 10,
		MaxCost:     maxRows,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &TransactionCache{cache: c}, nil
}

// Get returns the cached list for a workspace, if present.
func (tc *TransactionCache) Get(workspaceID uint) ([]models.Transaction, bool) {
	value, found := tc.cache.Get(uint64(workspaceID))
	if !found {
		return nil, false
	}
	txns, ok := value.([]models.Transaction)
	return txns, ok
}

// Set stores the full list for a workspace. The write is applied
// asynchronously; a subsequent Get may miss until it lands.
func (tc *TransactionCache) Set(workspaceID uint, txns []models.Transaction) {
	tc.cache.Set(uint64(workspaceID), txns, int64(len(txns))+1)
}

// Invalidate drops the cached list for a workspace. Called after every
// transaction mutation in that workspace.
func (tc *TransactionCache) Invalidate(workspaceID uint) {
	tc.cache.Del(uint64(workspaceID))
}

// Wait blocks until pending writes are applied. Only needed by tests.
func (tc *TransactionCache) Wait() {
	tc.cache.Wait()
}

// Close releases the cache's resources.
func (tc *TransactionCache) Close() {
	tc.cache.Close()
}
