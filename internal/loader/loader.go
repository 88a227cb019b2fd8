// Package loader orchestrates the cache-check, fetch, clean, persist cycle
// that callers go through to resolve a term into a clean record.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jonesrussell/wikiquery/internal/cache"
	"github.com/jonesrussell/wikiquery/internal/cleaner"
	"github.com/jonesrussell/wikiquery/internal/domain"
	"github.com/jonesrussell/wikiquery/internal/logger"
	"github.com/jonesrussell/wikiquery/internal/wiki"
)

// Loader resolves terms against the cache first and fetches on miss.
// A populated term is never fetched again for the lifetime of the backing
// cache file: the record is persisted on every miss before it is returned.
// Fetch errors propagate uncached so a later retry can succeed.
//
// Safe for concurrent use: concurrent misses for the same term are
// deduplicated so only one fetch goes out.
type Loader struct {
	store   *cache.Store
	fetcher wiki.Fetcher
	log     logger.Interface
	flight  singleflight.Group
}

// New creates a loader over the given store and fetcher. The store must
// already be loaded; the loader never reloads it. No hidden singletons:
// callers own the store lifecycle and file location.
func New(store *cache.Store, fetcher wiki.Fetcher, log logger.Interface) *Loader {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Loader{
		store:   store,
		fetcher: fetcher,
		log:     log.WithComponent("loader"),
	}
}

// Load returns the clean record for term, fetching and populating the cache
// only when the term has not been seen before. On a hit the cached record is
// returned as-is, without network access or re-cleaning, even when the
// requested field set differs from the one the record was populated with
// (the full infobox and summary captured at population time cover most
// reconstructions; see DESIGN.md).
func (l *Loader) Load(
	ctx context.Context,
	term string,
	specs []domain.FieldSpec,
) (domain.CleanRecord, error) {
	key := domain.Normalize(term)
	if key == "" {
		return domain.CleanRecord{}, fmt.Errorf("empty search term")
	}

	if record, ok := l.store.Get(key); ok {
		l.log.Debug("Cache hit", "term", key.String())
		return record, nil
	}

	return l.fly(ctx, key, specs, false)
}

// Refresh bypasses the cache-hit path and repopulates the term from a fresh
// fetch, overwriting and persisting any existing record. Intended for
// debugging stale or badly extracted records.
func (l *Loader) Refresh(
	ctx context.Context,
	term string,
	specs []domain.FieldSpec,
) (domain.CleanRecord, error) {
	key := domain.Normalize(term)
	if key == "" {
		return domain.CleanRecord{}, fmt.Errorf("empty search term")
	}

	return l.fly(ctx, key, specs, true)
}

// fly runs populate for key inside the flight group so concurrent callers of
// the same term share one fetch.
func (l *Loader) fly(
	ctx context.Context,
	key domain.SearchTerm,
	specs []domain.FieldSpec,
	force bool,
) (domain.CleanRecord, error) {
	result, err, _ := l.flight.Do(key.String(), func() (any, error) {
		return l.populate(ctx, key, specs, force)
	})
	if err != nil {
		return domain.CleanRecord{}, err
	}

	record, ok := result.(domain.CleanRecord)
	if !ok {
		return domain.CleanRecord{}, fmt.Errorf("unexpected result type %T", result)
	}
	return record, nil
}

// populate performs the miss path: fetch, clean, store, flush. Runs at most
// once per term across concurrent callers. With force set the existing
// record is ignored and overwritten.
func (l *Loader) populate(
	ctx context.Context,
	key domain.SearchTerm,
	specs []domain.FieldSpec,
	force bool,
) (domain.CleanRecord, error) {
	// A concurrent caller may have populated the term while this call was
	// waiting on the flight group.
	if !force {
		if record, ok := l.store.Get(key); ok {
			return record, nil
		}
	}

	log := l.log.WithRequestID(uuid.NewString())
	start := time.Now()

	raw, err := l.fetcher.Fetch(ctx, key)
	if err != nil {
		log.Error("Fetch failed", "term", key.String(), "error", err)
		return domain.CleanRecord{}, fmt.Errorf("loading %q: %w", key, err)
	}

	record := cleaner.Clean(raw, specs)

	l.store.Put(key, record)
	if err := l.store.Flush(); err != nil {
		return domain.CleanRecord{}, fmt.Errorf("persisting %q: %w", key, err)
	}

	log.WithDuration(time.Since(start)).Info("Populated cache",
		"term", key.String(),
		"resolved_title", record.Title,
		"resolved_exact", record.ResolvedExact,
		"fields", len(record.Fields),
	)
	return record, nil
}
