package cache

import "errors"

var (
	// ErrCacheCorrupt indicates the backing file exists but could not be
	// deserialized. The file is never overwritten or deleted in this state;
	// recovery requires explicit user intervention.
	ErrCacheCorrupt = errors.New("cache file is corrupt")
)
