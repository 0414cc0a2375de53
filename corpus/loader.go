package corpus

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/teclalabs/paperscope/core"
)

// DefaultMaxAge is how long a cached corpus snapshot stays fresh.
const DefaultMaxAge = 24 * time.Hour

// Loader maintains a local snapshot of the corpus metadata, refreshing it
// from the origin when the on-disk cache grows older than the maximum age.
// A stale snapshot is still served when the origin is unreachable; the
// cache is a performance optimization, not a source of truth.
type Loader struct {
	fetcher   Fetcher
	cachePath string
	maxAge    time.Duration
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithMaxAge sets the maximum cache age before a refresh is attempted.
// Default is DefaultMaxAge.
func WithMaxAge(maxAge time.Duration) Option {
	return func(l *Loader) error {
		if maxAge <= 0 {
			return ErrInvalidMaxAge
		}
		l.maxAge = maxAge
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader that caches corpus snapshots at cachePath.
func NewLoader(fetcher Fetcher, cachePath string, opts ...Option) (*Loader, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if cachePath == "" {
		return nil, ErrCachePathRequired
	}

	l := &Loader{
		fetcher:   fetcher,
		cachePath: cachePath,
		maxAge:    DefaultMaxAge,
		logger:    slog.Default().With("component", "corpus-loader"),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// GetCorpus returns the corpus metadata keyed by paper title.
//
// A fresh-enough valid cache file is returned without any network call.
// Otherwise the origin is fetched and the cache replaced wholesale; if the
// fetch fails, any existing cache is returned regardless of age as a
// degraded fallback. Only when there is no usable cache and no origin does
// the result come back empty. Failures are never surfaced to the caller.
func (l *Loader) GetCorpus(ctx context.Context) map[string]*core.Paper {
	if info, err := os.Stat(l.cachePath); err == nil {
		if time.Since(info.ModTime()) < l.maxAge {
			papers, err := l.readCache()
			if err == nil {
				return papers
			}
			// Corrupt cache forces a refresh
			l.logger.Warn("error reading cached corpus, will fetch fresh copy", "err", err)
		}
	}

	papers, err := l.fetcher.FetchCorpus(ctx)
	if err == nil {
		if writeErr := l.writeCache(papers); writeErr != nil {
			l.logger.Warn("error persisting corpus cache", "err", writeErr)
		}
		return papers
	}
	l.logger.Warn("error fetching corpus from origin", "err", err)

	// Fetch failed: serve any existing cache, however old
	papers, readErr := l.readCache()
	if readErr == nil {
		l.logger.Warn("serving stale corpus cache after failed refresh")
		return papers
	}

	l.logger.Error("no corpus available", "fetchErr", err, "cacheErr", readErr)
	return map[string]*core.Paper{}
}

func (l *Loader) readCache() (map[string]*core.Paper, error) {
	data, err := os.ReadFile(l.cachePath)
	if err != nil {
		return nil, err
	}

	var papers map[string]*core.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// writeCache persists the snapshot with write-then-rename so concurrent
// refreshes can never leave a torn cache file. Last write wins.
func (l *Loader) writeCache(papers map[string]*core.Paper) error {
	dir := filepath.Dir(l.cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(papers)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".corpus-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), l.cachePath)
}
