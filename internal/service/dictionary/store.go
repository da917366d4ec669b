// Package dictionary owns the process-wide dictionary snapshot: it loads the
// table from a text source, publishes it atomically and reports readiness.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/hanzi-reader/internal/cedict"
	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Source provides the raw dictionary text.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// LoadInfo describes the snapshot currently served.
type LoadInfo struct {
	Source   string        `json:"source"`
	Stats    cedict.Stats  `json:"stats"`
	LoadedAt time.Time     `json:"loadedAt"`
	Duration time.Duration `json:"duration"`
}

// Store serves lookups from the most recently loaded table. The table is
// replaced wholesale on every successful load and never modified in place.
type Store struct {
	log    *slog.Logger
	source Source
	group  singleflight.Group

	table atomic.Pointer[cedict.Table]
	info  atomic.Pointer[LoadInfo]
}

// NewStore creates an empty, not-ready Store reading from source.
func NewStore(logger *slog.Logger, source Source) *Store {
	return &Store{
		log:    logger.With("service", "dictionary"),
		source: source,
	}
}

// Load reads and parses the whole source and publishes the new table.
// Concurrent calls share a single in-flight load and its result; the
// context of the call that started the load governs it.
//
// On failure the previously published table, if any, stays in place and a
// *domain.LoadError is returned.
func (s *Store) Load(ctx context.Context) (LoadInfo, error) {
	v, err, shared := s.group.Do("load", func() (any, error) {
		return s.load(ctx)
	})
	if shared {
		s.log.DebugContext(ctx, "joined in-flight dictionary load")
	}
	if err != nil {
		return LoadInfo{}, err
	}
	return v.(LoadInfo), nil
}

func (s *Store) load(ctx context.Context) (LoadInfo, error) {
	src := s.source.String()
	start := time.Now()

	s.log.InfoContext(ctx, "loading dictionary", slog.String("source", src))

	rc, err := s.source.Open(ctx)
	if err != nil {
		return LoadInfo{}, s.fail(ctx, src, err)
	}
	defer rc.Close()

	result, err := cedict.Parse(rc)
	if err != nil {
		return LoadInfo{}, s.fail(ctx, src, fmt.Errorf("parse: %w", err))
	}

	info := LoadInfo{
		Source:   src,
		Stats:    result.Stats,
		LoadedAt: time.Now(),
		Duration: time.Since(start),
	}

	s.table.Store(result.Table)
	s.info.Store(&info)

	s.log.InfoContext(ctx, "dictionary loaded",
		slog.String("source", src),
		slog.Int("entries", info.Stats.ParsedLines),
		slog.Int("keys", info.Stats.UniqueKeys),
		slog.Int("skipped", info.Stats.SkippedLines),
		slog.Int("overwritten", info.Stats.Overwritten),
		slog.Duration("duration", info.Duration),
	)

	return info, nil
}

func (s *Store) fail(ctx context.Context, src string, err error) error {
	s.log.ErrorContext(ctx, "dictionary load failed",
		slog.String("source", src),
		slog.Bool("serving_previous", s.Ready()),
		slog.String("error", err.Error()),
	)
	return domain.NewLoadError(src, err)
}

// Ready reports whether a table has been published.
func (s *Store) Ready() bool {
	return s.table.Load() != nil
}

// Table returns the current snapshot, or nil before the first load.
// A nil *cedict.Table is safe to query and misses every lookup.
func (s *Store) Table() *cedict.Table {
	return s.table.Load()
}

// Info returns details about the current snapshot.
func (s *Store) Info() (LoadInfo, bool) {
	info := s.info.Load()
	if info == nil {
		return LoadInfo{}, false
	}
	return *info, true
}

// Lookup resolves a headword against the current snapshot.
func (s *Store) Lookup(key string) (domain.DictionaryEntry, error) {
	if !s.Ready() {
		return domain.DictionaryEntry{}, domain.ErrDictionaryNotReady
	}
	entry, ok := s.Table().Lookup(key)
	if !ok {
		return domain.DictionaryEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

// Run loads the dictionary, retrying every retryInterval until it succeeds.
// With a positive reloadInterval it then reloads periodically; otherwise it
// returns after the first successful load. Run returns nil when ctx is done.
func (s *Store) Run(ctx context.Context, retryInterval, reloadInterval time.Duration) error {
	if retryInterval <= 0 {
		return errors.New("dictionary: retry interval must be positive")
	}

	for {
		_, err := s.Load(ctx)
		if ctx.Err() != nil {
			return nil
		}

		wait := reloadInterval
		if err != nil {
			wait = retryInterval
			s.log.WarnContext(ctx, "retrying dictionary load", slog.Duration("in", wait))
		} else if reloadInterval <= 0 {
			return nil
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}
