/*
Package pipeline wires name resolution, fetching, normalization and filtering
into the single lookup every presentation layer calls.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shanehull/corpactions/internal/cache"
	"github.com/shanehull/corpactions/internal/directory"
	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/filter"
	"github.com/shanehull/corpactions/internal/normalize"
	"github.com/shanehull/corpactions/internal/types"
)

// Fetcher is satisfied by *exchange.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, src exchange.Source, code string) ([]byte, error)
}

// Query narrows a lookup. The zero Query returns everything.
type Query struct {
	Range  filter.DateRange
	Search string
}

// Result is what a caller renders: records for one company, or an empty
// slice and a warning explaining why there are none.
type Result struct {
	Company types.CompanyRef     `json:"company"`
	Records []types.Announcement `json:"records"`
	Warning string               `json:"warning,omitempty"`
}

type Service struct {
	dir     directory.Directory
	fetcher Fetcher
	src     exchange.Source
	cache   *cache.Manager
	logger  *zap.Logger
}

type Option func(*Service)

func WithCache(c *cache.Manager) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(dir directory.Directory, f Fetcher, src exchange.Source, opts ...Option) *Service {
	s := &Service{
		dir:     dir,
		fetcher: f,
		src:     src,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Directory() directory.Directory {
	return s.dir
}

func (s *Service) Resolve(name string) (types.CompanyRef, error) {
	return s.dir.Resolve(name)
}

// Announcements returns every normalized record for ref, unfiltered.
func (s *Service) Announcements(ctx context.Context, ref types.CompanyRef) ([]types.Announcement, error) {
	key := s.src.CacheKey(ref.Code)
	if records, ok := s.cache.Get(key); ok {
		s.logger.Debug("cache hit", zap.String("company", ref.Name), zap.String("code", ref.Code))
		return records, nil
	}

	raw, err := s.fetcher.Fetch(ctx, s.src, ref.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements for %s: %w", ref.Name, err)
	}

	records, err := normalize.Normalize(raw, s.src, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize announcements for %s: %w", ref.Name, err)
	}

	s.cache.Put(key, records)
	s.logger.Info("fetched announcements",
		zap.String("company", ref.Name),
		zap.String("code", ref.Code),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// Lookup resolves name and returns its filtered announcements. It never
// fails: every error becomes an empty result with a warning.
func (s *Service) Lookup(ctx context.Context, name string, q Query) Result {
	ref, err := s.dir.Resolve(name)
	if err != nil {
		return s.failed(types.CompanyRef{Name: name}, err)
	}
	return s.LookupRef(ctx, ref, q)
}

func (s *Service) LookupRef(ctx context.Context, ref types.CompanyRef, q Query) Result {
	records, err := s.Announcements(ctx, ref)
	if err != nil {
		return s.failed(ref, err)
	}

	records = filter.ByRange(records, q.Range)
	records = filter.Search(records, q.Search)
	if records == nil {
		records = []types.Announcement{}
	}
	return Result{Company: ref, Records: records}
}

// LookupAll runs Lookup for each name in turn. No names means every company
// in the directory. Companies are fetched one after another, never in parallel.
func (s *Service) LookupAll(ctx context.Context, names []string, q Query) []Result {
	var refs []types.CompanyRef
	var results []Result

	if len(names) == 0 {
		refs = s.dir.Companies()
	} else {
		for _, name := range names {
			ref, err := s.dir.Resolve(name)
			if err != nil {
				results = append(results, s.failed(types.CompanyRef{Name: name}, err))
				continue
			}
			refs = append(refs, ref)
		}
	}

	for _, ref := range refs {
		if ctx.Err() != nil {
			results = append(results, s.failed(ref, ctx.Err()))
			continue
		}
		results = append(results, s.LookupRef(ctx, ref, q))
	}
	return results
}

func (s *Service) failed(ref types.CompanyRef, err error) Result {
	s.logger.Warn("lookup failed",
		zap.String("company", ref.Name),
		zap.String("code", ref.Code),
		zap.Error(err),
	)
	return Result{Company: ref, Records: []types.Announcement{}, Warning: Warning(ref, err)}
}

// Warning renders err as a short message for the operator.
func Warning(ref types.CompanyRef, err error) string {
	var notFound *directory.NotFoundError
	var transport *exchange.TransportError
	var parse *normalize.ParseError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("Company %q is not in the company list.", notFound.Name)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Lookup for %s was cancelled.", ref.Name)
	case errors.As(err, &transport):
		if transport.StatusCode != 0 {
			return fmt.Sprintf("Error fetching %s: upstream returned status %d.", ref.Name, transport.StatusCode)
		}
		return fmt.Sprintf("Error fetching %s: %v", ref.Name, transport.Err)
	case errors.As(err, &parse):
		return fmt.Sprintf("Could not read announcements for %s: %v", ref.Name, parse.Err)
	default:
		return fmt.Sprintf("Error fetching %s: %v", ref.Name, err)
	}
}
