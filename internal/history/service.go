package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/metrics"
	"github.com/ycetindil/attrio/internal/repository"
)

// Service serves and records history entries. Listing is server-paginated;
// when a free-text search term is present an additional client-side filter
// pass runs over the fetched page and the pagination envelope is recomputed
// from the adjusted count.
type Service struct {
	repo   repository.HistoryRepository
	cache  *expirable.LRU[string, domain.HistoryPage]
	logger *zap.Logger
}

// CacheConfig bounds the optional in-memory page cache. A zero Size disables
// caching entirely.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// NewService builds the history service. logger must not be nil.
func NewService(repo repository.HistoryRepository, cacheCfg CacheConfig, logger *zap.Logger) *Service {
	var cache *expirable.LRU[string, domain.HistoryPage]
	if cacheCfg.Size > 0 {
		ttl := cacheCfg.TTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		cache = expirable.NewLRU[string, domain.HistoryPage](cacheCfg.Size, nil, ttl)
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns one page of history entries matching the query.
func (s *Service) List(ctx context.Context, query domain.HistoryQuery) (domain.HistoryPage, error) {
	query = query.Normalized()

	cacheKey := pageCacheKey(query)
	if s.cache != nil {
		if page, ok := s.cache.Get(cacheKey); ok {
			metrics.HistoryCacheHits.Inc()
			return page, nil
		}
		metrics.HistoryCacheMisses.Inc()
	}

	entries, total, err := s.repo.List(ctx, query)
	if err != nil {
		return domain.HistoryPage{}, fmt.Errorf("list history: %w", err)
	}

	if query.Search != "" {
		filtered := FilterEntries(entries, query.Search)
		total -= len(entries) - len(filtered)
		if total < len(filtered) {
			total = len(filtered)
		}
		entries = filtered
	}

	page := domain.HistoryPage{
		Items: entries,
		Pagination: domain.Pagination{
			Page:       query.Page,
			PageSize:   query.PageSize,
			TotalItems: total,
			TotalPages: domain.TotalPagesFor(total, query.PageSize),
		},
	}

	if s.cache != nil {
		s.cache.Add(cacheKey, page)
	}
	return page, nil
}

// Record writes one audit entry and drops any cached pages for its entity.
func (s *Service) Record(ctx context.Context, entry domain.HistoryEntry) error {
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record history entry: %w", err)
	}
	s.invalidate(entry.EntityType, entry.EntityID)
	s.logger.Debug("history entry recorded",
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID),
		zap.String("action", string(entry.Action)),
		zap.Int("changes", len(entry.Changes)))
	return nil
}

// Diff renders the unified diff between two snapshots for the detail view.
func (s *Service) Diff(base, target *domain.Snapshot) string {
	return domain.DiffSnapshots("before", base, "after", target)
}

func (s *Service) invalidate(entityType, entityID string) {
	if s.cache == nil {
		return
	}
	prefix := entityType + "/" + entityID + "/"
	for _, key := range s.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Remove(key)
		}
	}
}

func pageCacheKey(q domain.HistoryQuery) string {
	return fmt.Sprintf("%s/%s/%d/%d/%s/%s/%s", q.EntityType, q.EntityID, q.Page, q.PageSize, q.Action, q.Actor, q.Search)
}

// FilterEntries applies the client-side best-effort search pass: a
// case-insensitive substring match over each entry's comment and every
// change's field name and formatted old/new values. It layers on top of
// server-side filtering, never replaces it.
func FilterEntries(entries []domain.HistoryEntry, term string) []domain.HistoryEntry {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return entries
	}
	filtered := make([]domain.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entryMatches(entry, needle) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func entryMatches(entry domain.HistoryEntry, needle string) bool {
	if strings.Contains(strings.ToLower(entry.Comment), needle) {
		return true
	}
	for _, change := range entry.Changes {
		if strings.Contains(strings.ToLower(change.Field), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(FormatChangeValue(change.OldValue)), needle) {
			return true
		}
		if strings.Contains(strings.ToLower(FormatChangeValue(change.NewValue)), needle) {
			return true
		}
	}
	return false
}
