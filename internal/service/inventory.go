package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"cs2-inventory-api/internal/cache"
	"cs2-inventory-api/internal/model"
	"cs2-inventory-api/internal/steam"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheTTL is how long a fetched inventory is served from cache.
	DefaultCacheTTL = 60 * time.Second

	DefaultAppID     = "730"
	DefaultContextID = "2"
	DefaultLanguage  = "english"
)

var (
	steamIDPattern = regexp.MustCompile(`^\d{17}$`)
	numericPattern = regexp.MustCompile(`^\d{1,20}$`)
)

// InventorySource fetches a raw inventory from upstream.
type InventorySource interface {
	GetInventory(ctx context.Context, req steam.InventoryRequest) (*model.SteamInventory, error)
}

// InventoryQuery selects one inventory. Empty AppID, ContextID and Language
// take the CS2 defaults.
type InventoryQuery struct {
	SteamID   string
	AppID     string
	ContextID string
	Language  string
}

func (q InventoryQuery) withDefaults() InventoryQuery {
	if q.AppID == "" {
		q.AppID = DefaultAppID
	}
	if q.ContextID == "" {
		q.ContextID = DefaultContextID
	}
	if q.Language == "" {
		q.Language = DefaultLanguage
	}
	return q
}

// Validate checks identifier and path parameter shapes. Language is passed
// through and only escaped when the upstream URL is built.
func (q InventoryQuery) Validate() error {
	if !steamIDPattern.MatchString(q.SteamID) {
		return ErrInvalidSteamID
	}
	if !numericPattern.MatchString(q.AppID) {
		return &ParameterError{Field: "appId", Reason: "must be numeric"}
	}
	if !numericPattern.MatchString(q.ContextID) {
		return &ParameterError{Field: "contextId", Reason: "must be numeric"}
	}
	return nil
}

// CacheKey is steamId:appId:contextId:language.
func (q InventoryQuery) CacheKey() string {
	return strings.Join([]string{q.SteamID, q.AppID, q.ContextID, q.Language}, ":")
}

// InventoryServiceConfig holds optional settings for the fetcher.
type InventoryServiceConfig struct {
	CacheTTL time.Duration
	IconBase string

	// Coalesce makes concurrent misses on the same key share one upstream call.
	Coalesce bool
}

// InventoryService fetches, normalizes and caches inventories.
type InventoryService struct {
	source   InventorySource
	cache    cache.Cache
	cacheTTL time.Duration
	iconBase string

	coalesce bool
	inflight singleflight.Group

	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	upstreamCalls    atomic.Int64
	upstreamFailures atomic.Int64
}

// NewInventoryService creates a new inventory service.
// Returns nil if source or store is nil (required dependencies).
func NewInventoryService(source InventorySource, store cache.Cache, cfg InventoryServiceConfig) *InventoryService {
	if source == nil || store == nil {
		return nil
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.IconBase == "" {
		cfg.IconBase = DefaultIconBase
	}
	return &InventoryService{
		source:   source,
		cache:    store,
		cacheTTL: cfg.CacheTTL,
		iconBase: cfg.IconBase,
		coalesce: cfg.Coalesce,
	}
}

// FetchInventory returns the normalized inventory for q, from cache when a
// live entry exists. Nothing is cached when the upstream call fails.
//
// The caller's cancellation is not propagated upstream; only the client
// timeout bounds the call.
func (s *InventoryService) FetchInventory(ctx context.Context, q InventoryQuery) (*model.Inventory, error) {
	q = q.withDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if inv, ok := s.lookup(ctx, key); ok {
		s.cacheHits.Add(1)
		return inv, nil
	}
	s.cacheMisses.Add(1)

	if !s.coalesce {
		return s.fetchAndStore(ctx, key, q)
	}

	v, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		return s.fetchAndStore(ctx, key, q)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Printf("[InventoryService] Shared in-flight fetch for %s", key)
	}
	return v.(*model.Inventory), nil
}

func (s *InventoryService) lookup(ctx context.Context, key string) (*model.Inventory, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("[InventoryService] Cache read failed for %s: %v", key, err)
		}
		return nil, false
	}

	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		log.Printf("[InventoryService] Discarding unreadable cache entry %s: %v", key, err)
		return nil, false
	}
	return &inv, true
}

func (s *InventoryService) fetchAndStore(ctx context.Context, key string, q InventoryQuery) (*model.Inventory, error) {
	ctx = context.WithoutCancel(ctx)
	s.upstreamCalls.Add(1)

	raw, err := s.source.GetInventory(ctx, steam.InventoryRequest{
		SteamID:   q.SteamID,
		AppID:     q.AppID,
		ContextID: q.ContextID,
		Language:  q.Language,
	})
	if err != nil {
		s.upstreamFailures.Add(1)
		return nil, fmt.Errorf("fetch inventory %s: %w", key, err)
	}

	inv := &model.Inventory{
		Items: NormalizeItems(raw.Assets, raw.Descriptions, s.iconBase),
	}

	data, err := json.Marshal(inv)
	if err != nil {
		log.Printf("[InventoryService] Failed to encode %s for cache: %v", key, err)
		return inv, nil
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Printf("[InventoryService] Cache write failed for %s: %v", key, err)
	}

	return inv, nil
}

// Stats returns fetch counters.
func (s *InventoryService) Stats() map[string]interface{} {
	return map[string]interface{}{
		"cache_hits":        s.cacheHits.Load(),
		"cache_misses":      s.cacheMisses.Load(),
		"upstream_calls":    s.upstreamCalls.Load(),
		"upstream_failures": s.upstreamFailures.Load(),
		"cache_ttl":         s.cacheTTL.String(),
		"coalesce":          s.coalesce,
	}
}

// CacheStats returns backend statistics from the cache store.
func (s *InventoryService) CacheStats(ctx context.Context) (map[string]interface{}, error) {
	return s.cache.Stats(ctx)
}
