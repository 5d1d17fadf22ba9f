package statistics

import (
	"context"
	"encoding/json"
	"time"

	"vcarpool/models"
	"vcarpool/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatisticsAPI fetches carpool statistics from the upstream.
type StatisticsAPI interface {
	CarpoolStatistics(ctx context.Context, token string, timeframe models.Timeframe) (*models.CarpoolStatistics, error)
}

type Service interface {
	Get(ctx context.Context, token string, timeframe models.Timeframe) (*models.CarpoolStatistics, error)
	Invalidate(ctx context.Context) error
}

// CachedService serves statistics from Redis for ttl before asking the upstream again. Cache
// errors never fail a request.
type CachedService struct {
	api    StatisticsAPI
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedService(api StatisticsAPI, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedService{api: api, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(tf models.Timeframe) string {
	return utils.StatsCachePrefix + string(tf)
}

func (s *CachedService) Get(ctx context.Context, token string, timeframe models.Timeframe) (*models.CarpoolStatistics, error) {
	if s.cache != nil && s.ttl > 0 {
		if stats, ok := s.fromCache(ctx, timeframe); ok {
			return stats, nil
		}
	}

	stats, err := s.api.CarpoolStatistics(ctx, token, timeframe)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey(timeframe), data, s.ttl).Err(); err != nil {
				s.logger.Warn("Failed to cache statistics", zap.String("timeframe", string(timeframe)), zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *CachedService) fromCache(ctx context.Context, timeframe models.Timeframe) (*models.CarpoolStatistics, bool) {
	data, err := s.cache.Get(ctx, cacheKey(timeframe)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Statistics cache unavailable", zap.Error(err))
		}
		return nil, false
	}
	var stats models.CarpoolStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		s.logger.Warn("Discarding corrupt statistics cache entry", zap.String("timeframe", string(timeframe)), zap.Error(err))
		return nil, false
	}
	return &stats, true
}

// Invalidate drops every cached timeframe. Called after a schedule is regenerated.
func (s *CachedService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	keys := make([]string, 0, 4)
	for _, tf := range []models.Timeframe{models.TimeframeWeek, models.TimeframeMonth, models.TimeframeQuarter, models.TimeframeYear} {
		keys = append(keys, cacheKey(tf))
	}
	return s.cache.Del(ctx, keys...).Err()
}

var _ Service = (*CachedService)(nil)
