package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/contractpay-backend/internal/clients/redis"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type cachedReportService struct {
	inner   ReportService
	cache   redis.Cache
	ttl     time.Duration
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewCachedReportService decorates inner with a read-through cache. Cache
// failures are logged and fall through to inner. A nil cache or non-positive
// ttl returns inner unchanged.
func NewCachedReportService(inner ReportService, cache redis.Cache, ttl time.Duration, metrics *observability.Metrics, baseLog *logger.Logger) ReportService {
	if cache == nil || ttl <= 0 {
		return inner
	}
	return &cachedReportService{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		log:     baseLog.With("service", "CachedReportService"),
	}
}

func windowKey(report string, start, end time.Time, extra ...any) string {
	key := fmt.Sprintf("report:%s:%d:%d", report, start.UTC().UnixNano(), end.UTC().UnixNano())
	for _, e := range extra {
		key += fmt.Sprintf(":%v", e)
	}
	return key
}

func (s *cachedReportService) BestProfession(ctx context.Context, start, end time.Time) (*ledger.ProfessionTotal, error) {
	const report = "best_profession"
	key := windowKey(report, start, end)
	var cached ledger.ProfessionTotal
	if s.lookup(ctx, report, key, &cached) {
		return &cached, nil
	}
	out, err := s.inner.BestProfession(ctx, start, end)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *cachedReportService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]ledger.ClientReport, error) {
	const report = "best_clients"
	if limit <= 0 {
		limit = DefaultBestClientsLimit
	}
	key := windowKey(report, start, end, limit)
	var cached []ledger.ClientReport
	if s.lookup(ctx, report, key, &cached) {
		return cached, nil
	}
	out, err := s.inner.BestClients(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *cachedReportService) lookup(ctx context.Context, report, key string, dst any) bool {
	hit, err := s.cache.GetJSON(ctx, key, dst)
	switch {
	case err != nil:
		s.metrics.IncReportCache(report, "error")
		s.log.Warn("report cache read failed", "key", key, "error", err)
		return false
	case hit:
		s.metrics.IncReportCache(report, "hit")
		return true
	default:
		s.metrics.IncReportCache(report, "miss")
		return false
	}
}

func (s *cachedReportService) store(ctx context.Context, key string, v any) {
	if err := s.cache.SetJSON(ctx, key, v, s.ttl); err != nil {
		s.log.Warn("report cache write failed", "key", key, "error", err)
	}
}
