package service

import (
	"context"
	"fmt"
	"time"

	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key layout for the ward mirror and the dashboard cache
	RedisWardFreePrefix  = "ward:free:"
	RedisWardTotalPrefix = "ward:total:"
	RedisStatsKey        = "dashboard:stats"

	// How long a cached dashboard snapshot may serve reads
	StatsCacheTTL = 15 * time.Second
)

// BedSyncService mirrors ward bed counters to Redis and owns the
// dashboard stats cache. The in-process ward ledger is the concurrency
// gate; Redis is a read-side mirror, so every mirror failure is logged
// and tolerated rather than failing the admission.
type BedSyncService struct {
	redisClient *redis.Client
	bedRepo     repository.BedRepository
	ledger      *entity.WardLedger
	log         *logrus.Logger
}

func NewBedSyncService(
	redisClient *redis.Client,
	bedRepo repository.BedRepository,
	ledger *entity.WardLedger,
	log *logrus.Logger,
) *BedSyncService {
	return &BedSyncService{
		redisClient: redisClient,
		bedRepo:     bedRepo,
		ledger:      ledger,
		log:         log,
	}
}

// SyncOnStartup rebuilds the ward ledger and the Redis mirror from the
// beds table. Must run before the server accepts traffic: the ledger's
// occupied counts come from the durable bed rows, never from Redis.
func (s *BedSyncService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Rebuilding ward ledger from bed store...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	for _, ward := range entity.Wards {
		total, err := s.bedRepo.CountByWard(ctx, ward)
		if err != nil {
			return fmt.Errorf("count beds for ward %s: %w", ward, err)
		}

		occupied, err := s.bedRepo.CountOccupiedByWard(ctx, ward)
		if err != nil {
			return fmt.Errorf("count occupied beds for ward %s: %w", ward, err)
		}

		counts, err := s.ledger.Counts(ward)
		if err != nil {
			return err
		}
		if int(total) != counts.Total {
			s.log.Warnf("Configured capacity for ward %s is %d but bed store has %d rows", ward, counts.Total, total)
		}

		if err := s.ledger.Restore(ward, int(occupied)); err != nil {
			return fmt.Errorf("restore ledger for ward %s: %w", ward, err)
		}
	}

	if err := s.PublishCounts(ctx); err != nil {
		return err
	}

	s.log.Infof("Ward ledger rebuilt in %v", time.Since(startTime))
	return nil
}

// PublishCounts pushes the current ledger snapshot to the Redis mirror
// and drops the cached dashboard stats so the next read recomputes.
func (s *BedSyncService) PublishCounts(ctx context.Context) error {
	perWard, _ := s.ledger.Snapshot()

	pipe := s.redisClient.TxPipeline()
	for ward, counts := range perWard {
		pipe.Set(ctx, RedisWardFreePrefix+string(ward), counts.Free, 0)
		pipe.Set(ctx, RedisWardTotalPrefix+string(ward), counts.Total, 0)
	}
	pipe.Del(ctx, RedisStatsKey)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to publish ward counts to Redis: %+v", err)
		return fmt.Errorf("publish ward counts: %w", err)
	}
	return nil
}

// CachedStats returns the cached dashboard snapshot, if any.
func (s *BedSyncService) CachedStats(ctx context.Context) ([]byte, bool) {
	payload, err := s.redisClient.Get(ctx, RedisStatsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read stats cache: %+v", err)
		}
		return nil, false
	}
	return payload, true
}

// StoreStats caches a freshly computed dashboard snapshot.
func (s *BedSyncService) StoreStats(ctx context.Context, payload []byte) {
	if err := s.redisClient.Set(ctx, RedisStatsKey, payload, StatsCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to store stats cache: %+v", err)
	}
}

// InvalidateStats drops the cached snapshot after any mutation that
// changes what the dashboard reports.
func (s *BedSyncService) InvalidateStats(ctx context.Context) {
	if err := s.redisClient.Del(ctx, RedisStatsKey).Err(); err != nil {
		s.log.Warnf("Failed to invalidate stats cache: %+v", err)
	}
}
