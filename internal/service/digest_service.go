package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mailintel/internal/digest"
	"mailintel/internal/model"
	"mailintel/internal/repository"
)

type DigestService struct {
	analysisRepo *repository.AnalysisRepository
	aggregator   *digest.Aggregator
	rdb          *redis.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewDigestService(
	analysisRepo *repository.AnalysisRepository,
	aggregator *digest.Aggregator,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DigestService {
	return &DigestService{
		analysisRepo: analysisRepo,
		aggregator:   aggregator,
		rdb:          rdb,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// BuildDigest returns the morning digest for the trailing window of the
// given length, serving a cached copy when one is fresh enough. Redis
// being down degrades to building from the database every time.
func (s *DigestService) BuildDigest(ctx context.Context, userID, hours int) (*model.MorningDigest, error) {
	key := fmt.Sprintf("digest:%d:%dh", userID, hours)

	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var d model.MorningDigest
		if err := json.Unmarshal(cached, &d); err == nil {
			s.logger.Debug("Digest served from cache", zap.Int("user_id", userID))
			return &d, nil
		}
		// 缓存内容损坏：删掉重建
		s.rdb.Del(ctx, key)
	}

	to := time.Now()
	from := to.Add(-time.Duration(hours) * time.Hour)

	batch, err := s.analysisRepo.ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	d := s.aggregator.Build(ctx, batch, from, to)

	if raw, err := json.Marshal(d); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache digest", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	return &d, nil
}

// InvalidateDigest drops cached digests for a user, e.g. after the user
// changed preferences.
func (s *DigestService) InvalidateDigest(ctx context.Context, userID int) {
	iter := s.rdb.Scan(ctx, 0, fmt.Sprintf("digest:%d:*", userID), 0).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("Failed to scan digest cache keys", zap.Int("user_id", userID), zap.Error(err))
	}
}
