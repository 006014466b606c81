package app

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/entity"
)

const defaultReportTTL = 5 * time.Minute

// ReportService 战报查询，已结算的战报不会再变，放进缓存。
type ReportService struct {
	repo  port.ReportRepository
	cache *ristretto.Cache[string, entity.Report]
	ttl   time.Duration
}

func NewReportService(repo port.ReportRepository, ttl time.Duration) (*ReportService, error) {
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, entity.Report]{
		NumCounters: 10000,
		MaxCost:     1000, // 每条战报 cost 为 1
		BufferItems: 64,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &ReportService{repo: repo, cache: cache, ttl: ttl}, nil
}

func (s *ReportService) Get(ctx context.Context, sessionID string) (entity.Report, error) {
	if r, ok := s.cache.Get(sessionID); ok {
		return r, nil
	}
	r, err := s.repo.Find(ctx, sessionID)
	if err != nil {
		return entity.Report{}, err
	}
	if r.Finished() {
		s.cache.SetWithTTL(sessionID, r, 1, s.ttl)
		s.cache.Wait()
	}
	return r, nil
}

// List 最近的战报，不走缓存。
func (s *ReportService) List(ctx context.Context, limit int) ([]entity.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.Latest(ctx, limit)
}

func (s *ReportService) Close() {
	s.cache.Close()
}
