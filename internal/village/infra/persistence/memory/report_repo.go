package memory

import (
	"context"
	"sort"
	"sync"

	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/entity"
)

type stored struct {
	version uint64
	report  entity.Report
}

// ReportRepository 进程内战报存储，单机和测试使用。
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]stored
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[string]stored)}
}

// Save 旧版本快照直接丢弃。
func (r *ReportRepository) Save(ctx context.Context, s *entity.ReportPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sid := s.Report.SessionID
	if cur, ok := r.reports[sid]; ok && cur.version >= s.Version {
		return nil
	}
	r.reports[sid] = stored{version: s.Version, report: s.Report}
	return nil
}

func (r *ReportRepository) Find(ctx context.Context, sessionID string) (entity.Report, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.reports[sessionID]
	if !ok {
		return entity.Report{}, port.ErrReportNotFound.WithData("session_id", sessionID)
	}
	return s.report, nil
}

// Latest 按开始时间倒序。
func (r *ReportRepository) Latest(ctx context.Context, limit int) ([]entity.Report, error) {
	_ = ctx
	r.mu.RLock()
	out := make([]entity.Report, 0, len(r.reports))
	for _, s := range r.reports {
		out = append(out, s.report)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].SessionID < out[j].SessionID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
