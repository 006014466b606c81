package dc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/infra/persistence/memory"
)

type flakyRepo struct {
	*memory.ReportRepository
	mu    sync.Mutex
	fails int
	saves int
}

func (f *flakyRepo) Save(ctx context.Context, s *entity.ReportPersistSnapshot) error {
	f.mu.Lock()
	f.saves++
	if f.fails > 0 {
		f.fails--
		f.mu.Unlock()
		return errors.New("db down")
	}
	f.mu.Unlock()
	return f.ReportRepository.Save(ctx, s)
}

func TestReportDC_关闭时写入最后状态(t *testing.T) {
	repo := memory.NewReportRepository()
	rec := entity.NewSessionRecord("s-1", time.Now())
	d := NewReportDC(repo, rec, time.Second, nil)

	rec.Update(entity.Report{Result: entity.ResultRunning, Wave: 1})
	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	rec.Update(entity.Report{Result: entity.ResultLost, Wave: 3, Message: "Village health depleted!"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, err := repo.Find(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Result != entity.ResultLost || got.Wave != 3 {
		t.Fatalf("应为最后状态, got=%+v", got)
	}
	if d.IsDirty() {
		t.Fatalf("落库后不应为脏")
	}
}

func TestReportDC_写失败后重试(t *testing.T) {
	repo := &flakyRepo{ReportRepository: memory.NewReportRepository(), fails: 1}
	rec := entity.NewSessionRecord("s-2", time.Now())
	d := NewReportDC(repo, rec, time.Second, nil)

	rec.Update(entity.Report{Result: entity.ResultRunning, Wave: 2})
	_ = d.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := repo.Find(context.Background(), "s-2"); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if _, err := repo.Find(context.Background(), "s-2"); err != nil {
		t.Fatalf("重试后应写入: %v", err)
	}
	repo.mu.Lock()
	saves := repo.saves
	repo.mu.Unlock()
	if saves < 2 {
		t.Fatalf("应至少写两次, got=%d", saves)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Close(ctx)
}

func TestReportDC_不脏不投递(t *testing.T) {
	repo := memory.NewReportRepository()
	rec := entity.NewSessionRecord("s-3", time.Now())
	d := NewReportDC(repo, rec, 0, nil)
	if d.FlushEvery() != defaultFlushEvery {
		t.Fatalf("默认间隔错误")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = d.Close(ctx)
	if _, err := repo.Find(context.Background(), "s-3"); err == nil {
		t.Fatalf("未修改的记录不应落库")
	}
}
