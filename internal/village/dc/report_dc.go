package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/entity"
	"VillageDefense/modules/kit/logx"
)

const defaultFlushEvery = 3000 * time.Millisecond

// ReportDC 战报的脏数据落库：actor 内生成带版本的快照，写协程只保留最新一份。
type ReportDC struct {
	repo       port.ReportRepository
	record     *entity.SessionRecord
	flushEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *entity.ReportPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewReportDC(repo port.ReportRepository, record *entity.SessionRecord, flushEvery time.Duration, log logx.Logger) *ReportDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.Nop()
	}
	d := &ReportDC{
		repo:       repo,
		record:     record,
		flushEvery: flushEvery,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *ReportDC) Record() *entity.SessionRecord {
	return d.record
}

func (d *ReportDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *ReportDC) IsDirty() bool {
	if d.record == nil {
		return false
	}
	return d.record.Dirty()
}

// Flush 只负责投递，真正写库在写协程。
func (d *ReportDC) Flush(ctx context.Context) error {
	_ = ctx
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errors.New("report repository is nil")
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

// Close 投递最后一份快照并等写协程退出。
func (d *ReportDC) Close(ctx context.Context) error {
	_ = d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ReportDC) buildNextSnapshot() (*entity.ReportPersistSnapshot, bool) {
	if d.record == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.record.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.record.ClearDirty()
	return s, true
}

func (d *ReportDC) enqueueLatest(s *entity.ReportPersistSnapshot) {
	if s == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *ReportDC) popPending() *entity.ReportPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 关闭后不再重排，避免写协程退不出去。
func (d *ReportDC) requeueOnError(s *entity.ReportPersistSnapshot) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()
	return true
}

func (d *ReportDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *ReportDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.repo.Save(context.TODO(), s); err != nil {
			d.log.Warn("report save failed",
				zap.String("session_id", s.Report.SessionID),
				zap.Uint64("version", s.Version),
				zap.Error(err),
			)
			// 写库失败重排当前快照；已有更新快照时会被更高 version 覆盖
			if !d.requeueOnError(s) {
				return
			}
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
