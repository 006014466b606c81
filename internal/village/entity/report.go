package entity

import "time"

const (
	ResultRunning = "running"
	ResultLost    = "lost"
	ResultStopped = "stopped"
)

// Report 一局的结算数据。
type Report struct {
	SessionID      string
	Result         string
	Message        string
	Wave           int
	Kills          int
	CoinsEarned    int
	Coins          int
	BuildingsBuilt int
	BuildingsLost  int
	GuardsLost     int
	SimSeconds     float64
	StartedAt      time.Time
	FinishedAt     time.Time
}

func (r Report) Finished() bool {
	return r.Result != ResultRunning && r.Result != ""
}

// SessionRecord 持有 Report 与脏标记，供 dc 生成落库快照。
type SessionRecord struct {
	report Report
	dirty  bool
}

func NewSessionRecord(sessionID string, startedAt time.Time) *SessionRecord {
	return &SessionRecord{
		report: Report{SessionID: sessionID, Result: ResultRunning, StartedAt: startedAt},
	}
}

func (s *SessionRecord) Report() Report {
	return s.report
}

// Update 已结算的记录不再被覆盖。
func (s *SessionRecord) Update(r Report) {
	if s.report.Finished() {
		return
	}
	r.SessionID = s.report.SessionID
	r.StartedAt = s.report.StartedAt
	if r == s.report {
		return
	}
	s.report = r
	s.dirty = true
}

func (s *SessionRecord) Dirty() bool {
	return s.dirty
}

func (s *SessionRecord) ClearDirty() {
	s.dirty = false
}

type ReportPersistSnapshot struct {
	Version uint64
	Report  Report
}

func (s *SessionRecord) BuildPersistSnapshot(version uint64) (*ReportPersistSnapshot, bool) {
	if s == nil || !s.dirty {
		return nil, false
	}
	return &ReportPersistSnapshot{Version: version, Report: s.report}, true
}
