package model

import (
	"time"

	"VillageDefense/internal/village/entity"
)

// GameReport mysql 表模型
type GameReport struct {
	SessionID      string     `gorm:"column:session_id;type:varchar(64);comment:会话id;primaryKey;not null;" json:"session_id"`
	Version        uint64     `gorm:"column:version;type:bigint UNSIGNED;comment:快照版本;not null;default:0;" json:"version"`
	Result         string     `gorm:"column:result;type:varchar(16);comment:running/lost/stopped;not null;" json:"result"`
	Message        string     `gorm:"column:message;type:varchar(200);comment:结束文案;" json:"message"`
	Wave           int        `gorm:"column:wave;type:int UNSIGNED;comment:波次;not null;default:0;" json:"wave"`
	Kills          int        `gorm:"column:kills;type:int UNSIGNED;comment:击杀数;not null;default:0;" json:"kills"`
	CoinsEarned    int        `gorm:"column:coins_earned;type:int UNSIGNED;comment:累计获得金币;not null;default:0;" json:"coins_earned"`
	Coins          int        `gorm:"column:coins;type:int UNSIGNED;comment:剩余金币;not null;default:0;" json:"coins"`
	BuildingsBuilt int        `gorm:"column:buildings_built;type:int UNSIGNED;comment:建造数;not null;default:0;" json:"buildings_built"`
	BuildingsLost  int        `gorm:"column:buildings_lost;type:int UNSIGNED;comment:损失建筑;not null;default:0;" json:"buildings_lost"`
	GuardsLost     int        `gorm:"column:guards_lost;type:int UNSIGNED;comment:损失守卫;not null;default:0;" json:"guards_lost"`
	SimSeconds     float64    `gorm:"column:sim_seconds;type:double;comment:模拟时长(秒);not null;default:0;" json:"sim_seconds"`
	StartedAt      time.Time  `gorm:"column:started_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;index:idx_started_at;" json:"started_at"`
	FinishedAt     *time.Time `gorm:"column:finished_at;type:timestamp;comment:结算时间;default:NULL;" json:"finished_at"`
}

func (m *GameReport) TableName() string {
	return "village_report"
}

// ReportDoc mongodb 文档
type ReportDoc struct {
	SessionID      string    `bson:"_id"`
	Version        uint64    `bson:"version"`
	Result         string    `bson:"result"`
	Message        string    `bson:"message"`
	Wave           int       `bson:"wave"`
	Kills          int       `bson:"kills"`
	CoinsEarned    int       `bson:"coins_earned"`
	Coins          int       `bson:"coins"`
	BuildingsBuilt int       `bson:"buildings_built"`
	BuildingsLost  int       `bson:"buildings_lost"`
	GuardsLost     int       `bson:"guards_lost"`
	SimSeconds     float64   `bson:"sim_seconds"`
	StartedAt      time.Time `bson:"started_at"`
	FinishedAt     time.Time `bson:"finished_at,omitempty"`
}

func ReportToModel(s *entity.ReportPersistSnapshot) *GameReport {
	r := s.Report
	m := &GameReport{
		SessionID:      r.SessionID,
		Version:        s.Version,
		Result:         r.Result,
		Message:        r.Message,
		Wave:           r.Wave,
		Kills:          r.Kills,
		CoinsEarned:    r.CoinsEarned,
		Coins:          r.Coins,
		BuildingsBuilt: r.BuildingsBuilt,
		BuildingsLost:  r.BuildingsLost,
		GuardsLost:     r.GuardsLost,
		SimSeconds:     r.SimSeconds,
		StartedAt:      r.StartedAt,
	}
	if !r.FinishedAt.IsZero() {
		t := r.FinishedAt
		m.FinishedAt = &t
	}
	return m
}

func ModelToReport(m *GameReport) entity.Report {
	r := entity.Report{
		SessionID:      m.SessionID,
		Result:         m.Result,
		Message:        m.Message,
		Wave:           m.Wave,
		Kills:          m.Kills,
		CoinsEarned:    m.CoinsEarned,
		Coins:          m.Coins,
		BuildingsBuilt: m.BuildingsBuilt,
		BuildingsLost:  m.BuildingsLost,
		GuardsLost:     m.GuardsLost,
		SimSeconds:     m.SimSeconds,
		StartedAt:      m.StartedAt,
	}
	if m.FinishedAt != nil {
		r.FinishedAt = *m.FinishedAt
	}
	return r
}

func ReportToDoc(s *entity.ReportPersistSnapshot) ReportDoc {
	r := s.Report
	return ReportDoc{
		SessionID:      r.SessionID,
		Version:        s.Version,
		Result:         r.Result,
		Message:        r.Message,
		Wave:           r.Wave,
		Kills:          r.Kills,
		CoinsEarned:    r.CoinsEarned,
		Coins:          r.Coins,
		BuildingsBuilt: r.BuildingsBuilt,
		BuildingsLost:  r.BuildingsLost,
		GuardsLost:     r.GuardsLost,
		SimSeconds:     r.SimSeconds,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
	}
}

func DocToReport(d ReportDoc) entity.Report {
	return entity.Report{
		SessionID:      d.SessionID,
		Result:         d.Result,
		Message:        d.Message,
		Wave:           d.Wave,
		Kills:          d.Kills,
		CoinsEarned:    d.CoinsEarned,
		Coins:          d.Coins,
		BuildingsBuilt: d.BuildingsBuilt,
		BuildingsLost:  d.BuildingsLost,
		GuardsLost:     d.GuardsLost,
		SimSeconds:     d.SimSeconds,
		StartedAt:      d.StartedAt,
		FinishedAt:     d.FinishedAt,
	}
}
