package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/infra/persistence/model"
)

type ReportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Migrate 建表，启动时调用一次。
func (r *ReportRepo) Migrate() error {
	return r.db.AutoMigrate(&model.GameReport{})
}

const OpSaveReport = "repo.report.Save"

// version 必须放最后：MySQL 按顺序赋值，先改 version 会让后面的比较失效
var reportColumns = []string{
	"result", "message", "wave", "kills", "coins_earned", "coins",
	"buildings_built", "buildings_lost", "guards_lost", "sim_seconds", "finished_at",
	"version",
}

func newerOnly(cols []string) clause.Set {
	set := make(clause.Set, 0, len(cols))
	for _, c := range cols {
		set = append(set, clause.Assignment{
			Column: clause.Column{Name: c},
			Value:  gorm.Expr(fmt.Sprintf("IF(VALUES(version) > version, VALUES(%s), %s)", c, c)),
		})
	}
	return set
}

// Save 按主键 upsert，只有更高 version 的快照才会覆盖。
func (r *ReportRepo) Save(ctx context.Context, s *entity.ReportPersistSnapshot) error {
	if s == nil {
		return nil
	}
	m := model.ReportToModel(s)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: newerOnly(reportColumns),
	}).Create(m).Error
	if err != nil {
		return fmt.Errorf("%s session_id=%s: %w", OpSaveReport, s.Report.SessionID, err)
	}
	return nil
}

const OpFindReport = "repo.report.Find"

func (r *ReportRepo) Find(ctx context.Context, sessionID string) (entity.Report, error) {
	var m model.GameReport
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error
	switch {
	case err == nil:
		return model.ModelToReport(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entity.Report{}, port.ErrReportNotFound.WithData("session_id", sessionID)
	default:
		return entity.Report{}, fmt.Errorf("%s session_id=%s: %w", OpFindReport, sessionID, err)
	}
}

func (r *ReportRepo) Latest(ctx context.Context, limit int) ([]entity.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []model.GameReport
	if err := r.db.WithContext(ctx).Order("started_at desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repo.report.Latest: %w", err)
	}
	out := make([]entity.Report, 0, len(rows))
	for i := range rows {
		out = append(out, model.ModelToReport(&rows[i]))
	}
	return out, nil
}
