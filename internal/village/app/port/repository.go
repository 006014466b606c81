package port

import (
	"context"

	"VillageDefense/internal/village/entity"
	"VillageDefense/modules/kit/errx"
)

const CodeReportNotFound errx.Code = "VILLAGE_REPORT_NOT_FOUND"

var ErrReportNotFound = errx.NewBiz(CodeReportNotFound, "战报不存在")

// ReportRepository 对局战报存储。Save 由 dc 的写协程调用，同一会话按 version 递增。
type ReportRepository interface {
	Save(ctx context.Context, s *entity.ReportPersistSnapshot) error
	Find(ctx context.Context, sessionID string) (entity.Report, error)
	Latest(ctx context.Context, limit int) ([]entity.Report, error)
}
