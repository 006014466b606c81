package handler

import (
	"context"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/shared/security"
	"VillageDefense/internal/shared/session"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/actors"
	"VillageDefense/internal/village/app"
)

// Village HTTP/WS/gRPC 共用的入口，持有 actor runtime、战报服务和 ws 会话绑定。
type Village struct {
	Runtime  *actor.Runtime
	Sessions session.Manager
	reports  *app.ReportService
}

func NewVillage(rt *actor.Runtime, reports *app.ReportService, s session.Manager) *Village {
	return &Village{Runtime: rt, Sessions: s, reports: reports}
}

type CreateResp struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// Create 新建对局并签发会话 token。
func (v *Village) Create(ctx context.Context) (CreateResp, error) {
	sid, err := v.Runtime.CreateSession(ctx)
	if err != nil {
		return CreateResp{}, err
	}
	token, err := security.Award(sid)
	if err != nil {
		_ = v.Runtime.Close(ctx, sid)
		return CreateResp{}, err
	}
	transport.SetSessionID(ctx, sid)
	return CreateResp{SessionID: sid, Token: token}, nil
}

// Close 关掉对局，同时解绑推送连接。
func (v *Village) Close(ctx context.Context, sessionID string) error {
	if err := v.Runtime.Close(ctx, sessionID); err != nil {
		return err
	}
	if v.Sessions != nil {
		v.Sessions.UnbindSession(sessionID)
	}
	return nil
}

// Report 会话还活着取实时战报，否则查库。
func (v *Village) Report(ctx context.Context, sessionID string) (messages.GameReport, error) {
	r, err := v.Runtime.Report(ctx, sessionID)
	if err == nil {
		return r, nil
	}
	if actor.CodeFromError(err) != transport.SessionNotFound || v.reports == nil {
		return messages.GameReport{}, err
	}
	stored, err := v.reports.Get(ctx, sessionID)
	if err != nil {
		return messages.GameReport{}, err
	}
	return actors.ToGameReport(stored), nil
}

func (v *Village) ListReports(ctx context.Context, limit int) ([]messages.GameReport, error) {
	if v.reports == nil {
		return []messages.GameReport{}, nil
	}
	list, err := v.reports.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]messages.GameReport, 0, len(list))
	for _, r := range list {
		out = append(out, actors.ToGameReport(r))
	}
	return out, nil
}
