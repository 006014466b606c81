package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"VillageDefense/internal/shared/session"
	"VillageDefense/internal/shared/transport"
	transportgrpc "VillageDefense/internal/shared/transport/grpc"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/actors"
	"VillageDefense/internal/village/app"
	"VillageDefense/internal/village/gameconfig"
	"VillageDefense/internal/village/infra/persistence/memory"
	"VillageDefense/internal/village/interfaces/handler"
	"VillageDefense/modules/kit/logx"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	repo := memory.NewReportRepository()
	rt := actor.NewRuntime(actors.Options{Catalog: gameconfig.MustDefault(), Repo: repo}, time.Second)
	t.Cleanup(rt.Shutdown)
	reports, err := app.NewReportService(repo, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(reports.Close)

	lis := bufconn.Listen(1 << 20)
	srv := transportgrpc.NewServer(logx.Nop())
	RegisterGameServiceServer(srv, NewServer(handler.NewVillage(rt, reports, session.NewSessMgr())))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGrpc_对局指令(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := c.Create(ctx)
	if err != nil || !created.OK() {
		t.Fatalf("create: %+v err=%v", created, err)
	}
	sid, _ := created.DataMap()["session_id"].(string)
	token, _ := created.DataMap()["token"].(string)
	if sid == "" || token == "" {
		t.Fatalf("create 应返回会话和 token: %+v", created.Data)
	}

	r, err := c.Command(ctx, token, sid, ActionStart, nil)
	if err != nil || !r.OK() || r.DataMap()["state"] != "running" {
		t.Fatalf("start: %+v err=%v", r, err)
	}

	r, err = c.Command(ctx, token, sid, ActionBuild, map[string]any{"x": 100, "y": 100, "template": 1})
	if err != nil || !r.OK() || r.DataMap()["coins"] != float64(25) {
		t.Fatalf("build: %+v err=%v", r, err)
	}

	r, _ = c.Command(ctx, token, sid, ActionBuild, map[string]any{"x": 100, "y": 100})
	if r.Code != transport.PlacementOccupied {
		t.Fatalf("重叠建造应拒绝: %+v", r)
	}

	r, _ = c.State(ctx, token, sid, 1)
	if !r.OK() || r.DataMap()["running"] != true {
		t.Fatalf("state: %+v", r)
	}

	r, _ = c.Command(ctx, token, sid, "jump", nil)
	if r.Code != transport.InvalidParam {
		t.Fatalf("未知指令应参数错误: %+v", r)
	}

	r, _ = c.Report(ctx, sid)
	if !r.OK() || r.DataMap()["result"] != "running" {
		t.Fatalf("report: %+v", r)
	}
}

func TestGrpc_token校验(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, _ := c.Create(ctx)
	sid, _ := created.DataMap()["session_id"].(string)

	r, err := c.Command(ctx, "", sid, ActionStart, nil)
	if err != nil || r.Code != transport.TokenInvalid {
		t.Fatalf("缺 token 应拒绝: %+v err=%v", r, err)
	}
	r, _ = c.State(ctx, "bad", sid, 0)
	if r.Code != transport.TokenInvalid {
		t.Fatalf("错误 token 应拒绝: %+v", r)
	}
	r, _ = c.Report(ctx, "missing")
	if r.Code != transport.ReportNotFound {
		t.Fatalf("应返回战报不存在: %+v", r)
	}
}
