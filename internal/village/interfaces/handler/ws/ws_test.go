package ws

import (
	"sync"
	"testing"
	"time"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/shared/session"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/shared/transport/ws"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/actors"
	"VillageDefense/internal/village/gameconfig"
	"VillageDefense/internal/village/interfaces/handler"
)

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{props: map[string]any{}, done: make(chan struct{})}
}

func (f *fakeConn) SetProperty(k string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[k] = v
}

func (f *fakeConn) GetProperty(k string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[k]
}

func (f *fakeConn) RemoveProperty(k string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.props, k)
}

func (f *fakeConn) Addr() string { return "fake" }

func (f *fakeConn) Push(name string, _ any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, name)
	return true
}

func (f *fakeConn) Close()                { close(f.done) }
func (f *fakeConn) Done() <-chan struct{} { return f.done }

func (f *fakeConn) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.pushed {
		if p == name {
			n++
		}
	}
	return n
}

func newRouter(t *testing.T) *ws.Router {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	sessions := session.NewSessMgr()
	rt := actor.NewRuntime(actors.Options{
		Catalog: gameconfig.MustDefault(),
		Sink:    NewNotifier(sessions),
	}, time.Second)
	t.Cleanup(rt.Shutdown)

	r := ws.NewRouter(nil)
	NewWsHandler(handler.NewVillage(rt, nil, sessions)).RegisterRoutes(r)
	return r
}

func call(r *ws.Router, conn ws.WSConn, name string, msg any) *ws.RespBody {
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Name: name}}
	r.Dispatch(&ws.WsMsgReq{Body: &ws.ReqBody{Name: name, Msg: msg}, Conn: conn}, resp)
	return resp.Body
}

func TestWs_建局绑定并推送通知(t *testing.T) {
	r := newRouter(t)
	conn := newFakeConn()

	body := call(r, conn, "game.create", nil)
	if body.Code != int(transport.OK) {
		t.Fatalf("create: %+v", body)
	}
	created, ok := body.Msg.(handler.CreateResp)
	if !ok || created.SessionID == "" {
		t.Fatalf("create 返回值错误: %+v", body.Msg)
	}
	if conn.GetProperty(ws.ConnKeySession) != created.SessionID {
		t.Fatalf("连接应绑定到新会话")
	}

	if body = call(r, conn, "game.start", nil); body.Code != int(transport.OK) {
		t.Fatalf("start: %+v", body)
	}
	if conn.count(NotifyRoute) == 0 {
		t.Fatalf("开局通知应推到连接")
	}

	body = call(r, conn, "game.build", map[string]any{"x": 100, "y": 100, "template": 1})
	st, ok := body.Msg.(messages.GameState)
	if body.Code != int(transport.OK) || !ok || st.Coins != 25 {
		t.Fatalf("build: %+v", body)
	}

	body = call(r, conn, "game.build", map[string]any{"x": 100, "y": 100})
	if body.Code != int(transport.PlacementOccupied) {
		t.Fatalf("重叠建造应拒绝: %+v", body)
	}

	body = call(r, conn, "game.state", map[string]any{"notices": 2})
	if st, ok = body.Msg.(messages.GameState); !ok || len(st.Notices) != 2 {
		t.Fatalf("state 应带 2 条通知: %+v", body)
	}

	body = call(r, conn, "game.notifications", nil)
	if notes, ok := body.Msg.([]messages.Notice); !ok || len(notes) == 0 {
		t.Fatalf("notifications: %+v", body)
	}

	if body = call(r, conn, "game.close", nil); body.Code != int(transport.OK) {
		t.Fatalf("close: %+v", body)
	}
	if body = call(r, conn, "game.state", nil); body.Code != int(transport.SessionNotFound) {
		t.Fatalf("关闭后连接应解绑: %+v", body)
	}
}

func TestWs_未绑定连接(t *testing.T) {
	r := newRouter(t)
	body := call(r, newFakeConn(), "game.start", nil)
	if body.Code != int(transport.SessionNotFound) {
		t.Fatalf("未绑定应拒绝: %+v", body)
	}
	body = call(r, newFakeConn(), "game.input", map[string]any{"key": "q"})
	if body.Code != int(transport.SessionNotFound) {
		t.Fatalf("未绑定应先于参数校验拒绝: %+v", body)
	}
}

func TestWs_attach换连接(t *testing.T) {
	r := newRouter(t)
	first := newFakeConn()
	created := call(r, first, "game.create", nil).Msg.(handler.CreateResp)

	second := newFakeConn()
	body := call(r, second, "game.attach", map[string]any{"session_id": created.SessionID, "token": "bad"})
	if body.Code != int(transport.TokenInvalid) {
		t.Fatalf("错误 token 应拒绝: %+v", body)
	}

	body = call(r, second, "game.attach", map[string]any{"session_id": created.SessionID, "token": created.Token})
	if body.Code != int(transport.OK) {
		t.Fatalf("attach: %+v", body)
	}
	if first.count("game.replaced") != 1 {
		t.Fatalf("旧连接应收到顶替通知")
	}
	if body = call(r, first, "game.state", nil); body.Code != int(transport.SessionNotFound) {
		t.Fatalf("旧连接应失去绑定: %+v", body)
	}
	if body = call(r, second, "game.input", map[string]any{"type": "keydown", "key": "q"}); body.Code != int(transport.GameNotRunning) {
		t.Fatalf("未开局输入应拒绝: %+v", body)
	}
}

func TestNotifier_未绑定时丢弃(t *testing.T) {
	sessions := session.NewSessMgr()
	n := NewNotifier(sessions)
	n.Notify("missing", messages.Notice{Message: "x"})

	conn := newFakeConn()
	sessions.Bind("s1", conn)
	n.Notify("s1", messages.Notice{Message: "hello"})
	if conn.count(NotifyRoute) != 1 {
		t.Fatalf("绑定后应推送")
	}
}
