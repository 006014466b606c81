package session

import (
	"sync"
	"testing"
	"time"

	"VillageDefense/internal/shared/transport/ws"
)

type stubConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newStubConn() *stubConn {
	return &stubConn{props: map[string]any{}, done: make(chan struct{})}
}

func (c *stubConn) SetProperty(k string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[k] = v
}
func (c *stubConn) GetProperty(k string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[k]
}
func (c *stubConn) RemoveProperty(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.props, k)
}
func (c *stubConn) Addr() string { return "stub" }
func (c *stubConn) Push(name string, _ any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
	return true
}
func (c *stubConn) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *stubConn) Done() <-chan struct{} { return c.done }

var _ ws.WSConn = (*stubConn)(nil)

func TestSessMgr_绑定与顶替(t *testing.T) {
	m := NewSessMgr()
	c1, c2 := newStubConn(), newStubConn()
	m.Bind("s-1", c1)
	if got, ok := m.GetConn("s-1"); !ok || got != c1 {
		t.Fatalf("期望绑定 c1")
	}
	if c1.GetProperty(ws.ConnKeySession) != "s-1" {
		t.Fatalf("期望连接属性记录会话 id")
	}

	m.Bind("s-1", c2)
	if got, _ := m.GetConn("s-1"); got != c2 {
		t.Fatalf("期望新连接顶替旧连接")
	}
	if _, ok := m.GetSession(c1); ok {
		t.Fatalf("旧连接应被解绑")
	}
	if len(c1.pushed) != 1 || c1.pushed[0] != "game.replaced" {
		t.Fatalf("旧连接应收到 game.replaced, got=%v", c1.pushed)
	}
}

func TestSessMgr_连接关闭后自动解绑(t *testing.T) {
	m := NewSessMgr()
	c := newStubConn()
	m.Bind("s-2", c)
	c.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := m.GetConn("s-2"); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("连接关闭后应自动解绑")
}
