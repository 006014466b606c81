package session

import (
	"sync"

	"VillageDefense/internal/shared/transport/ws"
)

// Manager 对局会话与 ws 连接的绑定关系，一个会话同一时刻只有一条推送连接。
type Manager interface {
	Bind(sessionID string, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindSession(sessionID string)
	GetConn(sessionID string) (ws.WSConn, bool)
	GetSession(conn ws.WSConn) (string, bool)
}

type SessMgr struct {
	sync.RWMutex
	sid2conn map[string]ws.WSConn
	conn2sid map[ws.WSConn]string
	watched  map[ws.WSConn]struct{}
}

func NewSessMgr() *SessMgr {
	return &SessMgr{
		sid2conn: make(map[string]ws.WSConn),
		conn2sid: make(map[ws.WSConn]string),
		watched:  make(map[ws.WSConn]struct{}),
	}
}

func (s *SessMgr) Bind(sessionID string, conn ws.WSConn) {
	if conn == nil || sessionID == "" {
		return
	}
	s.Lock()
	defer s.Unlock()

	// 每条连接只起一次 watcher，关闭后自动解绑
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}
	// 同一连接换绑其他会话时，先清掉旧会话的映射
	if prev, ok := s.conn2sid[conn]; ok && prev != sessionID && s.sid2conn[prev] == conn {
		delete(s.sid2conn, prev)
	}
	// 旧连接被顶掉
	if old := s.sid2conn[sessionID]; old != nil && old != conn {
		old.Push("game.replaced", nil)
		delete(s.conn2sid, old)
	}
	s.sid2conn[sessionID] = conn
	s.conn2sid[conn] = sessionID
	conn.SetProperty(ws.ConnKeySession, sessionID)
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.UnbindConn(conn)
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	sid, ok := s.conn2sid[conn]
	delete(s.watched, conn)
	delete(s.conn2sid, conn)
	if ok && s.sid2conn[sid] == conn {
		delete(s.sid2conn, sid)
	}
}

func (s *SessMgr) UnbindSession(sessionID string) {
	s.Lock()
	defer s.Unlock()
	if conn, ok := s.sid2conn[sessionID]; ok {
		delete(s.conn2sid, conn)
	}
	delete(s.sid2conn, sessionID)
}

func (s *SessMgr) GetConn(sessionID string) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.sid2conn[sessionID]
	return conn, ok
}

func (s *SessMgr) GetSession(conn ws.WSConn) (string, bool) {
	s.RLock()
	defer s.RUnlock()
	sid, ok := s.conn2sid[conn]
	return sid, ok
}
