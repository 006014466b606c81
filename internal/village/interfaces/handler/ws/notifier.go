package ws

import (
	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/shared/session"
)

const NotifyRoute = "game.notify"

// Notifier 把对局通知推给会话绑定的 ws 连接，没绑定就丢弃。
type Notifier struct {
	sessions session.Manager
}

func NewNotifier(s session.Manager) *Notifier {
	return &Notifier{sessions: s}
}

func (n *Notifier) Notify(sessionID string, notice messages.Notice) {
	if n == nil || n.sessions == nil {
		return
	}
	conn, ok := n.sessions.GetConn(sessionID)
	if !ok {
		return
	}
	conn.Push(NotifyRoute, notice)
}
