package actors

import (
	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/modules/kit/logx"
)

// ManagerActor 会话 id -> GameActor，负责创建和转发。
type ManagerActor struct {
	opts  Options
	games map[string]*actor.PID
	log   logx.Logger
}

func NewManagerActor(opts Options) *ManagerActor {
	log := opts.Log
	if log == nil {
		log = logx.Nop()
	}
	return &ManagerActor{
		opts:  opts,
		games: make(map[string]*actor.PID),
		log:   log,
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		m.forget(msg.Who)
	case messages.HGCreate:
		pid := m.getOrSpawn(ctx, msg.SessionID())
		ctx.Forward(pid)
	case messages.HGClose:
		pid, ok := m.games[msg.SessionID()]
		if !ok {
			ctx.Respond(fail(ErrSessionNotFound.WithData("session_id", msg.SessionID())))
			return
		}
		delete(m.games, msg.SessionID())
		ctx.Forward(pid)
	case messages.GameMessage:
		pid, ok := m.games[msg.SessionID()]
		if !ok {
			ctx.Respond(fail(ErrSessionNotFound.WithData("session_id", msg.SessionID())))
			return
		}
		ctx.Forward(pid)
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, sessionID string) *actor.PID {
	if pid, ok := m.games[sessionID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewGameActor(sessionID, m.opts)
	})
	pid := ctx.Spawn(props)
	m.games[sessionID] = pid
	m.log.Info("game session spawned", zap.String("session_id", sessionID), zap.Int("sessions", len(m.games)))
	return pid
}

// forget 子 actor 异常退出时清理映射。
func (m *ManagerActor) forget(who *actor.PID) {
	if who == nil {
		return
	}
	for sid, pid := range m.games {
		if pid.Address == who.Address && pid.Id == who.Id {
			delete(m.games, sid)
			return
		}
	}
}
