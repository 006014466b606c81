package messages

// GameMessage 发往对局 actor 的消息，由 manager 按会话 id 转发。
type GameMessage interface {
	SessionID() string
}

type GameBaseMessage struct {
	Session string
}

func (m GameBaseMessage) SessionID() string {
	return m.Session
}

// HG 开头：外部 -> GameActor；GH 开头：GameActor -> 外部。

type HGCreate struct {
	GameBaseMessage
}

type HGStart struct {
	GameBaseMessage
}

type HGStop struct {
	GameBaseMessage
}

type HGClose struct {
	GameBaseMessage
}

type HGInput struct {
	GameBaseMessage
	Type string
	Key  string
	X, Y float64
}

// HGPlace Template < 0 时沿用当前选中的模板。
type HGPlace struct {
	GameBaseMessage
	X, Y     float64
	Template int
}

type HGState struct {
	GameBaseMessage
	Notices int
}

type HGFrame struct {
	GameBaseMessage
}

type HGNotifications struct {
	GameBaseMessage
	After uint64
}

type HGReport struct {
	GameBaseMessage
}

type GHAck struct {
	State string
}

type GHState struct {
	State GameState
}

type GHFrame struct {
	Frame    uint64
	Commands []DrawCommand
}

type GHNotifications struct {
	Notices []Notice
}

type GHReport struct {
	Report GameReport
}
