package controller

// NoticeKind 通知类别，客户端按类别决定展示样式。
type NoticeKind string

const (
	NoticeInfo      NoticeKind = "info"
	NoticeWeapon    NoticeKind = "weapon"
	NoticeBuildMode NoticeKind = "build_mode"
	NoticeSelect    NoticeKind = "select"
	NoticeBuild     NoticeKind = "build"
	NoticeRejected  NoticeKind = "rejected"
	NoticeWave      NoticeKind = "wave"
	NoticeDestroyed NoticeKind = "destroyed"
	NoticeReward    NoticeKind = "reward"
	NoticeResource  NoticeKind = "resource"
	NoticeHeal      NoticeKind = "heal"
	NoticeGuard     NoticeKind = "guard"
	NoticeGameOver  NoticeKind = "game_over"
)

// Notification 一次性提示，发出即忘，不需要确认。
type Notification struct {
	Seq     uint64     `json:"seq"`
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	At      float64    `json:"at"` // 模拟时间（秒）
}

// notifier 定长环形缓冲，满了丢最旧的。
type notifier struct {
	buf       []Notification
	size      int
	seq       uint64
	listeners []func(Notification)
}

func newNotifier(size int) *notifier {
	if size <= 0 {
		size = 64
	}
	return &notifier{buf: make([]Notification, 0, size), size: size}
}

func (n *notifier) push(kind NoticeKind, msg string, at float64) Notification {
	n.seq++
	note := Notification{Seq: n.seq, Kind: kind, Message: msg, At: at}
	if len(n.buf) == n.size {
		copy(n.buf, n.buf[1:])
		n.buf = n.buf[:n.size-1]
	}
	n.buf = append(n.buf, note)
	for _, fn := range n.listeners {
		fn(note)
	}
	return note
}

// since 返回 seq 之后的通知，已被挤出缓冲的拿不到。
func (n *notifier) since(seq uint64) []Notification {
	out := make([]Notification, 0, len(n.buf))
	for _, note := range n.buf {
		if note.Seq > seq {
			out = append(out, note)
		}
	}
	return out
}

func (n *notifier) recent(limit int) []Notification {
	if limit <= 0 || limit > len(n.buf) {
		limit = len(n.buf)
	}
	out := make([]Notification, limit)
	copy(out, n.buf[len(n.buf)-limit:])
	return out
}

func (n *notifier) last() uint64 {
	return n.seq
}
