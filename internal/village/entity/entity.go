package entity

import (
	"sync/atomic"

	"VillageDefense/internal/shared/utils"
	"VillageDefense/internal/village/render"
)

type ID int64

// Kind 实体类别标签。
type Kind string

const (
	KindPlayer   Kind = "player"
	KindEnemy    Kind = "enemy"
	KindGuard    Kind = "guard"
	KindBuilding Kind = "building"
)

// PlayerID 玩家 id 固定，其余实体由 NextID 分配。
const PlayerID ID = 1

type Entity interface {
	ID() ID
	Kind() Kind
	Bounds() Rect
}

// Updater 需要逐帧推进的实体实现。
type Updater interface {
	Update(delta float64)
}

// Renderer 需要自绘的实体实现。
type Renderer interface {
	Render(c render.Canvas)
}

var fallbackSeq atomic.Int64

// NextID 雪花 id；生成器不可用（节点号配置错误）时退化为进程内自增。
func NextID() ID {
	if id, err := utils.NextSnowflakeID(); err == nil {
		return ID(id)
	}
	return ID(fallbackSeq.Add(1) + int64(PlayerID))
}

type body struct {
	id   ID
	kind Kind
	rect Rect
}

func (b *body) ID() ID {
	return b.id
}

func (b *body) Kind() Kind {
	return b.kind
}

func (b *body) Bounds() Rect {
	return b.rect
}

func (b *body) Center() Vec2 {
	return b.rect.Center()
}

func (b *body) moveCenterTo(c Vec2) {
	b.rect.X = c.X() - b.rect.W/2
	b.rect.Y = c.Y() - b.rect.H/2
}
