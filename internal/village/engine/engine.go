package engine

import (
	"go.uber.org/zap"

	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/render"
	"VillageDefense/modules/kit/logx"
)

// ResourceEvent 资源建筑产出一次。
type ResourceEvent struct {
	BuildingID entity.ID
	Category   entity.Category
}

type Config struct {
	Width        float64
	Height       float64
	CycleSeconds float64
}

// Engine 持有实体注册表、建筑列表和昼夜时钟，驱动逐帧的 update/render。
// 不做并发保护，调用方（GameActor）保证单线程访问。
type Engine struct {
	width, height float64
	clock         *entity.Clock

	entities  map[entity.ID]entity.Entity
	order     []entity.ID
	buildings []*entity.Building

	canvas  render.Canvas
	running bool
	frames  uint64

	onResource []func(ResourceEvent)
	log        logx.Logger
}

func New(cfg Config, canvas render.Canvas, log logx.Logger) *Engine {
	if log == nil {
		log = logx.Nop()
	}
	if canvas == nil {
		canvas = render.NewDrawList()
	}
	return &Engine{
		width:    cfg.Width,
		height:   cfg.Height,
		clock:    entity.NewClock(cfg.CycleSeconds),
		entities: make(map[entity.ID]entity.Entity),
		canvas:   canvas,
		log:      log,
	}
}

func (e *Engine) Width() float64 {
	return e.width
}

func (e *Engine) Height() float64 {
	return e.height
}

func (e *Engine) Clock() *entity.Clock {
	return e.clock
}

func (e *Engine) Frames() uint64 {
	return e.frames
}

// Add id 冲突时覆盖，保留原来的迭代位置。
func (e *Engine) Add(ent entity.Entity) {
	if ent == nil {
		return
	}
	id := ent.ID()
	if _, ok := e.entities[id]; !ok {
		e.order = append(e.order, id)
	}
	e.entities[id] = ent
}

// Remove 不存在时什么都不做。
func (e *Engine) Remove(id entity.ID) {
	if _, ok := e.entities[id]; !ok {
		return
	}
	delete(e.entities, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Engine) Get(id entity.ID) (entity.Entity, bool) {
	ent, ok := e.entities[id]
	return ent, ok
}

func (e *Engine) EntityCount() int {
	return len(e.entities)
}

func (e *Engine) AddBuilding(b *entity.Building) {
	if b != nil {
		e.buildings = append(e.buildings, b)
	}
}

// RemoveBuilding 返回是否真的移除了。
func (e *Engine) RemoveBuilding(id entity.ID) bool {
	for i, b := range e.buildings {
		if b.ID() == id {
			e.buildings = append(e.buildings[:i], e.buildings[i+1:]...)
			return true
		}
	}
	return false
}

// Buildings 返回列表拷贝，增删要走 AddBuilding/RemoveBuilding。
func (e *Engine) Buildings() []*entity.Building {
	out := make([]*entity.Building, len(e.buildings))
	copy(out, e.buildings)
	return out
}

func (e *Engine) BuildingCount() int {
	return len(e.buildings)
}

// Overlapping 与 r 严格相交的第一个建筑。
func (e *Engine) Overlapping(r entity.Rect) (*entity.Building, bool) {
	for _, b := range e.buildings {
		if entity.Overlaps(r, b.Bounds()) {
			return b, true
		}
	}
	return nil, false
}

// OnResourceGenerated 注册资源产出回调，在帧循环里同步调用。
func (e *Engine) OnResourceGenerated(fn func(ResourceEvent)) {
	if fn != nil {
		e.onResource = append(e.onResource, fn)
	}
}

func (e *Engine) Start() {
	if !e.running {
		e.running = true
		e.log.Info("engine start", zap.Float64("cycle_seconds", e.clock.Duration()))
	}
}

// Stop 只停帧循环，下一帧开始前生效。
func (e *Engine) Stop() {
	if e.running {
		e.running = false
		e.log.Info("engine stop", zap.Uint64("frames", e.frames))
	}
}

func (e *Engine) Running() bool {
	return e.running
}

// Frame 一帧：推进时钟、更新实体、资源结算、渲染。未运行时返回 false。
func (e *Engine) Frame(delta float64) bool {
	if !e.running {
		return false
	}
	e.clock.Advance(delta)
	e.update(delta)
	e.resourcePass(delta)
	e.Render()
	e.frames++
	return true
}

func (e *Engine) update(delta float64) {
	// 回调里可能增删实体，先拷一份顺序
	ids := append([]entity.ID(nil), e.order...)
	for _, id := range ids {
		ent, ok := e.entities[id]
		if !ok {
			continue
		}
		if u, ok := ent.(entity.Updater); ok {
			u.Update(delta)
		}
	}
}

func (e *Engine) resourcePass(delta float64) {
	for _, b := range e.Buildings() {
		if !b.AdvanceResource(delta) {
			continue
		}
		ev := ResourceEvent{BuildingID: b.ID(), Category: b.Category()}
		for _, fn := range e.onResource {
			fn(ev)
		}
	}
}
