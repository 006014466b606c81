package engine

import (
	"testing"

	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/render"
)

type stubEntity struct {
	id      entity.ID
	updates int
	label   string
}

func (s *stubEntity) ID() entity.ID       { return s.id }
func (s *stubEntity) Kind() entity.Kind   { return "stub" }
func (s *stubEntity) Bounds() entity.Rect { return entity.Rect{W: 1, H: 1} }
func (s *stubEntity) Update(float64)      { s.updates++ }
func (s *stubEntity) Render(c render.Canvas) {
	c.Text(0, 0, s.label, render.TextColor)
}

// passive 既不 update 也不 render。
type passive struct{ id entity.ID }

func (p passive) ID() entity.ID       { return p.id }
func (p passive) Kind() entity.Kind   { return "passive" }
func (p passive) Bounds() entity.Rect { return entity.Rect{} }

func newEngine() (*Engine, *render.DrawList) {
	canvas := render.NewDrawList()
	return New(Config{Width: 800, Height: 600, CycleSeconds: 10}, canvas, nil), canvas
}

func TestRegistry_覆盖与删除(t *testing.T) {
	e, _ := newEngine()
	a := &stubEntity{id: 1, label: "a"}
	b := &stubEntity{id: 1, label: "b"}
	e.Add(a)
	e.Add(b)
	if got, _ := e.Get(1); got != b || e.EntityCount() != 1 {
		t.Fatalf("同 id 后写覆盖")
	}
	e.Remove(1)
	e.Remove(1)
	e.Remove(42)
	if _, ok := e.Get(1); ok || e.EntityCount() != 0 {
		t.Fatalf("删除后应不存在，重复删除是 no-op")
	}
}

func TestFrame_只更新实现了Updater的实体(t *testing.T) {
	e, _ := newEngine()
	s := &stubEntity{id: 1, label: "s"}
	e.Add(s)
	e.Add(passive{id: 2})

	if e.Frame(0.016) {
		t.Fatalf("未 Start 时帧循环不执行")
	}
	e.Start()
	for i := 0; i < 3; i++ {
		e.Frame(0.016)
	}
	if s.updates != 3 || e.Frames() != 3 {
		t.Fatalf("updates=%d frames=%d", s.updates, e.Frames())
	}
	e.Stop()
	e.Frame(0.016)
	if s.updates != 3 {
		t.Fatalf("Stop 后不再推进")
	}
}

func TestRender_背景后实体后建筑(t *testing.T) {
	e, canvas := newEngine()
	e.Add(&stubEntity{id: 1, label: "marker"})
	e.AddBuilding(entity.NewBuilding(entity.BuildingTemplate{Name: "Wall", Category: entity.CategoryWall, Health: 10, Width: 40, Height: 40}, entity.Vec2{100, 100}))
	e.Render()

	cmds := canvas.Commands()
	if cmds[0].Op != render.OpClear || cmds[0].Color != render.DaySky {
		t.Fatalf("第一条应是白天背景, got=%+v", cmds[0])
	}
	marker, wall := -1, -1
	for i, c := range cmds {
		if c.Op == render.OpText && c.Text == "marker" {
			marker = i
		}
		if c.Op == render.OpFillRect && c.Color == "#7f8c8d" && wall < 0 {
			wall = i
		}
	}
	if marker < 0 || wall < 0 || marker > wall {
		t.Fatalf("实体应在建筑之前绘制 marker=%d wall=%d", marker, wall)
	}
}

func TestResourcePass_按间隔发出信号(t *testing.T) {
	e, _ := newEngine()
	farm := entity.NewBuilding(entity.BuildingTemplate{Name: "Farm", Category: entity.CategoryFarm, Health: 60, Width: 50, Height: 40, ActionInterval: 2}, entity.Vec2{100, 100})
	e.AddBuilding(farm)
	e.AddBuilding(entity.NewBuilding(entity.BuildingTemplate{Name: "Wall", Category: entity.CategoryWall, Health: 10, Width: 40, Height: 40}, entity.Vec2{300, 300}))

	var got []ResourceEvent
	e.OnResourceGenerated(func(ev ResourceEvent) { got = append(got, ev) })
	e.Start()
	for i := 0; i < 5; i++ {
		e.Frame(1)
	}
	if len(got) != 2 || got[0].BuildingID != farm.ID() || got[0].Category != entity.CategoryFarm {
		t.Fatalf("5s 内 2s 间隔应产出 2 次, got=%+v", got)
	}
}

func TestBuildings_返回拷贝(t *testing.T) {
	e, _ := newEngine()
	b := entity.NewBuilding(entity.BuildingTemplate{Name: "Wall", Category: entity.CategoryWall, Health: 10, Width: 40, Height: 40}, entity.Vec2{100, 100})
	e.AddBuilding(b)
	list := e.Buildings()
	list[0] = nil
	_ = append(list, nil)
	if e.BuildingCount() != 1 || e.Buildings()[0] != b {
		t.Fatalf("外部修改拷贝不影响内部列表")
	}
	if _, ok := e.Overlapping(entity.Rect{X: 119, Y: 119, W: 10, H: 10}); !ok {
		t.Fatalf("应检测到重叠")
	}
	if _, ok := e.Overlapping(entity.Rect{X: 120, Y: 80, W: 10, H: 10}); ok {
		t.Fatalf("贴边不算重叠")
	}
	if !e.RemoveBuilding(b.ID()) || e.RemoveBuilding(b.ID()) {
		t.Fatalf("第二次删除应返回 false")
	}
}

func TestFrame_推进时钟并切换夜晚背景(t *testing.T) {
	e, canvas := newEngine()
	e.Start()
	e.Frame(10)
	if !e.Clock().IsNight() {
		t.Fatalf("10s 周期后应为夜晚")
	}
	if cmds := canvas.Commands(); cmds[0].Color != render.NightSky {
		t.Fatalf("夜晚背景, got=%v", cmds[0].Color)
	}
}
