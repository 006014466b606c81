package engine

import (
	"fmt"

	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/render"
)

type buildingPainter func(c render.Canvas, b *entity.Building)

// 建筑按类别绘制，不走实体的 Render。
var painters = map[entity.Category]buildingPainter{
	entity.CategoryVillageCenter: drawVillageCenter,
	entity.CategoryHouse:         drawBlock("#a0522d", "#8b0000"),
	entity.CategoryWall:          drawBlock("#7f8c8d", ""),
	entity.CategoryTower:         drawTower,
	entity.CategoryFarm:          drawFarm,
	entity.CategoryGuardPost:     drawBlock("#34495e", "#f1c40f"),
}

// Render 背景 -> 实体 -> 建筑 -> 夜晚遮罩。
func (e *Engine) Render() {
	c := e.canvas
	if e.clock.IsNight() {
		c.Clear(e.width, e.height, render.NightSky)
	} else {
		c.Clear(e.width, e.height, render.DaySky)
	}
	for _, id := range e.order {
		if r, ok := e.entities[id].(entity.Renderer); ok {
			r.Render(c)
		}
	}
	for _, b := range e.buildings {
		paint, ok := painters[b.Category()]
		if !ok {
			paint = drawBlock("#95a5a6", "")
		}
		paint(c, b)
		r := b.Bounds()
		render.HealthBar(c, r.X, r.Y, r.W, b.Health(), b.MaxHealth())
	}
	if e.clock.IsNight() {
		c.FillRect(0, 0, e.width, e.height, render.NightShade)
	}
	c.Text(10, 20, fmt.Sprintf("%s %.0f%%", e.clock.Cycle(), e.clock.Progress()*100), render.TextColor)
}

func drawBlock(body, roof render.Color) buildingPainter {
	return func(c render.Canvas, b *entity.Building) {
		r := b.Bounds()
		c.FillRect(r.X, r.Y, r.W, r.H, body)
		if roof != "" {
			c.FillRect(r.X, r.Y, r.W, r.H/4, roof)
		}
	}
}

func drawVillageCenter(c render.Canvas, b *entity.Building) {
	r := b.Bounds()
	c.FillRect(r.X, r.Y, r.W, r.H, "#d4ac0d")
	c.StrokeRect(r.X, r.Y, r.W, r.H, "#7d6608")
	c.Text(r.X+4, r.Y+r.H/2, b.Name(), render.TextColor)
}

func drawTower(c render.Canvas, b *entity.Building) {
	r := b.Bounds()
	c.FillRect(r.X+r.W/4, r.Y, r.W/2, r.H, "#5d6d7e")
	c.FillRect(r.X, r.Y, r.W, r.H/5, "#2e4053")
}

func drawFarm(c render.Canvas, b *entity.Building) {
	r := b.Bounds()
	c.FillRect(r.X, r.Y, r.W, r.H, "#c8a165")
	// 产出进度条
	tpl := b.Template()
	if tpl.ActionInterval > 0 {
		c.FillRect(r.X, r.Y+r.H+2, r.W*b.LastAction()/tpl.ActionInterval, 3, "#f4d03f")
	}
}
