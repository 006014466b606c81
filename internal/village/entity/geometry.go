package entity

import "github.com/go-gl/mathgl/mgl64"

type Vec2 = mgl64.Vec2

// Rect 轴对齐包围盒，X/Y 为左上角。
type Rect struct {
	X, Y, W, H float64
}

// RectAround 以 center 为中心的矩形。
func RectAround(center Vec2, w, h float64) Rect {
	return Rect{X: center.X() - w/2, Y: center.Y() - h/2, W: w, H: h}
}

func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Overlaps 严格不等式：只共享一条边不算碰撞。
func Overlaps(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// MoveToward 沿直线向 to 前进 step，距离不超过 stopWithin 时视为到达不再移动。
func MoveToward(from, to Vec2, step, stopWithin float64) (Vec2, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= stopWithin {
		return from, true
	}
	if step <= 0 {
		return from, false
	}
	if step >= dist {
		return to, true
	}
	return from.Add(d.Mul(step / dist)), false
}

// ClampInto 把矩形限制在 [0,width]x[0,height] 内。
func ClampInto(r Rect, width, height float64) Rect {
	r.X = clamp(r.X, 0, width-r.W)
	r.Y = clamp(r.Y, 0, height-r.H)
	return r
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
