package render

// Color css 颜色串，客户端原样使用。
type Color string

const (
	DaySky     Color = "#7ec850"
	NightSky   Color = "#1e2a44"
	NightShade Color = "rgba(0,0,30,0.35)"
	HealthGood Color = "#2ecc71"
	HealthLow  Color = "#e74c3c"
	BarBack    Color = "#333333"
	TextColor  Color = "#ffffff"
)

// Canvas 渲染目标。服务端用 DrawList 录制，客户端按命令回放。
type Canvas interface {
	Clear(width, height float64, c Color)
	FillRect(x, y, w, h float64, c Color)
	StrokeRect(x, y, w, h float64, c Color)
	FillCircle(x, y, r float64, c Color)
	Text(x, y float64, s string, c Color)
}

// HealthBar 在实体上方画血条。
func HealthBar(c Canvas, x, y, w float64, cur, max int) {
	if max <= 0 {
		return
	}
	ratio := float64(cur) / float64(max)
	if ratio < 0 {
		ratio = 0
	}
	fill := HealthGood
	if ratio < 0.3 {
		fill = HealthLow
	}
	c.FillRect(x, y-6, w, 4, BarBack)
	c.FillRect(x, y-6, w*ratio, 4, fill)
}
