package render

type Op string

const (
	OpClear      Op = "clear"
	OpFillRect   Op = "fill_rect"
	OpStrokeRect Op = "stroke_rect"
	OpFillCircle Op = "fill_circle"
	OpText       Op = "text"
)

type Command struct {
	Op    Op      `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Color Color   `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// DrawList 录制一帧的绘制命令。Clear 会丢弃之前的命令，所以一帧从 Clear 开始。
type DrawList struct {
	cmds []Command
}

func NewDrawList() *DrawList {
	return &DrawList{cmds: make([]Command, 0, 128)}
}

func (d *DrawList) Clear(width, height float64, c Color) {
	d.cmds = d.cmds[:0]
	d.cmds = append(d.cmds, Command{Op: OpClear, W: width, H: height, Color: c})
}

func (d *DrawList) FillRect(x, y, w, h float64, c Color) {
	d.cmds = append(d.cmds, Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (d *DrawList) StrokeRect(x, y, w, h float64, c Color) {
	d.cmds = append(d.cmds, Command{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (d *DrawList) FillCircle(x, y, r float64, c Color) {
	d.cmds = append(d.cmds, Command{Op: OpFillCircle, X: x, Y: y, R: r, Color: c})
}

func (d *DrawList) Text(x, y float64, s string, c Color) {
	d.cmds = append(d.cmds, Command{Op: OpText, X: x, Y: y, Text: s, Color: c})
}

// Commands 返回拷贝。
func (d *DrawList) Commands() []Command {
	out := make([]Command, len(d.cmds))
	copy(out, d.cmds)
	return out
}

func (d *DrawList) Len() int {
	return len(d.cmds)
}
