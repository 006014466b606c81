package entity

type Cycle int

const (
	Day Cycle = iota
	Night
)

func (c Cycle) String() string {
	if c == Night {
		return "Night"
	}
	return "Day"
}

// Clock 昼夜时钟。elapsed 始终在 [0, duration)，每累计 duration 秒翻转一次。
type Clock struct {
	cycle    Cycle
	elapsed  float64
	duration float64
	nights   int
}

func NewClock(duration float64) *Clock {
	if duration <= 0 {
		duration = 120
	}
	return &Clock{duration: duration}
}

// Advance delta < 0 忽略。一次推进超过多个周期时逐个翻转，余量保留到新周期。
func (c *Clock) Advance(delta float64) {
	if delta <= 0 {
		return
	}
	c.elapsed += delta
	for c.elapsed >= c.duration {
		c.elapsed -= c.duration
		c.flip()
	}
}

func (c *Clock) flip() {
	if c.cycle == Day {
		c.cycle = Night
		c.nights++
		return
	}
	c.cycle = Day
}

func (c *Clock) Cycle() Cycle {
	return c.cycle
}

func (c *Clock) IsNight() bool {
	return c.cycle == Night
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

func (c *Clock) Duration() float64 {
	return c.duration
}

// Progress 当前周期进度 [0,1)。
func (c *Clock) Progress() float64 {
	return c.elapsed / c.duration
}

// NightIndex 已开始的夜晚数，第一个夜晚为 1，白天返回上一个夜晚的序号。
func (c *Clock) NightIndex() int {
	return c.nights
}
