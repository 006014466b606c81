package entity

import (
	"math"
	"math/rand"
	"testing"
)

func TestClock_elapsed始终在区间内_每个周期翻转一次(t *testing.T) {
	const duration = 10.0
	rng := rand.New(rand.NewSource(42))
	c := NewClock(duration)
	total := 0.0
	flips := 0
	prev := c.Cycle()
	for i := 0; i < 5000; i++ {
		// 步长 0 ~ 2.5 个周期，覆盖一次跨多个周期的情况
		delta := math.Round(rng.Float64()*25*4) / 4
		before := math.Floor(total / duration)
		c.Advance(delta)
		total += delta
		after := math.Floor(total / duration)

		if c.Elapsed() < 0 || c.Elapsed() >= duration {
			t.Fatalf("elapsed 越界: %v", c.Elapsed())
		}
		crossed := int(after - before)
		if crossed%2 == 1 {
			prev = 1 - prev
		}
		flips += crossed
		if c.Cycle() != prev {
			t.Fatalf("第 %d 步翻转次数不符, total=%v", i, total)
		}
	}
	if want := int(math.Floor(total / duration)); flips != want {
		t.Fatalf("flips=%d want=%d", flips, want)
	}
}

func TestClock_夜晚序号与进度(t *testing.T) {
	c := NewClock(120)
	if c.Cycle() != Day || c.Cycle().String() != "Day" {
		t.Fatalf("初始应为白天")
	}
	c.Advance(60)
	if c.Progress() != 0.5 {
		t.Fatalf("progress=%v", c.Progress())
	}
	c.Advance(60)
	if !c.IsNight() || c.NightIndex() != 1 || c.Elapsed() != 0 {
		t.Fatalf("应进入第一个夜晚, cycle=%v night=%d", c.Cycle(), c.NightIndex())
	}
	c.Advance(240)
	if !c.IsNight() || c.NightIndex() != 2 {
		t.Fatalf("两个周期后应为第二个夜晚, night=%d", c.NightIndex())
	}
	c.Advance(-5)
	if c.Elapsed() != 0 {
		t.Fatalf("负数 delta 应忽略")
	}
}
