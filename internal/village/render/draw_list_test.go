package render

import "testing"

func TestDrawList_Clear开启新一帧(t *testing.T) {
	d := NewDrawList()
	d.Clear(800, 600, DaySky)
	d.FillRect(1, 2, 3, 4, HealthGood)
	d.Text(5, 6, "Wave 1", TextColor)
	if d.Len() != 3 {
		t.Fatalf("got=%d", d.Len())
	}
	d.Clear(800, 600, NightSky)
	cmds := d.Commands()
	if len(cmds) != 1 || cmds[0].Op != OpClear || cmds[0].Color != NightSky {
		t.Fatalf("Clear 后只剩背景, got=%+v", cmds)
	}
	cmds[0].Color = "mutated"
	if d.Commands()[0].Color != NightSky {
		t.Fatalf("Commands 应返回拷贝")
	}
}

func TestHealthBar_低血量变红(t *testing.T) {
	d := NewDrawList()
	HealthBar(d, 0, 10, 40, 10, 100)
	cmds := d.Commands()
	if len(cmds) != 2 || cmds[1].Color != HealthLow || cmds[1].W != 4 {
		t.Fatalf("got=%+v", cmds)
	}
	d2 := NewDrawList()
	HealthBar(d2, 0, 10, 40, 5, 0)
	if d2.Len() != 0 {
		t.Fatalf("max<=0 不画")
	}
}
