package entity

import (
	"testing"
)

func newTestPlayer(coins int) *Player {
	return NewPlayer(PlayerConfig{
		Center:    Vec2{400, 300},
		Width:     32,
		Height:    32,
		Speed:     200,
		MaxHealth: 100,
		Coins:     coins,
		Weapons: []*Weapon{
			NewWeapon("Sword", 25, 60, 0.5),
			NewWeapon("Bow", 15, 220, 1.0),
		},
		Templates: []BuildingTemplate{
			{Name: "Wall", Category: CategoryWall, Cost: 10, Health: 150, Width: 40, Height: 40},
			{Name: "Tower", Category: CategoryTower, Cost: 25, Health: 100, Width: 40, Height: 40},
			{Name: "Farm", Category: CategoryFarm, Cost: 30, Health: 60, Width: 50, Height: 40},
		},
	})
}

func TestAttack_每个冷却周期最多出手一次(t *testing.T) {
	const dt = 1.0 / 60
	for _, every := range []int{1, 2, 7, 13} {
		p := newTestPlayer(0)
		w := p.CurrentWeapon()
		lastTick := -1_000_000
		count := 0
		for tick := 0; tick < 600; tick++ {
			p.Update(dt)
			if tick%every != 0 {
				continue
			}
			if p.Attack() {
				if float64(tick-lastTick)*dt < w.Cooldown()-1e-9 {
					t.Fatalf("every=%d 两次出手间隔不足冷却: %d ticks", every, tick-lastTick)
				}
				lastTick = tick
				count++
			}
		}
		if count == 0 || count > 21 {
			t.Fatalf("every=%d 出手次数异常 %d", every, count)
		}
	}
}

func TestAttack_动画标记持续固定时长(t *testing.T) {
	p := newTestPlayer(0)
	if !p.Attack() || !p.Attacking() {
		t.Fatalf("首次攻击应成功并进入动画")
	}
	if p.Attack() {
		t.Fatalf("冷却中不应再次出手")
	}
	p.Update(0.1)
	if !p.Attacking() {
		t.Fatalf("0.1s 时动画仍在")
	}
	p.Update(0.11)
	if p.Attacking() {
		t.Fatalf("超过 0.2s 动画应结束")
	}
}

func TestUseCoins_余额不足不扣款(t *testing.T) {
	for c := 0; c <= 30; c++ {
		for n := 0; n <= 30; n++ {
			p := newTestPlayer(c)
			ok := p.UseCoins(n)
			if c >= n {
				if !ok || p.Coins() != c-n {
					t.Fatalf("c=%d n=%d 应扣款成功, ok=%v coins=%d", c, n, ok, p.Coins())
				}
			} else if ok || p.Coins() != c {
				t.Fatalf("c=%d n=%d 应拒绝, ok=%v coins=%d", c, n, ok, p.Coins())
			}
		}
	}
	p := newTestPlayer(10)
	if p.UseCoins(-1) || p.Coins() != 10 {
		t.Fatalf("负数应拒绝")
	}
}

func TestSwitchWeapon_循环(t *testing.T) {
	p := newTestPlayer(0)
	if p.SwitchWeapon().Name() != "Bow" || p.SwitchWeapon().Name() != "Sword" {
		t.Fatalf("武器切换应回绕")
	}
}

func TestHealAndDamage_夹在区间内(t *testing.T) {
	p := newTestPlayer(0)
	p.Heal(50)
	if p.Health() != 100 {
		t.Fatalf("满血治疗不应超过上限, got=%d", p.Health())
	}
	if p.TakeDamage(30) || p.Health() != 70 || p.HealthPercent() != 70 {
		t.Fatalf("health=%d", p.Health())
	}
	if !p.TakeDamage(500) || p.Health() != 0 {
		t.Fatalf("血量下限为 0, got=%d", p.Health())
	}
}

func TestTemplateCursor_数字与前后切换(t *testing.T) {
	p := newTestPlayer(0)
	p.PrevTemplate()
	if tpl, _ := p.SelectedTemplate(); tpl.Name != "Farm" {
		t.Fatalf("从 0 向前应回绕到最后, got=%s", tpl.Name)
	}
	p.NextTemplate()
	if p.SelectedIndex() != 0 {
		t.Fatalf("got=%d", p.SelectedIndex())
	}
	if !p.SelectTemplate(1) || p.SelectedIndex() != 1 {
		t.Fatalf("数字选择失败")
	}
	if p.SelectTemplate(3) || p.SelectedIndex() != 1 {
		t.Fatalf("越界选择应被拒绝且不改变当前选择")
	}
}

func TestMove_斜向归一化并限制在画布(t *testing.T) {
	p := newTestPlayer(0)
	start := p.Center()
	p.Move(Vec2{1, 1}, 0.1, 800, 600)
	moved := Distance(start, p.Center())
	if moved < 19.99 || moved > 20.01 {
		t.Fatalf("斜向移动距离应为 speed*delta=20, got=%v", moved)
	}
	p.Move(Vec2{-1, 0}, 100, 800, 600)
	if p.Bounds().X != 0 || p.Facing() != FacingLeft {
		t.Fatalf("应贴住左边界, x=%v", p.Bounds().X)
	}
}
