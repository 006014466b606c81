package entity

import "testing"

func guardStats() GuardStats {
	return GuardStats{MaxHealth: 60, Damage: 12, DetectionRange: 200, AttackRange: 30, Speed: 90, Cooldown: 1.5, Width: 20, Height: 20}
}

func TestGuard_Acquire_最近且同距取先出现的(t *testing.T) {
	g := NewGuard(guardStats(), Vec2{0, 0}, 0)
	far := NewEnemy(goblin(), Vec2{150, 0}, Vec2{})
	tieA := NewEnemy(goblin(), Vec2{0, 80}, Vec2{})
	tieB := NewEnemy(goblin(), Vec2{80, 0}, Vec2{})
	outside := NewEnemy(goblin(), Vec2{300, 0}, Vec2{})

	if got := g.Acquire([]*Enemy{far, tieA, tieB, outside}); got != tieA {
		t.Fatalf("期望选中 tieA")
	}
	if got := g.Acquire([]*Enemy{outside}); got != nil || g.Target() != nil {
		t.Fatalf("侦测范围外不应锁定")
	}
}

func TestGuard_Step_靠近后按冷却出手(t *testing.T) {
	g := NewGuard(guardStats(), Vec2{0, 0}, 0)
	e := NewEnemy(goblin(), Vec2{100, 0}, Vec2{100, 0})
	g.Acquire([]*Enemy{e})

	hits := 0
	for i := 0; i < 60*4; i++ {
		if g.Step(1.0/60) == e {
			hits++
		}
	}
	// 约 0.8s 走到攻击距离，之后每 1.5s 一次：0.8、2.3、3.8
	if hits != 3 {
		t.Fatalf("4s 内期望出手 3 次, got=%d", hits)
	}
	if d := Distance(g.Center(), e.Center()); d > guardStats().AttackRange+1e-9 {
		t.Fatalf("应停在攻击距离内, d=%v", d)
	}
}

func TestGuard_可被摧毁(t *testing.T) {
	g := NewGuard(guardStats(), Vec2{0, 0}, 0)
	if g.TakeDamage(59) || !g.TakeDamage(5) || g.Health() != 0 {
		t.Fatalf("守卫应在血量归零时死亡")
	}
}
