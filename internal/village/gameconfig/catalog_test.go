package gameconfig

import (
	"testing"

	"VillageDefense/internal/village/entity"
)

func TestLoad_内嵌配置表(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if len(c.NewWeapons()) != 3 {
		t.Fatalf("期望 3 把武器, got=%d", len(c.NewWeapons()))
	}
	tower, ok := c.Template(entity.CategoryTower)
	if !ok || tower.Cost != 25 || !tower.Shoots() {
		t.Fatalf("tower 模板不符: %+v", tower)
	}
	for _, tpl := range c.Templates() {
		if tpl.Category == entity.CategoryVillageCenter {
			t.Fatalf("村庄中心不可购买")
		}
	}
	if c.Player.Coins != 50 || c.Rules.HealCost != 20 || c.Rules.HealAmount != 25 {
		t.Fatalf("玩家/规则数值不符: %+v %+v", c.Player, c.Rules)
	}
}

func TestEnemyPool_随波次增长且不移除(t *testing.T) {
	c := MustDefault()
	sizes := map[int]int{0: 1, 1: 1, 2: 3, 3: 3, 4: 4, 5: 4, 6: 5, 10: 5}
	for wave, want := range sizes {
		if got := len(c.EnemyPool(wave)); got != want {
			t.Fatalf("wave=%d 期望 %d 种敌人, got=%d", wave, want, got)
		}
	}
	prev := map[entity.EnemyKind]bool{}
	for wave := 0; wave <= 8; wave++ {
		cur := map[entity.EnemyKind]bool{}
		for _, s := range c.EnemyPool(wave) {
			cur[s.Kind] = true
		}
		for k := range prev {
			if !cur[k] {
				t.Fatalf("wave=%d 丢失了已解锁的 %s", wave, k)
			}
		}
		prev = cur
	}
}

func TestKeyActions_统一小写(t *testing.T) {
	keys := MustDefault().KeyActions()
	if keys["arrowup"] != "up" || keys["q"] != "switch_weapon" || keys[" "] != "attack" || keys["]"] != "next_building" {
		t.Fatalf("按键映射不符: %v", keys)
	}
}
