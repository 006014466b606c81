package controller

import (
	"errors"
	"testing"
)

func keyDown(key string) Input {
	return Input{Type: InputKeyDown, Key: key}
}

func TestHandleInput_建造模式点击放置(t *testing.T) {
	c := newStarted(t)

	if err := c.HandleInput(Input{Type: InputClick, X: 100, Y: 100}); err != nil {
		t.Fatalf("非建造模式点击应忽略: %v", err)
	}
	if c.engine.BuildingCount() != 5 {
		t.Fatalf("非建造模式不应建造")
	}

	if err := c.HandleInput(keyDown("B")); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !c.BuildMode() {
		t.Fatalf("应进入建造模式")
	}
	if err := c.HandleInput(Input{Type: InputClick, X: 100, Y: 100}); err != nil {
		t.Fatalf("click place: %v", err)
	}
	if c.engine.BuildingCount() != 6 || c.Player().Coins() != 40 {
		t.Fatalf("应建造一面墙, buildings=%d coins=%d", c.engine.BuildingCount(), c.Player().Coins())
	}
	err := c.HandleInput(Input{Type: InputClick, X: 105, Y: 105})
	if !errors.Is(err, ErrPlacementOccupied) {
		t.Fatalf("重叠点击应拒绝, got=%v", err)
	}
}

func TestHandleInput_武器与模板选择(t *testing.T) {
	c := newStarted(t)

	_ = c.HandleInput(keyDown("q"))
	if got := c.Player().CurrentWeapon().Name(); got != "Spear" {
		t.Fatalf("应切到 Spear, got=%s", got)
	}
	_ = c.HandleInput(keyDown("]"))
	if got := c.Snapshot(0).Selected.Name; got != "Tower" {
		t.Fatalf("next 应选中 Tower, got=%s", got)
	}
	_ = c.HandleInput(keyDown("["))
	_ = c.HandleInput(keyDown("["))
	if got := c.Snapshot(0).Selected.Name; got != "House" {
		t.Fatalf("prev 应回绕到 House, got=%s", got)
	}
	_ = c.HandleInput(keyDown("3"))
	if got := c.Snapshot(0).Selected.Name; got != "Farm" {
		t.Fatalf("数字键应选中 Farm, got=%s", got)
	}
	_ = c.HandleInput(keyDown("9"))
	if got := c.Snapshot(0).Selected.Name; got != "Farm" {
		t.Fatalf("越界数字键不应改变选择, got=%s", got)
	}

	kinds := map[NoticeKind]bool{}
	for _, n := range c.Notifications(0) {
		kinds[n.Kind] = true
	}
	if !kinds[NoticeWeapon] || !kinds[NoticeSelect] {
		t.Fatalf("应有武器与选择通知, got=%v", kinds)
	}
}

func TestHandleInput_按住移动键持续移动(t *testing.T) {
	c := newStarted(t)
	y0 := c.Player().Center().Y()

	_ = c.HandleInput(keyDown("ArrowUp"))
	c.Tick(0.5)
	y1 := c.Player().Center().Y()
	if y0-y1 < 99 || y0-y1 > 101 {
		t.Fatalf("0.5 秒应上移 100, got=%v", y0-y1)
	}

	_ = c.HandleInput(Input{Type: InputKeyUp, Key: "arrowup"})
	c.Tick(0.5)
	if c.Player().Center().Y() != y1 {
		t.Fatalf("松开后不应移动")
	}
}

func TestHandleInput_治疗键金币不足(t *testing.T) {
	c := newStarted(t)
	c.Player().UseCoins(40)
	if err := c.HandleInput(keyDown("h")); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("金币不足应拒绝, got=%v", err)
	}
}

func TestHandleInput_暂停时拒绝(t *testing.T) {
	c := newStarted(t)
	c.Stop()
	if err := c.HandleInput(keyDown("q")); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("暂停时应拒绝, got=%v", err)
	}
	if err := c.HandleInput(Input{Type: "scroll"}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("暂停时先判断状态, got=%v", err)
	}
	_ = c.Start()
	if err := c.HandleInput(Input{Type: "scroll"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("未知输入类型应拒绝, got=%v", err)
	}
}

func TestSnapshot_初始视图(t *testing.T) {
	c := newStarted(t)
	s := c.Snapshot(5)
	if s.VillageHealth != 100 || s.PlayerHealth != 100 || s.Coins != 50 {
		t.Fatalf("初始视图错误: %+v", s)
	}
	if s.Weapon != "Sword" || s.DayCycle != "Day" || s.Wave != 0 || s.BuildMode {
		t.Fatalf("初始视图错误: %+v", s)
	}
	if s.Selected == nil || s.Selected.Name != "Wall" || s.Selected.Cost != 10 {
		t.Fatalf("应选中 Wall: %+v", s.Selected)
	}
	if !s.Running || s.GameOver || s.State != "running" {
		t.Fatalf("应为运行中: %+v", s)
	}
	if len(s.Notices) != 1 {
		t.Fatalf("start 应有一条提示, got=%d", len(s.Notices))
	}
}

func TestNotifier_环形缓冲丢弃最旧(t *testing.T) {
	n := newNotifier(3)
	for i := 0; i < 5; i++ {
		n.push(NoticeInfo, "m", 0)
	}
	all := n.since(0)
	if len(all) != 3 || all[0].Seq != 3 || all[2].Seq != 5 {
		t.Fatalf("应保留最新 3 条, got=%+v", all)
	}
	if got := n.since(4); len(got) != 1 || got[0].Seq != 5 {
		t.Fatalf("since 错误: %+v", got)
	}
	if got := n.recent(2); len(got) != 2 || got[1].Seq != 5 {
		t.Fatalf("recent 错误: %+v", got)
	}
	heard := 0
	n.listeners = append(n.listeners, func(Notification) { heard++ })
	n.push(NoticeWave, "w", 1)
	if heard != 1 || n.last() != 6 {
		t.Fatalf("监听者应收到通知")
	}
}
