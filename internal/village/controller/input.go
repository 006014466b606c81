package controller

import (
	"strconv"
	"strings"

	"VillageDefense/internal/village/entity"
)

type InputType string

const (
	InputKeyDown   InputType = "keydown"
	InputKeyUp     InputType = "keyup"
	InputMouseMove InputType = "mousemove"
	InputClick     InputType = "click"
)

// Input 一次用户输入，键名大小写不敏感。
type Input struct {
	Type InputType `json:"type"`
	Key  string    `json:"key,omitempty"`
	X    float64   `json:"x,omitempty"`
	Y    float64   `json:"y,omitempty"`
}

// 按键动作名，与 catalog.keys 对应。
const (
	ActionUp           = "up"
	ActionDown         = "down"
	ActionLeft         = "left"
	ActionRight        = "right"
	ActionAttack       = "attack"
	ActionSwitchWeapon = "switch_weapon"
	ActionBuildMode    = "build_mode"
	ActionPrevBuilding = "prev_building"
	ActionNextBuilding = "next_building"
	ActionHeal         = "heal"
)

func isMovement(action string) bool {
	switch action {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// HandleInput 按输入类型分发。未绑定的键忽略。
func (c *Controller) HandleInput(in Input) error {
	if err := c.requireActive(); err != nil {
		return err
	}
	switch in.Type {
	case InputKeyDown:
		return c.keyDown(strings.ToLower(in.Key))
	case InputKeyUp:
		if action := c.keyActions[strings.ToLower(in.Key)]; isMovement(action) {
			c.held[action] = false
		}
		return nil
	case InputMouseMove:
		c.mouse = entity.Vec2{in.X, in.Y}
		return nil
	case InputClick:
		c.mouse = entity.Vec2{in.X, in.Y}
		if !c.buildMode {
			return nil
		}
		return c.PlaceBuilding(in.X, in.Y)
	}
	return ErrInvalidInput.WithData("type", string(in.Type))
}

func (c *Controller) keyDown(key string) error {
	// 数字键直接选第 n 个模板
	if n, err := strconv.Atoi(key); err == nil && n >= 1 {
		if c.player.SelectTemplate(n - 1) {
			c.notifySelected()
		}
		return nil
	}
	action := c.keyActions[key]
	if isMovement(action) {
		c.held[action] = true
		return nil
	}
	switch action {
	case ActionAttack:
		c.Attack()
	case ActionSwitchWeapon:
		w := c.player.SwitchWeapon()
		c.notifyf(NoticeWeapon, "Switched to %s", w.Name())
	case ActionBuildMode:
		c.ToggleBuildMode()
	case ActionPrevBuilding:
		c.player.PrevTemplate()
		c.notifySelected()
	case ActionNextBuilding:
		c.player.NextTemplate()
		c.notifySelected()
	case ActionHeal:
		return c.Heal()
	}
	return nil
}

func (c *Controller) ToggleBuildMode() bool {
	c.buildMode = !c.buildMode
	if c.buildMode {
		c.notify(NoticeBuildMode, "Build mode ON - click to place a building")
	} else {
		c.notify(NoticeBuildMode, "Build mode OFF")
	}
	return c.buildMode
}

func (c *Controller) BuildMode() bool {
	return c.buildMode
}

func (c *Controller) notifySelected() {
	if t, ok := c.player.SelectedTemplate(); ok {
		c.notifyf(NoticeSelect, "Selected: %s (%d coins)", t.Name, t.Cost)
	}
}
