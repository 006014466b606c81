package controller

// TemplateView 选中的建筑模板（只读）。
type TemplateView struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

// Snapshot 拉取接口的只读视图，界面大约每秒拉两次。
type Snapshot struct {
	State         string         `json:"state"`
	Running       bool           `json:"running"`
	VillageHealth int            `json:"village_health"` // 0-100
	PlayerHealth  int            `json:"player_health"`  // 0-100
	Weapon        string         `json:"weapon"`
	DayCycle      string         `json:"day_cycle"`
	CycleProgress float64        `json:"cycle_progress"`
	Wave          int            `json:"wave"`
	BuildMode     bool           `json:"build_mode"`
	Coins         int            `json:"coins"`
	Selected      *TemplateView  `json:"selected,omitempty"`
	GameOver      bool           `json:"game_over"`
	Message       string         `json:"message,omitempty"`
	Enemies       int            `json:"enemies"`
	Guards        int            `json:"guards"`
	Buildings     int            `json:"buildings"`
	SimSeconds    float64        `json:"sim_seconds"`
	LastNotice    uint64         `json:"last_notice"`
	Notices       []Notification `json:"notices,omitempty"`
}

// Snapshot noticeLimit 为 0 时不带通知。
func (c *Controller) Snapshot(noticeLimit int) Snapshot {
	clock := c.engine.Clock()
	s := Snapshot{
		State:         c.state.String(),
		Running:       c.active(),
		VillageHealth: c.villagePercent(),
		PlayerHealth:  c.player.HealthPercent(),
		Weapon:        c.player.CurrentWeapon().Name(),
		DayCycle:      clock.Cycle().String(),
		CycleProgress: clock.Progress(),
		Wave:          c.wave,
		BuildMode:     c.buildMode,
		Coins:         c.player.Coins(),
		GameOver:      c.state == StateGameOver,
		Message:       c.message,
		Enemies:       len(c.enemies),
		Guards:        len(c.guards),
		Buildings:     c.engine.BuildingCount(),
		SimSeconds:    c.simTime,
		LastNotice:    c.notes.last(),
	}
	if t, ok := c.player.SelectedTemplate(); ok {
		s.Selected = &TemplateView{
			Name:        t.Name,
			Category:    string(t.Category),
			Cost:        t.Cost,
			Description: t.Description,
		}
	}
	if noticeLimit > 0 {
		s.Notices = c.notes.recent(noticeLimit)
	}
	return s
}

func (c *Controller) villagePercent() int {
	if c.maxVillageHealth <= 0 {
		return 0
	}
	return c.villageHealth * 100 / c.maxVillageHealth
}
