package messages

type Template struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

type Notice struct {
	Seq     uint64  `json:"seq"`
	Kind    string  `json:"kind"`
	Message string  `json:"message"`
	At      float64 `json:"at"`
}

type GameState struct {
	SessionID     string    `json:"session_id"`
	State         string    `json:"state"`
	Running       bool      `json:"running"`
	VillageHealth int       `json:"village_health"`
	PlayerHealth  int       `json:"player_health"`
	Weapon        string    `json:"weapon"`
	DayCycle      string    `json:"day_cycle"`
	CycleProgress float64   `json:"cycle_progress"`
	Wave          int       `json:"wave"`
	BuildMode     bool      `json:"build_mode"`
	Coins         int       `json:"coins"`
	Selected      *Template `json:"selected"`
	GameOver      bool      `json:"game_over"`
	Message       string    `json:"message,omitempty"`
	Enemies       int       `json:"enemies"`
	Guards        int       `json:"guards"`
	Buildings     int       `json:"buildings"`
	SimSeconds    float64   `json:"sim_seconds"`
	LastNotice    uint64    `json:"last_notice"`
	Notices       []Notice  `json:"notices,omitempty"`
}

type DrawCommand struct {
	Op    string  `json:"op"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Color string  `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// GameReport 对局结算，FinishedAt 为毫秒时间戳，未结束为 0。
type GameReport struct {
	SessionID      string  `json:"session_id"`
	Result         string  `json:"result"`
	Message        string  `json:"message"`
	Wave           int     `json:"wave"`
	Kills          int     `json:"kills"`
	CoinsEarned    int     `json:"coins_earned"`
	Coins          int     `json:"coins"`
	BuildingsBuilt int     `json:"buildings_built"`
	BuildingsLost  int     `json:"buildings_lost"`
	GuardsLost     int     `json:"guards_lost"`
	SimSeconds     float64 `json:"sim_seconds"`
	StartedAt      int64   `json:"started_at"`
	FinishedAt     int64   `json:"finished_at"`
}
