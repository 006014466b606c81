package ws

type AttachReq struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type StateReq struct {
	Notices *int `json:"notices"`
}

type InputReq struct {
	Type string  `json:"type"`
	Key  string  `json:"key"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type BuildReq struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Template *int    `json:"template"`
}

type NotificationsReq struct {
	After uint64 `json:"after"`
}

type AckResp struct {
	State string `json:"state"`
}
