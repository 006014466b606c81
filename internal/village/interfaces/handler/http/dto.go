package http

type InputReq struct {
	Type string  `json:"type" binding:"required"`
	Key  string  `json:"key"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// BuildReq Template 为空时沿用当前选中的模板。
type BuildReq struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Template *int    `json:"template"`
}

type AckResp struct {
	State string `json:"state"`
}
