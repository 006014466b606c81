package transport

// BizCode 业务码的强类型封装，日志上下文里避免误传。
// 分级约定：0 成功；1~499 业务拒绝（WARN）；>=500 系统错误（ERROR）。
type BizCode int

const (
	OK                BizCode = 0
	InvalidParam      BizCode = 1
	TokenInvalid      BizCode = 2
	SessionNotFound   BizCode = 101
	InsufficientCoins BizCode = 201
	PlacementOccupied BizCode = 202
	GameNotRunning    BizCode = 203
	GameOver          BizCode = 204
	ReportNotFound    BizCode = 301
	SystemError       BizCode = 500
	UpstreamTimeout   BizCode = 504
)

var codeText = map[BizCode]string{
	OK:                "成功",
	InvalidParam:      "参数错误",
	TokenInvalid:      "token 无效",
	SessionNotFound:   "对局不存在",
	InsufficientCoins: "金币不足",
	PlacementOccupied: "该位置已被占用",
	GameNotRunning:    "对局未开始",
	GameOver:          "对局已结束",
	ReportNotFound:    "战报不存在",
	SystemError:       "服务器内部错误",
	UpstreamTimeout:   "请求超时",
}

func (c BizCode) Text() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "未知错误"
}
