package messages

// FailResp actor 拒绝请求时的统一回复，Code 为 errx 错误码。
type FailResp struct {
	Code    string
	Reason  string
	Message string
}

func (f *FailResp) Error() string {
	if f == nil {
		return "<nil>"
	}
	return f.Code + ": " + f.Message
}
