package errx

// 跨服务统一的系统类错误码。
// 业务域错误码（例如 VILLAGE_INSUFFICIENT_COINS）由各业务包自行定义，kit 里不集中。

const (
	// CodeInternal 服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（DB/下游服务/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeNotFound 目标资源不存在。
	CodeNotFound Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	// 请求参数错误
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrNotFound     = NewBiz(CodeNotFound, "资源不存在")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "未授权")
	ErrReqParamERR  = NewBiz(CodeReqParamError, "请求参数错误")
)
