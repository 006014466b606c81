package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"VillageDefense/modules/kit/logx"
	"VillageDefense/modules/kit/tracex"
)

// AccessLog 请求级日志上下文，HTTP/WS/gRPC 共用。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	SessionID   string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 保留父 context 的取消/超时，默认业务码为 SystemError，处理成功后由 handler 改写。
func NewContextWithParent(parent context.Context, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx := tracex.Ensure(parent)
	al := &AccessLog{
		BizCode:   SystemError,
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func (a *AccessLog) Action() string {
	if a == nil {
		return ""
	}
	return a.action
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

func SetSessionID(ctx context.Context, sessionID string) {
	if al := FromContext(ctx); al != nil {
		al.SessionID = sessionID
	}
}

// WriteAccessLog 在中间件 defer 里调用。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	fields := []zap.Field{zap.Duration("latency", time.Since(al.startTime))}
	if al.SessionID != "" {
		fields = append(fields, zap.String("session_id", al.SessionID))
	}
	if al.BizCode == OK {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
