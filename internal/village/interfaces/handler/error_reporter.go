package handler

import (
	"context"

	"VillageDefense/internal/shared/logs"
	"VillageDefense/internal/shared/transport"
	"VillageDefense/modules/kit/logx"
)

// reportError 接口层每个请求只打一次：业务拒绝记 INFO 不带栈，技术错误记 ERROR 带 cause 链。
func reportError(ctx context.Context, code transport.BizCode, reason, msg string, err error) {
	action := "unknown"
	if al := transport.FromContext(ctx); al != nil && al.Action() != "" {
		action = al.Action()
	}
	l := logx.NewZapLogger(logs.Logger())
	if code < transport.SystemError {
		logx.ReportBizWithLoggerContext(ctx, l, logx.NewBizLog(action, reason, msg))
		return
	}
	logx.ReportSysErrorWithLoggerContext(ctx, l, logx.NewSysLog(action, err))
}
