package handler

import (
	"context"
	"errors"

	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/village/actor"
	"VillageDefense/modules/kit/errx"
)

const busyMsg = "系统繁忙，请稍后重试"

// HandleError 错误 -> 客户端业务码和提示，业务拒绝透出原文，技术错误统一文案。
func HandleError(ctx context.Context, err error) (transport.BizCode, string) {
	if err == nil {
		return transport.OK, ""
	}
	code := transport.SystemError
	var reason, msg string

	var re *actor.RuntimeError
	if errors.As(err, &re) && re != nil {
		code, reason, msg = re.Code, re.Reason, re.Message
	} else if e, ok := errx.As(err); ok {
		reason, msg = string(e.Code()), e.Msg()
		code = actor.BizCodeOf(reason)
	}
	transport.SetErrorReason(ctx, reason)
	reportError(ctx, code, reason, msg, err)

	if code >= transport.SystemError {
		return code, busyMsg
	}
	if msg == "" {
		msg = code.Text()
	}
	return code, msg
}
