package handler

import (
	"errors"
	"testing"

	"VillageDefense/internal/shared/transport"
	"VillageDefense/internal/village/actor"
	"VillageDefense/internal/village/app/port"
	"VillageDefense/internal/village/controller"
)

func TestHandleError_业务拒绝透出原文(t *testing.T) {
	ctx := transport.NewContext("test")
	err := &actor.RuntimeError{
		Code:    transport.InsufficientCoins,
		Reason:  string(controller.CodeInsufficientCoins),
		Message: "Not enough coins!",
	}
	code, msg := HandleError(ctx, err)
	if code != transport.InsufficientCoins || msg != "Not enough coins!" {
		t.Fatalf("code=%d msg=%q", code, msg)
	}
	if al := transport.FromContext(ctx); al.ErrorReason != string(controller.CodeInsufficientCoins) {
		t.Fatalf("reason 应写入访问日志上下文, got=%q", al.ErrorReason)
	}
}

func TestHandleError_errx错误按码映射(t *testing.T) {
	code, _ := HandleError(transport.NewContext("test"), port.ErrReportNotFound.WithData("session_id", "x"))
	if code != transport.ReportNotFound {
		t.Fatalf("got=%d", code)
	}
}

func TestHandleError_技术错误统一文案(t *testing.T) {
	code, msg := HandleError(transport.NewContext("test"), errors.New("mongo down"))
	if code != transport.SystemError || msg != busyMsg {
		t.Fatalf("code=%d msg=%q", code, msg)
	}

	timeout := &actor.RuntimeError{Code: transport.UpstreamTimeout, Message: "actor 请求超时"}
	if code, msg = HandleError(transport.NewContext("test"), timeout); code != transport.UpstreamTimeout || msg != busyMsg {
		t.Fatalf("超时 code=%d msg=%q", code, msg)
	}
}
