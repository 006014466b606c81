package transport

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"VillageDefense/modules/kit/logx"
	"VillageDefense/modules/kit/tracex"
)

func TestAccessLog_默认SystemError_成功后改写(t *testing.T) {
	ctx := NewContext("game.start")
	if al := FromContext(ctx); al == nil || al.BizCode != SystemError {
		t.Fatalf("期望默认业务码为 SystemError, got=%+v", al)
	}
	if _, ok := tracex.TraceIDFrom(ctx); !ok {
		t.Fatalf("期望自动生成 trace_id")
	}

	core, logs := observer.New(zapcore.DebugLevel)
	SetBizCode(ctx, OK)
	SetSessionID(ctx, "s-1")
	WriteAccessLog(ctx, logx.NewZapLogger(zap.New(core)))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("期望一条 INFO access 日志, got=%v", entries)
	}
	fields := entries[0].ContextMap()
	if fields["result"] != "success" || fields["session_id"] != "s-1" || fields["action"] != "game.start" {
		t.Fatalf("字段不符: %v", fields)
	}
}

func TestAccessLog_业务拒绝记WARN(t *testing.T) {
	ctx := NewContextWithParent(context.Background(), "game.build")
	SetBizCode(ctx, InsufficientCoins)
	SetErrorReason(ctx, "VILLAGE_INSUFFICIENT_COINS")

	core, logs := observer.New(zapcore.DebugLevel)
	WriteAccessLog(ctx, logx.NewZapLogger(zap.New(core)))
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("期望一条 WARN, got=%v", entries)
	}
	if entries[0].ContextMap()["error_reason"] != "VILLAGE_INSUFFICIENT_COINS" {
		t.Fatalf("期望带 error_reason, got=%v", entries[0].ContextMap())
	}
}

func TestBizCode_Text(t *testing.T) {
	if PlacementOccupied.Text() == "未知错误" || BizCode(999).Text() != "未知错误" {
		t.Fatalf("Text 映射不符")
	}
}
