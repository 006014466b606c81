package logx

import (
	"context"
	"errors"
	"testing"

	"VillageDefense/modules/kit/errx"
	"VillageDefense/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	e := errx.NewSys("SYS_INTERNAL", "服务器内部错误").
		WithData("session", "s-1").
		WithCause(errors.New("mongo down"))

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("期望 Error/Code/Msg 非空, got=%+v", meta)
	}
	if meta.Data == nil || meta.Data["session"] != "s-1" {
		t.Fatalf("期望 meta.Data 包含 session=s-1, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望栈信息非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportAccess_按biz_code分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.WithTraceID(context.Background(), "t-9")

	ReportAccessWithLoggerContext(ctx, l, "game.start", 0)
	ReportAccessWithLoggerContext(ctx, l, "game.build", 201)
	ReportAccessWithLoggerContext(ctx, l, "game.state", 500)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志, got=%d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条级别错误 got=%v want=%v", i, e.Level, want[i])
		}
		if e.ContextMap()["trace_id"] != "t-9" {
			t.Fatalf("期望带上 trace_id, got=%v", e.ContextMap())
		}
	}
}
