package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("VILLAGE_X", "x").WithData("cost", 25).WithCause(errors.New("cause1"))
	e2 := NewBiz("VILLAGE_X", "x2").WithData("need", 40)
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true，e1=%v e2=%v", e1, e2)
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("overlap")
	err := NewBiz("VILLAGE_PLACEMENT_OCCUPIED", "位置被占用").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if !IsBiz(err) {
		t.Fatalf("期望 IsBiz==true")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := NewSys("SYS_REPORT_STORE", "战报存储失败").WithCause(errors.New("io timeout"))
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈，got=%v", got)
	}
	sys2 := NewSys("SYS_RUNTIME", "运行时异常").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层不重复捕获栈，got=%v", got)
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("BIZ_X", "").WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data，got=%v", got)
	}
}

func TestCodeOf_包装后仍能取到code(t *testing.T) {
	wrapped := fmt.Errorf("place: %w", NewBiz("VILLAGE_GAME_OVER", "游戏已结束"))
	if got := CodeOf(wrapped); got != "VILLAGE_GAME_OVER" {
		t.Fatalf("got=%s", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("普通错误应归为 CodeInternal，got=%s", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Fatalf("nil 应返回空 code，got=%s", got)
	}
}
