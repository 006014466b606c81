package security

import (
	"errors"
	"testing"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award("s-1"); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 JWT_SECRET 为空时返回 ErrJWTSecretMissing, got=%v", err)
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("s-42")
	if err != nil || token == "" {
		t.Fatalf("Award token=%q err=%v", token, err)
	}
	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.SessionID != "s-42" {
		t.Fatalf("期望 claims.SessionID==s-42, got=%v", claims)
	}
}

func TestVerifySession_会话不匹配应拒绝(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	token, err := Award("s-a")
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifySession(token, "s-a"); err != nil {
		t.Fatalf("同一会话应通过, err=%v", err)
	}
	if err := VerifySession(token, "s-b"); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("期望 ErrSessionMismatch, got=%v", err)
	}
	if err := VerifySession("garbage", "s-a"); err == nil {
		t.Fatalf("非法 token 应失败")
	}
}
