package jwt

import (
	"testing"
	"time"

	"github.com/KarthikeyanSA369/LearnExa/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:  "test-secret-key-for-unit-testing-2026",
		SessionTTL: 24 * time.Hour,
	})
}

func TestSignAndParse(t *testing.T) {
	m := newTestManager()
	sid := NewSessionID()

	token, exp, err := m.Sign(sid)
	if err != nil {
		t.Fatalf("Sign 失败: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	if claims.SessionID != sid {
		t.Errorf("期望 SessionID=%s，实际=%s", sid, claims.SessionID)
	}
	if claims.Issuer != "learnexa" {
		t.Errorf("期望 Issuer=learnexa，实际=%s", claims.Issuer)
	}

	ttl := time.Until(exp)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("会话 TTL 期望约24h，实际=%v", ttl)
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Error("会话 ID 不应重复")
	}
}

func TestParse_InvalidToken(t *testing.T) {
	m := newTestManager()
	if _, err := m.Parse("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:  "another-secret-key-0000",
		SessionTTL: time.Hour,
	})

	token, _, _ := m1.Sign(NewSessionID())
	if _, err := m2.Parse(token); err == nil {
		t.Error("不同密钥签名的令牌不应通过校验")
	}
}

func TestParse_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:  "test-secret-key-for-unit-testing-2026",
		SessionTTL: time.Millisecond,
	})

	token, _, _ := m.Sign(NewSessionID())
	time.Sleep(1100 * time.Millisecond)

	if _, err := m.Parse(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
