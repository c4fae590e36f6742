package util

import (
	"testing"
	"time"
)

// ============ JWT 测试 ============

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "15", time.Hour)
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.UserID != "15" {
		t.Errorf("UserID = %q, want 15", claims.UserID)
	}

	// 管理员的字符串 id 同样可用
	adminToken, err := GenerateToken(secret, "admin", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	adminClaims, err := ParseToken(secret, adminToken)
	if err != nil {
		t.Fatal(err)
	}
	if adminClaims.UserID != "admin" {
		t.Errorf("UserID = %q, want admin", adminClaims.UserID)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", "15", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken("wrong-secret", token); err == nil {
		t.Error("错误密钥应解析失败")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Error("非法 token 应解析失败")
	}
}
