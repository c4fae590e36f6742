package util

import (
	"testing"
)

// TestValidateEmail_Valid 测试合法邮箱
func TestValidateEmail_Valid(t *testing.T) {
	testCases := []string{
		"user@example.com",
		"admin@ecommerce.com",
		"first.last@sub.domain.org",
	}

	for _, email := range testCases {
		err := ValidateEmail(email)
		if err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
}

// TestValidateEmail_Invalid 测试非法邮箱（异常）
func TestValidateEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"plain",
		"no@tld",
		"@missing.local",
		"spaces in@mail.com",
	}

	for _, email := range testCases {
		err := ValidateEmail(email)
		if err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

// TestValidatePassword 口令长度下限为 6
func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345"); err == nil {
		t.Error("ValidatePassword(\"12345\") error = nil, want error")
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Errorf("ValidatePassword(\"123456\") error = %v, want nil", err)
	}
}

// TestValidateAge 年龄必须满 18
func TestValidateAge(t *testing.T) {
	for _, age := range []int{0, 17, -1} {
		if err := ValidateAge(age); err == nil {
			t.Errorf("ValidateAge(%d) error = nil, want error", age)
		}
	}
	for _, age := range []int{18, 30, 99} {
		if err := ValidateAge(age); err != nil {
			t.Errorf("ValidateAge(%d) error = %v, want nil", age, err)
		}
	}
}

// TestValidateRequired 空白字符串视为缺失
func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("city", "   "); err == nil {
		t.Error("ValidateRequired with blank value error = nil, want error")
	}
	if err := ValidateRequired("city", "Berlin"); err != nil {
		t.Errorf("ValidateRequired(\"Berlin\") error = %v, want nil", err)
	}
}

// TestValidatePrice 价格不能为负，0 允许
func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(-0.01); err == nil {
		t.Error("ValidatePrice(-0.01) error = nil, want error")
	}
	for _, p := range []float64{0, 9.99, 1500} {
		if err := ValidatePrice(p); err != nil {
			t.Errorf("ValidatePrice(%v) error = %v, want nil", p, err)
		}
	}
}

// TestValidateStock 库存不能为负
func TestValidateStock(t *testing.T) {
	if err := ValidateStock(-1); err == nil {
		t.Error("ValidateStock(-1) error = nil, want error")
	}
	if err := ValidateStock(0); err != nil {
		t.Errorf("ValidateStock(0) error = %v, want nil", err)
	}
}
