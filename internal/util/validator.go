package util

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRequired 验证必填字段非空
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateEmail 验证邮箱格式
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// ValidatePassword 注册口令至少 6 位
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ValidateAge 注册年龄必须满 18
func ValidateAge(age int) error {
	if age < 18 {
		return fmt.Errorf("must be at least 18 years old")
	}
	return nil
}

// ValidatePrice 商品价格不能为负
func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}

// ValidateStock 商品库存不能为负
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock must be positive")
	}
	return nil
}
