package models

import "time"

// AuditLog records storefront operations for auditing.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"` // "admin" or the remote numeric id
	Path      string `gorm:"size:255"`      // 明文路径（未配置加密密钥时）
	PathEnc   string `gorm:"size:1024"`     // 加密后的路径
	Method    string `gorm:"size:16"`
	Action    string `gorm:"size:2048"`
	ActionEnc string `gorm:"size:4096"`
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
