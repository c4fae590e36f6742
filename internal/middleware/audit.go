package middleware

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/models"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func encryptField(encryptKey, plain string) (string, error) {
	if plain == "" || encryptKey == "" {
		return plain, nil
	}
	b, err := util.EncryptAES(encryptKey, []byte(plain))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// AuditMiddleware 记录登录用户的操作轨迹；配置了密钥时字段加密存储
func AuditMiddleware(db *gorm.DB, encryptKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取用户 ID
		var userID string
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*dummyjson.User); ok && user != nil {
				userID = user.ID.String()
			}
		}

		// 读取请求体
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		// 执行请求
		c.Next()

		// 只记录登录用户的操作
		if userID == "" {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path

		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		if encryptKey != "" {
			// 不存明文
			entry.PathEnc, _ = encryptField(encryptKey, path)
			entry.ActionEnc, _ = encryptField(encryptKey, action)
		} else {
			entry.Path = path
			entry.Action = action
		}

		_ = db.Create(&entry).Error
	}
}
