package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/ayeshaishere/admin-dashboard/internal/session"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验 JWT 并把当前会话用户放进 context。
// 会话恢复没完成前不做任何准入判定，直接让前端稍后重试。
func AuthMiddleware(jwtSecret string, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsInitialized() {
			util.Error(c, http.StatusServiceUnavailable, util.CodeServerErr, "Session is still loading, try again")
			c.Abort()
			return
		}

		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) URL 查询参数 ?token=xxx（用于下载等无法自定义 Header 的场景）
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) Cookie shop_token
		if tokenStr == "" {
			if cookie, err := c.Cookie("shop_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Session expired, please log in again")
			c.Abort()
			return
		}

		// token 必须对应当前唯一的活动会话
		user, ok := sessions.CurrentUser()
		if !ok || user.ID.String() != claims.UserID {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}

// AdminMiddleware 管理端路由：必须是管理员会话
func AdminMiddleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAdmin() {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
