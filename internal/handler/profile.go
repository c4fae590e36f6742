package handler

import (
	"net/http"
	"strings"

	"github.com/ayeshaishere/admin-dashboard/internal/session"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

// UpdateProfile 更新当前用户资料。本地合并总会成功；非管理员会尽力同步
// 远端，同步失败只记日志，不回滚也不报错。
func UpdateProfile(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := currentUser(c); err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
			return
		}

		var patch session.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid profile data")
			return
		}

		if patch.Email != nil {
			trimmed := strings.TrimSpace(*patch.Email)
			patch.Email = &trimmed
			if err := util.ValidateEmail(trimmed); err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
				return
			}
		}

		user, err := sessions.UpdateProfile(c.Request.Context(), patch)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
			return
		}

		util.Success(c, util.Response{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}
