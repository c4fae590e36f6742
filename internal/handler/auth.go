package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayeshaishere/admin-dashboard/internal/cart"
	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/session"
	"github.com/ayeshaishere/admin-dashboard/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责登录/注册/登出相关接口
type AuthHandler struct {
	Sessions  *session.Store
	Cart      *cart.Store
	JWTSecret string
	TokenTTL  time.Duration

	// 忘记密码纯属模拟：固定等待后总是报成功
	ResetDelay time.Duration
}

// NewAuthHandler 构造函数
func NewAuthHandler(sessions *session.Store, cartStore *cart.Store, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Sessions:   sessions,
		Cart:       cartStore,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		ResetDelay: time.Second,
	}
}

// ---------- 登录 ----------

func (h *AuthHandler) Login(c *gin.Context) {
	var creds session.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username and password are required")
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.TrimSpace(creds.Email)

	user, err := h.Sessions.Login(c.Request.Context(), creds)
	if err != nil {
		// 失败文案已经写进了会话状态
		msg := h.Sessions.State().Err
		if msg == "" {
			msg = "Login failed"
		}
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, msg)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID.String(), h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"token":   token,
		"user":    user,
		"isAdmin": h.Sessions.IsAdmin(),
	})
}

// ---------- 注册 ----------

type registerReq struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Age       int    `json:"age" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	// 与原注册表单相同的校验规则
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateAge(req.Age); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	user, err := h.Sessions.Register(c.Request.Context(), dummyjson.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Age:       req.Age,
	})
	if err != nil {
		msg := h.Sessions.State().Err
		if msg == "" {
			msg = "Registration failed"
		}
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, msg)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID.String(), h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  user,
	})
}

// ---------- 登出 ----------

// Logout 清掉会话和购物车；两个持久化键一起删
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cart.Clear()
	h.Sessions.Logout()

	util.Success(c, util.Response{
		"message": "Logged out",
	})
}

// ---------- 当前用户 ----------

// GetMe 返回当前登录用户信息（需要经过 AuthMiddleware）
func (h *AuthHandler) GetMe(c *gin.Context) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
		return
	}
	user, ok := v.(*dummyjson.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Not logged in")
		return
	}

	util.Success(c, util.Response{
		"user":    user,
		"isAdmin": h.Sessions.IsAdmin(),
	})
}

// ---------- 忘记密码（模拟） ----------

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Email is required")
		return
	}
	if err := util.ValidateEmail(strings.TrimSpace(req.Email)); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// 原前端固定等 1 秒再报成功，没有任何真实发信
	select {
	case <-time.After(h.ResetDelay):
	case <-c.Request.Context().Done():
		return
	}

	util.Success(c, util.Response{
		"message": "Password reset instructions have been sent to your email",
	})
}

var errNoSession = errors.New("no current user in context")

// currentUser 从 gin context 里取出 AuthMiddleware 放进来的用户
func currentUser(c *gin.Context) (*dummyjson.User, error) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, errNoSession
	}
	user, ok := v.(*dummyjson.User)
	if !ok || user == nil {
		return nil, errNoSession
	}
	return user, nil
}
