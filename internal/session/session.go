// Package session holds the one authentication session of the running
// client: restore-on-startup, login (with the hardcoded local admin),
// registration, profile updates and logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/localstore"

	"golang.org/x/crypto/bcrypt"
)

// 本地管理员账号：绕过远端认证，只有它的 isAdmin 为 true
const (
	AdminEmail    = "admin@ecommerce.com"
	AdminUsername = "admin"
	adminPassword = "admin123"
	AdminID       = "admin"
)

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// UserAPI is the slice of the remote API the auth store depends on.
type UserAPI interface {
	Login(ctx context.Context, username, password string) (*dummyjson.User, error)
	CreateUser(ctx context.Context, in dummyjson.RegisterInput) (*dummyjson.User, error)
	UpdateUser(ctx context.Context, id dummyjson.UserID, patch map[string]interface{}) error
	DeleteUser(ctx context.Context, id dummyjson.UserID) error
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Store is the auth state container. One Store exists per running client.
type Store struct {
	mu    sync.Mutex
	state State

	kv  localstore.Store
	api UserAPI

	// 明文口令只在构造时用一次，之后只保留 bcrypt 哈希
	adminHash []byte
}

func New(kv localstore.Store, api UserAPI) *Store {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost; the constant cost is valid
		panic(fmt.Sprintf("session: hash admin password: %v", err))
	}
	return &Store{
		kv:        kv,
		api:       api,
		adminHash: hash,
	}
}

// State returns a snapshot; the contained user is a copy.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Store) IsInitialized() bool { return s.State().IsInitialized }
func (s *Store) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}
func (s *Store) IsAdmin() bool { return s.State().IsAdmin }

// CurrentUser returns a copy of the logged-in user, if any.
func (s *Store) CurrentUser() (dummyjson.User, bool) {
	st := s.State()
	if st.User == nil {
		return dummyjson.User{}, false
	}
	return *st.User, true
}

// ---------- 启动恢复 ----------

// Restore reads the persisted session once at startup. A missing entry is
// normal; a malformed one is discarded. Either way the store ends up
// initialized and never reports an error to the caller.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsInitialized {
		return
	}

	raw, ok, err := s.kv.Get(localstore.KeyUser)
	if err != nil {
		log.Printf("session: read saved user: %v", err)
		s.state = reduce(s.state, initializeComplete{})
		return
	}
	if !ok {
		s.state = reduce(s.state, initializeComplete{})
		return
	}

	var user dummyjson.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !identifiable(user) {
		// 损坏或缺关键字段的旧数据：丢弃，当作没有
		_ = s.kv.Delete(localstore.KeyUser)
		s.state = reduce(s.state, initializeComplete{})
		return
	}

	s.state = reduce(s.state, loginSuccess{user: user})
	log.Printf("session: restored saved session for %s", userLabel(user))
}

// identifiable 校验持久化的用户数据是否带有必须的身份字段
func identifiable(u dummyjson.User) bool {
	return u.ID != "" && (u.Username != "" || u.Email != "")
}

func userLabel(u dummyjson.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// ---------- 登录 / 注册 ----------

// Login authenticates. The exact admin triple short-circuits locally with
// no remote call; everything else goes to the remote endpoint exactly once.
func (s *Store) Login(ctx context.Context, creds Credentials) (dummyjson.User, error) {
	if s.isAdminTriple(creds) {
		admin := dummyjson.User{
			ID:        AdminID,
			Username:  AdminUsername,
			Email:     AdminEmail,
			FirstName: "Admin",
			LastName:  "User",
		}
		s.install(admin)
		return admin, nil
	}

	user, err := s.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		s.fail(failureMessage(err, "Login failed"))
		return dummyjson.User{}, err
	}

	s.install(*user)
	return *user, nil
}

// Register creates a remote user and treats the result like a login.
func (s *Store) Register(ctx context.Context, in dummyjson.RegisterInput) (dummyjson.User, error) {
	user, err := s.api.CreateUser(ctx, in)
	if err != nil {
		s.fail(failureMessage(err, "Registration failed"))
		return dummyjson.User{}, err
	}

	s.install(*user)
	return *user, nil
}

func (s *Store) isAdminTriple(creds Credentials) bool {
	if creds.Email != AdminEmail || creds.Username != AdminUsername {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.adminHash, []byte(creds.Password)) == nil
}

// install 写入新会话并持久化
func (s *Store) install(user dummyjson.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, loginSuccess{user: user})
	s.persistLocked()
}

func (s *Store) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, loginError{message: message})
}

// persistLocked mirrors the current user into the key-value store. The
// in-memory state stays authoritative even if the write fails.
func (s *Store) persistLocked() {
	if s.state.User == nil {
		return
	}
	b, err := json.Marshal(s.state.User)
	if err != nil {
		log.Printf("session: marshal user: %v", err)
		return
	}
	if err := s.kv.Set(localstore.KeyUser, string(b)); err != nil {
		log.Printf("session: persist user: %v", err)
	}
}

// ---------- 登出 ----------

// Logout clears the session and wipes both persisted entries; logging out
// invalidates the saved cart as well.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, logoutAction{})
	if err := s.kv.Delete(localstore.KeyUser); err != nil {
		log.Printf("session: clear saved user: %v", err)
	}
	if err := s.kv.Delete(localstore.KeyCart); err != nil {
		log.Printf("session: clear saved cart: %v", err)
	}
}

// ---------- 资料更新 ----------

// UpdateProfile merges the patch into the current user and persists. For
// non-admin users the remote side is updated best-effort: a failure is
// logged and the local merge stands anyway, so callers never see it. This
// is deliberate eventual consistency, not an accident.
func (s *Store) UpdateProfile(ctx context.Context, patch Patch) (dummyjson.User, error) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return dummyjson.User{}, ErrNotAuthenticated
	}
	isAdmin := s.state.IsAdmin
	id := s.state.User.ID
	s.mu.Unlock()

	if !isAdmin {
		if fields := patch.remoteFields(); len(fields) > 0 {
			if err := s.api.UpdateUser(ctx, id, fields); err != nil {
				log.Printf("session: remote profile update failed, keeping local copy: %v", err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return dummyjson.User{}, ErrNotAuthenticated
	}
	s.state = reduce(s.state, updateProfileAction{patch: patch})
	s.persistLocked()
	return *s.state.User, nil
}

// ---------- 用户删除（管理端） ----------

// DeleteUser removes a remote user record. It does not touch the live
// session even when the deleted id is the logged-in user; the original
// behaves the same way and it is a known gap.
func (s *Store) DeleteUser(ctx context.Context, id dummyjson.UserID) error {
	return s.api.DeleteUser(ctx, id)
}

// failureMessage 优先用远端返回的 message，取不到再用兜底文案
func failureMessage(err error, fallback string) string {
	var apiErr *dummyjson.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
