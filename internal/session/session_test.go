package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/localstore"
)

// fakeAPI 记录调用次数的假远端
type fakeAPI struct {
	loginCalls  int
	updateCalls int
	deleteCalls int
	createCalls int

	loginUser *dummyjson.User
	loginErr  error
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*dummyjson.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginUser != nil {
		return f.loginUser, nil
	}
	return &dummyjson.User{ID: "15", Username: username, Email: username + "@example.com"}, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, in dummyjson.RegisterInput) (*dummyjson.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dummyjson.User{ID: "101", Username: in.Username, Email: in.Email, FirstName: in.FirstName}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, _ dummyjson.UserID, _ map[string]interface{}) error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeAPI) DeleteUser(_ context.Context, _ dummyjson.UserID) error {
	f.deleteCalls++
	return f.deleteErr
}

func newStore(t *testing.T) (*Store, *fakeAPI, *localstore.Memory) {
	t.Helper()
	kv := localstore.NewMemory()
	api := &fakeAPI{}
	return New(kv, api), api, kv
}

// ---------- 启动恢复 ----------

// TestRestore_NoSavedUser 没有存档：初始化完成，未登录
func TestRestore_NoSavedUser(t *testing.T) {
	s, _, _ := newStore(t)
	s.Restore()

	st := s.State()
	if !st.IsInitialized {
		t.Error("IsInitialized = false, want true")
	}
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true, want false")
	}
	if st.Phase() != PhaseUnauthenticated {
		t.Errorf("phase = %v, want PhaseUnauthenticated", st.Phase())
	}
}

// TestRestore_ValidSavedUser 有效存档直接恢复会话
func TestRestore_ValidSavedUser(t *testing.T) {
	s, _, kv := newStore(t)
	saved, _ := json.Marshal(dummyjson.User{ID: "15", Username: "kminchelle", Email: "k@x.com"})
	if err := kv.Set(localstore.KeyUser, string(saved)); err != nil {
		t.Fatal(err)
	}

	s.Restore()

	st := s.State()
	if !st.IsAuthenticated {
		t.Fatal("IsAuthenticated = false, want true")
	}
	if st.User.Username != "kminchelle" {
		t.Errorf("username = %q, want kminchelle", st.User.Username)
	}
	if st.IsAdmin {
		t.Error("IsAdmin = true for non-admin saved user")
	}
}

// TestRestore_AdminSavedUser 管理员存档恢复后 isAdmin 为 true
func TestRestore_AdminSavedUser(t *testing.T) {
	s, _, kv := newStore(t)
	saved, _ := json.Marshal(dummyjson.User{ID: AdminID, Username: AdminUsername, Email: AdminEmail})
	if err := kv.Set(localstore.KeyUser, string(saved)); err != nil {
		t.Fatal(err)
	}

	s.Restore()

	if !s.IsAdmin() {
		t.Error("IsAdmin = false, want true")
	}
}

// TestRestore_CorruptedValue 损坏存档：不 panic，丢弃，标记初始化完成
func TestRestore_CorruptedValue(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `{"username":"x"}`, `{"id":5}`} {
		s, _, kv := newStore(t)
		if err := kv.Set(localstore.KeyUser, raw); err != nil {
			t.Fatal(err)
		}

		s.Restore()

		st := s.State()
		if !st.IsInitialized {
			t.Errorf("raw=%q: IsInitialized = false, want true", raw)
		}
		if st.IsAuthenticated {
			t.Errorf("raw=%q: IsAuthenticated = true, want false", raw)
		}
		if _, ok, _ := kv.Get(localstore.KeyUser); ok {
			t.Errorf("raw=%q: corrupted entry should have been discarded", raw)
		}
	}
}

// TestRestore_RunsOnce 重复调用 Restore 不再生效
func TestRestore_RunsOnce(t *testing.T) {
	s, _, kv := newStore(t)
	s.Restore()

	saved, _ := json.Marshal(dummyjson.User{ID: "15", Username: "late"})
	_ = kv.Set(localstore.KeyUser, string(saved))
	s.Restore()

	if s.IsAuthenticated() {
		t.Error("second Restore must be a no-op")
	}
}

// ---------- 登录 ----------

// TestLogin_AdminTriple 管理员三元组本地放行，不走远端
func TestLogin_AdminTriple(t *testing.T) {
	s, api, kv := newStore(t)
	s.Restore()

	user, err := s.Login(context.Background(), Credentials{
		Email:    AdminEmail,
		Username: AdminUsername,
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if api.loginCalls != 0 {
		t.Errorf("remote login calls = %d, want 0", api.loginCalls)
	}
	if !s.IsAdmin() {
		t.Error("IsAdmin = false, want true")
	}
	if user.ID != AdminID || user.FirstName != "Admin" || user.LastName != "User" {
		t.Errorf("admin user = %+v, want deterministic fixed profile", user)
	}

	// 管理员会话也要持久化
	if _, ok, _ := kv.Get(localstore.KeyUser); !ok {
		t.Error("admin session not persisted")
	}
}

// TestLogin_AdminWrongPassword 口令不对就照常走远端
func TestLogin_AdminWrongPassword(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	api.loginErr = &dummyjson.APIError{Status: 400, Message: "Invalid credentials"}

	_, err := s.Login(context.Background(), Credentials{
		Email:    AdminEmail,
		Username: AdminUsername,
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("Login() error = nil, want error")
	}
	if api.loginCalls != 1 {
		t.Errorf("remote login calls = %d, want 1", api.loginCalls)
	}
}

// TestLogin_RemoteSuccess 普通用户恰好一次远端调用并持久化
func TestLogin_RemoteSuccess(t *testing.T) {
	s, api, kv := newStore(t)
	s.Restore()

	user, err := s.Login(context.Background(), Credentials{Username: "kminchelle", Password: "0lelplR"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if api.loginCalls != 1 {
		t.Errorf("remote login calls = %d, want 1", api.loginCalls)
	}
	if s.IsAdmin() {
		t.Error("IsAdmin = true for a remote user")
	}

	raw, ok, _ := kv.Get(localstore.KeyUser)
	if !ok {
		t.Fatal("session not persisted")
	}
	var persisted dummyjson.User
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.ID != user.ID {
		t.Errorf("persisted id = %q, want %q", persisted.ID, user.ID)
	}
}

// TestLogin_RemoteFailure 失败时保持未登录，透出远端 message
func TestLogin_RemoteFailure(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	api.loginErr = &dummyjson.APIError{Status: 400, Message: "Invalid credentials"}

	_, err := s.Login(context.Background(), Credentials{Username: "nobody", Password: "nope"})
	if err == nil {
		t.Fatal("Login() error = nil, want error")
	}
	if api.loginCalls != 1 {
		t.Errorf("remote login calls = %d, want 1", api.loginCalls)
	}

	st := s.State()
	if st.IsAuthenticated {
		t.Error("IsAuthenticated = true after failed login")
	}
	if st.Err != "Invalid credentials" {
		t.Errorf("Err = %q, want remote message", st.Err)
	}
}

// TestLogin_FallbackMessage 非 APIError 用兜底文案
func TestLogin_FallbackMessage(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	api.loginErr = errors.New("network down")

	_, _ = s.Login(context.Background(), Credentials{Username: "x", Password: "y"})
	if got := s.State().Err; got != "Login failed" {
		t.Errorf("Err = %q, want %q", got, "Login failed")
	}
}

// ---------- 注册 ----------

// TestRegister_Success 注册成功视同登录
func TestRegister_Success(t *testing.T) {
	s, api, kv := newStore(t)
	s.Restore()

	user, err := s.Register(context.Background(), dummyjson.RegisterInput{
		FirstName: "Jane", LastName: "Doe", Username: "jane", Email: "jane@x.com", Password: "secret1", Age: 30,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if api.createCalls != 1 {
		t.Errorf("create calls = %d, want 1", api.createCalls)
	}
	if !s.IsAuthenticated() || s.IsAdmin() {
		t.Errorf("state after register: auth=%v admin=%v, want auth non-admin", s.IsAuthenticated(), s.IsAdmin())
	}
	if user.Username != "jane" {
		t.Errorf("username = %q, want jane", user.Username)
	}
	if _, ok, _ := kv.Get(localstore.KeyUser); !ok {
		t.Error("registered session not persisted")
	}
}

// TestRegister_Failure 失败透出 message
func TestRegister_Failure(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	api.createErr = &dummyjson.APIError{Status: 400, Message: "User already exists"}

	_, err := s.Register(context.Background(), dummyjson.RegisterInput{Username: "jane"})
	if err == nil {
		t.Fatal("Register() error = nil, want error")
	}
	if got := s.State().Err; got != "User already exists" {
		t.Errorf("Err = %q, want remote message", got)
	}
}

// ---------- 登出 ----------

// TestLogout_ClearsBothKeys 登出同时清掉 user 和 cart 两个键
func TestLogout_ClearsBothKeys(t *testing.T) {
	s, _, kv := newStore(t)
	s.Restore()
	if _, err := s.Login(context.Background(), Credentials{Username: "kminchelle", Password: "x"}); err != nil {
		t.Fatal(err)
	}
	_ = kv.Set(localstore.KeyCart, `[{"id":1,"quantity":2}]`)

	s.Logout()

	if s.IsAuthenticated() {
		t.Error("still authenticated after logout")
	}
	if _, ok, _ := kv.Get(localstore.KeyUser); ok {
		t.Error("user entry survived logout")
	}
	if _, ok, _ := kv.Get(localstore.KeyCart); ok {
		t.Error("cart entry survived logout")
	}

	// 登出后重新恢复：未登录
	fresh := New(kv, &fakeAPI{})
	fresh.Restore()
	if fresh.IsAuthenticated() {
		t.Error("fresh restore after logout should be unauthenticated")
	}
}

// ---------- 资料更新 ----------

// TestUpdateProfile_MergesFields 只合并给到的字段
func TestUpdateProfile_MergesFields(t *testing.T) {
	s, _, _ := newStore(t)
	s.Restore()
	if _, err := s.Login(context.Background(), Credentials{Username: "kminchelle", Password: "x"}); err != nil {
		t.Fatal(err)
	}

	first := "Kim"
	age := 29
	user, err := s.UpdateProfile(context.Background(), Patch{FirstName: &first, Age: &age})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if user.FirstName != "Kim" || user.Age != 29 {
		t.Errorf("merged user = %+v", user)
	}
	if user.Username != "kminchelle" {
		t.Errorf("untouched field changed: username = %q", user.Username)
	}
}

// TestUpdateProfile_RemoteFailureFallsBack 远端失败不影响本地结果
func TestUpdateProfile_RemoteFailureFallsBack(t *testing.T) {
	s, api, kv := newStore(t)
	s.Restore()
	if _, err := s.Login(context.Background(), Credentials{Username: "kminchelle", Password: "x"}); err != nil {
		t.Fatal(err)
	}
	api.updateErr = &dummyjson.APIError{Status: 500, Message: "boom"}

	first := "Kim"
	user, err := s.UpdateProfile(context.Background(), Patch{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v, want nil (never fails observably)", err)
	}
	if api.updateCalls != 1 {
		t.Errorf("remote update calls = %d, want 1", api.updateCalls)
	}
	if user.FirstName != "Kim" {
		t.Errorf("local merge lost: %+v", user)
	}

	// 合并结果也要落库
	raw, ok, _ := kv.Get(localstore.KeyUser)
	if !ok {
		t.Fatal("session not persisted")
	}
	var persisted dummyjson.User
	_ = json.Unmarshal([]byte(raw), &persisted)
	if persisted.FirstName != "Kim" {
		t.Errorf("persisted firstName = %q, want Kim", persisted.FirstName)
	}
}

// TestUpdateProfile_AdminSkipsRemote 管理员资料更新从不碰远端
func TestUpdateProfile_AdminSkipsRemote(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	if _, err := s.Login(context.Background(), Credentials{Email: AdminEmail, Username: AdminUsername, Password: "admin123"}); err != nil {
		t.Fatal(err)
	}

	first := "Root"
	if _, err := s.UpdateProfile(context.Background(), Patch{FirstName: &first}); err != nil {
		t.Fatal(err)
	}
	if api.updateCalls != 0 {
		t.Errorf("remote update calls = %d, want 0 for admin", api.updateCalls)
	}
}

// TestUpdateProfile_NotLoggedIn 没有会话时报错
func TestUpdateProfile_NotLoggedIn(t *testing.T) {
	s, _, _ := newStore(t)
	s.Restore()

	first := "x"
	if _, err := s.UpdateProfile(context.Background(), Patch{FirstName: &first}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

// ---------- 用户删除 ----------

// TestDeleteUser_DoesNotTouchSession 删除当前用户也不登出（已知问题，保持原样）
func TestDeleteUser_DoesNotTouchSession(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	user, err := s.Login(context.Background(), Credentials{Username: "kminchelle", Password: "x"})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if api.deleteCalls != 1 {
		t.Errorf("delete calls = %d, want 1", api.deleteCalls)
	}
	if !s.IsAuthenticated() {
		t.Error("session dropped by DeleteUser; original keeps it")
	}
}

// TestDeleteUser_PropagatesFailure 删除失败直接上抛
func TestDeleteUser_PropagatesFailure(t *testing.T) {
	s, api, _ := newStore(t)
	s.Restore()
	api.deleteErr = &dummyjson.APIError{Status: 404, Message: "User not found"}

	if err := s.DeleteUser(context.Background(), "999"); err == nil {
		t.Error("DeleteUser() error = nil, want error")
	}
}
