package session

import "github.com/ayeshaishere/admin-dashboard/internal/dummyjson"

// Phase is the coarse lifecycle of the one client session.
type Phase int

const (
	// PhaseIndeterminate 启动恢复还没完成，受保护路由此时不能做判定
	PhaseIndeterminate Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
)

// State is the full auth store state. User is nil unless authenticated;
// Err holds the last login/registration failure message.
type State struct {
	User            *dummyjson.User
	IsAuthenticated bool
	IsAdmin         bool
	IsInitialized   bool
	Err             string
}

func (s State) Phase() Phase {
	if !s.IsInitialized {
		return PhaseIndeterminate
	}
	if s.IsAuthenticated {
		return PhaseAuthenticated
	}
	return PhaseUnauthenticated
}

// ---------- transitions ----------

// action is the closed set of state transitions. reduce is pure; all side
// effects (persistence, network) happen in the store around it.
type action interface {
	isAction()
}

type loginSuccess struct {
	user dummyjson.User
}

type loginError struct {
	message string
}

type logoutAction struct{}

type updateProfileAction struct {
	patch Patch
}

type initializeComplete struct{}

func (loginSuccess) isAction()        {}
func (loginError) isAction()          {}
func (logoutAction) isAction()        {}
func (updateProfileAction) isAction() {}
func (initializeComplete) isAction()  {}

func reduce(s State, a action) State {
	switch a := a.(type) {
	case loginSuccess:
		u := a.user
		s.User = &u
		s.IsAuthenticated = true
		s.IsAdmin = u.Email == AdminEmail
		s.IsInitialized = true
		s.Err = ""
	case loginError:
		s.Err = a.message
		s.IsInitialized = true
	case logoutAction:
		s.User = nil
		s.IsAuthenticated = false
		s.IsAdmin = false
		s.IsInitialized = true
		s.Err = ""
	case updateProfileAction:
		// 数据变化，状态不变
		if s.User != nil {
			u := a.patch.apply(*s.User)
			s.User = &u
			s.IsAdmin = u.Email == AdminEmail
		}
	case initializeComplete:
		s.IsInitialized = true
	}
	return s
}

// Patch is a partial profile update; nil fields are left untouched.
type Patch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Age       *int    `json:"age"`
}

func (p Patch) apply(u dummyjson.User) dummyjson.User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	return u
}

// remoteFields builds the partial body sent to the remote user endpoint.
func (p Patch) remoteFields() map[string]interface{} {
	m := make(map[string]interface{})
	if p.FirstName != nil {
		m["firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		m["lastName"] = *p.LastName
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Age != nil {
		m["age"] = *p.Age
	}
	return m
}
