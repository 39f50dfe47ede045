package store

import (
	"errors"
	"strings"
	"sync"

	"mulemobile/internal/api"
	"mulemobile/internal/domain"
	"mulemobile/internal/localstore"
	"mulemobile/internal/log"
	"mulemobile/internal/validate"
)

const (
	SessionKey   = "user"
	AdminLanding = "/admin"
	LoginRoute   = "/login"
	HomeRoute    = "/"
)

type AuthAPI interface {
	Login(email, password string) (domain.Session, error)
	Register(in api.RegisterInput) error
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
	Phone    string
}

// ValidationError is a client-side check that failed before any call was made.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// Auth is the session store of one browser session.
type Auth struct {
	mu      sync.Mutex
	api     AuthAPI
	storage Storage
	session *domain.Session
	lastErr string
	nav     string
}

// NewAuth rehydrates the session from storage. Anything unreadable or missing
// identity fields counts as logged out.
func NewAuth(a AuthAPI, s Storage) *Auth {
	st := &Auth{api: a, storage: s}
	raw, err := s.Get(SessionKey)
	switch {
	case errors.Is(err, localstore.ErrNoKey):
	case err != nil:
		log.Error(nil, "auth.load.fail", err, nil)
	default:
		var sess domain.Session
		if err := json.UnmarshalFromString(raw, &sess); err != nil || !sess.Valid() {
			log.Warn(nil, "auth.load.invalid", nil)
			break
		}
		st.session = &sess
	}
	return st
}

// Login authenticates and persists the session. On failure any prior session
// is left as it was.
func (a *Auth) Login(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return a.fail(&ValidationError{Message: "Email and password are required"})
	}
	sess, err := a.api.Login(email, password)
	if err != nil {
		return a.fail(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = &sess
	a.lastErr = ""
	a.nav = ""
	if sess.IsAdmin() {
		a.nav = AdminLanding
	}
	raw, err := json.MarshalToString(sess)
	if err == nil {
		err = a.storage.Set(SessionKey, raw)
	}
	if err != nil {
		log.Error(nil, "auth.persist.fail", err, map[string]any{"user_id": sess.ID})
	}
	return nil
}

// Signup registers an account. It never establishes a session.
func (a *Auth) Signup(in SignupInput) error {
	name, ok := validate.Name(in.Name)
	if !ok {
		return a.fail(&ValidationError{Message: "Please enter your name."})
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return a.fail(&ValidationError{Message: "Please enter a valid email address."})
	}
	if !validate.Password(in.Password) {
		return a.fail(&ValidationError{Message: "Please enter a password."})
	}
	if in.Password != in.Confirm {
		return a.fail(&ValidationError{Message: "Passwords do not match."})
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return a.fail(&ValidationError{Message: "Phone number is too long."})
	}
	if err := a.api.Register(api.RegisterInput{Name: name, Email: email, Password: in.Password, Phone: phone}); err != nil {
		return a.fail(err)
	}
	a.mu.Lock()
	a.lastErr = ""
	a.mu.Unlock()
	return nil
}

// Logout clears the session unconditionally.
func (a *Auth) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
	a.nav = ""
	if err := a.storage.Remove(SessionKey); err != nil {
		log.Error(nil, "auth.logout.storage_fail", err, nil)
	}
}

func (a *Auth) Session() (domain.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return domain.Session{}, false
	}
	return *a.session, true
}

func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ""
	}
	return a.session.Token
}

func (a *Auth) LastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// TakeNavigation returns the pending post-login navigation target once.
func (a *Auth) TakeNavigation() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	nav := a.nav
	a.nav = ""
	return nav
}

// Guard decides access to a guarded route. It returns the redirect target
// and false when access is denied.
func (a *Auth) Guard(requireAdmin bool) (string, bool) {
	sess, ok := a.Session()
	switch {
	case !ok:
		return LoginRoute, false
	case requireAdmin && !sess.IsAdmin():
		return HomeRoute, false
	}
	return "", true
}

func (a *Auth) fail(err error) error {
	a.mu.Lock()
	a.lastErr = err.Error()
	a.mu.Unlock()
	return err
}
