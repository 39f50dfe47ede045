package store_test

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mulemobile/internal/store"
)

func loginAPI(t *testing.T, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		body, _ := io.ReadAll(r.Body)
		switch {
		case r.URL.Path == "/auth/login" && contains(body, "admin@mule.et"):
			io.WriteString(w, `{"user":{"_id":"u1","name":"Admin","email":"admin@mule.et","role":"admin"},"token":"admin-tok"}`)
		case r.URL.Path == "/auth/login" && contains(body, "sara@mule.et"):
			io.WriteString(w, `{"user":{"_id":"u2","name":"Sara","email":"sara@mule.et","role":"customer"},"token":"cust-tok"}`)
		case r.URL.Path == "/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
		case r.URL.Path == "/auth/register":
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"message":"User registered"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func contains(body []byte, s string) bool {
	return strings.Contains(string(body), s)
}

func TestAdminLoginNavigatesToAdminLanding(t *testing.T) {
	var calls int32
	s := memStorage(t)
	a := store.NewAuth(stubAPI(t, loginAPI(t, &calls)), s)

	require.NoError(t, a.Login("admin@mule.et", "secret1"))
	assert.Equal(t, store.AdminLanding, a.TakeNavigation())
	assert.Empty(t, a.TakeNavigation(), "navigation intent is one-shot")
	assert.Equal(t, "admin-tok", a.Token())

	_, ok := a.Guard(true)
	assert.True(t, ok)
}

func TestCustomerLoginHasNoNavigationIntent(t *testing.T) {
	var calls int32
	a := store.NewAuth(stubAPI(t, loginAPI(t, &calls)), memStorage(t))

	require.NoError(t, a.Login("sara@mule.et", "secret1"))
	assert.Empty(t, a.TakeNavigation())

	to, ok := a.Guard(true)
	assert.False(t, ok)
	assert.Equal(t, store.HomeRoute, to)
	_, ok = a.Guard(false)
	assert.True(t, ok)
}

func TestSessionSurvivesReloadAndLogout(t *testing.T) {
	var calls int32
	client := stubAPI(t, loginAPI(t, &calls))
	s := memStorage(t)
	require.NoError(t, store.NewAuth(client, s).Login("sara@mule.et", "secret1"))

	a := store.NewAuth(client, s)
	sess, ok := a.Session()
	require.True(t, ok)
	assert.Equal(t, "Sara", sess.Name)
	assert.Equal(t, "cust-tok", sess.Token)

	a.Logout()
	assert.Empty(t, a.Token())
	_, ok = store.NewAuth(client, s).Session()
	assert.False(t, ok)

	to, ok := a.Guard(false)
	assert.False(t, ok)
	assert.Equal(t, store.LoginRoute, to)
}

func TestFailedLoginKeepsPriorSession(t *testing.T) {
	var calls int32
	a := store.NewAuth(stubAPI(t, loginAPI(t, &calls)), memStorage(t))
	require.NoError(t, a.Login("sara@mule.et", "secret1"))

	err := a.Login("who@mule.et", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", a.LastError())
	assert.Equal(t, "cust-tok", a.Token())
}

func TestInvalidStoredSessionIsIgnored(t *testing.T) {
	s := memStorage(t)
	require.NoError(t, s.Set(store.SessionKey, `{"_id":"u1","token":"t"}`))
	_, ok := store.NewAuth(stubAPI(t, http.NotFound), s).Session()
	assert.False(t, ok)
}

func TestSignupValidatesBeforeCalling(t *testing.T) {
	var calls int32
	a := store.NewAuth(stubAPI(t, loginAPI(t, &calls)), memStorage(t))

	err := a.Signup(store.SignupInput{Name: "Sara", Email: "sara@mule.et", Password: "secret1", Confirm: "secret2"})
	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Passwords do not match.", a.LastError())
	assert.Zero(t, atomic.LoadInt32(&calls))

	err = a.Signup(store.SignupInput{Name: "Sara", Email: "sara@mule.et"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a password.", a.LastError())
	assert.Zero(t, atomic.LoadInt32(&calls))

	// letters-only passwords and foreign phone numbers are the API's call
	require.NoError(t, a.Signup(store.SignupInput{Name: "Sara", Email: "sara@mule.et", Password: "secretpw", Confirm: "secretpw", Phone: "+1 415 555 0100"}))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	_, ok := a.Session()
	assert.False(t, ok, "signup does not log in")
	assert.Empty(t, a.LastError())
}
