// Package session is the client side of identity: sign in, sign up and sign
// out against the server, with the access token kept in local state.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/convert"
	"github.com/and161185/wodcal/internal/localstate"
)

// Persister keeps the session between runs. Implemented by *localstate.State.
type Persister interface {
	Session() (localstate.Session, bool, error)
	SetSession(localstate.Session) error
	ClearSession() error
}

// User is the signed-in identity.
type User struct {
	ID    string
	Email string
}

// Listener is notified on every sign-in and sign-out. signedIn is false
// after a sign-out, with u holding the user that left.
type Listener func(u User, signedIn bool)

// Manager owns the current session.
type Manager struct {
	mu        sync.Mutex
	cl        wodv1.WodCalendarClient
	state     Persister
	log       *zap.Logger
	now       func() time.Time
	cur       *localstate.Session
	listeners map[int]Listener
	nextID    int
}

// NewManager restores a stored session if it is still valid.
func NewManager(cl wodv1.WodCalendarClient, state Persister, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{cl: cl, state: state, log: log, now: time.Now, listeners: map[int]Listener{}}
	m.restore()
	return m
}

func (m *Manager) restore() {
	sess, ok, err := m.state.Session()
	if err != nil {
		m.log.Warn("read stored session failed", zap.Error(err))
		return
	}
	if ok && sess.Valid(m.now()) {
		m.cur = &sess
	}
}

// OnChange registers l and returns a function that removes it.
func (m *Manager) OnChange(l Listener) (remove func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(u User, signedIn bool) {
	m.mu.Lock()
	ls := make([]Listener, 0, len(m.listeners))
	for i := 0; i < m.nextID; i++ {
		if l, ok := m.listeners[i]; ok {
			ls = append(ls, l)
		}
	}
	m.mu.Unlock()
	for _, l := range ls {
		l(u, signedIn)
	}
}

// Current returns the signed-in user, if any.
func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil || !m.cur.Valid(m.now()) {
		return User{}, false
	}
	return User{ID: m.cur.UserID, Email: m.cur.Email}, true
}

// Token returns the access token of the signed-in user.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil || !m.cur.Valid(m.now()) {
		return "", false
	}
	return m.cur.Token, true
}

// ExpiresAt is the expiry of the current token, zero when signed out.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return time.Time{}
	}
	return m.cur.ExpiresAt
}

// SignIn authenticates and stores the session. Listeners run after the
// session is stored.
func (m *Manager) SignIn(ctx context.Context, email, password string) (User, error) {
	resp, err := m.cl.Login(ctx, &wodv1.LoginRequest{Email: email, Password: password})
	if err != nil {
		return User{}, convert.FromStatus(err)
	}
	sess := localstate.Session{
		UserID:    resp.GetUserID(),
		Email:     resp.GetEmail(),
		Token:     resp.GetAccessToken(),
		ExpiresAt: convert.FromWireLoginExpiry(resp),
	}
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = tokenExpiry(sess.Token)
	}
	if err := m.state.SetSession(sess); err != nil {
		return User{}, fmt.Errorf("store session: %w", err)
	}
	m.mu.Lock()
	m.cur = &sess
	m.mu.Unlock()

	u := User{ID: sess.UserID, Email: sess.Email}
	m.log.Info("signed in", zap.String("user", u.ID))
	m.notify(u, true)
	return u, nil
}

// SignUp registers an account and signs into it.
func (m *Manager) SignUp(ctx context.Context, email, password string) (User, error) {
	if _, err := m.cl.Register(ctx, &wodv1.RegisterRequest{Email: email, Password: password}); err != nil {
		return User{}, convert.FromStatus(err)
	}
	return m.SignIn(ctx, email, password)
}

// SignOut forgets the session. Signing out while signed out is a no-op.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	cur := m.cur
	m.cur = nil
	m.mu.Unlock()

	if err := m.state.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if cur != nil {
		m.notify(User{ID: cur.UserID, Email: cur.Email}, false)
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server is the one that checks it.
func tokenExpiry(tok string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
