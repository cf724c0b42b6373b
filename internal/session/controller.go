package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/me/adminctl/pkg/adminapi"
	"github.com/me/adminctl/pkg/model"
)

// DefaultSessionTTL is the session lifetime used to arm the expiry timer
// after a credential is acquired or renewed.
const DefaultSessionTTL = 5 * time.Minute

// ErrActionInFlight is returned when a session-mutating action is invoked
// while another one has not finished yet. Actions are serialized by a
// busy-flag discipline rather than queued.
var ErrActionInFlight = errors.New("another session action is in flight")

// State is a snapshot of the controller's observable state.
// Authenticated is derived solely from credential presence.
type State struct {
	Authenticated bool
	User          *model.User
	PromptPending bool
}

// Controller is the authentication state machine. It orchestrates the API
// client, the store, and the expiry timer, and publishes state snapshots
// to subscribers on every transition.
//
// Subscribers are invoked synchronously and must not call back into
// session-mutating methods.
type Controller struct {
	api    *adminapi.Client
	store  *Store
	timer  *ExpiryTimer
	logger *slog.Logger
	ttl    time.Duration

	// actionMu serializes Login, Logout, ContinueSession, CancelSession,
	// and Restore. TryLock keeps concurrent invocations from interleaving
	// instead of blocking them.
	actionMu sync.Mutex

	stateMu       sync.Mutex
	promptPending bool
	subs          map[int]func(State)
	nextSub       int
}

// Option configures a Controller.
type Option func(*Controller)

// WithSessionTTL overrides the timer duration used after credential
// acquisition and renewal.
func WithSessionTTL(d time.Duration) Option {
	return func(c *Controller) { c.ttl = d }
}

// NewController wires the controller to its collaborators. It registers
// the timer callback and the client's session-expired hook exactly once.
func NewController(api *adminapi.Client, store *Store, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Controller{
		api:    api,
		store:  store,
		logger: logger.With("component", "session-controller"),
		ttl:    DefaultSessionTTL,
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.timer = NewExpiryTimer(c.handleExpiry)
	api.OnSessionExpired(c.handleRemoteExpiry)
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.stateMu.Lock()
	prompt := c.promptPending
	c.stateMu.Unlock()

	return State{
		Authenticated: c.store.HasCredential(),
		User:          c.store.User(),
		PromptPending: prompt,
	}
}

// Subscribe registers fn for state notifications and returns a cancel
// function.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.stateMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.stateMu.Unlock()

	return func() {
		c.stateMu.Lock()
		delete(c.subs, id)
		c.stateMu.Unlock()
	}
}

// Restore resolves the initial state from the persisted store, once per
// process start. A stored pair is validated against the server before the
// session is considered live; validation failure clears the store.
//
// The timer restarts at the full session lifetime even when the stored
// credential is partway through its window.
// TODO: confirm whether restore should arm with the credential's true
// remaining time instead.
func (c *Controller) Restore(ctx context.Context) error {
	if !c.actionMu.TryLock() {
		return ErrActionInFlight
	}
	defer c.actionMu.Unlock()

	cred, user, ok := c.store.Load()
	if !ok {
		return nil
	}

	if _, err := c.api.Check(ctx); err != nil {
		c.logger.Warn("stored token rejected, clearing session",
			"user", user.Email, "error", err)
		c.store.Clear()
		c.timer.Disarm()
		c.setPrompt(false)
		c.notify()
		return nil
	}

	c.logger.Debug("session restored", "user", user.Email, "expires_at", cred.ExpiresAt)
	c.timer.Arm(c.ttl)
	c.notify()
	return nil
}

// Login exchanges credentials for a session, persists the resulting
// credential and user pair, and arms the expiry timer. API errors
// propagate unchanged; a failed login leaves state untouched.
func (c *Controller) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	if !c.actionMu.TryLock() {
		return nil, ErrActionInFlight
	}
	defer c.actionMu.Unlock()

	resp, err := c.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	cred, err := resp.Credential()
	if err != nil {
		return nil, err
	}
	if err := c.store.Save(cred, resp.User); err != nil {
		return nil, err
	}

	c.timer.Arm(c.ttl)
	c.setPrompt(false)
	c.notify()
	c.logger.Info("logged in", "user", resp.User.Email)
	return resp, nil
}

// Register performs the account-creation request. It never changes
// session state; the new account is not logged in.
func (c *Controller) Register(ctx context.Context, form model.UserForm) (*model.AuthResponse, error) {
	return c.api.Register(ctx, form)
}

// Logout ends the session. The remote invalidation is best-effort: its
// failure is logged and swallowed, local cleanup always completes.
func (c *Controller) Logout(ctx context.Context) error {
	if !c.actionMu.TryLock() {
		return ErrActionInFlight
	}
	defer c.actionMu.Unlock()

	c.logoutLocked(ctx)
	return nil
}

// CancelSession answers the expiry prompt with "end the session": the
// prompt is cleared, then a normal logout runs.
func (c *Controller) CancelSession(ctx context.Context) error {
	if !c.actionMu.TryLock() {
		return ErrActionInFlight
	}
	defer c.actionMu.Unlock()

	c.setPrompt(false)
	c.logoutLocked(ctx)
	return nil
}

// ContinueSession answers the expiry prompt with "keep going": the
// credential is renewed and the timer rearmed. Renewal failure tears the
// session down and the underlying error propagates to the caller.
func (c *Controller) ContinueSession(ctx context.Context) error {
	if !c.actionMu.TryLock() {
		return ErrActionInFlight
	}
	defer c.actionMu.Unlock()

	resp, err := c.api.Refresh(ctx)
	if err != nil {
		c.teardownLocked()
		return err
	}

	cred, err := resp.Credential()
	if err != nil {
		c.teardownLocked()
		return err
	}

	// A 401 on a concurrent request may have cleared the store while the
	// refresh was in flight; its late success must not resurrect the
	// session.
	if !c.store.HasCredential() {
		c.teardownLocked()
		return adminapi.ErrSessionExpired
	}

	user := resp.User
	if user == nil {
		user = c.store.User()
	}
	if err := c.store.Save(cred, user); err != nil {
		c.teardownLocked()
		return err
	}

	c.timer.Arm(c.ttl)
	c.setPrompt(false)
	c.notify()
	c.logger.Debug("session renewed", "expires_at", cred.ExpiresAt)
	return nil
}

// logoutLocked runs the logout effects. Caller holds actionMu.
func (c *Controller) logoutLocked(ctx context.Context) {
	if c.store.HasCredential() {
		if _, err := c.api.Logout(ctx); err != nil && !adminapi.IsSessionExpired(err) {
			c.logger.Warn("remote logout failed", "error", err)
		}
	}
	c.teardownLocked()
	c.logger.Info("logged out")
}

// teardownLocked clears all local session state. Caller holds actionMu.
func (c *Controller) teardownLocked() {
	c.store.Clear()
	c.timer.Disarm()
	c.setPrompt(false)
	c.notify()
}

// handleExpiry is the timer callback. Firing while another action holds
// the busy flag is a no-op; the action rearms or disarms the timer itself.
func (c *Controller) handleExpiry() {
	if !c.actionMu.TryLock() {
		return
	}
	defer c.actionMu.Unlock()

	if !c.store.HasCredential() {
		return
	}

	c.logger.Info("session about to expire, awaiting decision")
	c.setPrompt(true)
	c.notify()
}

// handleRemoteExpiry runs after the API client detected a 401 and cleared
// the store. It must not take actionMu: the rejected request may have
// been issued by an action that still holds it.
func (c *Controller) handleRemoteExpiry() {
	c.timer.Disarm()
	c.setPrompt(false)
	c.notify()
}

func (c *Controller) setPrompt(v bool) {
	c.stateMu.Lock()
	c.promptPending = v
	c.stateMu.Unlock()
}

// notify delivers the current state to all subscribers.
func (c *Controller) notify() {
	state := c.State()

	c.stateMu.Lock()
	fns := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.stateMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
