package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
)

// Login authenticates; on success the session is set and the dashboard shown.
// A failure leaves session and page untouched.
func (c *Controller) Login(ctx context.Context, req form.LoginRequest) error {
	u, err := c.svc.Login(ctx, req)
	if err != nil {
		c.actionFailed("login", err)
		return err
	}
	c.signIn(ctx, &u)
	c.vp.Notify(NotifySuccess, MsgLoginOK)
	return nil
}

// Register creates an account and returns to the login page.
func (c *Controller) Register(ctx context.Context, req form.RegisterRequest) error {
	if err := c.svc.Register(ctx, req); err != nil {
		c.actionFailed("register", err)
		return err
	}
	c.enter(ctx, model.PageLogin)
	c.vp.Notify(NotifySuccess, MsgRegisterOK)
	return nil
}

// Logout ends the session. When the service call fails the local session is
// kept, so the client never claims a sign-out the service did not perform.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.svc.Logout(ctx); err != nil {
		c.actionFailed("logout", err)
		return err
	}
	c.signOut(ctx)
	c.vp.Notify(NotifySuccess, MsgLogoutOK)
	return nil
}

// Start shows the signed-out login page and then tries to restore a session.
// It reports whether a session was restored.
func (c *Controller) Start(ctx context.Context) bool {
	c.vp.SetSession(nil)
	c.enter(ctx, model.PageLogin)
	return c.Restore(ctx)
}

// Restore asks the service who is signed in. It runs once per Controller;
// later calls only report the current session. A failure is the expected
// signed-out outcome and is never shown to the user.
func (c *Controller) Restore(ctx context.Context) bool {
	c.restoreOnce.Do(func() {
		u, err := c.svc.Me(ctx)
		if err != nil {
			c.log.Info("no session to restore", zap.Error(err))
			c.signOut(ctx)
			return
		}
		c.log.Info("session restored", zap.String("username", u.Username))
		c.signIn(ctx, &u)
	})
	return c.state.authenticated()
}

func (c *Controller) signIn(ctx context.Context, u *model.User) {
	c.state.setSession(u)
	c.vp.SetSession(c.state.Session())
	c.enter(ctx, model.PageDashboard)
}

func (c *Controller) signOut(ctx context.Context) {
	c.state.setSession(nil)
	c.vp.SetSession(nil)
	c.enter(ctx, model.PageLogin)
}
