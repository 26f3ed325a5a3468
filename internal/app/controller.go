// Package app is the portal client controller: the session and navigation
// state machines and the per-page data orchestration between the portal
// service and a ViewPort.
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/and161185/studentportal/internal/errs"
	"github.com/and161185/studentportal/internal/model"
	"github.com/and161185/studentportal/internal/service"
)

// User-facing notification texts.
const (
	MsgLoginOK    = "Login successful!"
	MsgRegisterOK = "Account created successfully! Please login."
	MsgLogoutOK   = "Logged out successfully"
	MsgEnrollOK   = "Enrolled successfully!"
	MsgProfileOK  = "Profile updated successfully!"
)

// Controller owns the application state and sequences every user action.
// Methods block until their remote calls finish and are safe to call from
// several goroutines; overlapping navigations resolve to the latest one.
type Controller struct {
	svc   service.PortalService
	vp    ViewPort
	log   *zap.Logger
	state *State

	restoreOnce sync.Once
}

// New constructs a Controller in the signed-out state on the login page.
func New(svc service.PortalService, vp ViewPort, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{svc: svc, vp: vp, log: log, state: newState()}
}

// State exposes the application state for reading.
func (c *Controller) State() *State { return c.state }

// Close cancels every in-flight load.
func (c *Controller) Close() { c.state.close() }

// actionFailed surfaces a failed user action.
func (c *Controller) actionFailed(op string, err error) {
	c.log.Info("action failed", zap.String("op", op), zap.Error(err))
	c.vp.Notify(NotifyError, errs.MessageOf(err))
}

// loadFailed reports a failed passive load on the diagnostic channel only.
func (c *Controller) loadFailed(ctx context.Context, load string, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		c.log.Debug("load cancelled", zap.String("load", load))
		return
	}
	c.log.Warn("load failed", zap.String("load", load), zap.Error(err))
}

// region is the part of the screen a load renders into. tab is empty for
// regions outside the courses page.
type region struct {
	name string
	page model.Page
	tab  model.Tab
}

var (
	regionDashboard = region{name: "dashboard", page: model.PageDashboard}
	regionAvailable = region{name: "available_courses", page: model.PageCourses, tab: model.TabAvailable}
	regionMine      = region{name: "my_courses", page: model.PageCourses, tab: model.TabMine}
	regionGrades    = region{name: "grades", page: model.PageGrades}
	regionProfile   = region{name: "profile", page: model.PageProfile}
)

// apply renders a load result unless a newer navigation superseded it or its
// region is not on screen.
func (c *Controller) apply(gen uint64, r region, render func()) {
	current, shown := c.state.showing(gen, r)
	if !current {
		c.log.Debug("stale load dropped", zap.String("load", r.name), zap.Uint64("gen", gen))
		return
	}
	if !shown {
		c.log.Debug("hidden region skipped", zap.String("load", r.name))
		return
	}
	render()
}
