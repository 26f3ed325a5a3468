package app

import (
	"context"
	"fmt"

	"github.com/and161185/studentportal/internal/errs"
	"github.com/and161185/studentportal/internal/model"
)

// EnterPage shows p and runs its load. A protected page without a session
// lands on the login page instead and returns errs.ErrUnauthorized.
func (c *Controller) EnterPage(ctx context.Context, p model.Page) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownPage, p)
	}
	if p.Protected() && !c.state.authenticated() {
		c.enter(ctx, model.PageLogin)
		return errs.ErrUnauthorized
	}
	c.enter(ctx, p)
	return nil
}

// enter performs the page transition. Entering courses resets the tab to
// available and loads it once.
func (c *Controller) enter(ctx context.Context, p model.Page) {
	lctx, gen, done := c.state.navigate(ctx, p, model.TabAvailable)
	defer done()

	c.vp.ShowPage(p)
	switch p {
	case model.PageDashboard:
		c.loadDashboard(lctx, gen)
	case model.PageCourses:
		c.vp.ShowTab(model.TabAvailable)
		c.loadAvailable(lctx, gen)
	case model.PageGrades:
		c.loadGrades(lctx, gen)
	case model.PageProfile:
		c.loadProfile(lctx, gen)
	}
}

// EnterTab switches the courses page to tab t and runs its load.
func (c *Controller) EnterTab(ctx context.Context, t model.Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", errs.ErrUnknownTab, t)
	}
	lctx, gen, done, ok := c.state.navigateTab(ctx, t)
	if !ok {
		return errs.ErrWrongPage
	}
	defer done()

	c.vp.ShowTab(t)
	switch t {
	case model.TabAvailable:
		c.loadAvailable(lctx, gen)
	case model.TabMine:
		c.loadMine(lctx, gen)
	}
	return nil
}
