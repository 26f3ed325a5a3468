package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
	"github.com/and161185/studentportal/internal/view"
)

// loadDashboard fetches the profile and the enrollment list concurrently.
func (c *Controller) loadDashboard(ctx context.Context, gen uint64) {
	var (
		profile     model.Profile
		enrollments []model.Enrollment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = c.svc.Profile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		enrollments, err = c.svc.MyCourses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.loadFailed(ctx, regionDashboard.name, err)
		return
	}
	c.apply(gen, regionDashboard, func() {
		c.vp.RenderDashboard(view.BuildDashboard(profile, enrollments))
	})
}

func (c *Controller) loadAvailable(ctx context.Context, gen uint64) {
	courses, err := c.svc.Courses(ctx)
	if err != nil {
		c.loadFailed(ctx, regionAvailable.name, err)
		return
	}
	c.apply(gen, regionAvailable, func() {
		c.vp.RenderAvailableCourses(view.BuildCourseCards(courses))
	})
}

func (c *Controller) loadMine(ctx context.Context, gen uint64) {
	enrollments, err := c.svc.MyCourses(ctx)
	if err != nil {
		c.loadFailed(ctx, regionMine.name, err)
		return
	}
	c.apply(gen, regionMine, func() {
		c.vp.RenderMyCourses(view.BuildEnrollmentCards(enrollments))
	})
}

func (c *Controller) loadGrades(ctx context.Context, gen uint64) {
	report, err := c.svc.MyGrades(ctx)
	if err != nil {
		c.loadFailed(ctx, regionGrades.name, err)
		return
	}
	c.apply(gen, regionGrades, func() {
		c.vp.RenderGrades(view.BuildGrades(report))
	})
}

func (c *Controller) loadProfile(ctx context.Context, gen uint64) {
	profile, err := c.svc.Profile(ctx)
	if err != nil {
		c.loadFailed(ctx, regionProfile.name, err)
		return
	}
	c.apply(gen, regionProfile, func() {
		c.vp.RenderProfile(view.BuildProfileForm(profile))
	})
}

// Enroll enrolls in a course; on success the catalog and the dashboard
// summary are reloaded, on failure nothing is. Only the reloaded region that
// is on screen is rendered.
func (c *Controller) Enroll(ctx context.Context, req form.EnrollRequest) error {
	if err := c.svc.Enroll(ctx, req.CourseID); err != nil {
		c.actionFailed("enroll", err)
		return err
	}
	c.log.Info("enrolled", zap.Int("course_id", req.CourseID))
	c.vp.Notify(NotifySuccess, MsgEnrollOK)

	lctx, gen, done := c.state.begin(ctx)
	defer done()
	c.loadAvailable(lctx, gen)
	c.loadDashboard(lctx, gen)
	return nil
}

// UpdateProfile stores edited profile fields and refreshes the dashboard
// summary, rendered only while the dashboard is shown.
func (c *Controller) UpdateProfile(ctx context.Context, req form.ProfileUpdate) error {
	if err := c.svc.UpdateProfile(ctx, req); err != nil {
		c.actionFailed("update_profile", err)
		return err
	}
	c.vp.Notify(NotifySuccess, MsgProfileOK)

	lctx, gen, done := c.state.begin(ctx)
	defer done()
	c.loadDashboard(lctx, gen)
	return nil
}
