package app

import (
	"github.com/and161185/studentportal/internal/model"
	"github.com/and161185/studentportal/internal/view"
)

// NotifyKind selects the style of a user notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
	NotifyInfo    NotifyKind = "info"
)

// ViewPort renders view-models and user notifications. The controller calls
// it from whichever goroutine runs the operation; implementations that are
// not safe for concurrent use must serialize internally.
type ViewPort interface {
	// SetSession shows the navigation bar and greeting for u, or hides them when u is nil.
	SetSession(u *model.User)
	// ShowPage hides the current page and shows p.
	ShowPage(p model.Page)
	// ShowTab hides all course panes, shows t and marks its control active.
	ShowTab(t model.Tab)

	RenderDashboard(v view.Dashboard)
	RenderAvailableCourses(cards []view.CourseCard)
	RenderMyCourses(cards []view.EnrollmentCard)
	RenderGrades(v view.Grades)
	RenderProfile(v view.ProfileForm)

	// Notify shows a transient message.
	Notify(kind NotifyKind, msg string)
}
