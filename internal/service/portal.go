// Package service exposes the portal endpoints as typed operations.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/and161185/studentportal/internal/errs"
	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
)

// Endpoint paths, relative to the API mount point.
const (
	PathLogin     = "/auth/login"
	PathRegister  = "/auth/register"
	PathLogout    = "/auth/logout"
	PathMe        = "/auth/me"
	PathProfile   = "/students/profile"
	PathCourses   = "/courses/"
	PathMyCourses = "/courses/my-courses"
	PathMyGrades  = "/grades/my-grades"
)

// PathEnroll returns the enroll endpoint for a course.
func PathEnroll(courseID int) string {
	return "/courses/" + strconv.Itoa(courseID) + "/enroll"
}

// Sender performs one JSON call against the service (implemented by gateway.Gateway).
type Sender interface {
	Send(ctx context.Context, method, path string, body any) ([]byte, error)
}

// PortalService defines the remote operations the client controller uses.
type PortalService interface {
	// Login authenticates and returns the session user.
	Login(ctx context.Context, req form.LoginRequest) (model.User, error)
	// Register creates a student account.
	Register(ctx context.Context, req form.RegisterRequest) error
	// Logout ends the server session.
	Logout(ctx context.Context) error
	// Me returns the user of the current server session.
	Me(ctx context.Context) (model.User, error)
	// Profile returns the student profile and summary.
	Profile(ctx context.Context) (model.Profile, error)
	// UpdateProfile stores edited profile fields.
	UpdateProfile(ctx context.Context, req form.ProfileUpdate) error
	// Courses returns the catalog in service order.
	Courses(ctx context.Context) ([]model.Course, error)
	// MyCourses returns the session user's enrollments in service order.
	MyCourses(ctx context.Context) ([]model.Enrollment, error)
	// Enroll enrolls the session user in a course.
	Enroll(ctx context.Context, courseID int) error
	// MyGrades returns the grade report grouped by course code in service order.
	MyGrades(ctx context.Context) (model.GradeReport, error)
}

// PortalServiceImpl implements PortalService on top of a Sender.
type PortalServiceImpl struct {
	gw Sender
}

// NewPortalService constructs PortalService on top of a Sender.
func NewPortalService(gw Sender) *PortalServiceImpl {
	return &PortalServiceImpl{gw: gw}
}

type userEnvelope struct {
	User *model.User `json:"user"`
}

// Login posts credentials and returns the user from the {user} envelope.
func (s *PortalServiceImpl) Login(ctx context.Context, req form.LoginRequest) (model.User, error) {
	return s.sessionUser(ctx, http.MethodPost, PathLogin, req)
}

// Me returns the user bound to the current session cookie.
func (s *PortalServiceImpl) Me(ctx context.Context) (model.User, error) {
	return s.sessionUser(ctx, http.MethodGet, PathMe, nil)
}

func (s *PortalServiceImpl) sessionUser(ctx context.Context, method, path string, body any) (model.User, error) {
	data, err := s.gw.Send(ctx, method, path, body)
	if err != nil {
		return model.User{}, err
	}
	var env userEnvelope
	if err := decode(data, &env); err != nil {
		return model.User{}, err
	}
	if env.User == nil {
		return model.User{}, decodeErr(fmt.Errorf("%s: response has no user", path))
	}
	return *env.User, nil
}

// Register posts the registration payload.
func (s *PortalServiceImpl) Register(ctx context.Context, req form.RegisterRequest) error {
	_, err := s.gw.Send(ctx, http.MethodPost, PathRegister, req)
	return err
}

// Logout ends the server session.
func (s *PortalServiceImpl) Logout(ctx context.Context) error {
	_, err := s.gw.Send(ctx, http.MethodPost, PathLogout, nil)
	return err
}

// Profile fetches the student profile.
func (s *PortalServiceImpl) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	if err := s.get(ctx, PathProfile, &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// UpdateProfile puts edited profile fields.
func (s *PortalServiceImpl) UpdateProfile(ctx context.Context, req form.ProfileUpdate) error {
	_, err := s.gw.Send(ctx, http.MethodPut, PathProfile, req)
	return err
}

// Courses fetches the full catalog.
func (s *PortalServiceImpl) Courses(ctx context.Context) ([]model.Course, error) {
	out := []model.Course{}
	if err := s.get(ctx, PathCourses, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyCourses fetches the enrollment list.
func (s *PortalServiceImpl) MyCourses(ctx context.Context) ([]model.Enrollment, error) {
	out := []model.Enrollment{}
	if err := s.get(ctx, PathMyCourses, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Enroll posts an enrollment for courseID.
func (s *PortalServiceImpl) Enroll(ctx context.Context, courseID int) error {
	_, err := s.gw.Send(ctx, http.MethodPost, PathEnroll(courseID), nil)
	return err
}

// MyGrades fetches the grade mapping. JSON objects are unordered for
// encoding/json, so the groups are walked with gjson to keep the key order
// the service sent.
func (s *PortalServiceImpl) MyGrades(ctx context.Context) (model.GradeReport, error) {
	data, err := s.gw.Send(ctx, http.MethodGet, PathMyGrades, nil)
	if err != nil {
		return nil, err
	}
	return decodeGradeReport(data)
}

func decodeGradeReport(data []byte) (model.GradeReport, error) {
	report := model.GradeReport{}
	if len(data) == 0 {
		return report, nil
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, decodeErr(fmt.Errorf("%s: expected object, got %s", PathMyGrades, root.Type))
	}
	var derr error
	root.ForEach(func(key, value gjson.Result) bool {
		var cg model.CourseGrades
		if err := json.Unmarshal([]byte(value.Raw), &cg); err != nil {
			derr = decodeErr(fmt.Errorf("%s: group %q: %w", PathMyGrades, key.String(), err))
			return false
		}
		report = append(report, model.GradeGroup{CourseCode: key.String(), CourseGrades: cg})
		return true
	})
	if derr != nil {
		return nil, derr
	}
	return report, nil
}

func (s *PortalServiceImpl) get(ctx context.Context, path string, out any) error {
	data, err := s.gw.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return decodeErr(err)
	}
	return nil
}

func decodeErr(err error) error {
	return &errs.RequestError{Kind: errs.KindDecode, Message: errs.FallbackMessage, Err: err}
}
