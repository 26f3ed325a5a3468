package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/and161185/studentportal/internal/errs"
	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
	"github.com/and161185/studentportal/internal/service"
	"github.com/and161185/studentportal/internal/view"
)

// fakePortal is an in-memory PortalService with per-call counters.
type fakePortal struct {
	mu sync.Mutex

	user        model.User
	profile     model.Profile
	courses     []model.Course
	enrollments []model.Enrollment
	grades      model.GradeReport

	loginErr    error
	registerErr error
	logoutErr   error
	meErr       error
	profileErr  error
	updateErr   error
	coursesErr  error
	myErr       error
	enrollErr   error
	gradesErr   error

	// gradesGate, when set, blocks MyGrades until it is closed; gradesStarted
	// is closed once MyGrades is entered.
	gradesGate    chan struct{}
	gradesStarted chan struct{}
	honorCtx      bool

	calls      map[string]int
	registered []form.RegisterRequest
	updated    []form.ProfileUpdate
	enrolled   []int
}

var _ service.PortalService = (*fakePortal)(nil)

func newFakePortal() *fakePortal {
	return &fakePortal{
		user:    model.User{ID: 1, Username: "alice", FirstName: "Alice", Role: "student"},
		profile: model.Profile{StudentID: "S100", GPA: 3.456, Major: "Math", YearLevel: "junior",
			User: model.ProfileUser{FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com"}},
		courses:     []model.Course{{ID: 1, CourseCode: "CS101"}, {ID: 2, CourseCode: "MA101"}},
		enrollments: []model.Enrollment{{Status: "enrolled"}, {Status: "enrolled"}, {Status: "completed"}},
		calls:       map[string]int{},
	}
}

func (f *fakePortal) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakePortal) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakePortal) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func (f *fakePortal) Login(_ context.Context, _ form.LoginRequest) (model.User, error) {
	f.hit("login")
	if f.loginErr != nil {
		return model.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakePortal) Register(_ context.Context, req form.RegisterRequest) error {
	f.hit("register")
	f.mu.Lock()
	f.registered = append(f.registered, req)
	f.mu.Unlock()
	return f.registerErr
}

func (f *fakePortal) Logout(context.Context) error {
	f.hit("logout")
	return f.logoutErr
}

func (f *fakePortal) Me(context.Context) (model.User, error) {
	f.hit("me")
	if f.meErr != nil {
		return model.User{}, f.meErr
	}
	return f.user, nil
}

func (f *fakePortal) Profile(context.Context) (model.Profile, error) {
	f.hit("profile")
	return f.profile, f.profileErr
}

func (f *fakePortal) UpdateProfile(_ context.Context, req form.ProfileUpdate) error {
	f.hit("update_profile")
	f.mu.Lock()
	f.updated = append(f.updated, req)
	f.mu.Unlock()
	return f.updateErr
}

func (f *fakePortal) Courses(context.Context) ([]model.Course, error) {
	f.hit("courses")
	return f.courses, f.coursesErr
}

func (f *fakePortal) MyCourses(context.Context) ([]model.Enrollment, error) {
	f.hit("my_courses")
	return f.enrollments, f.myErr
}

func (f *fakePortal) Enroll(_ context.Context, id int) error {
	f.hit("enroll")
	f.mu.Lock()
	f.enrolled = append(f.enrolled, id)
	f.mu.Unlock()
	return f.enrollErr
}

func (f *fakePortal) MyGrades(ctx context.Context) (model.GradeReport, error) {
	f.hit("grades")
	if f.gradesStarted != nil {
		close(f.gradesStarted)
	}
	if f.gradesGate != nil {
		if f.honorCtx {
			select {
			case <-f.gradesGate:
			case <-ctx.Done():
				return nil, &errs.RequestError{Kind: errs.KindNetwork, Message: errs.FallbackMessage, Err: ctx.Err()}
			}
		} else {
			<-f.gradesGate
		}
	}
	return f.grades, f.gradesErr
}

type notice struct {
	Kind NotifyKind
	Msg  string
}

// fakeViewPort records everything the controller hands to rendering.
type fakeViewPort struct {
	mu sync.Mutex

	session   *model.User
	pages     []model.Page
	tabs      []model.Tab
	notices   []notice
	dashboard []view.Dashboard
	available [][]view.CourseCard
	mine      [][]view.EnrollmentCard
	grades    []view.Grades
	profiles  []view.ProfileForm
}

var _ ViewPort = (*fakeViewPort)(nil)

func (v *fakeViewPort) SetSession(u *model.User) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = u
}

func (v *fakeViewPort) ShowPage(p model.Page) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pages = append(v.pages, p)
}

func (v *fakeViewPort) ShowTab(t model.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tabs = append(v.tabs, t)
}

func (v *fakeViewPort) RenderDashboard(d view.Dashboard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dashboard = append(v.dashboard, d)
}

func (v *fakeViewPort) RenderAvailableCourses(c []view.CourseCard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.available = append(v.available, c)
}

func (v *fakeViewPort) RenderMyCourses(c []view.EnrollmentCard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mine = append(v.mine, c)
}

func (v *fakeViewPort) RenderGrades(g view.Grades) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.grades = append(v.grades, g)
}

func (v *fakeViewPort) RenderProfile(p view.ProfileForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profiles = append(v.profiles, p)
}

func (v *fakeViewPort) Notify(kind NotifyKind, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, notice{Kind: kind, Msg: msg})
}

func (v *fakeViewPort) errorNotices() []notice {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []notice
	for _, n := range v.notices {
		if n.Kind == NotifyError {
			out = append(out, n)
		}
	}
	return out
}

func statusErr(status int, msg string) error {
	return &errs.RequestError{Kind: errs.KindStatus, Status: status, Message: msg}
}

var errUnauthorized401 = statusErr(http.StatusUnauthorized, "Please log in to access this page.")
