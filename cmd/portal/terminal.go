package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/and161185/studentportal/internal/app"
	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
	"github.com/and161185/studentportal/internal/view"
)

var pageTitles = map[model.Page]string{
	model.PageLogin:     "Login",
	model.PageRegister:  "Create account",
	model.PageDashboard: "Dashboard",
	model.PageCourses:   "Courses",
	model.PageGrades:    "Grades",
	model.PageProfile:   "Profile",
}

var tabTitles = map[model.Tab]string{
	model.TabAvailable: "Available Courses",
	model.TabMine:      "My Courses",
}

// termView renders view-models as plain text. Writes are serialized so
// concurrent loads never interleave their output.
type termView struct {
	mu  sync.Mutex
	out io.Writer

	// profile is the form last rendered on the profile page. It is cleared on
	// every session change and on re-entering the page.
	profile    view.ProfileForm
	hasProfile bool
}

var _ app.ViewPort = (*termView)(nil)

func newTermView(out io.Writer) *termView { return &termView{out: out} }

func (v *termView) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.out, format, args...)
}

func (v *termView) SetSession(u *model.User) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hasProfile = false
	if u == nil {
		v.printf("(signed out)\n")
		return
	}
	v.printf("Welcome, %s\n", u.FirstName)
}

func (v *termView) ShowPage(p model.Page) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p == model.PageProfile {
		v.hasProfile = false
	}
	v.printf("\n== %s ==\n", pageTitles[p])
}

func (v *termView) ShowTab(t model.Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	parts := make([]string, 0, len(model.Tabs))
	for _, tab := range model.Tabs {
		if tab == t {
			parts = append(parts, "["+tabTitles[tab]+"]")
		} else {
			parts = append(parts, " "+tabTitles[tab]+" ")
		}
	}
	v.printf("%s\n", strings.Join(parts, " | "))
}

func (v *termView) RenderDashboard(d view.Dashboard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("ID: %s\nGPA: %s\n%d enrolled\n", d.StudentID, d.GPA, d.EnrolledCount)
}

func (v *termView) RenderAvailableCourses(cards []view.CourseCard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(cards) == 0 {
		v.printf("No courses offered.\n")
		return
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tTITLE\tCREDITS\tPROFESSOR\tDEPARTMENT\tTERM")
	for _, c := range cards {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n", c.CourseID, c.Code, c.Title, c.Credits, c.Professor, c.Department, c.Term)
	}
	_ = tw.Flush()
	v.printf("(enroll <id> to enroll)\n")
}

func (v *termView) RenderMyCourses(cards []view.EnrollmentCard) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(cards) == 0 {
		v.printf("You are not enrolled in any course.\n")
		return
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTITLE\tCREDITS\tPROFESSOR\tSTATUS")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", c.Code, c.Title, c.Credits, c.Professor, c.Status)
	}
	_ = tw.Flush()
}

func (v *termView) RenderGrades(g view.Grades) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if g.Empty {
		v.printf("No grades available yet.\n")
		return
	}
	for _, sec := range g.Sections {
		v.printf("\n%s - %s\n", sec.CourseCode, sec.Title)
		if sec.NoRecords {
			v.printf("No grades recorded for this course yet.\n")
			continue
		}
		tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ASSIGNMENT\tTYPE\tSCORE\tGRADE\tDATE")
		for _, r := range sec.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Assignment, r.Type, r.Score, badge(r), r.Date)
		}
		_ = tw.Flush()
	}
}

// badge marks failing letters so they stand out without colour support.
func badge(r view.GradeRow) string {
	switch r.BadgeClass {
	case "grade-d", "grade-f":
		return r.Letter + " !"
	default:
		return r.Letter
	}
}

func (v *termView) RenderProfile(p view.ProfileForm) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profile, v.hasProfile = p, true
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "first_name\t%s\n", p.FirstName)
	fmt.Fprintf(tw, "last_name\t%s\n", p.LastName)
	fmt.Fprintf(tw, "email\t%s\n", p.Email)
	fmt.Fprintf(tw, "major\t%s\n", p.Major)
	fmt.Fprintf(tw, "year_level\t%s\n", p.YearLevel)
	_ = tw.Flush()
	v.printf("(profile field=value ... to save changes)\n")
}

// profileFields returns the last rendered profile as a form, or nil when no
// profile has been shown yet.
func (v *termView) profileFields() form.Fields {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hasProfile {
		return nil
	}
	return form.Fields{
		"first_name": v.profile.FirstName,
		"last_name":  v.profile.LastName,
		"email":      v.profile.Email,
		"major":      v.profile.Major,
		"year_level": v.profile.YearLevel,
	}
}

func (v *termView) Notify(kind app.NotifyKind, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("[%s] %s\n", kind, msg)
}
