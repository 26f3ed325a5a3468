// Package view builds the view-models handed to rendering. Builders are pure:
// they never reorder what the service sent.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/studentportal/internal/model"
)

// ProfessorTBA is shown for courses with no assigned professor.
const ProfessorTBA = "TBA"

// Dashboard is the summary on the dashboard page.
type Dashboard struct {
	StudentID     string
	GPA           string // two decimals
	EnrolledCount int
}

// CourseCard is one catalog entry with its enroll action.
type CourseCard struct {
	CourseID   int // argument of the enroll action
	Code       string
	Title      string
	Credits    int
	Professor  string
	Department string
	Term       string // "<semester> <year>"
}

// EnrollmentCard is one enrolled course.
type EnrollmentCard struct {
	Code      string
	Title     string
	Credits   int
	Professor string
	Status    string
}

// GradeRow is one grade record as displayed.
type GradeRow struct {
	Assignment string
	Type       string
	Score      string // "<value>/<max>"
	Letter     string
	BadgeClass string // display class selected by the letter grade
	Date       string
}

// GradeSection is the grade table of one course.
type GradeSection struct {
	CourseCode string
	Title      string
	Rows       []GradeRow
	NoRecords  bool
}

// Grades is the grade report; Empty marks the "no grades yet" state.
type Grades struct {
	Empty    bool
	Sections []GradeSection
}

// ProfileForm pre-fills the profile edit form.
type ProfileForm struct {
	FirstName string
	LastName  string
	Email     string
	Major     string
	YearLevel string
}

// BuildDashboard combines the profile and the enrollment list.
func BuildDashboard(p model.Profile, enrollments []model.Enrollment) Dashboard {
	return Dashboard{
		StudentID:     p.StudentID,
		GPA:           fmt.Sprintf("%.2f", p.GPA),
		EnrolledCount: len(enrollments),
	}
}

func professorName(p *model.Professor) string {
	if p == nil || p.FullName == "" {
		return ProfessorTBA
	}
	return p.FullName
}

// BuildCourseCards maps the catalog to cards in service order.
func BuildCourseCards(courses []model.Course) []CourseCard {
	out := make([]CourseCard, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseCard{
			CourseID:   c.ID,
			Code:       c.CourseCode,
			Title:      c.Title,
			Credits:    c.Credits,
			Professor:  professorName(c.Professor),
			Department: c.Department,
			Term:       fmt.Sprintf("%s %d", c.Semester, c.Year),
		})
	}
	return out
}

// BuildEnrollmentCards maps enrollments to cards in service order.
func BuildEnrollmentCards(enrollments []model.Enrollment) []EnrollmentCard {
	out := make([]EnrollmentCard, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, EnrollmentCard{
			Code:      e.Course.CourseCode,
			Title:     e.Course.Title,
			Credits:   e.Course.Credits,
			Professor: professorName(e.Course.Professor),
			Status:    e.Status,
		})
	}
	return out
}

// BuildGrades maps the grade report; an empty report yields the empty state.
func BuildGrades(report model.GradeReport) Grades {
	if len(report) == 0 {
		return Grades{Empty: true}
	}
	g := Grades{Sections: make([]GradeSection, 0, len(report))}
	for _, grp := range report {
		sec := GradeSection{
			CourseCode: grp.CourseCode,
			Title:      grp.Course.Title,
			NoRecords:  len(grp.Grades) == 0,
		}
		for _, r := range grp.Grades {
			sec.Rows = append(sec.Rows, GradeRow{
				Assignment: r.AssignmentName,
				Type:       r.AssignmentType,
				Score:      formatNumber(r.GradeValue) + "/" + formatNumber(r.MaxPoints),
				Letter:     r.LetterGrade,
				BadgeClass: BadgeClass(r.LetterGrade),
				Date:       FormatDate(r.DateRecorded),
			})
		}
		g.Sections = append(g.Sections, sec)
	}
	return g
}

// BadgeClass returns the display class for a letter grade, e.g. "grade-a".
func BadgeClass(letter string) string {
	return "grade-" + strings.ToLower(strings.TrimSpace(letter))
}

// BuildProfileForm extracts the editable profile fields.
func BuildProfileForm(p model.Profile) ProfileForm {
	return ProfileForm{
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
		Email:     p.User.Email,
		Major:     p.Major,
		YearLevel: p.YearLevel,
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders a service timestamp as a calendar date. Unparseable
// values are returned unchanged.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
