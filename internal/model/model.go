// Package model defines the portal records exchanged with the remote service.
package model

// User is the authenticated-user record; a non-nil *User is the client session.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Professor is the part of a teaching user the catalog exposes.
type Professor struct {
	FullName string `json:"full_name"`
}

// Course is a read-only catalog entry.
type Course struct {
	ID            int        `json:"id"`
	CourseCode    string     `json:"course_code"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Credits       int        `json:"credits"`
	Department    string     `json:"department"`
	Semester      string     `json:"semester"`
	Year          int        `json:"year"`
	MaxEnrollment int        `json:"max_enrollment,omitempty"`
	EnrolledCount int        `json:"enrolled_count,omitempty"`
	Professor     *Professor `json:"professor"`
}

// Enrollment joins the session user to a course.
type Enrollment struct {
	ID             int    `json:"id"`
	Status         string `json:"status"`
	EnrollmentDate string `json:"enrollment_date,omitempty"` // ISO-8601 as sent by the service
	Course         Course `json:"course"`
}

// GradeRecord is a single graded assignment.
type GradeRecord struct {
	AssignmentName string  `json:"assignment_name"`
	AssignmentType string  `json:"assignment_type"`
	GradeValue     float64 `json:"grade_value"`
	MaxPoints      float64 `json:"max_points"`
	Percentage     float64 `json:"percentage"`
	LetterGrade    string  `json:"letter_grade"`
	DateRecorded   string  `json:"date_recorded"` // ISO-8601 as sent by the service
}

// GradeCourse is the course header of a grade group.
type GradeCourse struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Credits int    `json:"credits"`
}

// CourseGrades groups the grade records of one course.
type CourseGrades struct {
	Course GradeCourse   `json:"course"`
	Grades []GradeRecord `json:"grades"`
}

// GradeGroup is one entry of the grade report, keyed by course code.
type GradeGroup struct {
	CourseCode string
	CourseGrades
}

// GradeReport keeps the service's course_code -> CourseGrades mapping in the order it was sent.
type GradeReport []GradeGroup

// ProfileUser is the user part of a student profile.
type ProfileUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Profile is the student profile and academic summary.
type Profile struct {
	User         ProfileUser `json:"user"`
	StudentID    string      `json:"student_id"`
	GPA          float64     `json:"gpa"`
	Major        string      `json:"major"`
	YearLevel    string      `json:"year_level"`
	TotalCredits int         `json:"total_credits,omitempty"`
}
