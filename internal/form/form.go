// Package form turns submitted field sets into typed request payloads.
//
// Ingestors only check what the form itself would enforce (required and
// well-formed fields); anything else is left to the service.
package form

import (
	"strconv"
	"strings"
)

// RoleStudent is the fixed role sent on registration.
const RoleStudent = "student"

// DefaultMajor replaces an empty major on registration.
const DefaultMajor = "Undeclared"

// Fields is a submitted form: field name -> raw value.
type Fields map[string]string

// Get returns the trimmed value of a field ("" when absent).
func (f Fields) Get(name string) string {
	return strings.TrimSpace(f[name])
}

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the /auth/register payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Major     string `json:"major"`
	YearLevel string `json:"year_level" validate:"required"`
	Role      string `json:"role"`
}

// ProfileUpdate is the PUT /students/profile payload.
type ProfileUpdate struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Major     string `json:"major"`
	YearLevel string `json:"year_level" validate:"required"`
}

// EnrollRequest identifies the course of an enroll action.
type EnrollRequest struct {
	CourseID int `json:"course_id" validate:"required,gt=0"`
}

// Login ingests the login form. The password is taken verbatim.
func Login(f Fields) (LoginRequest, error) {
	req := LoginRequest{
		Username: f.Get("username"),
		Password: f["password"],
	}
	if err := check(req); err != nil {
		return LoginRequest{}, err
	}
	return req, nil
}

// Register ingests the sign-up form; an empty major becomes DefaultMajor.
func Register(f Fields) (RegisterRequest, error) {
	req := RegisterRequest{
		Username:  f.Get("username"),
		Email:     f.Get("email"),
		Password:  f["password"],
		FirstName: f.Get("first_name"),
		LastName:  f.Get("last_name"),
		Major:     f.Get("major"),
		YearLevel: f.Get("year_level"),
		Role:      RoleStudent,
	}
	if req.Major == "" {
		req.Major = DefaultMajor
	}
	if err := check(req); err != nil {
		return RegisterRequest{}, err
	}
	return req, nil
}

// Profile ingests the profile edit form.
func Profile(f Fields) (ProfileUpdate, error) {
	req := ProfileUpdate{
		FirstName: f.Get("first_name"),
		LastName:  f.Get("last_name"),
		Email:     f.Get("email"),
		Major:     f.Get("major"),
		YearLevel: f.Get("year_level"),
	}
	if err := check(req); err != nil {
		return ProfileUpdate{}, err
	}
	return req, nil
}

// Enroll ingests an enroll action carrying course_id.
func Enroll(f Fields) (EnrollRequest, error) {
	var req EnrollRequest
	if raw := f.Get("course_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return EnrollRequest{}, &ValidationError{Fields: []FieldError{{Field: "course_id", Error: "course_id must be a number"}}}
		}
		req.CourseID = id
	}
	if err := check(req); err != nil {
		return EnrollRequest{}, err
	}
	return req, nil
}
