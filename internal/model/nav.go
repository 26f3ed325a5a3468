package model

// Page is the single top-level view shown to the user.
type Page string

const (
	PageLogin     Page = "login"
	PageRegister  Page = "register"
	PageDashboard Page = "dashboard"
	PageCourses   Page = "courses"
	PageGrades    Page = "grades"
	PageProfile   Page = "profile"
)

// Pages lists every page in navigation order.
var Pages = []Page{PageLogin, PageRegister, PageDashboard, PageCourses, PageGrades, PageProfile}

// Valid reports whether p belongs to the fixed page set.
func (p Page) Valid() bool {
	for _, v := range Pages {
		if p == v {
			return true
		}
	}
	return false
}

// Protected reports whether p is only reachable with a session.
func (p Page) Protected() bool {
	switch p {
	case PageDashboard, PageCourses, PageGrades, PageProfile:
		return true
	default:
		return false
	}
}

// Tab is the selection inside the courses page.
type Tab string

const (
	TabAvailable Tab = "available"
	TabMine      Tab = "mine"
)

// Tabs lists the courses tabs in display order.
var Tabs = []Tab{TabAvailable, TabMine}

// Valid reports whether t belongs to the courses tab set.
func (t Tab) Valid() bool {
	return t == TabAvailable || t == TabMine
}
