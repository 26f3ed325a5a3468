package app

import (
	"context"
	"sync"

	"github.com/and161185/studentportal/internal/model"
)

// State is the controller-owned application state: the session and the
// page/tab pair. Each navigation stamps a new generation and cancels every
// load started under an older one, so superseded results are never applied.
type State struct {
	mu       sync.Mutex
	session  *model.User
	page     model.Page
	tab      model.Tab
	gen      uint64
	nextID   int
	inflight map[int]context.CancelFunc
}

func newState() *State {
	return &State{
		page:     model.PageLogin,
		tab:      model.TabAvailable,
		inflight: map[int]context.CancelFunc{},
	}
}

// Session returns a copy of the session user, or nil when signed out.
func (s *State) Session() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// Page returns the active page.
func (s *State) Page() model.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Tab returns the active courses tab.
func (s *State) Tab() model.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *State) setSession(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.session = nil
		return
	}
	cp := *u
	s.session = &cp
}

func (s *State) authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// navigate switches page/tab, cancels loads of earlier navigations and starts
// a new generation. The returned context is cancelled by the next navigation.
func (s *State) navigate(parent context.Context, page model.Page, tab model.Tab) (context.Context, uint64, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.inflight {
		cancel()
		delete(s.inflight, id)
	}
	s.page, s.tab = page, tab
	s.gen++
	return s.trackLocked(parent)
}

// navigateTab switches the courses tab. It fails when courses is not the
// active page.
func (s *State) navigateTab(parent context.Context, tab model.Tab) (context.Context, uint64, context.CancelFunc, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page != model.PageCourses {
		return nil, 0, nil, false
	}
	for id, cancel := range s.inflight {
		cancel()
		delete(s.inflight, id)
	}
	s.tab = tab
	s.gen++
	ctx, gen, done := s.trackLocked(parent)
	return ctx, gen, done, true
}

// begin starts a load under the current generation without navigating.
func (s *State) begin(parent context.Context) (context.Context, uint64, context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackLocked(parent)
}

func (s *State) trackLocked(parent context.Context) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	id := s.nextID
	s.nextID++
	s.inflight[id] = cancel
	done := func() {
		cancel()
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}
	return ctx, s.gen, done
}

// showing reports whether gen is still the latest navigation and whether r is
// the region on screen.
func (s *State) showing(gen uint64, r region) (current, shown bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false, false
	}
	return true, s.page == r.page && (r.tab == "" || s.tab == r.tab)
}

// close cancels every in-flight load.
func (s *State) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.inflight {
		cancel()
		delete(s.inflight, id)
	}
}
