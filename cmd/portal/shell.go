package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/and161185/studentportal/internal/app"
	"github.com/and161185/studentportal/internal/errs"
	"github.com/and161185/studentportal/internal/form"
	"github.com/and161185/studentportal/internal/model"
)

const shellHelp = `Commands:
  login [username] [password=...]        sign in (prompts for what is missing)
  register [field=value ...]             open the sign-up page, or submit it
      fields: username email password first_name last_name major year_level
  logout
  page <login|register|dashboard|courses|grades|profile>
  tab <available|mine>                   switch the courses tab
  enroll <course_id>
  profile [field=value ...]              open the profile page, or save changes
      fields: first_name last_name email major year_level
  whoami
  help
  quit
`

// controller is the part of app.Controller the shell drives.
type controller interface {
	Login(ctx context.Context, req form.LoginRequest) error
	Register(ctx context.Context, req form.RegisterRequest) error
	Logout(ctx context.Context) error
	EnterPage(ctx context.Context, p model.Page) error
	EnterTab(ctx context.Context, t model.Tab) error
	Enroll(ctx context.Context, req form.EnrollRequest) error
	UpdateProfile(ctx context.Context, req form.ProfileUpdate) error
	State() *app.State
}

var _ controller = (*app.Controller)(nil)

// shell reads commands line by line and drives the controller.
type shell struct {
	ctl      controller
	view     *termView
	in       *bufio.Scanner
	out      io.Writer
	password func(prompt string) (string, error) // hidden input when stdin is a terminal
}

func newShell(ctl controller, view *termView, in io.Reader, out io.Writer) *shell {
	s := &shell{ctl: ctl, view: view, in: bufio.NewScanner(in), out: out}
	s.password = s.prompt
	return s
}

// run executes commands until quit, end of input or ctx cancellation.
func (s *shell) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(s.out, "portal> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if s.exec(ctx, s.in.Text()) {
			return nil
		}
	}
}

// prompt prints label and reads one line of input.
func (s *shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

// exec runs one command line and reports whether the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	args, err := splitArgs(line)
	if err != nil {
		s.report(err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelp)
	case "login":
		s.report(s.login(ctx, args))
	case "register":
		s.report(s.register(ctx, args))
	case "logout":
		s.report(s.ctl.Logout(ctx))
	case "page":
		if len(args) != 1 {
			s.report(errors.New("usage: page <name>"))
			return false
		}
		s.report(s.ctl.EnterPage(ctx, model.Page(strings.ToLower(args[0]))))
	case "tab":
		if len(args) != 1 {
			s.report(errors.New("usage: tab <available|mine>"))
			return false
		}
		s.report(s.ctl.EnterTab(ctx, model.Tab(strings.ToLower(args[0]))))
	case "enroll":
		s.report(s.enroll(ctx, args))
	case "profile":
		s.report(s.profile(ctx, args))
	case "whoami":
		s.whoami()
	default:
		s.report(fmt.Errorf("unknown command %q (try help)", cmd))
	}
	return false
}

func (s *shell) login(ctx context.Context, args []string) error {
	fields, rest := parseFields(args)
	if len(rest) > 0 && fields.Get("username") == "" {
		fields["username"] = rest[0]
	}
	if fields.Get("username") == "" {
		name, err := s.prompt("Username: ")
		if err != nil {
			return err
		}
		fields["username"] = name
	}
	if _, ok := fields["password"]; !ok {
		pw, err := s.password("Password: ")
		if err != nil {
			return err
		}
		fields["password"] = pw
	}
	req, err := form.Login(fields)
	if err != nil {
		return err
	}
	return s.ctl.Login(ctx, req)
}

func (s *shell) register(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.ctl.EnterPage(ctx, model.PageRegister)
	}
	fields, rest := parseFields(args)
	if len(rest) > 0 {
		return fmt.Errorf("register: expected field=value, got %q", rest[0])
	}
	req, err := form.Register(fields)
	if err != nil {
		return err
	}
	return s.ctl.Register(ctx, req)
}

func (s *shell) enroll(ctx context.Context, args []string) error {
	fields, rest := parseFields(args)
	if len(rest) > 0 && fields.Get("course_id") == "" {
		fields["course_id"] = rest[0]
	}
	req, err := form.Enroll(fields)
	if err != nil {
		return err
	}
	return s.ctl.Enroll(ctx, req)
}

// errProfileClosed rejects profile edits made away from the profile page.
var errProfileClosed = errors.New("open the profile page first (profile)")

// profile opens the profile page, or saves the given fields on top of the
// profile shown there for the current session.
func (s *shell) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return s.ctl.EnterPage(ctx, model.PageProfile)
	}
	edits, rest := parseFields(args)
	if len(rest) > 0 {
		return fmt.Errorf("profile: expected field=value, got %q", rest[0])
	}
	if s.ctl.State().Page() != model.PageProfile {
		return errProfileClosed
	}
	fields := s.view.profileFields()
	if fields == nil {
		fields = form.Fields{}
	}
	for k, v := range edits {
		fields[k] = v
	}
	req, err := form.Profile(fields)
	if err != nil {
		return err
	}
	return s.ctl.UpdateProfile(ctx, req)
}

func (s *shell) whoami() {
	u := s.ctl.State().Session()
	if u == nil {
		fmt.Fprintln(s.out, "not signed in")
		return
	}
	fmt.Fprintf(s.out, "%s (%s %s) %s\n", u.Username, u.FirstName, u.LastName, u.Role)
}

// report prints err unless the controller has already notified the user.
func (s *shell) report(err error) {
	if err == nil {
		return
	}
	var reqErr *errs.RequestError
	if errors.As(err, &reqErr) {
		return
	}
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			fmt.Fprintf(s.out, "  %s: %s\n", f.Field, f.Error)
		}
		return
	}
	if errors.Is(err, errs.ErrUnauthorized) {
		fmt.Fprintln(s.out, "please log in first")
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}

// parseFields splits args into key=value fields and the remaining positional
// arguments. Keys are lower-cased.
func parseFields(args []string) (form.Fields, []string) {
	fields := form.Fields{}
	var rest []string
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			rest = append(rest, a)
			continue
		}
		fields[strings.ToLower(k)] = v
	}
	return fields, rest
}

// splitArgs splits a command line on whitespace. Double or single quotes
// group words, so first_name="Mary Ann" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote, inArg = r, true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
