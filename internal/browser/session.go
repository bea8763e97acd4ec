package browser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Config holds the browser-facing settings for one run.
type Config struct {
	URL               string
	Headless          bool
	NavigationTimeout time.Duration
	ElementTimeout    time.Duration
	SettleDelay       time.Duration
}

// Session owns the single Chrome page for the duration of a run. No other
// component may hold the page concurrently; everything that touches the UI
// goes through the Navigator, Table and Filler built on top of it.
type Session struct {
	cfg      Config
	log      *zap.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession creates an unstarted session.
func NewSession(cfg Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{cfg: cfg, log: log}
}

// Start launches Chrome, connects, and navigates to the TMS URL. The login
// page that comes up is handled by a human; see AwaitLogin.
func (s *Session) Start(ctx context.Context) error {
	s.launcher = launcher.New().Headless(s.cfg.Headless)
	controlURL, err := s.launcher.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	s.page = page

	s.log.Info("navigating to TMS", zap.String("url", s.cfg.URL))
	if err := page.Timeout(s.cfg.NavigationTimeout).Navigate(s.cfg.URL); err != nil {
		return fmt.Errorf("navigate to %s: %w", s.cfg.URL, err)
	}
	return nil
}

// AwaitLogin blocks until the human confirms that SSO login is complete and
// the week view is visible. This is a deliberate human-in-the-loop barrier:
// no timeout, no polling. The read returns when a line arrives on in
// (normally stdin) or the reader closes.
func (s *Session) AwaitLogin(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "======================================================================")
	fmt.Fprintln(out, "  MANUAL LOGIN REQUIRED")
	fmt.Fprintln(out, "======================================================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Complete the SSO login in the browser window and navigate to the")
	fmt.Fprintln(out, "  week view showing the timesheet table.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Press ENTER when ready...")
	fmt.Fprintln(out, "======================================================================")

	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("login confirmation: %w", err)
	}
	s.log.Info("continuing after manual login")
	return nil
}

// Page exposes the owned page to the sibling components in this package.
func (s *Session) Page() *rod.Page { return s.page }

// Close tears the page, browser and launched Chrome process down.
func (s *Session) Close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	s.log.Debug("browser closed")
}
