package browser

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"tmsbot/internal/timesheet"
	"tmsbot/internal/weeks"
)

// weekUI is the minimal surface the navigator needs from the page. Kept as
// an interface so the navigation loop is testable without a browser.
type weekUI interface {
	ReadIndicator() (string, error)
	ClickBack() error
	ClickForward() error
	Settle()
}

// Navigator detects the baseline week and drives the prev/next arrows to
// reach target weeks, verifying the indicator after every move.
type Navigator struct {
	ui  weekUI
	log *zap.Logger
}

// NewNavigator builds a Navigator on a live session.
func NewNavigator(s *Session, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{
		ui: &rodWeekUI{
			page:    s.Page(),
			timeout: s.cfg.ElementTimeout,
			settle:  s.cfg.SettleDelay,
		},
		log: log,
	}
}

func newNavigatorWithUI(ui weekUI, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{ui: ui, log: log}
}

// DetectBaseline reads the currently displayed week and captures it as the
// zero point for all offset arithmetic in this run.
func (n *Navigator) DetectBaseline() (weeks.NavigationState, error) {
	stamp, err := n.readWeek()
	if err != nil {
		return weeks.NavigationState{}, err
	}
	n.log.Info("baseline week detected",
		zap.Int("week", stamp.Week), zap.Int("year", stamp.Year))
	return weeks.NewNavigationState(stamp), nil
}

// NavigateTo moves the UI from the current week to the target week. The
// offset is bounds-checked before any click; the landing week is re-read
// and verified. A zero delta is a no-op, so repeating a successful
// navigation performs zero additional clicks.
func (n *Navigator) NavigateTo(state weeks.NavigationState, target weeks.Stamp) (weeks.NavigationState, error) {
	delta := state.Current.DeltaTo(target)
	if err := weeks.ValidateOffset(state.Baseline.DeltaTo(target)); err != nil {
		return state, err
	}
	if delta == 0 {
		n.log.Debug("already on target week", zap.Int("week", target.Week))
		return state, nil
	}

	click := n.ui.ClickForward
	if delta < 0 {
		click = n.ui.ClickBack
		delta = -delta
	}
	n.log.Info("navigating",
		zap.String("from", state.Current.String()),
		zap.String("to", target.String()),
		zap.Int("clicks", delta))

	for i := 0; i < delta; i++ {
		if err := click(); err != nil {
			return state, fmt.Errorf("%w: week arrow click %d/%d: %v", timesheet.ErrNavigation, i+1, delta, err)
		}
		n.ui.Settle()
	}

	landed, err := n.readWeek()
	if err != nil {
		return state, err
	}
	if landed != target {
		// Fail fast here: continuing would risk silently filling the
		// wrong week.
		return state, fmt.Errorf("%w: requested %s but UI shows %s",
			timesheet.ErrNavigationMismatch, target, landed)
	}

	state.Current = landed
	return state, nil
}

func (n *Navigator) readWeek() (weeks.Stamp, error) {
	text, err := n.ui.ReadIndicator()
	if err != nil {
		return weeks.Stamp{}, fmt.Errorf("%w: read week indicator: %v", timesheet.ErrNavigation, err)
	}
	return weeks.ParseDisplay(text)
}

// rodWeekUI implements weekUI on the live page.
type rodWeekUI struct {
	page    *rod.Page
	timeout time.Duration
	settle  time.Duration
}

func (u *rodWeekUI) ReadIndicator() (string, error) {
	el, err := u.page.Timeout(u.timeout).Element(SelWeekDisplay)
	if err != nil {
		return "", err
	}
	return el.Text()
}

func (u *rodWeekUI) ClickBack() error    { return u.clickArrow(SelWeekBack) }
func (u *rodWeekUI) ClickForward() error { return u.clickArrow(SelWeekForward) }

func (u *rodWeekUI) clickArrow(selector string) error {
	el, err := u.page.Timeout(u.timeout).Element(selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (u *rodWeekUI) Settle() { time.Sleep(u.settle) }
