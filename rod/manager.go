package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/jobscan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxPages is the number of postings rendered by one Chrome process
// before a fresh one takes over.
const DefaultMaxPages = 50

// session is one Chrome process and the tabs currently open in it.
type session struct {
	browser *rod.Browser
	stop    func()
	pid     int

	open     int  // tabs not yet released
	rendered int  // tabs ever opened
	retired  bool // no new tabs; closed once open reaches zero
	closed   bool
}

func (s *session) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.stop != nil {
		s.stop()
	}
	return err
}

// BrowserManager hands out tabs from a headless Chrome process. The process
// is replaced after maxPages renders or after a render stalls; the old one
// keeps serving its open tabs and exits when the last is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	launch   func() (*session, error)
	maxPages int
	current  *session
	draining []*session
	closed   bool

	userAgent string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many postings one browser renders before it is replaced.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserUserAgent launches Chrome with ua as its User-Agent.
func WithBrowserUserAgent(ua string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userAgent = ua
	}
}

// NewBrowserManager launches a headless Chrome browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}
	if bm.maxPages <= 0 {
		bm.maxPages = DefaultMaxPages
	}
	ua := bm.userAgent
	bm.launch = func() (*session, error) { return launchSession(ua) }

	s, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = s
	return bm, nil
}

// OpenPage opens a blank tab. The returned release func closes the tab;
// pass stalled=true when the render hung so the browser gets replaced.
func (bm *BrowserManager) OpenPage() (*rod.Page, func(stalled bool), error) {
	s, err := bm.acquire()
	if err != nil {
		return nil, nil, err
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		bm.release(s, true)
		return nil, nil, err
	}
	return page, func(stalled bool) {
		_ = page.Close()
		bm.release(s, stalled)
	}, nil
}

func (bm *BrowserManager) acquire() (*session, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, jobscan.Errorf(jobscan.EINVALID, "browser is closed")
	}
	if bm.current == nil || bm.current.retired || bm.current.rendered >= bm.maxPages {
		if err := bm.replace(); err != nil {
			return nil, err
		}
	}
	s := bm.current
	s.open++
	s.rendered++
	return s, nil
}

// replace starts a new session. When the launch fails the current session
// stays in service with a fresh page budget. Must be called with mu held.
func (bm *BrowserManager) replace() error {
	next, err := bm.launch()
	if err != nil {
		if bm.current == nil {
			return err
		}
		bm.current.retired = false
		bm.current.rendered = 0
		return nil
	}

	if old := bm.current; old != nil {
		old.retired = true
		if old.open == 0 {
			_ = old.close()
		} else {
			bm.draining = append(bm.draining, old)
		}
	}
	bm.current = next
	return nil
}

func (bm *BrowserManager) release(s *session, stalled bool) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	s.open--
	if stalled && s == bm.current {
		s.retired = true
	}
	if s != bm.current && s.open == 0 {
		for i, d := range bm.draining {
			if d == s {
				bm.draining = append(bm.draining[:i], bm.draining[i+1:]...)
				break
			}
		}
		_ = s.close()
	}
}

// Close stops every browser process, including ones still draining tabs.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	var errs []error
	if bm.current != nil {
		errs = append(errs, bm.current.close())
		bm.current = nil
	}
	for _, s := range bm.draining {
		errs = append(errs, s.close())
	}
	bm.draining = nil
	return errors.Join(errs...)
}

// LauncherPID returns the process ID of the browser taking new tabs, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.pid
}

// launchSession starts headless Chrome tuned for background rendering.
func launchSession(userAgent string) (*session, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if userAgent != "" {
		l = l.Set("user-agent", userAgent)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: browser, stop: l.Kill, pid: l.PID()}, nil
}
