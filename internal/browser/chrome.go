package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultPageLoadTimeout = 60 * time.Second
	evalTimeout            = 10 * time.Second
	defaultUserAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options configures the Chrome process started by Open
type Options struct {
	Headless        bool
	UserAgent       string
	ExecPath        string
	PageLoadTimeout time.Duration
	Logger          *slog.Logger
}

// Chrome is a Session backed by a chromedp-controlled Chrome instance.
// The value returned by Open owns the browser; values handed to WithTab
// callbacks only own their tab.
type Chrome struct {
	ctx  context.Context
	opts Options
	log  *slog.Logger

	owner     bool
	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// Open starts a browser and waits until its first tab is usable
func Open(parent context.Context, opts Options) (*Chrome, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PageLoadTimeout <= 0 {
		opts.PageLoadTimeout = defaultPageLoadTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(opts.UserAgent),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	log := opts.Logger
	ctx, ctxCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, v ...interface{}) {
			msg := fmt.Sprintf(format, v...)
			// CDP events newer than the bundled cdproto cannot be decoded; they are harmless
			if strings.Contains(msg, "could not unmarshal event") ||
				strings.Contains(msg, "unknown PrivateNetworkRequestPolicy") ||
				strings.Contains(msg, "unknown ClientNavigationReason") {
				return
			}
			log.Debug("chromedp", "msg", msg)
		}),
		chromedp.WithErrorf(func(format string, v ...interface{}) {
			log.Warn("chromedp", "error", fmt.Sprintf(format, v...))
		}),
	)

	c := &Chrome{
		ctx:   ctx,
		opts:  opts,
		log:   log,
		owner: true,
		cancel: func() {
			ctxCancel()
			allocCancel()
		},
	}

	// The first Run launches the process, so a missing binary fails here
	if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
		c.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	log.Info("browser started", "headless", opts.Headless)
	return c, nil
}

// Close shuts the browser down. Calling it more than once is a no-op.
// Tabs handed to WithTab callbacks are closed by WithTab, not by Close.
func (c *Chrome) Close() error {
	if !c.owner {
		return nil
	}
	c.closeOnce.Do(func() {
		if err := chromedp.Cancel(c.ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.closeErr = fmt.Errorf("close browser: %w", err)
		}
		c.cancel()
		c.log.Info("browser closed")
	})
	return c.closeErr
}

func (c *Chrome) Navigate(url string) error {
	if err := c.run(c.opts.PageLoadTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (c *Chrome) WaitPresent(selector string, timeout time.Duration) error {
	return c.run(timeout, chromedp.WaitReady(selector, chromedp.ByQuery))
}

func (c *Chrome) ClickWhenReady(selector string, timeout time.Duration) error {
	err := c.run(timeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.WaitEnabled(selector, chromedp.ByQuery),
	)
	if err != nil {
		return err
	}
	if err := c.run(evalTimeout, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotClickable, selector, err)
	}
	return nil
}

func (c *Chrome) Text(selector string) (string, error) {
	return c.lookup(selector, fmt.Sprintf(textScript, jsString(selector)))
}

func (c *Chrome) Attr(selector, name string) (string, error) {
	return c.lookup(selector, fmt.Sprintf(attrScript, jsString(selector), jsString(name)))
}

func (c *Chrome) TextAll(selector string) ([]string, error) {
	var out []string
	if err := c.run(evalTimeout, chromedp.Evaluate(fmt.Sprintf(textAllScript, jsString(selector)), &out)); err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return out, nil
}

func (c *Chrome) ChildAttrs(parent, child, name string) ([]string, error) {
	script := fmt.Sprintf(childAttrScript, jsString(parent), jsString(child), jsString(name))
	var out []string
	if err := c.run(evalTimeout, chromedp.Evaluate(script, &out)); err != nil {
		return nil, fmt.Errorf("query %s %s: %w", parent, child, err)
	}
	return out, nil
}

func (c *Chrome) WithTab(fn func(tab Session) error) (err error) {
	if c.ctx.Err() != nil {
		return ErrSessionClosed
	}
	// A context derived from a live tab context gets a new tab in the same browser
	tabCtx, cancel := chromedp.NewContext(c.ctx)
	defer cancel()

	if err := chromedp.Run(tabCtx); err != nil {
		return fmt.Errorf("open tab: %w", err)
	}
	defer func() {
		if cerr := chromedp.Cancel(tabCtx); cerr != nil && !errors.Is(cerr, context.Canceled) && err == nil {
			err = fmt.Errorf("close tab: %w", cerr)
		}
	}()

	return fn(&Chrome{ctx: tabCtx, opts: c.opts, log: c.log})
}

func (c *Chrome) Handles() (int, error) {
	infos, err := chromedp.Targets(c.ctx)
	if err != nil {
		return 0, fmt.Errorf("list targets: %w", err)
	}
	n := 0
	for _, info := range infos {
		if info.Type == "page" {
			n++
		}
	}
	return n, nil
}

// run executes actions with an upper bound on their duration. Expiry of the
// bound is reported as ErrTimeout; the tab itself stays usable.
func (c *Chrome) run(timeout time.Duration, actions ...chromedp.Action) error {
	if c.ctx.Err() != nil {
		return ErrSessionClosed
	}
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	err := chromedp.Run(ctx, actions...)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && c.ctx.Err() == nil {
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	return err
}

type lookupResult struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

func (c *Chrome) lookup(selector, script string) (string, error) {
	var res lookupResult
	if err := c.run(evalTimeout, chromedp.Evaluate(script, &res)); err != nil {
		return "", fmt.Errorf("query %s: %w", selector, err)
	}
	if !res.Found {
		return "", fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return res.Value, nil
}

// jsString quotes s as a JavaScript string literal
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Attribute lookups prefer the DOM property so that href comes back absolute
const (
	textScript = `(() => {
	const el = document.querySelector(%s);
	return el ? {found: true, value: el.innerText} : {found: false, value: ""};
})()`

	attrScript = `(() => {
	const el = document.querySelector(%[1]s);
	if (!el) return {found: false, value: ""};
	const v = el[%[2]s];
	return {found: true, value: typeof v === "string" ? v : (el.getAttribute(%[2]s) || "")};
})()`

	textAllScript = `Array.from(document.querySelectorAll(%s), el => el.innerText)`

	childAttrScript = `Array.from(document.querySelectorAll(%[1]s), p => {
	const el = p.querySelector(%[2]s);
	if (!el) return "";
	const v = el[%[3]s];
	return typeof v === "string" ? v : (el.getAttribute(%[3]s) || "");
})`
)
