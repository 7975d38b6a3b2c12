package browser

import (
	"errors"
	"time"
)

var (
	ErrNoElement     = errors.New("no such element")
	ErrTimeout       = errors.New("timed out waiting for element")
	ErrNotClickable  = errors.New("element not clickable")
	ErrUnknownPage   = errors.New("no page registered for url")
	ErrSessionClosed = errors.New("browser session closed")
)

// Session is a single browser window driven sequentially by one caller.
//
// Lookups (Text, Attr, TextAll, ChildAttrs) inspect the DOM as it is right
// now and never wait; ErrNoElement reports an absent element. The Wait and
// Click methods block for at most the given timeout and report expiry as
// ErrTimeout.
type Session interface {
	Navigate(url string) error
	WaitPresent(selector string, timeout time.Duration) error
	ClickWhenReady(selector string, timeout time.Duration) error

	Text(selector string) (string, error)
	Attr(selector, name string) (string, error)
	TextAll(selector string) ([]string, error)
	// ChildAttrs returns one value per element matching parent: the named
	// attribute of its first child matching child, or "" when it has none.
	ChildAttrs(parent, child, name string) ([]string, error)

	// WithTab opens a secondary tab, runs fn against it and closes it again
	// before returning, whatever fn returned. Focus is back on the calling
	// tab afterwards.
	WithTab(fn func(tab Session) error) error
	// Handles reports how many page targets are open.
	Handles() (int, error)

	Close() error
}
