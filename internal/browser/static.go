package browser

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Static is an in-memory Session serving fixed HTML documents keyed by URL.
// Clicking an element follows its href; nothing is ever loaded over the
// network and waits resolve immediately against the current document.
type Static struct {
	mu     sync.Mutex
	pages  map[string]string
	tabs   []*staticTab
	closed bool

	// Visited lists every URL navigated to, in order, across all tabs
	Visited []string
}

type staticTab struct {
	url string
	doc *goquery.Document
}

// NewStatic returns a session with one blank tab serving pages
func NewStatic(pages map[string]string) *Static {
	s := &Static{pages: make(map[string]string, len(pages))}
	for u, html := range pages {
		s.pages[u] = html
	}
	s.tabs = []*staticTab{blankTab()}
	return s
}

// AddPage registers or replaces the document served for rawURL
func (s *Static) AddPage(rawURL, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[rawURL] = html
}

func blankTab() *staticTab {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	return &staticTab{url: "about:blank", doc: doc}
}

func (s *Static) current() (*staticTab, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.tabs[len(s.tabs)-1], nil
}

func (s *Static) Navigate(rawURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return err
	}
	return s.load(tab, rawURL)
}

func (s *Static) load(tab *staticTab, rawURL string) error {
	html, ok := s.pages[rawURL]
	if !ok {
		return fmt.Errorf("navigate to %s: %w", rawURL, ErrUnknownPage)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse %s: %w", rawURL, err)
	}
	tab.url = rawURL
	tab.doc = doc
	s.Visited = append(s.Visited, rawURL)
	return nil
}

func (s *Static) WaitPresent(selector string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return err
	}
	if tab.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, selector)
	}
	return nil
}

func (s *Static) ClickWhenReady(selector string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return err
	}
	el := tab.doc.Find(selector).First()
	if el.Length() == 0 || disabled(el) {
		return fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, selector)
	}
	href, ok := el.Attr("href")
	if !ok || href == "" {
		return fmt.Errorf("%w: %s has no href", ErrNotClickable, selector)
	}
	return s.load(tab, resolve(tab.url, href))
}

func (s *Static) Text(selector string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return "", err
	}
	el := tab.doc.Find(selector).First()
	if el.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return visibleText(el), nil
}

func (s *Static) Attr(selector, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return "", err
	}
	el := tab.doc.Find(selector).First()
	if el.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return attrValue(tab.url, el, name), nil
}

func (s *Static) TextAll(selector string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return nil, err
	}
	var out []string
	tab.doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
		out = append(out, visibleText(el))
	})
	return out, nil
}

func (s *Static) ChildAttrs(parent, child, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.current()
	if err != nil {
		return nil, err
	}
	var out []string
	tab.doc.Find(parent).Each(func(_ int, p *goquery.Selection) {
		el := p.Find(child).First()
		if el.Length() == 0 {
			out = append(out, "")
			return
		}
		out = append(out, attrValue(tab.url, el, name))
	})
	return out, nil
}

func (s *Static) WithTab(fn func(tab Session) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.tabs = append(s.tabs, blankTab())
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.tabs = s.tabs[:len(s.tabs)-1]
		s.mu.Unlock()
	}()
	return fn(s)
}

func (s *Static) Handles() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSessionClosed
	}
	return len(s.tabs), nil
}

func (s *Static) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called
func (s *Static) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// visibleText approximates innerText: whitespace runs collapse to one space
func visibleText(el *goquery.Selection) string {
	return strings.Join(strings.Fields(el.Text()), " ")
}

func attrValue(base string, el *goquery.Selection, name string) string {
	v, _ := el.Attr(name)
	if name == "href" && v != "" {
		return resolve(base, v)
	}
	return v
}

func disabled(el *goquery.Selection) bool {
	if _, ok := el.Attr("disabled"); ok {
		return true
	}
	v, _ := el.Attr("aria-disabled")
	return v == "true"
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
