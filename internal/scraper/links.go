package scraper

import (
	"context"
	"log/slog"

	"github.com/khrees2412/jobscout/internal/browser"
)

// LinkCollector walks the paginated results of a search URL and gathers
// one detail link per result card
type LinkCollector struct {
	sess     browser.Session
	sel      Selectors
	timeouts Timeouts
	maxPages int
	pacer    Pacer
	log      *slog.Logger
}

func NewLinkCollector(sess browser.Session, opts Options, pacer Pacer, logger *slog.Logger) *LinkCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkCollector{
		sess:     sess,
		sel:      opts.Selectors,
		timeouts: opts.Timeouts,
		maxPages: opts.MaxPages,
		pacer:    pacer,
		log:      logger,
	}
}

// Collect returns the links found on every results page reachable from
// searchURL, in page order. A page that never shows a result card ends the
// walk for this search; links gathered before it are kept. The error is
// non-nil only when ctx ended the walk.
func (lc *LinkCollector) Collect(ctx context.Context, searchURL string) ([]string, error) {
	log := lc.log.With("search_url", searchURL)

	if err := lc.sess.Navigate(searchURL); err != nil {
		log.Warn("search page failed to load, moving to next search", "error", err)
		return nil, nil
	}

	var links []string
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return links, err
		}

		if err := lc.sess.WaitPresent(lc.sel.ResultCard, lc.timeouts.Results); err != nil {
			log.Warn("no result cards, moving to next search", "page", page, "error", err)
			return links, nil
		}

		hrefs, err := lc.sess.ChildAttrs(lc.sel.ResultCard, lc.sel.CardLink, "href")
		if err != nil {
			log.Warn("reading result cards failed, moving to next search", "page", page, "error", err)
			return links, nil
		}
		found := 0
		for i, href := range hrefs {
			if href == "" {
				log.Debug("result card has no job link", "page", page, "card", i)
				continue
			}
			links = append(links, href)
			found++
		}
		log.Info("extracted job links", "page", page, "links", found, "total", len(links))

		if lc.maxPages > 0 && page >= lc.maxPages {
			log.Info("page limit reached", "page", page)
			return links, nil
		}

		if err := lc.sess.ClickWhenReady(lc.sel.NextPage, lc.timeouts.NextPage); err != nil {
			log.Debug("no more pages", "page", page, "reason", err)
			return links, nil
		}
		// Paused after the click, so the last page costs no pause; the gap still precedes the next card wait
		if err := lc.pacer.Wait(ctx, StepPage); err != nil {
			return links, err
		}
	}
}
