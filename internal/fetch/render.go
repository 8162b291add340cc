// Package fetch issues single network or rendered-page requests with
// fail-fast semantics: hard timeouts, no automatic retries, and a mandatory
// randomized throttle delay after each request. Callers decide whether to
// move on to the next query after a failure.
package fetch

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/chromedp/cdproto/cdp"
	cdpfetch "github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// defaultUserAgents is the rotation pool used when no pool is configured.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// blockedResourceTypes are aborted during rendering to cut page load cost.
var blockedResourceTypes = map[network.ResourceType]bool{
	network.ResourceTypeImage:      true,
	network.ResourceTypeStylesheet: true,
	network.ResourceTypeFont:       true,
	network.ResourceTypeMedia:      true,
}

// PageRenderer fetches a URL through a headless browser and returns the
// rendered document HTML. Implementations must release all browser resources
// on every exit path.
type PageRenderer interface {
	FetchRendered(ctx context.Context, url, waitSelector string) (*Result, error)
}

// RendererOptions configures a Renderer.
type RendererOptions struct {
	NavTimeout   time.Duration // whole-page navigation budget
	SelectorWait time.Duration // bounded wait for the result-container selector
	UserAgents   []string
	Throttle     Throttle
}

// Renderer implements PageRenderer with chromedp. Each fetch acquires a
// scoped browser context that is torn down by deferred cancels regardless of
// how the fetch exits.
type Renderer struct {
	opts RendererOptions
}

// NewRenderer creates a Renderer with defaults filled in.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.NavTimeout == 0 {
		opts.NavTimeout = 45 * time.Second
	}
	if opts.SelectorWait == 0 {
		opts.SelectorWait = 15 * time.Second
	}
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = defaultUserAgents
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) userAgent() string {
	return r.opts.UserAgents[rand.IntN(len(r.opts.UserAgents))]
}

// FetchRendered navigates to url in a headless browser, optionally waits for
// waitSelector to become visible, and returns the rendered HTML. The throttle
// delay runs after every attempt, success or not.
func (r *Renderer) FetchRendered(ctx context.Context, url, waitSelector string) (*Result, error) {
	defer func() { _ = r.opts.Throttle.Wait(ctx) }()

	navCtx, cancelNav := context.WithTimeout(ctx, r.opts.NavTimeout)
	defer cancelNav()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(r.userAgent()),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(navCtx, allocOpts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	abortNonEssential(bctx)

	err := chromedp.Run(bctx,
		cdpfetch.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Result{URL: url, Status: StatusTimeout}, &NavigationError{URL: url, Err: err}
		}
		return &Result{URL: url, Status: StatusNavigationError}, &NavigationError{URL: url, Err: err}
	}

	if waitSelector != "" {
		waitCtx, cancelWait := context.WithTimeout(bctx, r.opts.SelectorWait)
		err = chromedp.Run(waitCtx, chromedp.WaitVisible(waitSelector, chromedp.ByQuery))
		cancelWait()
		if err != nil {
			return &Result{URL: url, Status: StatusTimeout}, &SelectorTimeoutError{Selector: waitSelector, URL: url}
		}
	}

	var html string
	if err := chromedp.Run(bctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return &Result{URL: url, Status: StatusNavigationError}, &NavigationError{URL: url, Err: err}
	}

	if blocked, blockType := DetectBlock(html); blocked {
		return &Result{URL: url, Status: StatusBlocked}, &BlockedError{URL: url, BlockType: blockType}
	}

	return &Result{URL: url, HTML: html, Status: StatusSuccess}, nil
}

// abortNonEssential intercepts requests and fails those for resource types
// that do not contribute text content.
func abortNonEssential(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev any) {
		paused, ok := ev.(*cdpfetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(ctx)
			ectx := cdp.WithExecutor(ctx, c.Target)
			if blockedResourceTypes[paused.ResourceType] {
				if err := cdpfetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(ectx); err != nil {
					zap.L().Debug("fetch: abort request", zap.Error(err))
				}
				return
			}
			if err := cdpfetch.ContinueRequest(paused.RequestID).Do(ectx); err != nil {
				zap.L().Debug("fetch: continue request", zap.Error(err))
			}
		}()
	})
}
