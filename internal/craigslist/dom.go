package craigslist

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

const domUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// SettlePolicy controls the auto-scroll that triggers lazy image loading
// on the gallery page, and how long to wait for images afterwards.
type SettlePolicy struct {
	StepPx     int
	StepDelay  time.Duration
	MaxScroll  int
	SettleWait time.Duration
}

// DefaultSettlePolicy scrolls 100px every 100ms up to 2000px, then waits
// two seconds. Enough to load images for the first ten listings.
func DefaultSettlePolicy() SettlePolicy {
	return SettlePolicy{
		StepPx:     100,
		StepDelay:  100 * time.Millisecond,
		MaxScroll:  2000,
		SettleWait: 2 * time.Second,
	}
}

// DOMSearcher renders the search results page in headless Chrome and
// extracts listings from the live DOM. Slower than the feed strategy, but
// it sees listing images.
type DOMSearcher struct {
	site      string
	settle    SettlePolicy
	chromeBin string
	timeout   time.Duration
}

func NewDOMSearcher(site string, settle SettlePolicy) *DOMSearcher {
	return &DOMSearcher{
		site:      site,
		settle:    settle,
		chromeBin: findChromeBinary(),
		timeout:   60 * time.Second,
	}
}

// Search renders the gallery page, scrolls per the settle policy and
// parses the resulting HTML. The browser session is released on every
// exit path via the deferred context cancels.
func (s *DOMSearcher) Search(ctx context.Context, title string, price float64) ([]Item, error) {
	pageURL := searchURL(s.site, title, price) + "#search=1~gallery~0~0"

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(domUserAgent),
	)
	if s.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(s.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	log.Debug().Str("url", pageURL).Msg("rendering craigslist search page")

	tasks := chromedp.Tasks{
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
	}
	for scrolled := 0; scrolled < s.settle.MaxScroll; scrolled += s.settle.StepPx {
		tasks = append(tasks,
			chromedp.Evaluate(fmt.Sprintf("window.scrollBy(0, %d)", s.settle.StepPx), nil),
			chromedp.Sleep(s.settle.StepDelay),
		)
	}
	tasks = append(tasks, chromedp.Sleep(s.settle.SettleWait))

	var html string
	tasks = append(tasks, chromedp.OuterHTML("html", &html))

	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("failed to render search page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	return extractListings(doc), nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring CHROME_BIN.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}
