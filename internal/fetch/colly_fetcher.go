package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Options configures the HTTP behavior of the fetcher.
type Options struct {
	UserAgent    string
	Accept       string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// CollyFetcher implements Fetcher using a synchronous Colly collector:
// one request at a time, no revisit bookkeeping, bounded by the request
// timeout.
type CollyFetcher struct {
	baseCollector *colly.Collector
	accept        string
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(opts Options, logger *zap.Logger) *CollyFetcher {
	base := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
	)
	// Each record is fetched independently; revisits across records are fine.
	base.AllowURLRevisit = true
	if opts.MaxBodyBytes > 0 {
		base.MaxBodySize = int(opts.MaxBodyBytes)
	}
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(opts.Timeout)

	return &CollyFetcher{
		baseCollector: base,
		accept:        opts.Accept,
		logger:        logger,
	}
}

// Fetch retrieves a page via the configured Colly collector. Non-2xx
// responses and transport failures are returned as errors.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	f.logger.Debug("Fetching page", zap.String("url", rawURL))

	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnRequest(func(r *colly.Request) {
		if f.accept != "" {
			r.Headers.Set("Accept", f.accept)
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		headers := http.Header{}
		if r.Headers != nil {
			for k, v := range *r.Headers {
				cp := make([]string, len(v))
				copy(cp, v)
				headers[k] = cp
			}
		}
		page := Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    headers,
			Body:       append([]byte{}, r.Body...),
		}
		send(fetchResult{page: page})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		if r != nil && r.StatusCode > 0 {
			err = fmt.Errorf("http status %d: %w", r.StatusCode, err)
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(rawURL); err != nil {
		return Page{}, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		return res.page, res.err
	default:
		return Page{}, errors.New("fetch produced no result")
	}
}

type fetchResult struct {
	page Page
	err  error
}
