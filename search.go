package torrentsearch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"torrentstream/torrentsearch/internal/domain"
	"torrentstream/torrentsearch/internal/metrics"
	"torrentstream/torrentsearch/internal/providers/common"
	"torrentstream/torrentsearch/internal/providers/x1337"
	"torrentstream/torrentsearch/internal/query"
	"torrentstream/torrentsearch/internal/telemetry"
)

// Result is one listing row with the fields scraped from its detail page.
type Result = domain.SearchResult

// Outcome holds either an extracted value or the reason extraction failed.
type Outcome[T any] = domain.Outcome[T]

func Ok[T any](value T) Outcome[T] {
	return domain.Ok(value)
}

func Fail[T any](err error) Outcome[T] {
	return domain.Fail[T](err)
}

var tracer = otel.Tracer("torrentstream/torrentsearch")

type Client struct {
	provider    *x1337.Provider
	concurrency int
	logger      *slog.Logger
}

func New(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = telemetry.NewHTTPClient(cfg.Timeout)
	}
	provider, err := x1337.NewProvider(x1337.Config{
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.UserAgent,
		Client:    httpClient,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	concurrency := cfg.DetailConcurrency
	if concurrency <= 0 {
		concurrency = defaultDetailConcurrency
	}
	return &Client{
		provider:    provider,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

var defaultClient = sync.OnceValue(func() *Client {
	client, err := New(Config{})
	if err != nil {
		panic(err)
	}
	return client
})

// Search runs a search with the default configuration.
func Search(ctx context.Context, search string) ([]Result, error) {
	return defaultClient().Search(ctx, search)
}

// Search fetches the first listing page for search, then every result's
// detail page. Results keep listing order. A detail page that cannot be
// fetched fails the whole call; a detail page missing a field only fails that
// field.
func (c *Client) Search(ctx context.Context, search string) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "torrentsearch.Search")
	defer span.End()

	start := time.Now()
	results, err := c.search(ctx, search)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchesTotal.WithLabelValues(searchOutcome(err)).Inc()

	span.SetAttributes(attribute.Int("torrentsearch.results", len(results)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return results, nil
}

func (c *Client) search(ctx context.Context, search string) ([]Result, error) {
	if err := query.Validate(search); err != nil {
		return nil, err
	}

	page, err := c.provider.FetchListing(ctx, search)
	if err != nil {
		c.logger.Warn("listing fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	entries, err := x1337.ParseListing(page)
	if err != nil {
		c.logger.Debug("listing has no result rows", slog.Int("bytes", len(page)))
		return nil, err
	}

	results := make([]Result, len(entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for i, entry := range entries {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return domain.WrapTransport(domain.StageDetail, entry.Path, err)
			}
			body, err := c.provider.FetchDetail(groupCtx, entry.Path)
			if err != nil {
				return err
			}
			results[i] = c.assemble(entry, body)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		c.logger.Warn("detail fetch failed, search aborted",
			slog.Int("rows", len(entries)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("search completed", slog.Int("results", len(results)))
	return results, nil
}

func (c *Client) assemble(entry domain.ListingEntry, body string) Result {
	detail := x1337.ParseDetail(body)
	// FetchDetail already parsed this path, so it cannot fail here.
	pageURL, _ := c.provider.DetailURL(entry.Path)

	for _, field := range []struct {
		name string
		err  error
	}{
		{"magnet", detail.Magnet.Err()},
		{"seeders", detail.Seeders.Err()},
		{"leeches", detail.Leeches.Err()},
	} {
		if field.err == nil {
			continue
		}
		metrics.ExtractionFailuresTotal.WithLabelValues(field.name).Inc()
		c.logger.Debug("detail field not found",
			slog.String("field", field.name),
			slog.String("page", pageURL),
			slog.String("error", field.err.Error()),
		)
	}

	return Result{
		Name:     entry.Name,
		Magnet:   detail.Magnet,
		Seeders:  detail.Seeders,
		Leeches:  detail.Leeches,
		InfoHash: common.InfoHashFromMagnet(detail.Magnet.Value()),
		PageURL:  pageURL,
	}
}

func searchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSearchTooShort):
		return "too_short"
	case errors.Is(err, domain.ErrNoSearchResults):
		return "no_results"
	case errors.Is(err, domain.ErrTransport):
		return "transport_error"
	default:
		return "error"
	}
}
