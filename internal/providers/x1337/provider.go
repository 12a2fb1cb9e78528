package x1337

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"torrentstream/torrentsearch/internal/domain"
	"torrentstream/torrentsearch/internal/metrics"
	"torrentstream/torrentsearch/internal/providers/common"
	"torrentstream/torrentsearch/internal/query"
)

const DefaultEndpoint = "https://1337x.to"

var (
	x1337ListingRowPattern = regexp.MustCompile(`<td class="coll-1 name"><a href="/sub/[0-9]*/[0-9]*/" class="icon"><i class="flaticon-[a-zA-Z0-9]*"></i></a><a href="(/torrent/[0-9]*/([a-zA-Z0-9-_+!@#$%^&*()]*))`)
	x1337MagnetPattern     = regexp.MustCompile(`(stratum-|)magnet:\?xt=urn:(sha1|btih|ed2k|aich|kzhash|md5|tree:tiger):([A-Fa-f0-9]+|[A-Za-z2-7]+)&[A-Za-z0-9!@#$%^&*=+.\-_()]*(announce|[A-Fa-f0-9]{40}|[A-Za-z2-7]+)`)
	x1337SeedsPattern      = regexp.MustCompile(`<span class="seeds">([0-9]+)</span>`)
	x1337LeechesPattern    = regexp.MustCompile(`<span class="leeches">([0-9]+)</span>`)
)

var tracer = otel.Tracer("torrentstream/torrentsearch/x1337")

type Config struct {
	Endpoint  string
	UserAgent string
	Client    *http.Client
	Logger    *slog.Logger
}

type Provider struct {
	client    *http.Client
	baseURL   *url.URL
	userAgent string
	logger    *slog.Logger
}

func NewProvider(cfg Config) (*Provider, error) {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	baseURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: missing scheme or host", endpoint)
	}
	if baseURL.Path != "" || baseURL.RawQuery != "" || baseURL.Fragment != "" {
		return nil, fmt.Errorf("invalid endpoint %q: must be a bare origin", endpoint)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		client:    client,
		baseURL:   baseURL,
		userAgent: strings.TrimSpace(cfg.UserAgent),
		logger:    logger,
	}, nil
}

func (p *Provider) Name() string {
	return "1337x"
}

// SearchURL returns the first results page for term. Path separators are
// rewritten before the term is placed in the path; escapes the caller already
// applied (%20) are kept as they are rather than escaped a second time.
func (p *Provider) SearchURL(term string) string {
	term = query.EscapeSearchTerm(term)
	if decoded, err := url.PathUnescape(term); err == nil {
		term = decoded
	}
	path := "/search/" + term + "/1/"
	return p.baseURL.ResolveReference(&url.URL{Path: path}).String()
}

// DetailURL resolves a listing path against the endpoint. The path is used
// as scraped, percent-escapes included.
func (p *Provider) DetailURL(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return p.baseURL.ResolveReference(ref).String(), nil
}

func (p *Provider) FetchListing(ctx context.Context, term string) (string, error) {
	return p.fetch(ctx, domain.StageListing, p.SearchURL(term))
}

func (p *Provider) FetchDetail(ctx context.Context, path string) (string, error) {
	target, err := p.DetailURL(path)
	if err != nil {
		return "", domain.WrapTransport(domain.StageDetail, path, err)
	}
	return p.fetch(ctx, domain.StageDetail, target)
}

func (p *Provider) fetch(ctx context.Context, stage domain.Stage, target string) (string, error) {
	ctx, span := tracer.Start(ctx, "x1337."+string(stage),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", target)),
	)
	defer span.End()

	start := time.Now()
	body, status, err := p.get(ctx, target)
	elapsed := time.Since(start)
	metrics.FetchDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues(string(stage), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", domain.WrapTransport(stage, target, err)
	}
	metrics.FetchRequestsTotal.WithLabelValues(string(stage), strconv.Itoa(status)).Inc()
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	p.logger.Debug("1337x page fetched",
		slog.String("stage", string(stage)),
		slog.String("url", target),
		slog.Int("status", status),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", elapsed),
	)
	return body, nil
}

// get returns the body of any response the server sends; only failures to
// obtain a response at all are errors.
func (p *Provider) get(ctx context.Context, target string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, err
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, truncated, err := common.ReadText(resp)
	if err != nil {
		return "", resp.StatusCode, err
	}
	if truncated {
		p.logger.Debug("1337x page truncated",
			slog.String("url", target),
			slog.Int("limit", common.MaxBodyBytes),
		)
	}
	return body, resp.StatusCode, nil
}

// ParseListing returns every result row of a listing page in document order.
// Each path gets a trailing slash; the site answers 404 without it.
func ParseListing(payload string) ([]domain.ListingEntry, error) {
	matches := x1337ListingRowPattern.FindAllStringSubmatch(payload, -1)
	if len(matches) == 0 {
		return nil, domain.ErrNoSearchResults
	}
	entries := make([]domain.ListingEntry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, domain.ListingEntry{
			Path: match[1] + "/",
			Name: match[2],
		})
	}
	return entries, nil
}

// ParseDetail extracts the magnet and swarm counts of a detail page. The
// three fields fail independently.
func ParseDetail(payload string) domain.Detail {
	return domain.Detail{
		Magnet:  findMagnet(payload),
		Seeders: findCount(payload, x1337SeedsPattern, domain.ErrSeedsNotFound),
		Leeches: findCount(payload, x1337LeechesPattern, domain.ErrLeechesNotFound),
	}
}

func findMagnet(payload string) domain.Outcome[string] {
	magnet := x1337MagnetPattern.FindString(payload)
	if magnet == "" {
		return domain.Fail[string](domain.ErrMagnetNotFound)
	}
	return domain.Ok(magnet)
}

func findCount(payload string, pattern *regexp.Regexp, notFound error) domain.Outcome[int] {
	match := pattern.FindStringSubmatch(payload)
	if len(match) < 2 {
		return domain.Fail[int](notFound)
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return domain.Fail[int](fmt.Errorf("%w: %v", notFound, err))
	}
	return domain.Ok(value)
}
