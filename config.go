package torrentsearch

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"torrentstream/torrentsearch/internal/app"
)

const defaultDetailConcurrency = 4

type Config struct {
	// Endpoint is the site origin, scheme and host only (a mirror such as
	// https://1337x.st works; a path prefix is rejected by New). Defaults to
	// https://1337x.to.
	Endpoint string
	// UserAgent is sent when set; otherwise the Go client default is used.
	UserAgent string
	// Client overrides the traced default client. Timeout is ignored when
	// Client is set.
	Client  *http.Client
	Timeout time.Duration
	// DetailConcurrency bounds parallel detail-page fetches. 1 fetches them
	// strictly one after another.
	DetailConcurrency int
	Logger            *slog.Logger
}

// ConfigFromEnv builds a Config from TORRENT_SEARCH_* and LOG_* variables.
// Unset variables leave the defaults in place.
func ConfigFromEnv() Config {
	cfg := app.LoadConfig()
	return Config{
		Endpoint:          cfg.Endpoint,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.RequestTimeout,
		DetailConcurrency: cfg.DetailConcurrency,
		Logger:            app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat),
	}
}
