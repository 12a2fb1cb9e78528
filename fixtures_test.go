package torrentsearch

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const (
	debianSlug   = "Debian-8-7-1-Jessie-KDE-x32-i386-CD1-ISO-Uzerus"
	debianMagnet = "magnet:?xt=urn:btih:9EB579CA38807332ECA53358E5E014CAD70C1358&dn=Debian+8.7.1+%5BJessie%5D%5BKDE%5D%5Bx32%5D%5Bi386%5D%5BCD1%5D%5BISO%5D%5BUzerus%5D&tr=udp%3A%2F%2Ftracker.zer0day.to%3A1337%2Fannounce&tr=udp%3A%2F%2Ftracker.leechers-paradise.org%3A6969%2Fannounce&tr=udp%3A%2F%2Fcoppersurfer.tk%3A6969%2Fannounce"

	archSlug   = "Arch-Linux-2014-10-10-x86-x64"
	archMagnet = "magnet:?xt=urn:btih:FF71F60D489A634C0E55972A60A50FE7B13A4A4F&dn=Arch+Linux+-+2014.10.10+-+%28x86%2Fx64%29&tr=http%3A%2F%2Ftracker.archlinux.org%3A6969%2Fannounce&tr=udp%3A%2F%2Ftracker.zer0day.to%3A1337%2Fannounce&tr=udp%3A%2F%2Ftracker.leechers-paradise.org%3A6969%2Fannounce&tr=udp%3A%2F%2Fcoppersurfer.tk%3A6969%2Fannounce"

	sintelSlug   = "Sintel-4K-UHD-ENG-FLAC-ITA-ENG-Sub-DMRip-1744p-X264-ZMachine"
	sintelMagnet = "magnet:?xt=urn:btih:64877B5490208C3015C0F5121287949D62622E54&dn=Sintel+4K+UHD+ENG+FLAC+ITA+ENG+Sub+DMRip+1744p+X264+ZMachine&tr=http%3A%2F%2Ftracker.tntvillage.scambioetico.org%3A2710%2Fannounce&tr=udp%3A%2F%2Ftracker.tntvillage.scambioetico.org%3A2710%2Fannounce&tr=udp%3A%2F%2Ftracker.yify-torrents.com%3A80%2Fannounce&tr=udp%3A%2F%2F10.rarbg.me%3A80%2Fannounce&tr=udp%3A%2F%2Ftracker.prq.to%2Fannounce&tr=udp%3A%2F%2F12.rarbg.me%3A80%2Fannounce&tr=udp%3A%2F%2F9.rarbg.com%3A2710%2Fannounce&tr=udp%3A%2F%2Ftracker.token.ro%3A80%2Fannounce&tr=udp%3A%2F%2Ftracker.istole.it%3A80%2Fannounce&tr=udp%3A%2F%2Fopen.demonii.com%3A1337%2Fannounce&tr=udp%3A%2F%2Fexodus.desync.com%3A6969%2Fannounce&tr=udp%3A%2F%2Ftracker.publicbt.com%3A80%2Fannounce&tr=udp%3A%2F%2Ftracker.openbittorrent.com%3A80%2Fannounce&tr=udp%3A%2F%2Ftracker.zer0day.to%3A1337%2Fannounce&tr=udp%3A%2F%2Ftracker.leechers-paradise.org%3A6969%2Fannounce&tr=udp%3A%2F%2Fcoppersurfer.tk%3A6969%2Fannounce"
)

type row struct {
	id   string
	slug string
}

func (r row) path() string {
	return "/torrent/" + r.id + "/" + r.slug + "/"
}

func listingPage(rows ...row) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="table-list-wrap"><table class="table-list table table-responsive table-striped"><tbody>`)
	for _, r := range rows {
		b.WriteString(`<tr><td class="coll-1 name"><a href="/sub/2/0/" class="icon"><i class="flaticon-apps"></i></a><a href="` + r.path() + `">` + strings.ReplaceAll(r.slug, "-", " ") + `</a></td><td class="coll-2 seeds">1</td><td class="coll-3 leeches">0</td></tr>`)
	}
	b.WriteString(`</tbody></table></div></body></html>`)
	return b.String()
}

func emptyListingPage() string {
	return `<html><body><div class="box-info-detail"><p>No results were returned. Please refine your search.</p></div></body></html>`
}

func detailPage(magnet, seeds, leeches string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="torrent-detail-page">`)
	if magnet != "" {
		b.WriteString(`<ul class="dropdown-menu"><li><a class="btn" href="` + magnet + `" onclick="javascript: count(this);"><span class="icon"><i class="flaticon-magnet"></i></span>Magnet Download</a></li></ul>`)
	}
	b.WriteString(`<ul class="list">`)
	if seeds != "" {
		b.WriteString(`<li> <strong>Seeders</strong> <span class="seeds">` + seeds + `</span> </li>`)
	}
	if leeches != "" {
		b.WriteString(`<li> <strong>Leechers</strong> <span class="leeches">` + leeches + `</span> </li>`)
	}
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}

// fakeSite serves a fixed listing page and detail pages keyed by path.
type fakeSite struct {
	listing string
	details map[string]string
	delays  map[string]time.Duration
	// paths whose connection is dropped without a response
	broken map[string]bool

	requests atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32

	mu       sync.Mutex
	paths    []string
	listings []string
}

func (s *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if current <= peak || s.peak.CompareAndSwap(peak, current) {
			break
		}
	}

	path := r.URL.EscapedPath()
	s.mu.Lock()
	s.paths = append(s.paths, path)
	if strings.HasPrefix(path, "/search/") {
		s.listings = append(s.listings, path)
	}
	s.mu.Unlock()

	if delay := s.delays[path]; delay > 0 {
		time.Sleep(delay)
	}
	if s.broken[path] {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	if strings.HasPrefix(path, "/search/") {
		_, _ = io.WriteString(w, s.listing)
		return
	}
	body, ok := s.details[path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "<h1>Not Found</h1>")
		return
	}
	_, _ = io.WriteString(w, body)
}

func (s *fakeSite) detailHits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	hits := 0
	for _, p := range s.paths {
		if p == path {
			hits++
		}
	}
	return hits
}

func (s *fakeSite) listingPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.listings...)
}

func startSite(t *testing.T, site *fakeSite) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(site)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, concurrency int) *Client {
	t.Helper()
	client, err := New(Config{
		Endpoint:          server.URL,
		Client:            server.Client(),
		DetailConcurrency: concurrency,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}
