package torrentsearch

import "torrentstream/torrentsearch/internal/domain"

var (
	// ErrSearchTooShort is returned, before any request is made, for searches
	// shorter than three user-perceived characters.
	ErrSearchTooShort = domain.ErrSearchTooShort
	// ErrNoSearchResults means the listing page was fetched but had no rows.
	ErrNoSearchResults = domain.ErrNoSearchResults
	ErrMagnetNotFound  = domain.ErrMagnetNotFound
	ErrSeedsNotFound   = domain.ErrSeedsNotFound
	ErrLeechesNotFound = domain.ErrLeechesNotFound
	// ErrTransport matches every *TransportError.
	ErrTransport = domain.ErrTransport
)

type TransportError = domain.TransportError
