package query

import (
	"strings"

	"github.com/rivo/uniseg"

	"torrentstream/torrentsearch/internal/domain"
)

// MinLength is the shortest search the site accepts, in user-perceived
// characters.
const MinLength = 3

var separatorReplacer = strings.NewReplacer("/", "+", "%2F", "+", "%2f", "+")

// Validate rejects searches shorter than MinLength grapheme clusters.
func Validate(raw string) error {
	if uniseg.GraphemeClusterCount(raw) < MinLength {
		return domain.ErrSearchTooShort
	}
	return nil
}

// EscapeSearchTerm rewrites path separators, literal or percent-encoded, to
// the site's word separator. The search path is rejected otherwise.
func EscapeSearchTerm(raw string) string {
	return separatorReplacer.Replace(raw)
}
