package common

import (
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

// InfoHashFromMagnet returns the lowercase hex btih of a magnet URI, or ""
// when the URI does not carry a BitTorrent v1 info hash.
func InfoHashFromMagnet(magnet string) string {
	if strings.TrimSpace(magnet) == "" {
		return ""
	}
	m, err := metainfo.ParseMagnetUri(magnet)
	if err != nil {
		return ""
	}
	return m.InfoHash.HexString()
}
