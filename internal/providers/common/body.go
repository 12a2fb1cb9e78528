package common

import (
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// MaxBodyBytes caps how much of a page is read before matching.
const MaxBodyBytes = 4 * 1024 * 1024

// ReadText reads the response body as text regardless of the declared
// content type. The charset parameter, when present and known, selects the
// decoder; anything else is treated as UTF-8 with invalid sequences replaced.
// Bodies longer than MaxBodyBytes are cut at the limit and reported as
// truncated.
func ReadText(resp *http.Response) (string, bool, error) {
	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return "", false, err
	}
	truncated := len(payload) > MaxBodyBytes
	if truncated {
		payload = payload[:MaxBodyBytes]
	}
	return DecodeText(payload, resp.Header.Get("Content-Type")), truncated, nil
}

func DecodeText(payload []byte, contentType string) string {
	charset := charsetOf(contentType)
	if charset != "" && charset != "utf-8" && charset != "utf8" {
		if enc, err := htmlindex.Get(charset); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(payload); err == nil {
				return string(decoded)
			}
		}
	}
	if utf8.Valid(payload) {
		return string(payload)
	}
	return strings.ToValidUTF8(string(payload), "�")
}

func charsetOf(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}
