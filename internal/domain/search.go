package domain

import "encoding/json"

// Outcome is the per-field result of a detail-page extraction. A failed
// field never hides the other fields of the same record.
type Outcome[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{value: value}
}

func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

func (o Outcome[T]) Get() (T, error) {
	return o.value, o.err
}

// Value returns the extracted value, or the zero value when extraction failed.
func (o Outcome[T]) Value() T {
	return o.value
}

func (o Outcome[T]) Err() error {
	return o.err
}

func (o Outcome[T]) OK() bool {
	return o.err == nil
}

type outcomeJSON[T any] struct {
	Value *T     `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return json.Marshal(outcomeJSON[T]{Error: o.err.Error()})
	}
	value := o.value
	return json.Marshal(outcomeJSON[T]{Value: &value})
}

type SearchResult struct {
	Name     string          `json:"name"`
	Magnet   Outcome[string] `json:"magnet"`
	Seeders  Outcome[int]    `json:"seeders"`
	Leeches  Outcome[int]    `json:"leeches"`
	InfoHash string          `json:"infoHash,omitempty"`
	PageURL  string          `json:"pageUrl,omitempty"`
}

// ListingEntry is one row of a search listing page.
type ListingEntry struct {
	Path string
	Name string
}

type Detail struct {
	Magnet  Outcome[string]
	Seeders Outcome[int]
	Leeches Outcome[int]
}
