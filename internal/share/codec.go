// Package share turns an exhibition into a link token and back.
//
// A token is the standard base64 encoding of a JSON array of {id, source}
// records, percent-encoded so it can sit in a query string unchanged.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"curator/internal/artwork"
	"curator/internal/exhibition"
)

// QueryParam carries the token on a shared link.
const QueryParam = "data"

// MaxRecords bounds the artworks one token may carry, and with it the
// upstream fetches an anonymous link can trigger.
const MaxRecords = 100

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("share token decode failed")

	ErrTooManyRecords = fmt.Errorf("share links carry at most %d artworks", MaxRecords)
)

type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode share token: %s: %v", e.Reason, e.Err)
	}
	return "decode share token: " + e.Reason
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

// Record is the minimal projection of an artwork kept in a token.
type Record struct {
	ID     int            `json:"id"`
	Source artwork.Source `json:"source"`
}

func (r Record) Identity() artwork.Identity {
	return artwork.Identity{Source: r.Source, ID: r.ID}
}

// Records projects artworks to records, dropping any without both an id and
// a source.
func Records(artworks []artwork.Artwork) []Record {
	out := make([]Record, 0, len(artworks))
	for _, a := range artworks {
		if a.ID <= 0 || a.Source == "" {
			continue
		}
		out = append(out, Record{ID: a.ID, Source: a.Source})
	}
	return out
}

// Encode returns the share token for e.
func Encode(e exhibition.Exhibition) string {
	return EncodeRecords(Records(e.Artworks))
}

func EncodeRecords(records []Record) string {
	if records == nil {
		records = []Record{}
	}
	data, _ := json.Marshal(records)
	return url.QueryEscape(base64.StdEncoding.EncodeToString(data))
}

// Decode reverses Encode. It accepts the token as produced, or with the
// percent-encoding already removed by a URL parser.
func Decode(token string) ([]Record, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return nil, &DecodeError{Reason: "empty token"}
	}
	if strings.Contains(s, "%") {
		unescaped, err := url.PathUnescape(s)
		if err != nil {
			return nil, &DecodeError{Reason: "bad percent-encoding", Err: err}
		}
		s = unescaped
	}
	// Query parsing turns an unescaped '+' into a space.
	s = strings.ReplaceAll(s, " ", "+")

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Reason: "bad base64", Err: err}
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &DecodeError{Reason: "payload is not a JSON array"}
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &DecodeError{Reason: "bad json", Err: err}
	}
	if len(records) > MaxRecords {
		return nil, &DecodeError{Reason: fmt.Sprintf("%d records", len(records)), Err: ErrTooManyRecords}
	}
	for i, r := range records {
		if !r.Identity().Valid() {
			return nil, &DecodeError{Reason: fmt.Sprintf("record %d is not a valid artwork identity", i)}
		}
	}
	return records, nil
}

// Link sets the token on pageURL's data query parameter.
func Link(pageURL, token string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse share page url: %w", err)
	}
	raw, err := url.PathUnescape(token)
	if err != nil {
		return "", &DecodeError{Reason: "bad percent-encoding", Err: err}
	}
	q := u.Query()
	q.Set(QueryParam, raw)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
