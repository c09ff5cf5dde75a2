package docs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrFetchFailed = errors.New("document fetch failed")
)

// RawDocument is the backend's answer to a lazy fetch: either a base64 payload
// (possibly a data URL) or a remote URL, plus optional metadata.
type RawDocument struct {
	Data     string `json:"data"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Fetcher loads document content for a lazy reference by record identity and
// tag. DocID selects a sub-record for ledger-backed tags and is empty
// otherwise.
type Fetcher interface {
	Fetch(ctx context.Context, employeeID string, tag Tag, docID string) (RawDocument, error)
}

// Resolved is a viewable document: exactly one of URL and Data is set. Data is
// a bare base64 payload with any data-URL prefix already stripped.
type Resolved struct {
	URL      string `json:"url,omitempty"`
	Data     string `json:"data,omitempty"`
	FileName string `json:"name,omitempty"`
	MimeType string `json:"mimeType"`
}

type Resolver struct {
	fetcher Fetcher
}

func NewResolver(fetcher Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve normalizes a reference into viewable content. Remote references
// resolve to their URL, inline references to a bare base64 payload, and lazy
// references are fetched from the backend then normalized through the same
// path. The reference itself is never mutated.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, tag Tag, docID string, ref Reference) (Resolved, error) {
	if !ref.Present() {
		return Resolved{}, ErrNotFound
	}

	if ref.RemoteURL != "" || IsAbsoluteURL(ref.InlineData) {
		url := ref.RemoteURL
		if url == "" {
			url = ref.InlineData
		}
		return Resolved{URL: url, FileName: ref.FileName, MimeType: ref.Mime()}, nil
	}

	if ref.InlineData != "" {
		payload, embeddedMime := stripDataURL(ref.InlineData)
		mime := ref.MimeType
		if mime == "" {
			mime = embeddedMime
		}
		if mime == "" {
			mime = DefaultMimeType
		}
		return Resolved{Data: payload, FileName: ref.FileName, MimeType: mime}, nil
	}

	if r.fetcher == nil {
		return Resolved{}, ErrFetchFailed
	}
	raw, err := r.fetcher.Fetch(ctx, employeeID, tag, docID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Resolved{}, err
		}
		return Resolved{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if raw.Data == "" {
		return Resolved{}, ErrFetchFailed
	}

	fetched := Reference{
		InlineData: raw.Data,
		FileName:   raw.Name,
		MimeType:   raw.MimeType,
	}
	if fetched.FileName == "" {
		fetched.FileName = ref.FileName
	}
	if fetched.MimeType == "" {
		fetched.MimeType = ref.MimeType
	}
	if IsAbsoluteURL(raw.Data) {
		fetched.RemoteURL = raw.Data
		fetched.InlineData = ""
	}
	return r.Resolve(ctx, employeeID, tag, docID, fetched)
}

// stripDataURL removes a data:<mime>;base64, prefix and reports the embedded
// mime type when one was present.
func stripDataURL(value string) (payload, mime string) {
	if !strings.HasPrefix(value, "data:") {
		return value, ""
	}
	comma := strings.Index(value, ",")
	if comma < 0 {
		return value, ""
	}
	header := value[len("data:"):comma]
	header = strings.TrimSuffix(header, ";base64")
	return value[comma+1:], header
}
