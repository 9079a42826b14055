// Package media maps stored media identifiers to retrievable URLs.
package media

import (
	"fmt"
	"strings"
)

// URLBuilder resolves image ids against the media-serving endpoint.
type URLBuilder struct {
	base string
}

func NewURLBuilder(baseURL string) URLBuilder {
	return URLBuilder{base: strings.TrimSuffix(baseURL, "/")}
}

// URL returns "{base}/api/media/{id}/raw", or nil when there is no image.
func (b URLBuilder) URL(id *int64) *string {
	if id == nil || *id <= 0 {
		return nil
	}
	u := fmt.Sprintf("%s/api/media/%d/raw", b.base, *id)
	return &u
}
