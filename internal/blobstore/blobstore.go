// Package blobstore defines the storage contract for verification photos.
// The engine behind it is opaque to the rest of the system: callers hand
// over bytes under a server-generated key and get the same bytes back.
package blobstore

import (
	"context"
	"strings"
)

// MediaURLPath is the public route prefix under which stored verification
// images are served.
const MediaURLPath = "/media/verification_images"

type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// URLFor builds the absolute URL for a stored key. An empty baseURL means
// the caller has no request context to build one from; the result is then
// empty rather than an error.
func URLFor(baseURL, key string) string {
	if baseURL == "" || key == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + MediaURLPath + "/" + key
}
