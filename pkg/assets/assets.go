// Package assets rewrites catalog image references into servable URLs.
// Product records accumulate image paths in several shapes (absolute
// backend URLs, localhost development URLs, /media/ paths, bare
// filenames); the resolver maps all of them onto the deployment's public
// base path.
package assets

import "strings"

const mediaSegment = "/media/"

type Resolver struct {
	// BaseURL is the public prefix assets are served under. May be empty.
	BaseURL string
	// Fallback is returned for missing image references.
	Fallback string
}

func NewResolver(baseURL, fallback string) *Resolver {
	return &Resolver{BaseURL: baseURL, Fallback: fallback}
}

// Normalize maps an image reference to a canonical URL. Rules apply in
// order, first match wins, and the result is a fixed point: normalizing
// an already-normalized URL returns it unchanged.
func (r *Resolver) Normalize(image string) string {
	if image == "" {
		return r.BaseURL + r.Fallback
	}

	// External URLs work as-is unless they point at a dev backend.
	if strings.HasPrefix(image, "http") && !strings.Contains(image, "localhost") {
		return image
	}

	if r.BaseURL != "" && strings.HasPrefix(image, r.BaseURL) {
		return image
	}

	// Localhost URL: keep only the filename.
	if strings.Contains(image, "localhost") {
		idx := strings.LastIndex(image, "/")
		return r.BaseURL + "/" + image[idx+1:]
	}

	// Media path: keep everything after the last /media/ segment.
	if idx := strings.LastIndex(image, mediaSegment); idx >= 0 {
		return r.BaseURL + "/" + image[idx+len(mediaSegment):]
	}

	if strings.HasPrefix(image, "/") {
		return r.BaseURL + image
	}

	return r.BaseURL + "/" + image
}
