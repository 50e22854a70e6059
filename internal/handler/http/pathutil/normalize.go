// Package pathutil maps request paths to bounded metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// Other is the label used for paths that match no known route.
const Other = "other"

var idSegment = regexp.MustCompile(`^(\d+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})$`)

// Routes is the set of paths served by the API.
// The zero value knows no routes and labels every path as Other.
type Routes struct {
	known map[string]struct{}
}

// NewRoutes returns a Routes that recognises the given paths. Paths may
// contain ":id" segments.
func NewRoutes(paths ...string) *Routes {
	r := &Routes{known: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		r.known[Clean(p)] = struct{}{}
	}
	return r
}

// Normalize returns the route template for path, replacing numeric and UUID
// segments with ":id". Unknown paths become Other so scanners cannot grow the
// label set.
//
//	Normalize("/api/summarize")      // "/api/summarize"
//	Normalize("/api/summaries/42/")  // "/api/summaries/:id" if registered
//	Normalize("/wp-admin")           // "other"
func (r *Routes) Normalize(path string) string {
	path = Clean(path)
	if r == nil {
		return Other
	}
	if _, ok := r.known[path]; ok {
		return path
	}
	segs := strings.Split(path, "/")
	replaced := false
	for i, s := range segs {
		if idSegment.MatchString(s) {
			segs[i] = ":id"
			replaced = true
		}
	}
	if replaced {
		tmpl := strings.Join(segs, "/")
		if _, ok := r.known[tmpl]; ok {
			return tmpl
		}
	}
	return Other
}

// Clean strips the query string and any trailing slash (except for "/").
func Clean(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
