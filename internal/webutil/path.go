// Package webutil builds public paths under the configured base URL and
// sends the browser back to the application root.
package webutil

import "regexp"

var slashRun = regexp.MustCompile(`/{2,}`)

// PublicPath appends path to baseURL and collapses every run of slashes
// into one, so PublicPath("/app/", "//foo") is "/app/foo".
//
// The collapse applies to the whole string, so baseURL is expected to be a
// path prefix rather than an absolute URL with a scheme.
func PublicPath(baseURL, path string) string {
	return slashRun.ReplaceAllString(baseURL+path, "/")
}
