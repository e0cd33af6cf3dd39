package webutil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Navigator is the host's view of the current page location.
type Navigator interface {
	// Origin returns scheme://host of the current page.
	Origin() string
	// Replace navigates to url without keeping the current page in history.
	Replace(url string)
}

// AppRoot returns the application root under origin. An empty baseURL
// means the root is "/".
func AppRoot(origin, baseURL string) string {
	if baseURL == "" {
		baseURL = "/"
	}
	return origin + baseURL
}

// ReloadApp performs a full navigation to the application root, replacing
// the current history entry.
func ReloadApp(nav Navigator, baseURL string) {
	target := AppRoot(nav.Origin(), baseURL)
	log.WithField("target", target).Debug("reloading app")
	nav.Replace(target)
}

// GinNavigator answers the current request with a redirect.
type GinNavigator struct {
	c *gin.Context
}

func NewGinNavigator(c *gin.Context) *GinNavigator {
	return &GinNavigator{c: c}
}

// Origin honours X-Forwarded-Proto and X-Forwarded-Host set by proxies.
func (n *GinNavigator) Origin() string {
	scheme := "http"
	if n.c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := n.c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := n.c.Request.Host
	if fwd := n.c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host
}

// Replace redirects with 302 Found; redirects never leave the source page
// in the browser history.
func (n *GinNavigator) Replace(url string) {
	n.c.Header("Cache-Control", "no-store")
	n.c.Redirect(http.StatusFound, url)
	n.c.Abort()
}
