package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/nerlens/nerlens/config"
)

const versionHeader = "X-Nerlens-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(
				versionHeader,
				config.VersionString,
			)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

const (
	allowOriginHeader  = "Access-Control-Allow-Origin"
	allowMethodsHeader = "Access-Control-Allow-Methods"
	allowHeadersHeader = "Access-Control-Allow-Headers"
	requestMethod      = "Access-Control-Request-Method"
	requestHeaders     = "Access-Control-Request-Headers"

	preflightMethods = "GET, POST, OPTIONS"
)

// resolveHeaders returns the configured headers with "env:NAME" values
// replaced by the NAME environment variable. Empty values are dropped.
func resolveHeaders(customHeaders map[string]string) http.Header {
	resolved := make(http.Header, len(customHeaders))
	for key, value := range customHeaders {
		if name, ok := strings.CutPrefix(value, "env:"); ok {
			value = os.Getenv(name)
		}
		if value != "" {
			resolved.Set(key, value)
		}
	}
	return resolved
}

// ApplyCustomHeaders adds the configured headers to every response. Values
// are resolved once, when the router is built. When an
// Access-Control-Allow-Origin header is configured, CORS preflight requests
// are answered directly with 204 so browser clients can reach the API without
// credentials.
func ApplyCustomHeaders(customHeaders map[string]string) func(http.Handler) http.Handler {
	headers := resolveHeaders(customHeaders)
	cors := headers.Get(allowOriginHeader) != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, values := range headers {
				// route-specific headers win
				if w.Header().Get(key) == "" {
					w.Header()[key] = values
				}
			}

			if cors && r.Method == http.MethodOptions && r.Header.Get(requestMethod) != "" {
				if w.Header().Get(allowMethodsHeader) == "" {
					w.Header().Set(allowMethodsHeader, preflightMethods)
				}
				if w.Header().Get(allowHeadersHeader) == "" {
					if requested := r.Header.Get(requestHeaders); requested != "" {
						w.Header().Set(allowHeadersHeader, requested)
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
