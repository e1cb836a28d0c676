package router

import (
	"net/http"
	"slices"
	"strings"

	"ConferenceAPI/internal/config"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Authorization"
)

// corsPolicy is the parsed form of CORS_ALLOW_ORIGIN. An empty origin list
// or a "*" entry allows any origin.
type corsPolicy struct {
	origins     []string
	anyOrigin   bool
	credentials bool
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	p := corsPolicy{credentials: cfg.AllowCredentials}
	for _, o := range strings.Split(cfg.AllowOrigin, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			p.anyOrigin = true
		default:
			p.origins = append(p.origins, o)
		}
	}
	if len(p.origins) == 0 {
		p.anyOrigin = true
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for a request
// origin, or "" when the origin is refused. vary reports whether the answer
// depends on the request origin.
func (p corsPolicy) allowOrigin(origin string) (value string, vary bool) {
	if p.anyOrigin {
		// a credentialed response cannot use the wildcard
		if p.credentials && origin != "" {
			return origin, true
		}
		return "*", false
	}
	if origin != "" && slices.Contains(p.origins, origin) {
		return origin, true
	}
	return "", true
}

// withCORS sets CORS headers on every response and answers preflight
// requests itself, before they reach the method-matching router.
func withCORS(p corsPolicy, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		value, vary := p.allowOrigin(r.Header.Get("Origin"))
		if value != "" {
			h.Set("Access-Control-Allow-Origin", value)
		}
		if vary {
			h.Add("Vary", "Origin")
		}
		if p.credentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
