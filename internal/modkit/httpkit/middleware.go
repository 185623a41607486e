package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "chatguard/internal/platform/net/http"
	"chatguard/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, zero values mean the defaults below
type StackOptions struct {
	CORSOrigins []string
	Slow        time.Duration // access log warn threshold
	Timeout     time.Duration // 30s when zero
	MaxInFlight int           // no cap when zero
	Quiet       []string      // path prefixes logged at debug, probes when nil
}

// CommonStack is the middleware every v1 route runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Quiet == nil {
		o.Quiet = []string{"/health", "/api/v1/meta/health", "/api/v1/meta/ready"}
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow, Quiet: o.Quiet}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Throttle(o.MaxInFlight),
		middleware.Timeout(o.Timeout),
	}
}

// Auth is middleware.Auth writing failures with phttp.JSON
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
