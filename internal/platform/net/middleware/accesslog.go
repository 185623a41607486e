package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chatguard/internal/platform/logger"
	pnet "chatguard/internal/platform/net"
)

// AccessLogOptions configures the access log
type AccessLogOptions struct {
	// Slow logs requests at or above it as warn, zero disables the mark
	Slow time.Duration

	// Quiet path prefixes log at debug unless they fail or run slow
	Quiet []string
}

// statusRecorder remembers the status and body size a handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

// Flush keeps streaming handlers working
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// AccessLog puts the request id on the log context and writes one line per request
// Run it after RequestID
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			r = r.WithContext(ctx)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			took := time.Since(start)

			l := logger.C(ctx)
			level(l, rec.status, took, opt, r.URL.Path).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", rec.status).
				Int("bytes", rec.size).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}

func level(l *zerolog.Logger, status int, took time.Duration, opt AccessLogOptions, path string) *zerolog.Event {
	switch {
	case status >= http.StatusInternalServerError:
		return l.Error()
	case opt.Slow > 0 && took >= opt.Slow:
		return l.Warn()
	}
	for _, p := range opt.Quiet {
		if strings.HasPrefix(path, p) {
			return l.Debug()
		}
	}
	return l.Info()
}
