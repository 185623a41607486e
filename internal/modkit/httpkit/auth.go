package httpkit

import (
	"net/http"

	perr "chatguard/internal/platform/errors"
	pnet "chatguard/internal/platform/net"
	"chatguard/internal/platform/net/middleware"
)

// Protected mounts fn's routes behind bearer auth, a nil port leaves them open
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// User is the caller Auth put on the request
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("missing bearer token")
}
