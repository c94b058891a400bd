package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/hanifmaulana/tokokita/api/web"
	"github.com/hanifmaulana/tokokita/api/weberr"
	"github.com/hanifmaulana/tokokita/rate"
)

// RateLimit rejects requests from clients that exceed the limiter's
// budget, keyed by client IP.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !lim.Check(ip) {
				err := errors.New("too many requests")
				return weberr.NewError(err, err.Error(), http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
