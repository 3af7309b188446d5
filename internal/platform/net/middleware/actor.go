package middleware

import (
	"net/http"

	pnet "civlink/internal/platform/net"
)

// ActorHeader names the header carrying the operator identity
const ActorHeader = "X-Actor-ID"

// Actor lifts the operator id from the request header onto the context
// so downstream handlers can attribute writes via pnet.ActorID
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor := r.Header.Get(ActorHeader); actor != "" {
				r = r.WithContext(pnet.WithRequest(r.Context(), "", actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}
