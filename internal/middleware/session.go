package middleware

import (
	"net/http"
	"time"

	"car-leasing/internal/session"

	"github.com/google/uuid"
)

// Session makes sure every request carries a session id. A new id is issued
// as an HttpOnly cookie when the request has none or its value is not an id
// this middleware could have issued.
func Session(cookieName string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(cookieName); err == nil && validSessionID(c.Value) {
				sid = c.Value
			} else {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sid)))
		})
	}
}

// validSessionID accepts only canonical UUID strings, which bounds the keys
// clients can place in the session store.
func validSessionID(v string) bool {
	if len(v) != 36 {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}
