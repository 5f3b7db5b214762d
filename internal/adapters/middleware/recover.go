package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
)

// Recover turns handler panics into a 500 envelope instead of a dropped
// connection. The stack is echoed to the client only outside production.
func Recover(includeStack bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := debug.Stack()
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)

				body := map[string]string{"message": "Internal server error"}
				if includeStack {
					body["stack"] = string(stack)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   body,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
