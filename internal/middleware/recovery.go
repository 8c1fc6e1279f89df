package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"cs2-inventory-api/pkg/apierror"
	"cs2-inventory-api/pkg/response"
)

// Recovery turns a handler panic into a 500 JSON error and logs the stack.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Printf("PANIC: request_id=%s %s %s: %v\n%s",
				recoveredRequestID(w, r), r.Method, r.URL.Path, rec, debug.Stack())
			response.Error(w, apierror.InternalError("internal server error"))
		}()

		next.ServeHTTP(w, r)
	})
}

// recoveredRequestID falls back to the response header when Recovery wraps
// RequestID, since the id then never reaches this request's context.
func recoveredRequestID(w http.ResponseWriter, r *http.Request) string {
	if id := GetRequestID(r.Context()); id != "" {
		return id
	}
	return w.Header().Get("X-Request-ID")
}
