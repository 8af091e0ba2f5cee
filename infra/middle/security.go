package middle

import (
	"mime"
	"net/http"
	"strings"

	"github.com/mstgnz/checkout/infra/response"
)

// MaxRequestBody limits accepted request bodies
const MaxRequestBody = 1 << 20

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// RequestValidationMiddleware checks content type and size of request bodies.
// Callback endpoints also take form posts, everything else is JSON only.
func RequestValidationMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > MaxRequestBody {
				response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
				return
			}

			if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
				isCallback := strings.HasPrefix(r.URL.Path, "/callback")
				contentType := r.Header.Get("Content-Type")

				if contentType == "" {
					if !isCallback {
						response.Error(w, http.StatusBadRequest, "Content-Type header is required", nil)
						return
					}
				} else {
					mediaType, _, err := mime.ParseMediaType(contentType)
					allowed := err == nil && (mediaType == "application/json" ||
						(isCallback && mediaType == "application/x-www-form-urlencoded"))
					if !allowed {
						message := "Content-Type must be application/json"
						if isCallback {
							message = "Content-Type must be application/json or application/x-www-form-urlencoded"
						}
						response.Error(w, http.StatusUnsupportedMediaType, message, nil)
						return
					}
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBody)
			next.ServeHTTP(w, r)
		})
	}
}
