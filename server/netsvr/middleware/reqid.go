package middleware

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
)

func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(next)
}

// ReqID 取得本次請求的 id；未經 RequestID middleware 時為空字串。
func ReqID(r *http.Request) string {
	return chimid.GetReqID(r.Context())
}
