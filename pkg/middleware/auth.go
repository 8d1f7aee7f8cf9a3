package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shri2104/smartsplit/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// MemberIDKey is the context key for the acting member's ID
	MemberIDKey ContextKey = "member_id"
)

// MemberContext extracts the acting member's ID from the X-Member-ID header
// and places it on the request context. Auth/session management is owned by
// an external identity provider; this server only needs an opaque member ID,
// so the header is the dev stand-in for a verified identity token.
func MemberContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberID := strings.TrimSpace(r.Header.Get("X-Member-ID"))
		if memberID != "" {
			ctx := context.WithValue(r.Context(), MemberIDKey, memberID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireMember rejects requests that carry no acting member ID.
func RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetMemberID(r.Context()); !ok {
			response.Unauthorized(w, "X-Member-ID header required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetMemberID extracts the acting member's ID from the request context
func GetMemberID(ctx context.Context) (string, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(string)
	return memberID, ok && memberID != ""
}
