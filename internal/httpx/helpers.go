package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yummybites/yummybites-backend/internal/auth"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// bearerToken pulls the credential from the Authorization header, falling
// back to ?token= which the old storefront still sends on /user/me.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// identify resolves the caller; ok is false when there is no valid token.
func identify(tokens *auth.Service, r *http.Request) (auth.Identity, bool) {
	tok := bearerToken(r)
	if tok == "" {
		return auth.Identity{}, false
	}
	id, err := tokens.VerifyToken(tok)
	if err != nil {
		return auth.Identity{}, false
	}
	return id, true
}
