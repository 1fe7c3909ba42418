package chi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

// Probes stay reachable without credentials.
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

var (
	errMissingAuth = errors.New("missing authorization header")
	errNotBearer   = errors.New("authorization header must use Bearer scheme")
	errInvalidKey  = errors.New("invalid api key")
)

// BearerAuthMiddleware guards the find API with static API keys.
// No keys means authentication is off.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if err := authorize(r.Header.Get("Authorization"), keys); err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="savedobjects"`)
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authorize checks an Authorization header value against keys. The scheme
// is case-insensitive; every key is compared so timing does not leak which
// one matched.
func authorize(header string, keys [][]byte) error {
	if header == "" {
		return errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return errNotBearer
	}
	tok := []byte(strings.TrimSpace(token))

	matched := 0
	for _, k := range keys {
		matched |= subtle.ConstantTimeCompare(tok, k)
	}
	if matched != 1 {
		return errInvalidKey
	}
	return nil
}
