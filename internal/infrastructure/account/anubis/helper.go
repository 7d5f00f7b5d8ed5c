package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// isCircuitFailure counts only transport errors, 429 and 5xx against the
// breaker. A rejected token is a healthy answer.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

// hashToken keys the principal cache so raw tokens are never held in memory.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// buildURL joins the introspection path onto the base URL. An absolute path
// replaces the base entirely.
func buildURL(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)

	switch {
	case path == "":
		return base
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	default:
		return base + "/" + strings.TrimLeft(path, "/")
	}
}
