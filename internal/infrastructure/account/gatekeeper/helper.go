package gatekeeper

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// isCircuitFailure matches the transient mark attached with crerr.Mark;
// stdlib errors.Is cannot see cockroachdb marks.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errGatekeeperTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
