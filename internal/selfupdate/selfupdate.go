// Package selfupdate implements the self-update check the original loader
// performs once at startup: fetch homepage (a GitHub-style "latest release"
// redirect), and compare the final path segment to the running version.
// The check's internals are out of scope for this host beyond this
// interface — it never gates startup and a failure here is never fatal.
package selfupdate

import (
	"context"
	"net/http"
	"strings"
)

// Check reports whether the version published at homepage's final redirect
// target is newer (lexicographically greater) than currentVersion.
func Check(ctx context.Context, homepage, currentVersion string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, homepage, nil)
	if err != nil {
		return false, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	remote := latestPathSegment(resp.Request.URL.String())
	if remote == "" {
		return false, nil
	}

	return remote > currentVersion, nil
}

func latestPathSegment(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
