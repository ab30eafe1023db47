package urlutil

import (
	"errors"
	"net/url"
	"strings"
)

var errMissingHost = errors.New("missing host")

// NormalizeSeed parses a user-supplied start URL, prefixing https:// when no
// scheme is given and stripping any fragment. Query strings and paths are
// preserved, except that a bare "/" path is folded into the host.
func NormalizeSeed(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}

	if parsed.Host == "" {
		return nil, errMissingHost
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	canonicalizeRootPath(parsed)

	return parsed, nil
}

// Resolve resolves href against base and returns an absolute HTTP(S) URL with
// the fragment stripped. Non-navigable hrefs (empty, fragment-only, mailto,
// javascript and friends) are rejected.
func Resolve(base *url.URL, href string) (string, bool) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}

	if !isSupportedScheme(parsed.Scheme) {
		return "", false
	}

	resolved := parsed
	if parsed.Scheme == "" {
		resolved = base.ResolveReference(parsed)
	}

	if !isSupportedScheme(resolved.Scheme) || resolved.Host == "" {
		return "", false
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	canonicalizeRootPath(resolved)

	return resolved.String(), true
}

// canonicalizeRootPath folds a bare "/" path into the empty path so the site
// root has a single canonical form and is deduplicated against the seed.
func canonicalizeRootPath(u *url.URL) {
	if u.Path == "/" {
		u.Path = ""
		u.RawPath = ""
	}
}

func isSupportedScheme(scheme string) bool {
	return scheme == "" || scheme == "http" || scheme == "https"
}

// SameHost reports whether the URL targets the same host (including port) as
// base. Scheme differences are tolerated so http/https variants of one site
// stay in scope.
func SameHost(base *url.URL, raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return parsed.Host != "" && parsed.Host == base.Host
}

// Origin returns the scheme://host prefix of a page URL, used to locate
// robots.txt.
func Origin(pageURL string) (string, bool) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	return parsed.Scheme + "://" + parsed.Host, true
}
