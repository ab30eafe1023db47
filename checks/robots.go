package checks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"code/internal/cache"
	"code/internal/urlutil"
)

// FetchFunc retrieves a URL and returns its status code and body. Used by the
// robots check so the suite stays decoupled from the HTTP layer.
type FetchFunc func(ctx context.Context, url string) (int, []byte, error)

// robotsChecker fetches and evaluates {origin}/robots.txt, memoizing the
// verdict per origin for the duration of an audit run.
type robotsChecker struct {
	fetch   FetchFunc
	verdict *cache.Cache[Result]
}

func newRobotsChecker(fetch FetchFunc) *robotsChecker {
	return &robotsChecker{
		fetch:   fetch,
		verdict: cache.New[Result](),
	}
}

// Check applies the permissive-by-default robots convention: only a reachable
// robots.txt that disallows everything for the wildcard agent fails the
// check. Absent files, other status codes, and network errors all mean no
// restriction.
func (r *robotsChecker) Check(ctx context.Context, pageURL string) Result {
	origin, ok := urlutil.Origin(pageURL)
	if !ok {
		return Result{Passed: true, Message: "could not determine origin for robots.txt (allows crawling)"}
	}

	return r.verdict.GetOrCompute(origin, func() Result {
		return r.evaluate(ctx, origin)
	})
}

func (r *robotsChecker) evaluate(ctx context.Context, origin string) Result {
	status, body, err := r.fetch(ctx, origin+"/robots.txt")
	if err != nil {
		return Result{Passed: true, Message: fmt.Sprintf("could not check robots.txt (allows crawling): %v", err)}
	}

	if status == http.StatusNotFound {
		return Result{Passed: true, Message: "no robots.txt found (allows crawling per RFC)"}
	}

	if status != http.StatusOK {
		return Result{Passed: true, Message: fmt.Sprintf("robots.txt returned %d (allows crawling)", status)}
	}

	if wildcardBlocksAll(string(body)) {
		return Result{Passed: false, Message: "robots.txt disallows all crawling"}
	}

	return Result{Passed: true, Message: "robots.txt allows crawling"}
}

// wildcardBlocksAll reports whether the wildcard agent group disallows the
// whole site with no allow rule anywhere. Bot-specific disallow listings are
// preferences, not blocks, and never fail the check. When several wildcard
// groups appear the last one wins.
func wildcardBlocksAll(content string) bool {
	var (
		inWildcard        bool
		wildcardDisallows []string
		anyAllow          bool
	)

	for _, raw := range strings.Split(strings.ToLower(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		directive, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		directive = strings.TrimSpace(directive)
		value = strings.TrimSpace(value)

		switch directive {
		case "user-agent":
			inWildcard = value == "*"
			if inWildcard {
				// A later wildcard group supersedes an earlier one.
				wildcardDisallows = wildcardDisallows[:0]
			}
		case "disallow":
			if inWildcard {
				wildcardDisallows = append(wildcardDisallows, value)
			}
		case "allow":
			anyAllow = true
		}
	}

	if anyAllow {
		return false
	}

	for _, path := range wildcardDisallows {
		if path == "/" {
			return true
		}
	}

	return false
}
