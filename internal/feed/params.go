package feed

import (
	"math"
	"strconv"
	"strings"

	"promptfeed/internal/domain"
)

// FeedParams is a validated pagination request.
type FeedParams struct {
	Page  int
	Limit int
}

// Offset is the number of records skipped before this page. It is only
// meaningful when Addressable reports true.
func (p FeedParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Addressable reports whether the page's offset fits in an int. Pages beyond
// that lie past the end of any store.
func (p FeedParams) Addressable() bool {
	if p.Page < 1 || p.Limit < 1 {
		return false
	}
	return p.Page-1 <= math.MaxInt/p.Limit
}

// ParsePage reads the page query value. Empty means the first page.
func ParsePage(raw string) (int, error) {
	return parsePositive("page", raw, domain.DefaultFeedPage)
}

// ParseLimit reads the limit query value and clamps it to domain.MaxFeedLimit.
func ParseLimit(raw string) (int, error) {
	limit, err := parsePositive("limit", raw, domain.DefaultFeedLimit)
	if err != nil {
		return 0, err
	}
	if limit > domain.MaxFeedLimit {
		limit = domain.MaxFeedLimit
	}
	return limit, nil
}

// ParseFeedParams validates page before limit.
func ParseFeedParams(pageRaw, limitRaw string) (FeedParams, error) {
	page, err := ParsePage(pageRaw)
	if err != nil {
		return FeedParams{}, err
	}
	limit, err := ParseLimit(limitRaw)
	if err != nil {
		return FeedParams{}, err
	}
	return FeedParams{Page: page, Limit: limit}, nil
}

func parsePositive(field, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.InvalidParameter(field)
	}
	return n, nil
}
