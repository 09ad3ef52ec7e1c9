package content

import (
	"strings"

	"portfolio-gateway/sdk"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePublicSelector sanitizes untrusted query input into what the
// backend's public listing endpoint understands. Paging is clamped, free-text
// filters are trimmed, and the friendly sort aliases "newest" and "oldest"
// are mapped onto the backend's order parameter. Anything unrecognized falls
// back to newest-first.
func NormalizePublicSelector(
	selector sdk.PublicExperiencesSelector,
) sdk.PublicExperiencesSelector {
	if selector.Page < 1 {
		selector.Page = 1
	}
	if selector.PageSize < 1 {
		selector.PageSize = defaultPageSize
	} else if selector.PageSize > maxPageSize {
		selector.PageSize = maxPageSize
	}
	switch strings.ToLower(strings.TrimSpace(selector.Order)) {
	case "oldest", "asc":
		selector.Order = "asc"
	default:
		selector.Order = "desc"
	}
	selector.Query = strings.TrimSpace(selector.Query)
	selector.Type = strings.TrimSpace(selector.Type)
	selector.Location = strings.TrimSpace(selector.Location)
	return selector
}
