// Package messages, pagination. Page size is capped server-side so clients
// cannot request unbounded result sets.
package messages

import (
	"strconv"

	"github.com/user/chatstore-go/apperror"
)

// PageParams holds validated pagination parameters. Page is 1-based.
type PageParams struct {
	Page    int
	PerPage int
}

// badQueryParamError bundles both hint messages, matching the response shape
// regardless of which parameter failed to parse.
func badQueryParamError() *apperror.AppError {
	return apperror.NewBadQueryParamError(
		"query param page must be int",
		"query param per_page must be int",
	)
}

// ParsePageParams parses the optional page and per_page query parameters.
// Empty values default to page 1 and maxPerPage records per page. Values that
// do not parse as positive integers fail with BadQueryParam; per_page values
// above maxPerPage are silently clamped, not rejected.
func ParsePageParams(pageStr, perPageStr string, maxPerPage int) (PageParams, error) {
	params := PageParams{Page: 1, PerPage: maxPerPage}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return PageParams{}, badQueryParamError()
		}
		params.Page = page
	}

	if perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 {
			return PageParams{}, badQueryParamError()
		}
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		params.PerPage = perPage
	}

	return params, nil
}

// Bounds converts the 1-based page into an offset/limit over total matching
// records. ok is false when the page falls past the last valid page; an empty
// result set still has one (empty) valid first page.
func (p PageParams) Bounds(total int) (offset, limit int, ok bool) {
	totalPages := (total + p.PerPage - 1) / p.PerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if p.Page > totalPages {
		return 0, 0, false
	}
	return (p.Page - 1) * p.PerPage, p.PerPage, true
}
