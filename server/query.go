package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kasuboski/episodez/pkg/pagination"
)

const maxPageSize = 500

type downloadsQuery struct {
	pagination.Params
	OnlyNeeded bool
}

// parseDownloadsQuery reads page, pageSize and needed. A pageSize of 0 returns everything.
func parseDownloadsQuery(r *http.Request) (downloadsQuery, error) {
	q := downloadsQuery{
		Params: pagination.Params{Page: 1},
	}

	qp := r.URL.Query()

	if raw := qp.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("invalid page parameter: must be positive integer")
		}
		q.Page = page
	}

	if raw := qp.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 0 || pageSize > maxPageSize {
			return q, fmt.Errorf("invalid pageSize parameter: must be between 0 and %d", maxPageSize)
		}
		q.PageSize = pageSize
	}

	if raw := qp.Get("needed"); raw != "" {
		needed, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("invalid needed parameter: %w", err)
		}
		q.OnlyNeeded = needed
	}

	return q, nil
}
