package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses. Query
// parameters other than offset and limit are carried into every link.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	query := url.Values{}
	for k, v := range c.Queries() {
		if k == "offset" || k == "limit" {
			continue
		}
		query.Set(k, v)
	}

	link := func(offset int, rel string) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(p.Limit))
		return fmt.Sprintf(`<%s?%s>; rel="%s"`, base, q.Encode(), rel)
	}

	links := []string{link(0, "first")}
	if p.Offset > 0 {
		links = append(links, link(max(p.Offset-p.Limit, 0), "prev"))
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, link(p.Offset+p.Limit, "next"))
	}
	links = append(links, link(max(p.Total-p.Limit, 0), "last"))

	c.Set(fiber.HeaderLink, strings.Join(links, ", "))
}

// pageParams reads offset/limit query parameters. An out-of-range limit
// falls back to defaultLimit.
func pageParams(c *fiber.Ctx, defaultLimit, maxLimit int) (offset, limit int) {
	offset = max(c.QueryInt("offset", 0), 0)
	limit = c.QueryInt("limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return offset, limit
}

// page slices items to the window described by offset and limit.
func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}
