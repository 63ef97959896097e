package trakt

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Search queries the catalog for items matching query. types narrows the
// result kinds ("movie", "show", "episode", "person"); when empty, movies
// and shows are searched.
func (c *Client) Search(ctx context.Context, query string, types ...string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidConfig)
	}
	if len(types) == 0 {
		types = []string{"movie", "show"}
	}

	params := url.Values{}
	params.Set("query", query)

	return getList[SearchResult](ctx, c, request{
		path: fmt.Sprintf("/search/%s?%s", strings.Join(types, ","), params.Encode()),
	})
}
