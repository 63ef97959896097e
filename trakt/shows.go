package trakt

import (
	"context"
	"fmt"
	"net/url"
)

// TrendingShows retrieves the shows with the most current watchers.
func (c *Client) TrendingShows(ctx context.Context, page, limit int) ([]TrendingShow, error) {
	return getList[TrendingShow](ctx, c, request{
		path: pagedPath("/shows/trending", page, limit),
	})
}

// PopularShows retrieves the most popular shows.
func (c *Client) PopularShows(ctx context.Context, page, limit int) ([]Show, error) {
	return getList[Show](ctx, c, request{
		path: pagedPath("/shows/popular", page, limit),
	})
}

// ShowSummary retrieves full details for a single show. id may be a
// Trakt ID, slug, or IMDB ID.
func (c *Client) ShowSummary(ctx context.Context, id string) (*Show, error) {
	return getObject[Show](ctx, c, request{
		path: fmt.Sprintf("/shows/%s?extended=full", url.PathEscape(id)),
	})
}

// ShowSeasons retrieves all seasons of a show.
func (c *Client) ShowSeasons(ctx context.Context, id string) ([]Season, error) {
	return getList[Season](ctx, c, request{
		path: fmt.Sprintf("/shows/%s/seasons", url.PathEscape(id)),
	})
}

// SeasonEpisodes retrieves all episodes of one season.
func (c *Client) SeasonEpisodes(ctx context.Context, id string, season int) ([]Episode, error) {
	return getList[Episode](ctx, c, request{
		path: fmt.Sprintf("/shows/%s/seasons/%d", url.PathEscape(id), season),
	})
}

// ShowComments retrieves the comments posted on a show.
func (c *Client) ShowComments(ctx context.Context, id string, page, limit int) ([]Comment, error) {
	return getList[Comment](ctx, c, request{
		path: pagedPath(fmt.Sprintf("/shows/%s/comments/newest", url.PathEscape(id)), page, limit),
	})
}

// ShowCredits retrieves the cast and crew of a show.
func (c *Client) ShowCredits(ctx context.Context, id string) (*CastAndCrew, error) {
	return c.getCastAndCrew(ctx, request{
		path: fmt.Sprintf("/shows/%s/people", url.PathEscape(id)),
	})
}
