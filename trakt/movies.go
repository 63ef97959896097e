package trakt

import (
	"context"
	"fmt"
	"net/url"
)

// TrendingMovies retrieves the movies with the most current watchers.
func (c *Client) TrendingMovies(ctx context.Context, page, limit int) ([]TrendingMovie, error) {
	return getList[TrendingMovie](ctx, c, request{
		path: pagedPath("/movies/trending", page, limit),
	})
}

// PopularMovies retrieves the most popular movies.
func (c *Client) PopularMovies(ctx context.Context, page, limit int) ([]Movie, error) {
	return getList[Movie](ctx, c, request{
		path: pagedPath("/movies/popular", page, limit),
	})
}

// MovieSummary retrieves full details for a single movie. id may be a
// Trakt ID, slug, or IMDB ID.
func (c *Client) MovieSummary(ctx context.Context, id string) (*Movie, error) {
	return getObject[Movie](ctx, c, request{
		path: fmt.Sprintf("/movies/%s?extended=full", url.PathEscape(id)),
	})
}

// MovieRatings retrieves the rating distribution for a movie as the raw
// JSON mapping the API returns.
func (c *Client) MovieRatings(ctx context.Context, id string) (map[string]any, error) {
	return c.getRawMap(ctx, request{
		path: fmt.Sprintf("/movies/%s/ratings", url.PathEscape(id)),
	})
}

// MovieAliases retrieves the title aliases for a movie as the raw JSON
// list the API returns.
func (c *Client) MovieAliases(ctx context.Context, id string) ([]any, error) {
	return c.getRawList(ctx, request{
		path: fmt.Sprintf("/movies/%s/aliases", url.PathEscape(id)),
	})
}

// MovieComments retrieves the comments posted on a movie.
func (c *Client) MovieComments(ctx context.Context, id string, page, limit int) ([]Comment, error) {
	return getList[Comment](ctx, c, request{
		path: pagedPath(fmt.Sprintf("/movies/%s/comments/newest", url.PathEscape(id)), page, limit),
	})
}

// MovieCredits retrieves the cast and crew of a movie.
func (c *Client) MovieCredits(ctx context.Context, id string) (*CastAndCrew, error) {
	return c.getCastAndCrew(ctx, request{
		path: fmt.Sprintf("/movies/%s/people", url.PathEscape(id)),
	})
}
