package trakt

import (
	"context"
	"net/http"
)

// Watchlist retrieves the signed-in user's watchlist. Requires a stored
// access token.
func (c *Client) Watchlist(ctx context.Context) ([]ListItem, error) {
	return getList[ListItem](ctx, c, request{
		path:       "/sync/watchlist",
		authorized: true,
	})
}

// AddToWatchlist adds the given items to the signed-in user's watchlist.
// The API responds 201 with a summary of what was added; the summary is
// returned as the raw mapping.
func (c *Client) AddToWatchlist(ctx context.Context, items SyncItems) (map[string]any, error) {
	return c.getRawMap(ctx, request{
		method:     http.MethodPost,
		path:       "/sync/watchlist",
		authorized: true,
		body:       items,
		status:     http.StatusCreated,
	})
}

// CheckinMovie tells Trakt the signed-in user is watching a movie right
// now. The API responds 201; a 409 StatusError means another check-in is
// already active.
func (c *Client) CheckinMovie(ctx context.Context, ids IDs) (map[string]any, error) {
	return c.getRawMap(ctx, request{
		method:     http.MethodPost,
		path:       "/checkin",
		authorized: true,
		body:       map[string]any{"movie": SyncItem{IDs: ids}},
		status:     http.StatusCreated,
	})
}

// RemoveFromWatchlist removes the given items from the signed-in user's
// watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, items SyncItems) (map[string]any, error) {
	return c.getRawMap(ctx, request{
		method:     http.MethodPost,
		path:       "/sync/watchlist/remove",
		authorized: true,
		body:       items,
	})
}
