package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zmknox/traktkit/trakt"
)

var watchlistType string

// watchlistCmd groups the signed-in watchlist operations
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "View and edit your watchlist (requires sign-in)",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items on your watchlist",
	RunE:  runWatchlistList,
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <trakt-id>",
	Short: "Add a movie or show to your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistAdd,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <trakt-id>",
	Short: "Remove a movie or show from your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistRemove,
}

func init() {
	watchlistAddCmd.Flags().StringVar(&watchlistType, "type", "movie", "item type: movie or show")
	watchlistRemoveCmd.Flags().StringVar(&watchlistType, "type", "movie", "item type: movie or show")

	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	rootCmd.AddCommand(watchlistCmd)
}

// ensureFreshToken refreshes the access token before an authorized call
// when the recorded expiration has passed.
func ensureFreshToken(ctx context.Context) error {
	if !manager.SignedIn() {
		return fmt.Errorf("not signed in; run 'traktkit auth login' first")
	}
	if err := manager.RefreshIfNeeded(ctx); err != nil {
		return fmt.Errorf("failed to refresh access token: %w", err)
	}
	return nil
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := ensureFreshToken(ctx); err != nil {
		return err
	}

	items, err := client.Watchlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to get watchlist: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("Your watchlist is empty.")
		return nil
	}

	for _, item := range items {
		switch {
		case item.Movie != nil:
			fmt.Printf("• [movie] %s (%d)\n", item.Movie.Title, item.Movie.Year)
		case item.Show != nil:
			fmt.Printf("• [show]  %s (%d)\n", item.Show.Title, item.Show.Year)
		}
	}

	return nil
}

func syncItemsFromArg(arg string) (trakt.SyncItems, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return trakt.SyncItems{}, fmt.Errorf("invalid Trakt ID %q", arg)
	}

	item := trakt.SyncItem{IDs: trakt.IDs{Trakt: id}}
	switch watchlistType {
	case "movie":
		return trakt.SyncItems{Movies: []trakt.SyncItem{item}}, nil
	case "show":
		return trakt.SyncItems{Shows: []trakt.SyncItem{item}}, nil
	default:
		return trakt.SyncItems{}, fmt.Errorf("invalid type %q (expected movie or show)", watchlistType)
	}
}

func runWatchlistAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := ensureFreshToken(ctx); err != nil {
		return err
	}

	items, err := syncItemsFromArg(args[0])
	if err != nil {
		return err
	}

	summary, err := client.AddToWatchlist(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}

	fmt.Printf("✓ Added. Server summary: %v\n", summary["added"])
	return nil
}

func runWatchlistRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := ensureFreshToken(ctx); err != nil {
		return err
	}

	items, err := syncItemsFromArg(args[0])
	if err != nil {
		return err
	}

	summary, err := client.RemoveFromWatchlist(ctx, items)
	if err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}

	fmt.Printf("✓ Removed. Server summary: %v\n", summary["deleted"])
	return nil
}
