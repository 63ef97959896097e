package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zmknox/traktkit/filter"
)

var searchTypes []string

// trendingCmd lists the items with the most current watchers
var trendingCmd = &cobra.Command{
	Use:       "trending [movies|shows]",
	Short:     "List trending movies or shows",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"movies", "shows"},
	RunE:      runTrending,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog for movies and shows",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var commentsCmd = &cobra.Command{
	Use:   "comments <movie-id>",
	Short: "Show the newest comments on a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runComments,
}

var peopleCmd = &cobra.Command{
	Use:   "people <movie-id>",
	Short: "Show the cast and crew of a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeople,
}

func init() {
	trendingCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Year > 2020 and Watchers > 50'")
	trendingCmd.Flags().IntVar(&page, "page", 1, "result page")
	trendingCmd.Flags().IntVar(&limit, "limit", 10, "results per page")

	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "result types: movie, show, episode, person")

	commentsCmd.Flags().IntVar(&page, "page", 1, "result page")
	commentsCmd.Flags().IntVar(&limit, "limit", 10, "results per page")

	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(peopleCmd)
}

func runTrending(cmd *cobra.Command, args []string) error {
	kind := "movies"
	if len(args) > 0 {
		kind = args[0]
	}

	var compiled *filter.CompiledFilter
	if filterExpr != "" {
		var err error
		compiled, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx := context.Background()

	switch kind {
	case "movies":
		trending, err := client.TrendingMovies(ctx, page, limit)
		if err != nil {
			return fmt.Errorf("failed to get trending movies: %w", err)
		}
		for _, item := range trending {
			if compiled != nil {
				matched, err := compiled.Matches(filter.MovieEnv(item.Movie, item.Watchers))
				if err != nil {
					return err
				}
				if !matched {
					continue
				}
			}
			fmt.Printf("• %s (%d) — %d watchers\n", item.Movie.Title, item.Movie.Year, item.Watchers)
		}
	case "shows":
		trending, err := client.TrendingShows(ctx, page, limit)
		if err != nil {
			return fmt.Errorf("failed to get trending shows: %w", err)
		}
		for _, item := range trending {
			if compiled != nil {
				matched, err := compiled.Matches(filter.ShowEnv(item.Show, item.Watchers))
				if err != nil {
					return err
				}
				if !matched {
					continue
				}
			}
			fmt.Printf("• %s (%d) — %d watchers\n", item.Show.Title, item.Show.Year, item.Watchers)
		}
	default:
		return fmt.Errorf("unknown kind %q (expected movies or shows)", kind)
	}

	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	results, err := client.Search(context.Background(), query, searchTypes...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, result := range results {
		switch {
		case result.Movie != nil:
			fmt.Printf("• [movie] %s (%d)\n", result.Movie.Title, result.Movie.Year)
		case result.Show != nil:
			fmt.Printf("• [show]  %s (%d)\n", result.Show.Title, result.Show.Year)
		case result.Person != nil:
			fmt.Printf("• [person] %s\n", result.Person.Name)
		}
	}

	return nil
}

func runComments(cmd *cobra.Command, args []string) error {
	comments, err := client.MovieComments(context.Background(), args[0], page, limit)
	if err != nil {
		return fmt.Errorf("failed to get comments: %w", err)
	}

	if len(comments) == 0 {
		fmt.Println("No comments.")
		return nil
	}

	for _, comment := range comments {
		label := ""
		if comment.Review {
			label = " [review]"
		}
		if comment.Spoiler {
			label += " [spoiler]"
		}
		fmt.Printf("• %s%s: %s\n", comment.User.Username, label, firstLine(comment.Comment))
	}

	return nil
}

func runPeople(cmd *cobra.Command, args []string) error {
	credits, err := client.MovieCredits(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get credits: %w", err)
	}

	fmt.Printf("Cast (%d):\n", len(credits.Cast))
	for _, member := range credits.Cast {
		fmt.Printf("  • %s as %s\n", member.Person.Name, member.Character)
	}

	fmt.Printf("\nCrew (%d):\n", len(credits.Crew))
	for _, member := range credits.Crew {
		fmt.Printf("  • %s — %s\n", member.Person.Name, member.Job)
	}

	return nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
