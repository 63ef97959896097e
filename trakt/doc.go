// Package trakt provides a client for the Trakt.tv API.
//
// Trakt.tv is a content-catalog service tracking movies and TV shows.
// This package implements the request/response pipeline shared by every
// endpoint: building authenticated requests, classifying responses, and
// decoding JSON payloads into typed domain objects.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: The main API client holding the shared HTTP client and headers
//   - Types: Domain models (movies, shows, seasons, comments, people)
//   - Endpoints: Thin per-resource methods built on the shared pipeline
//   - Errors: Structured error types for response classification
//
// # Usage
//
// Create a client with your Trakt application's client ID and a token
// source (typically an auth.Manager):
//
//	logger := zerolog.New(os.Stdout)
//	client, err := trakt.NewClient("your-client-id", tokens, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	trending, err := client.TrendingMovies(ctx, 1, 10)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Endpoints that require a signed-in user (watchlist, check-in) return
// ErrNoAccessToken without touching the network when no token is stored.
//
// # Error Handling
//
// Every failure is classified and returned to the caller; nothing is
// retried or swallowed at this layer:
//
//   - ErrNoAccessToken: authorized request attempted while signed out
//   - ErrEmptyBody: 2xx response with no body
//   - StatusError: response status differed from the expected one
//   - DecodeError: body was not valid JSON or a required field was missing
//
// StatusError includes helper methods for classification:
//
//	var statusErr *trakt.StatusError
//	if errors.As(err, &statusErr) && statusErr.IsRateLimited() {
//		// back off
//	}
//
// List decoding is deliberately lenient: an element missing a required
// field is dropped and the remaining elements are returned.
package trakt
