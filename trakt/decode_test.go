package trakt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestDecodeSingleObject(t *testing.T) {
	t.Run("valid movie", func(t *testing.T) {
		server := jsonServer(t, 200, `{"title":"Dune","year":2021,"ids":{"trakt":12601,"slug":"dune-2021"}}`)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		movie, err := client.MovieSummary(context.Background(), "dune-2021")
		require.NoError(t, err)
		assert.Equal(t, "Dune", movie.Title)
		assert.Equal(t, 2021, movie.Year)
		assert.Equal(t, 12601, movie.IDs.Trakt)
	})

	t.Run("missing required field names the field", func(t *testing.T) {
		server := jsonServer(t, 200, `{"year":2021,"ids":{"trakt":12601}}`)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		_, err := client.MovieSummary(context.Background(), "dune-2021")
		require.Error(t, err)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "title", decodeErr.Field)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		server := jsonServer(t, 200, `{not json`)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		_, err := client.MovieSummary(context.Background(), "dune-2021")

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Empty(t, decodeErr.Field)
		assert.Error(t, decodeErr.Unwrap())
	})
}

func TestLenientListDecode(t *testing.T) {
	// Element 2 lacks the mandatory title and must be dropped; the other
	// two elements survive.
	body := `[
		{"title":"Movie One","year":2020,"ids":{"trakt":1}},
		{"year":2021,"ids":{"trakt":2}},
		{"title":"Movie Three","year":2022,"ids":{"trakt":3}}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	movies, err := client.PopularMovies(context.Background(), 0, 0)
	require.NoError(t, err)

	require.Len(t, movies, 2)
	assert.Equal(t, "Movie One", movies[0].Title)
	assert.Equal(t, "Movie Three", movies[1].Title)
}

func TestLenientListDropsUnparsableElement(t *testing.T) {
	body := `[
		{"title":"Movie One","year":2020,"ids":{"trakt":1}},
		{"title":42,"year":"bad","ids":[]}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	movies, err := client.PopularMovies(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Movie One", movies[0].Title)
}

func TestListDecodeNonListBody(t *testing.T) {
	server := jsonServer(t, 200, `{"title":"not a list"}`)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	_, err := client.PopularMovies(context.Background(), 0, 0)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestTrendingDecode(t *testing.T) {
	body := `[
		{"watchers":120,"movie":{"title":"Movie One","year":2020,"ids":{"trakt":1}}},
		{"watchers":80,"movie":{"year":2021,"ids":{"trakt":2}}}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	trending, err := client.TrendingMovies(context.Background(), 1, 10)
	require.NoError(t, err)

	// The movie missing its title is dropped with its wrapper.
	require.Len(t, trending, 1)
	assert.Equal(t, 120, trending[0].Watchers)
	assert.Equal(t, "Movie One", trending[0].Movie.Title)
}

func TestRawMapDecode(t *testing.T) {
	server := jsonServer(t, 200, `{"rating":8.32,"votes":2012,"distribution":{"10":540}}`)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	ratings, err := client.MovieRatings(context.Background(), "dune-2021")
	require.NoError(t, err)

	assert.Equal(t, 8.32, ratings["rating"])
	assert.Contains(t, ratings, "distribution")
}

func TestRawListDecode(t *testing.T) {
	server := jsonServer(t, 200, `[{"title":"Dune Part One","country":"us"}]`)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	aliases, err := client.MovieAliases(context.Background(), "dune-2021")
	require.NoError(t, err)
	require.Len(t, aliases, 1)
}

func TestCommentsDecode(t *testing.T) {
	body := `[
		{"id":1,"comment":"Great movie","review":true,"user":{"username":"sean"}},
		{"id":2,"comment":""},
		{"id":3,"comment":"Agreed","spoiler":true}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	comments, err := client.MovieComments(context.Background(), "dune-2021", 0, 0)
	require.NoError(t, err)

	// The comment with an empty body is dropped.
	require.Len(t, comments, 2)
	assert.Equal(t, "sean", comments[0].User.Username)
	assert.True(t, comments[0].Review)
	assert.True(t, comments[1].Spoiler)
}

func TestCastAndCrewDecode(t *testing.T) {
	t.Run("departments are flattened", func(t *testing.T) {
		body := `{
			"cast":[{"character":"Paul Atreides","person":{"name":"Timothée Chalamet","ids":{"trakt":1}}}],
			"crew":{
				"production":[{"job":"Producer","person":{"name":"Mary Parent","ids":{"trakt":2}}}],
				"sound":[{"job":"Composer","person":{"name":"Hans Zimmer","ids":{"trakt":3}}}]
			}
		}`
		server := jsonServer(t, 200, body)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		credits, err := client.MovieCredits(context.Background(), "dune-2021")
		require.NoError(t, err)

		require.Len(t, credits.Cast, 1)
		assert.Equal(t, "Paul Atreides", credits.Cast[0].Character)
		assert.Equal(t, "Timothée Chalamet", credits.Cast[0].Person.Name)

		require.Len(t, credits.Crew, 2)
		jobs := []string{credits.Crew[0].Job, credits.Crew[1].Job}
		assert.Contains(t, jobs, "Producer")
		assert.Contains(t, jobs, "Composer")
	})

	t.Run("unrecognized departments contribute nothing", func(t *testing.T) {
		body := `{"cast":[],"crew":{"catering":[{"job":"Chef","person":{"name":"Someone"}}]}}`
		server := jsonServer(t, 200, body)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		credits, err := client.MovieCredits(context.Background(), "dune-2021")
		require.NoError(t, err)
		assert.Empty(t, credits.Cast)
		assert.Empty(t, credits.Crew)
	})

	t.Run("crew member without a name is dropped", func(t *testing.T) {
		body := `{
			"cast":[],
			"crew":{"production":[
				{"job":"Producer","person":{"name":"Mary Parent"}},
				{"job":"Producer","person":{}}
			]}
		}`
		server := jsonServer(t, 200, body)
		defer server.Close()

		client := newTestClient(t, server.URL, nil)
		credits, err := client.MovieCredits(context.Background(), "dune-2021")
		require.NoError(t, err)
		require.Len(t, credits.Crew, 1)
		assert.Equal(t, "Mary Parent", credits.Crew[0].Person.Name)
	})
}

func TestSearchDecode(t *testing.T) {
	body := `[
		{"type":"movie","score":120.5,"movie":{"title":"Dune","year":2021,"ids":{"trakt":1}}},
		{"type":"show","score":80.1,"show":{"title":"Dune: Prophecy","year":2024,"ids":{"trakt":2}}}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	results, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "movie", results[0].Type)
	require.NotNil(t, results[0].Movie)
	assert.Equal(t, "Dune", results[0].Movie.Title)
	require.NotNil(t, results[1].Show)
}

func TestSearchEmptyQuery(t *testing.T) {
	client, err := NewClient("test-client-id", nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSeasonsDecode(t *testing.T) {
	body := `[
		{"number":0,"ids":{"trakt":100}},
		{"number":1,"ids":{"trakt":101}},
		{"number":2,"ids":{}}
	]`
	server := jsonServer(t, 200, body)
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	seasons, err := client.ShowSeasons(context.Background(), "some-show")
	require.NoError(t, err)

	// The season without a Trakt ID is dropped; season 0 (specials) survives.
	require.Len(t, seasons, 2)
	assert.Equal(t, 0, seasons[0].Number)
	assert.Equal(t, 1, seasons[1].Number)
}
