package filter

import (
	"github.com/zmknox/traktkit/trakt"
)

// MovieEnv builds the evaluation environment for one movie. watchers is
// zero outside trending lists.
func MovieEnv(m trakt.Movie, watchers int) map[string]any {
	return map[string]any{
		"Title":    m.Title,
		"Year":     m.Year,
		"Rating":   m.Rating,
		"Votes":    m.Votes,
		"Genres":   m.Genres,
		"Runtime":  m.Runtime,
		"Language": m.Language,
		"Watchers": watchers,
	}
}

// ShowEnv builds the evaluation environment for one show.
func ShowEnv(s trakt.Show, watchers int) map[string]any {
	return map[string]any{
		"Title":    s.Title,
		"Year":     s.Year,
		"Rating":   s.Rating,
		"Votes":    s.Votes,
		"Genres":   s.Genres,
		"Network":  s.Network,
		"Status":   s.Status,
		"Language": s.Language,
		"Watchers": watchers,
	}
}
