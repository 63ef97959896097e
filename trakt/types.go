package trakt

import "time"

// IDs holds the external identifiers Trakt knows for an item.
type IDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug,omitempty"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
	TVDB  int    `json:"tvdb,omitempty"`
}

// missingFieldError reports which required field was absent during decode.
type missingFieldError struct {
	field string
}

func (e *missingFieldError) Error() string {
	return "missing required field " + e.field
}

func missingField(name string) error {
	return &missingFieldError{field: name}
}

// validator is implemented by domain types that require certain fields
// to be present after JSON decoding.
type validator interface {
	validate() error
}

// Movie represents a Trakt movie
type Movie struct {
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	IDs           IDs      `json:"ids"`
	Tagline       string   `json:"tagline,omitempty"`
	Overview      string   `json:"overview,omitempty"`
	Released      string   `json:"released,omitempty"`
	Runtime       int      `json:"runtime,omitempty"`
	Trailer       string   `json:"trailer,omitempty"`
	Homepage      string   `json:"homepage,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Votes         int      `json:"votes,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Certification string   `json:"certification,omitempty"`
	Language      string   `json:"language,omitempty"`
}

func (m *Movie) validate() error {
	if m.Title == "" {
		return missingField("title")
	}
	if m.IDs.Trakt == 0 {
		return missingField("ids.trakt")
	}
	return nil
}

// Show represents a Trakt show
type Show struct {
	Title         string     `json:"title"`
	Year          int        `json:"year"`
	IDs           IDs        `json:"ids"`
	Overview      string     `json:"overview,omitempty"`
	FirstAired    *time.Time `json:"first_aired,omitempty"`
	Runtime       int        `json:"runtime,omitempty"`
	Network       string     `json:"network,omitempty"`
	Country       string     `json:"country,omitempty"`
	Status        string     `json:"status,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
	Votes         int        `json:"votes,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	AiredEpisodes int        `json:"aired_episodes,omitempty"`
	Language      string     `json:"language,omitempty"`
}

func (s *Show) validate() error {
	if s.Title == "" {
		return missingField("title")
	}
	if s.IDs.Trakt == 0 {
		return missingField("ids.trakt")
	}
	return nil
}

// Season represents one season of a show
type Season struct {
	Number        int        `json:"number"`
	IDs           IDs        `json:"ids"`
	Title         string     `json:"title,omitempty"`
	Overview      string     `json:"overview,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
	Votes         int        `json:"votes,omitempty"`
	EpisodeCount  int        `json:"episode_count,omitempty"`
	AiredEpisodes int        `json:"aired_episodes,omitempty"`
	FirstAired    *time.Time `json:"first_aired,omitempty"`
}

func (s *Season) validate() error {
	if s.IDs.Trakt == 0 {
		return missingField("ids.trakt")
	}
	return nil
}

// Episode represents one episode of a season
type Episode struct {
	Season     int        `json:"season"`
	Number     int        `json:"number"`
	Title      string     `json:"title,omitempty"`
	IDs        IDs        `json:"ids"`
	Overview   string     `json:"overview,omitempty"`
	Rating     float64    `json:"rating,omitempty"`
	Votes      int        `json:"votes,omitempty"`
	FirstAired *time.Time `json:"first_aired,omitempty"`
	Runtime    int        `json:"runtime,omitempty"`
}

func (e *Episode) validate() error {
	if e.IDs.Trakt == 0 {
		return missingField("ids.trakt")
	}
	return nil
}

// Person represents an actor or crew member
type Person struct {
	Name      string `json:"name"`
	IDs       IDs    `json:"ids"`
	Biography string `json:"biography,omitempty"`
	Birthday  string `json:"birthday,omitempty"`
}

func (p *Person) validate() error {
	if p.Name == "" {
		return missingField("name")
	}
	return nil
}

// CastMember links a person to the character they played
type CastMember struct {
	Character string `json:"character"`
	Person    Person `json:"person"`
}

func (c *CastMember) validate() error {
	return c.Person.validate()
}

// CrewMember links a person to the job they held
type CrewMember struct {
	Job    string `json:"job"`
	Person Person `json:"person"`
}

func (c *CrewMember) validate() error {
	return c.Person.validate()
}

// CastAndCrew is the combined credits of an item. Crew flattens every
// recognized department into a single list.
type CastAndCrew struct {
	Cast []CastMember
	Crew []CrewMember
}

// UserProfile identifies the author of a comment
type UserProfile struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Private  bool   `json:"private,omitempty"`
	VIP      bool   `json:"vip,omitempty"`
}

// Comment represents a user comment or review
type Comment struct {
	ID         int         `json:"id"`
	Comment    string      `json:"comment"`
	Spoiler    bool        `json:"spoiler,omitempty"`
	Review     bool        `json:"review,omitempty"`
	Parent     int         `json:"parent_id,omitempty"`
	Replies    int         `json:"replies,omitempty"`
	Likes      int         `json:"likes,omitempty"`
	UserRating int         `json:"user_rating,omitempty"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	User       UserProfile `json:"user,omitempty"`
}

func (c *Comment) validate() error {
	if c.ID == 0 {
		return missingField("id")
	}
	if c.Comment == "" {
		return missingField("comment")
	}
	return nil
}

// TrendingMovie pairs a movie with its current watcher count
type TrendingMovie struct {
	Watchers int   `json:"watchers"`
	Movie    Movie `json:"movie"`
}

func (t *TrendingMovie) validate() error {
	return t.Movie.validate()
}

// TrendingShow pairs a show with its current watcher count
type TrendingShow struct {
	Watchers int  `json:"watchers"`
	Show     Show `json:"show"`
}

func (t *TrendingShow) validate() error {
	return t.Show.validate()
}

// SearchResult is one hit from the search endpoint. Exactly one of the
// item pointers is set, matching Type.
type SearchResult struct {
	Type    string   `json:"type"`
	Score   float64  `json:"score"`
	Movie   *Movie   `json:"movie,omitempty"`
	Show    *Show    `json:"show,omitempty"`
	Episode *Episode `json:"episode,omitempty"`
	Person  *Person  `json:"person,omitempty"`
}

func (r *SearchResult) validate() error {
	if r.Type == "" {
		return missingField("type")
	}
	return nil
}

// ListItem is one entry of a user list such as the watchlist
type ListItem struct {
	Rank     int        `json:"rank,omitempty"`
	Type     string     `json:"type"`
	ListedAt *time.Time `json:"listed_at,omitempty"`
	Movie    *Movie     `json:"movie,omitempty"`
	Show     *Show      `json:"show,omitempty"`
}

func (l *ListItem) validate() error {
	if l.Type == "" {
		return missingField("type")
	}
	return nil
}

// SyncItems is the request body for watchlist add/remove calls
type SyncItems struct {
	Movies []SyncItem `json:"movies,omitempty"`
	Shows  []SyncItem `json:"shows,omitempty"`
}

// SyncItem wraps the IDs of one item to sync
type SyncItem struct {
	IDs IDs `json:"ids"`
}
