package tmdb

import (
	"time"

	"github.com/goccy/go-json"
)

// Person is the aggregate returned by GetPerson. Each pointer field maps to
// one Extra: nil means the extra was not requested, a non-nil value with
// empty slices means it was requested and the service had nothing for it.
type Person struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Adult              bool     `json:"adult"`
	AlsoKnownAs        []string `json:"also_known_as"`
	Biography          string   `json:"biography"`
	Birthday           string   `json:"birthday"`
	Deathday           string   `json:"deathday"`
	Gender             int      `json:"gender"`
	Homepage           string   `json:"homepage"`
	IMDbID             string   `json:"imdb_id"`
	KnownForDepartment string   `json:"known_for_department"`
	PlaceOfBirth       string   `json:"place_of_birth"`
	Popularity         float64  `json:"popularity"`
	ProfilePath        string   `json:"profile_path"`

	Credits      *MovieCredits  `json:"movie_credits,omitempty"`
	TVCredits    *TVCredits     `json:"tv_credits,omitempty"`
	Images       *ProfileImages `json:"images,omitempty"`
	Changes      *ChangeLog     `json:"changes,omitempty"`
	ExternalIDs  *ExternalIDs   `json:"external_ids,omitempty"`
	Translations *Translations  `json:"translations,omitempty"`
}

// Movie is the aggregate returned by GetMovie. Extras follow the same
// nil versus empty rule as Person.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	IMDbID           string  `json:"imdb_id"`
	Adult            bool    `json:"adult"`
	Genres           []Genre `json:"genres"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`

	Credits           *Credits           `json:"credits,omitempty"`
	Images            *MovieImages       `json:"images,omitempty"`
	Changes           *ChangeLog         `json:"changes,omitempty"`
	ExternalIDs       *ExternalIDs       `json:"external_ids,omitempty"`
	Translations      *Translations      `json:"translations,omitempty"`
	AlternativeTitles *AlternativeTitles `json:"alternative_titles,omitempty"`
	Keywords          *Keywords          `json:"keywords,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieCredits lists the movies a person appeared in or worked on.
type MovieCredits struct {
	ID   int         `json:"id"`
	Cast []MovieRole `json:"cast"`
	Crew []MovieJob  `json:"crew"`
}

// MovieRole is one cast appearance of a person.
type MovieRole struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Adult         bool    `json:"adult"`
	Popularity    float64 `json:"popularity"`
	Character     string  `json:"character"`
	CreditID      string  `json:"credit_id"`
	Order         int     `json:"order"`
}

// MovieJob is one crew appearance of a person.
type MovieJob struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Adult         bool    `json:"adult"`
	Popularity    float64 `json:"popularity"`
	Department    string  `json:"department"`
	Job           string  `json:"job"`
	CreditID      string  `json:"credit_id"`
}

// TVCredits lists the shows a person appeared in or worked on.
type TVCredits struct {
	ID   int      `json:"id"`
	Cast []TVRole `json:"cast"`
	Crew []TVJob  `json:"crew"`
}

type TVRole struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	FirstAirDate string `json:"first_air_date"`
	PosterPath   string `json:"poster_path"`
	Character    string `json:"character"`
	EpisodeCount int    `json:"episode_count"`
	CreditID     string `json:"credit_id"`
}

type TVJob struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	FirstAirDate string `json:"first_air_date"`
	PosterPath   string `json:"poster_path"`
	Department   string `json:"department"`
	Job          string `json:"job"`
	EpisodeCount int    `json:"episode_count"`
	CreditID     string `json:"credit_id"`
}

// Credits is the cast and crew of a movie.
type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type CastMember struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Character    string `json:"character"`
	CreditID     string `json:"credit_id"`
	Order        int    `json:"order"`
	ProfilePath  string `json:"profile_path"`
}

type CrewMember struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Department   string `json:"department"`
	Job          string `json:"job"`
	CreditID     string `json:"credit_id"`
	ProfilePath  string `json:"profile_path"`
}

// Image describes one image file hosted on the image CDN.
type Image struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	ISO639_1    string  `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Profile is a person portrait.
type Profile = Image

// ProfileImages lists the portraits of a person.
type ProfileImages struct {
	ID       int       `json:"id"`
	Profiles []Profile `json:"profiles"`
}

// MovieImages lists the artwork of a movie.
type MovieImages struct {
	ID        int     `json:"id"`
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// ChangeLog is the change history embedded by the changes extra.
type ChangeLog struct {
	Changes []Change `json:"changes"`
}

// Change groups the edits made to one field of an entity.
type Change struct {
	Key   string       `json:"key"`
	Items []ChangeItem `json:"items"`
}

// ChangeItem is one edit. Time keeps the wire value; TimeParsed holds it
// as a UTC time.
type ChangeItem struct {
	ID            string          `json:"id"`
	Action        string          `json:"action"`
	Time          string          `json:"time"`
	TimeParsed    time.Time       `json:"-"`
	ISO639_1      string          `json:"iso_639_1"`
	ISO3166_1     string          `json:"iso_3166_1"`
	Value         json.RawMessage `json:"value,omitempty"`
	OriginalValue json.RawMessage `json:"original_value,omitempty"`
}

// ExternalIDs links an entity to other databases.
type ExternalIDs struct {
	ID          int    `json:"id"`
	IMDbID      string `json:"imdb_id"`
	WikidataID  string `json:"wikidata_id"`
	FacebookID  string `json:"facebook_id"`
	InstagramID string `json:"instagram_id"`
	TwitterID   string `json:"twitter_id"`
	TikTokID    string `json:"tiktok_id"`
	TVRageID    int    `json:"tvrage_id"`
}

// Translations lists the languages an entity has localized data for.
type Translations struct {
	ID           int           `json:"id"`
	Translations []Translation `json:"translations"`
}

// Translation keeps Data raw because its fields differ per entity kind.
type Translation struct {
	ISO3166_1   string          `json:"iso_3166_1"`
	ISO639_1    string          `json:"iso_639_1"`
	Name        string          `json:"name"`
	EnglishName string          `json:"english_name"`
	Data        json.RawMessage `json:"data,omitempty"`
}

type AlternativeTitles struct {
	ID     int                `json:"id"`
	Titles []AlternativeTitle `json:"titles"`
}

type AlternativeTitle struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Title     string `json:"title"`
	Type      string `json:"type"`
}

type Keywords struct {
	ID       int       `json:"id"`
	Keywords []Keyword `json:"keywords"`
}

type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ChangedEntities is one page of the changed-ids listing.
type ChangedEntities struct {
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Results      []ChangedEntity `json:"results"`
}

type ChangedEntity struct {
	ID    int   `json:"id"`
	Adult *bool `json:"adult"`
}

// Configuration is the subset of /configuration the client needs.
type Configuration struct {
	Images     ImageConfig `json:"images"`
	ChangeKeys []string    `json:"change_keys"`
}

// ImageConfig carries the image CDN base URLs and the valid size tokens.
type ImageConfig struct {
	BaseURL       string   `json:"base_url"`
	SecureBaseURL string   `json:"secure_base_url"`
	BackdropSizes []string `json:"backdrop_sizes"`
	LogoSizes     []string `json:"logo_sizes"`
	PosterSizes   []string `json:"poster_sizes"`
	ProfileSizes  []string `json:"profile_sizes"`
	StillSizes    []string `json:"still_sizes"`
}
