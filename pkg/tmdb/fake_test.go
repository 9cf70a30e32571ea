package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const (
	bruceWillis = 62
	dieHard     = 562
	testAPIKey  = "0123456789abcdef0123456789abcdef"
)

// fakeTMDB serves a small, fixed slice of the TMDB API.
type fakeTMDB struct {
	mu       sync.Mutex
	requests []*http.Request

	// unsolicited keys are appended to every person response.
	unsolicited []string
	// changeTimes are the item times served by the change endpoints.
	changeTimes []string
	// emptyChangeKeys are served as changes without items.
	emptyChangeKeys []string
}

func newFakeTMDB() *fakeTMDB {
	return &fakeTMDB{
		changeTimes: []string{
			"2024-03-15 10:00:00 UTC",
			"2024-03-16 22:45:10 UTC",
		},
	}
}

func (f *fakeTMDB) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1].URL.Query()
}

func (f *fakeTMDB) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	q := r.URL.Query()
	lang := q.Get("language")

	switch r.URL.Path {
	case "/person/62":
		body := f.person(lang)
		for _, key := range strings.Split(q.Get("append_to_response"), ",") {
			if v, ok := f.personExtra(key, lang); ok {
				body[key] = v
			}
		}
		for _, key := range f.unsolicited {
			if v, ok := f.personExtra(key, lang); ok {
				body[key] = v
			}
		}
		writeJSON(w, http.StatusOK, body)
	case "/person/62/movie_credits":
		credits := movieCredits(lang)
		credits["id"] = bruceWillis
		writeJSON(w, http.StatusOK, credits)
	case "/person/62/images":
		images := profileImages()
		images["id"] = bruceWillis
		writeJSON(w, http.StatusOK, images)
	case "/person/62/changes":
		writeJSON(w, http.StatusOK, f.changeLog())
	case "/person/62/external_ids":
		ids := externalIDs()
		ids["id"] = bruceWillis
		writeJSON(w, http.StatusOK, ids)
	case "/person/changes", "/movie/changes":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"page":          1,
			"total_pages":   1,
			"total_results": 2,
			"results": []map[string]interface{}{
				{"id": 1234, "adult": false},
				{"id": bruceWillis, "adult": nil},
			},
		})
	case "/movie/562":
		body := map[string]interface{}{
			"id":             dieHard,
			"title":          localized(lang, "Die Hard", "Trappola di cristallo"),
			"original_title": "Die Hard",
			"release_date":   "1988-07-15",
			"runtime":        132,
			"genres":         []map[string]interface{}{{"id": 28, "name": "Action"}},
			"imdb_id":        "tt0095016",
		}
		for _, key := range strings.Split(q.Get("append_to_response"), ",") {
			switch key {
			case "credits":
				body[key] = map[string]interface{}{
					"cast": []map[string]interface{}{{"id": bruceWillis, "name": "Bruce Willis", "character": "John McClane", "order": 0}},
					"crew": []map[string]interface{}{{"id": 1090, "name": "John McTiernan", "department": "Directing", "job": "Director"}},
				}
			case "alternative_titles":
				body[key] = map[string]interface{}{"titles": []map[string]interface{}{{"iso_3166_1": "IT", "title": "Trappola di cristallo"}}}
			case "images":
				body[key] = map[string]interface{}{"posters": []map[string]interface{}{{"file_path": "/poster.jpg", "width": 500, "height": 750}}}
			}
		}
		writeJSON(w, http.StatusOK, body)
	case "/movie/562/credits":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":   dieHard,
			"cast": []map[string]interface{}{{"id": bruceWillis, "name": "Bruce Willis", "character": "John McClane", "order": 0}},
			"crew": []map[string]interface{}{{"id": 1090, "name": "John McTiernan", "department": "Directing", "job": "Director"}},
		})
	case "/configuration":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"images": map[string]interface{}{
				"base_url":        "http://image.tmdb.org/t/p/",
				"secure_base_url": "https://image.tmdb.org/t/p/",
				"backdrop_sizes":  []string{"w300", "w780", "w1280", "original"},
				"logo_sizes":      []string{"w45", "w92", "w154", "w185", "w300", "w500", "original"},
				"poster_sizes":    []string{"w92", "w154", "w185", "w342", "w500", "w780", "original"},
				"profile_sizes":   []string{"w45", "w185", "h632", "original"},
				"still_sizes":     []string{"w92", "w185", "w300", "original"},
			},
			"change_keys": []string{"name", "biography", "images"},
		})
	case "/person/7":
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "seven", "name": "Broken"})
	case "/person/8":
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 8})
	case "/person/9":
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 9, "name": "Odd", "movie_credits": "oops"})
	case "/person/500":
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status_code": 11, "status_message": "Internal error: Something went wrong, contact TMDb.",
		})
	case "/person/401":
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"status_code": 7, "status_message": "Invalid API key: You must be granted a valid key.",
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"status_code": 34, "status_message": "The resource you requested could not be found.",
		})
	}
}

func (f *fakeTMDB) person(lang string) map[string]interface{} {
	return map[string]interface{}{
		"id":                   bruceWillis,
		"name":                 "Bruce Willis",
		"also_known_as":        []string{"Walter Bruce Willison"},
		"biography":            localized(lang, "Walter Bruce Willis is an American actor.", "Walter Bruce Willis è un attore statunitense."),
		"birthday":             "1955-03-19",
		"deathday":             nil,
		"gender":               2,
		"imdb_id":              "nm0000246",
		"known_for_department": "Acting",
		"place_of_birth":       "Idar-Oberstein, West Germany",
		"popularity":           37.5,
		"profile_path":         "/A1XBu3CffBpSK8HEIJM8q7Mn4lz.jpg",
	}
}

// personExtra returns the embedded payload for an append_to_response key.
// tv_credits is never embedded so the selected-but-absent case is covered.
func (f *fakeTMDB) personExtra(key, lang string) (interface{}, bool) {
	switch key {
	case "movie_credits":
		return movieCredits(lang), true
	case "images":
		return profileImages(), true
	case "changes":
		return f.changeLog(), true
	case "external_ids":
		return externalIDs(), true
	case "translations":
		return map[string]interface{}{
			"translations": []map[string]interface{}{
				{"iso_3166_1": "IT", "iso_639_1": "it", "name": "Italiano", "english_name": "Italian",
					"data": map[string]interface{}{"biography": "Walter Bruce Willis è un attore statunitense."}},
			},
		}, true
	}
	return nil, false
}

func (f *fakeTMDB) changeLog() map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(f.changeTimes))
	for i, t := range f.changeTimes {
		items = append(items, map[string]interface{}{
			"id":     "5e1f" + string(rune('a'+i)),
			"action": "updated",
			"time":   t,
			"value":  map[string]interface{}{"profile": map[string]interface{}{"file_path": "/x.jpg"}},
		})
	}
	changes := []map[string]interface{}{{"key": "images", "items": items}}
	for _, key := range f.emptyChangeKeys {
		changes = append(changes, map[string]interface{}{"key": key, "items": []interface{}{}})
	}
	return map[string]interface{}{"changes": changes}
}

func movieCredits(lang string) map[string]interface{} {
	return map[string]interface{}{
		"cast": []map[string]interface{}{
			{"id": 562, "title": localized(lang, "Die Hard", "Trappola di cristallo"), "original_title": "Die Hard", "character": "John McClane", "credit_id": "52fe4", "release_date": "1988-07-15"},
			{"id": 680, "title": "Pulp Fiction", "original_title": "Pulp Fiction", "character": "Butch Coolidge", "credit_id": "52fe5", "release_date": "1994-09-10"},
			{"id": 1891, "title": localized(lang, "The Sixth Sense", "Il sesto senso"), "original_title": "The Sixth Sense", "character": "Malcolm Crowe", "credit_id": "52fe6"},
		},
		"crew": []map[string]interface{}{
			{"id": 10588, "title": localized(lang, "The Kid", "Il mio primo bacio"), "original_title": "The Kid", "department": "Production", "job": "Executive Producer", "credit_id": "52fe7"},
		},
	}
}

func profileImages() map[string]interface{} {
	return map[string]interface{}{
		"profiles": []map[string]interface{}{
			{"file_path": "/A1XBu3CffBpSK8HEIJM8q7Mn4lz.jpg", "width": 1000, "height": 1500, "aspect_ratio": 0.667, "vote_average": 5.3, "vote_count": 12},
			{"file_path": "/kI1OluWhLJk3pnR19VjOfABpnTY.jpg", "width": 640, "height": 960, "aspect_ratio": 0.667},
		},
	}
}

func externalIDs() map[string]interface{} {
	return map[string]interface{}{"imdb_id": "nm0000246", "wikidata_id": "Q2680", "facebook_id": nil}
}

func localized(lang, en, it string) string {
	if lang == "it" {
		return it
	}
	return en
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, fake *fakeTMDB) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(testAPIKey, WithBaseURL(srv.URL), WithRateLimiter(nil))
	require.NoError(t, err)
	return client
}

// transportFunc adapts a function to the Transport interface.
type transportFunc func(ctx context.Context, path string, params url.Values) (*Response, error)

func (f transportFunc) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return f(ctx, path, params)
}

func staticTransport(status int, body string) transportFunc {
	return func(context.Context, string, url.Values) (*Response, error) {
		return &Response{StatusCode: status, Body: []byte(body)}, nil
	}
}
