package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/gotmdb/internal/cache"
	"github.com/amaumene/gotmdb/internal/services"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

// fakeMetadata records the options of the last call and serves canned data.
type fakeMetadata struct {
	calls int
	query tmdb.Query
	err   error
}

func (f *fakeMetadata) record(opts []tmdb.Option) error {
	f.calls++
	f.query = tmdb.Query{}
	for _, opt := range opts {
		opt(&f.query)
	}
	if f.err != nil {
		return f.err
	}
	return f.query.Validate()
}

func (f *fakeMetadata) GetPerson(_ context.Context, id int, opts ...tmdb.Option) (*tmdb.Person, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	if id == 404 {
		return nil, tmdb.NewNotFoundError("/person/404", "")
	}
	p := &tmdb.Person{ID: id, Name: "Bruce Willis", AlsoKnownAs: []string{}}
	if f.query.Extras.Has(tmdb.ExtraCredits) {
		p.Credits = &tmdb.MovieCredits{ID: id, Cast: []tmdb.MovieRole{{ID: 562, Title: "Die Hard"}}, Crew: []tmdb.MovieJob{}}
	}
	return p, nil
}

func (f *fakeMetadata) GetPersonCredits(_ context.Context, id int, opts ...tmdb.Option) (*tmdb.MovieCredits, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.MovieCredits{ID: id, Cast: []tmdb.MovieRole{}, Crew: []tmdb.MovieJob{}}, nil
}

func (f *fakeMetadata) GetPersonTVCredits(_ context.Context, id int, opts ...tmdb.Option) (*tmdb.TVCredits, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.TVCredits{ID: id, Cast: []tmdb.TVRole{}, Crew: []tmdb.TVJob{}}, nil
}

func (f *fakeMetadata) GetPersonImages(_ context.Context, id int) (*tmdb.ProfileImages, error) {
	if err := f.record(nil); err != nil {
		return nil, err
	}
	return &tmdb.ProfileImages{ID: id, Profiles: []tmdb.Profile{{FilePath: "/a.jpg"}}}, nil
}

func (f *fakeMetadata) GetPersonChanges(_ context.Context, _ int, opts ...tmdb.Option) ([]tmdb.Change, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return []tmdb.Change{{Key: "name", Items: []tmdb.ChangeItem{{ID: "x", Action: "updated"}}}}, nil
}

func (f *fakeMetadata) GetChangedPeople(_ context.Context, opts ...tmdb.Option) (*tmdb.ChangedEntities, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.ChangedEntities{Page: 1, Results: []tmdb.ChangedEntity{{ID: 62}}}, nil
}

func (f *fakeMetadata) GetMovie(_ context.Context, id int, opts ...tmdb.Option) (*tmdb.Movie, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.Movie{ID: id, Title: "Die Hard", Genres: []tmdb.Genre{}}, nil
}

func (f *fakeMetadata) GetMovieCredits(_ context.Context, id int, opts ...tmdb.Option) (*tmdb.Credits, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.Credits{ID: id, Cast: []tmdb.CastMember{}, Crew: []tmdb.CrewMember{}}, nil
}

func (f *fakeMetadata) GetMovieImages(_ context.Context, id int) (*tmdb.MovieImages, error) {
	if err := f.record(nil); err != nil {
		return nil, err
	}
	return &tmdb.MovieImages{ID: id, Backdrops: []tmdb.Image{}, Posters: []tmdb.Image{}, Logos: []tmdb.Image{}}, nil
}

func (f *fakeMetadata) GetMovieChanges(_ context.Context, _ int, opts ...tmdb.Option) ([]tmdb.Change, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return []tmdb.Change{}, nil
}

func (f *fakeMetadata) GetChangedMovies(_ context.Context, opts ...tmdb.Option) (*tmdb.ChangedEntities, error) {
	if err := f.record(opts); err != nil {
		return nil, err
	}
	return &tmdb.ChangedEntities{Results: []tmdb.ChangedEntity{}}, nil
}

func (f *fakeMetadata) GetConfiguration(context.Context) (*tmdb.Configuration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.Configuration{Images: tmdb.ImageConfig{
		BaseURL:       "http://image.tmdb.org/t/p/",
		SecureBaseURL: "https://image.tmdb.org/t/p/",
		ProfileSizes:  []string{"w45", "w185", "h632", "original"},
	}}, nil
}

func setupTestRouter(fake *fakeMetadata, withCache bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	container := &services.Container{
		TMDB:   fake,
		Images: services.NewImageService(fake, logger.Nop()),
		Logger: logger.Nop(),
	}
	if withCache {
		container.Responses = cache.New[[]byte](10, time.Minute)
	}

	r := gin.New()
	New(container).RegisterRoutes(r)
	return r
}

func doGet(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(&fakeMetadata{}, false)

	w := doGet(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestPersonWithExtras(t *testing.T) {
	fake := &fakeMetadata{}
	r := setupTestRouter(fake, false)

	w := doGet(r, "/person/62?append=credits,images&language=it")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "it", fake.query.Language)
	assert.Equal(t, tmdb.NewExtras(tmdb.ExtraCredits, tmdb.ExtraImages), fake.query.Extras)

	body := decodeBody(t, w)
	assert.Equal(t, float64(62), body["id"])
	assert.Contains(t, body, "movie_credits")
	assert.NotContains(t, body, "changes")
}

func TestPersonBadRequests(t *testing.T) {
	fake := &fakeMetadata{}
	r := setupTestRouter(fake, false)

	for _, target := range []string{
		"/person/abc",
		"/person/0",
		"/person/62?append=bogus",
		"/person/62/changes?start_date=yesterday",
		"/person/62/changes?start_date=2024-03-01&end_date=2024-03-30",
		"/person/changes?page=0",
		"/image?size=w185",
		"/image?size=w185&path=/a.jpg&secure=maybe",
	} {
		w := doGet(r, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, decodeBody(t, w), "error", target)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not_found", tmdb.NewNotFoundError("/person/1", ""), http.StatusNotFound},
		{"invalid", tmdb.NewInvalidArgumentError("bad"), http.StatusBadRequest},
		{"upstream", tmdb.NewRequestFailedError("/person/1", 500, ""), http.StatusBadGateway},
		{"malformed", tmdb.NewMalformedResponseError("bad", nil), http.StatusBadGateway},
		{"timeout", &url.Error{Op: "Get", URL: "x", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTestRouter(&fakeMetadata{err: tt.err}, false)
			w := doGet(r, "/movie/562")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPersonNotFound(t *testing.T) {
	r := setupTestRouter(&fakeMetadata{}, false)
	w := doGet(r, "/person/404")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResponseCache(t *testing.T) {
	fake := &fakeMetadata{}
	r := setupTestRouter(fake, true)

	first := doGet(r, "/movie/562?language=it&append=credits")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := doGet(r, "/movie/562?append=credits&language=it")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, fake.calls)

	doGet(r, "/movie/562")
	assert.Equal(t, 2, fake.calls)
}

func TestErrorsAreNotCached(t *testing.T) {
	fake := &fakeMetadata{}
	r := setupTestRouter(fake, true)

	doGet(r, "/person/404")
	doGet(r, "/person/404")
	assert.Equal(t, 2, fake.calls)
}

func TestChangesRoutes(t *testing.T) {
	fake := &fakeMetadata{}
	r := setupTestRouter(fake, false)

	w := doGet(r, "/person/62/changes?start_date=2024-03-10&end_date=2024-03-20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), fake.query.StartDate)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), fake.query.EndDate)
	assert.Contains(t, decodeBody(t, w), "changes")

	w = doGet(r, "/movie/changes?page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, fake.query.Page)

	w = doGet(r, "/person/changes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["results"], 1)
}

func TestSubresourceRoutes(t *testing.T) {
	r := setupTestRouter(&fakeMetadata{}, false)

	for _, target := range []string{
		"/person/62/credits",
		"/person/62/tv_credits",
		"/person/62/images",
		"/movie/562/credits",
		"/movie/562/images",
		"/movie/562/changes",
	} {
		w := doGet(r, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestImage(t *testing.T) {
	r := setupTestRouter(&fakeMetadata{}, false)

	w := doGet(r, "/image?size=w185&path=/a.jpg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/a.jpg", decodeBody(t, w)["url"])

	w = doGet(r, "/image?size=original&path=/a.jpg&secure=false&redirect=true")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://image.tmdb.org/t/p/original/a.jpg", w.Header().Get("Location"))

	w = doGet(r, "/image?size=w9999&path=/a.jpg")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCacheKeyIsOrderIndependent(t *testing.T) {
	a, _ := url.Parse("/person/62?language=it&append=credits")
	b, _ := url.Parse("/person/62?append=credits&language=it")
	assert.Equal(t, cacheKey(a), cacheKey(b))

	c, _ := url.Parse("/person/62")
	assert.Equal(t, "/person/62", cacheKey(c))
}
