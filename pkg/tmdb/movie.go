package tmdb

import (
	"context"
	"fmt"
)

func moviePath(id int, sub string) string {
	if sub == "" {
		return fmt.Sprintf("/movie/%d", id)
	}
	return fmt.Sprintf("/movie/%d/%s", id, sub)
}

// GetMovie fetches a movie and the selected extras in a single request.
func (c *Client) GetMovie(ctx context.Context, id int, opts ...Option) (*Movie, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	q := newQuery(opts)
	params, err := q.values(&movieSchema)
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("[TMDB] fetching movie %d (extras: %s, language: %q)", id, q.Extras, q.Language)
	raw, err := c.fetchRaw(ctx, moviePath(id, ""), params)
	if err != nil {
		return nil, err
	}
	c.logUnsolicited(movieSchema, id, raw, q.Extras)

	movie, err := mergeMovie(c.decoder, raw, q.Extras)
	if err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	if movie.Changes != nil {
		movie.Changes.Changes = c.filterChanges(moviePath(id, ""), q, movie.Changes.Changes)
	}
	return movie, nil
}

func (c *Client) GetMovieCredits(ctx context.Context, id int, opts ...Option) (*Credits, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	path := moviePath(id, movieSchema.key(ExtraCredits))
	params, err := newQuery(opts).standaloneValues(path)
	if err != nil {
		return nil, err
	}
	return fetchProjection[Credits](ctx, c, path, params, id)
}

func (c *Client) GetMovieImages(ctx context.Context, id int) (*MovieImages, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return fetchProjection[MovieImages](ctx, c, moviePath(id, movieSchema.key(ExtraImages)), nil, id)
}

func (c *Client) GetMovieExternalIDs(ctx context.Context, id int) (*ExternalIDs, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return fetchProjection[ExternalIDs](ctx, c, moviePath(id, movieSchema.key(ExtraExternalIDs)), nil, id)
}

func (c *Client) GetMovieTranslations(ctx context.Context, id int) (*Translations, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return fetchProjection[Translations](ctx, c, moviePath(id, movieSchema.key(ExtraTranslations)), nil, id)
}

// GetMovieAlternativeTitles returns the titles a movie is known by per country.
func (c *Client) GetMovieAlternativeTitles(ctx context.Context, id int) (*AlternativeTitles, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return fetchProjection[AlternativeTitles](ctx, c, moviePath(id, movieSchema.key(ExtraAlternativeTitles)), nil, id)
}

func (c *Client) GetMovieKeywords(ctx context.Context, id int) (*Keywords, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return fetchProjection[Keywords](ctx, c, moviePath(id, movieSchema.key(ExtraKeywords)), nil, id)
}

// GetMovieChanges returns the change history of a movie; see GetPersonChanges.
func (c *Client) GetMovieChanges(ctx context.Context, id int, opts ...Option) ([]Change, error) {
	if err := checkID("movie", id); err != nil {
		return nil, err
	}
	return c.getChanges(ctx, moviePath(id, movieSchema.key(ExtraChanges)), opts)
}

// GetChangedMovies lists movies edited recently.
func (c *Client) GetChangedMovies(ctx context.Context, opts ...Option) (*ChangedEntities, error) {
	return c.getChangedEntities(ctx, "/movie/changes", opts)
}
