package tmdb

import (
	"context"
	"fmt"
)

func personPath(id int, sub string) string {
	if sub == "" {
		return fmt.Sprintf("/person/%d", id)
	}
	return fmt.Sprintf("/person/%d/%s", id, sub)
}

// GetPerson fetches a person and every extra selected with WithExtras in a
// single request. WithLanguage localizes the textual fields.
func (c *Client) GetPerson(ctx context.Context, id int, opts ...Option) (*Person, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	q := newQuery(opts)
	params, err := q.values(&personSchema)
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("[TMDB] fetching person %d (extras: %s, language: %q)", id, q.Extras, q.Language)
	raw, err := c.fetchRaw(ctx, personPath(id, ""), params)
	if err != nil {
		return nil, err
	}
	c.logUnsolicited(personSchema, id, raw, q.Extras)

	person, err := mergePerson(c.decoder, raw, q.Extras)
	if err != nil {
		return nil, fmt.Errorf("person %d: %w", id, err)
	}
	if person.Changes != nil {
		person.Changes.Changes = c.filterChanges(personPath(id, ""), q, person.Changes.Changes)
	}
	return person, nil
}

// GetPersonCredits returns the movie credits of a person. It matches the
// Credits field of GetPerson with ExtraCredits.
func (c *Client) GetPersonCredits(ctx context.Context, id int, opts ...Option) (*MovieCredits, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	path := personPath(id, personSchema.key(ExtraCredits))
	params, err := newQuery(opts).standaloneValues(path)
	if err != nil {
		return nil, err
	}
	return fetchProjection[MovieCredits](ctx, c, path, params, id)
}

// GetPersonTVCredits returns the TV credits of a person.
func (c *Client) GetPersonTVCredits(ctx context.Context, id int, opts ...Option) (*TVCredits, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	path := personPath(id, personSchema.key(ExtraTVCredits))
	params, err := newQuery(opts).standaloneValues(path)
	if err != nil {
		return nil, err
	}
	return fetchProjection[TVCredits](ctx, c, path, params, id)
}

// GetPersonImages returns the profile images of a person.
func (c *Client) GetPersonImages(ctx context.Context, id int) (*ProfileImages, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	return fetchProjection[ProfileImages](ctx, c, personPath(id, personSchema.key(ExtraImages)), nil, id)
}

func (c *Client) GetPersonExternalIDs(ctx context.Context, id int) (*ExternalIDs, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	return fetchProjection[ExternalIDs](ctx, c, personPath(id, personSchema.key(ExtraExternalIDs)), nil, id)
}

func (c *Client) GetPersonTranslations(ctx context.Context, id int) (*Translations, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	return fetchProjection[Translations](ctx, c, personPath(id, personSchema.key(ExtraTranslations)), nil, id)
}

// GetPersonChanges returns the change history of a person, optionally
// bounded with WithDateRange. See ChangeWindow for how bounds apply.
func (c *Client) GetPersonChanges(ctx context.Context, id int, opts ...Option) ([]Change, error) {
	if err := checkID("person", id); err != nil {
		return nil, err
	}
	return c.getChanges(ctx, personPath(id, personSchema.key(ExtraChanges)), opts)
}

// GetChangedPeople lists people edited recently, newest first.
func (c *Client) GetChangedPeople(ctx context.Context, opts ...Option) (*ChangedEntities, error) {
	return c.getChangedEntities(ctx, "/person/changes", opts)
}
