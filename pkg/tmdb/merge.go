package tmdb

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// changeTimeLayout is the format of ChangeItem.Time on the wire,
// e.g. "2012-10-19 20:31:57 UTC".
const changeTimeLayout = "2006-01-02 15:04:05 MST"

// fieldDecoder decodes top level fields one by one and keeps the first
// failure, so the merge functions read as a flat list of fields.
type fieldDecoder struct {
	raw RawResponse
	dec Decoder
	err error
}

func (d *fieldDecoder) required(key string, dst interface{}) {
	if d.err != nil {
		return
	}
	data, ok := d.raw[key]
	if !ok || isNull(data) {
		d.err = NewMalformedResponseError(fmt.Sprintf("missing required field %q", key), nil)
		return
	}
	if err := d.dec.Unmarshal(data, dst); err != nil {
		d.err = NewMalformedResponseError(fmt.Sprintf("required field %q", key), err)
	}
}

func (d *fieldDecoder) optional(key string, dst interface{}) {
	if d.err != nil {
		return
	}
	data, ok := d.raw[key]
	if !ok || isNull(data) {
		return
	}
	if err := d.dec.Unmarshal(data, dst); err != nil {
		d.err = NewMalformedResponseError(fmt.Sprintf("field %q", key), err)
	}
}

// extra is implemented by every dataset that can be appended to an entity.
type extra interface {
	// normalize replaces nil slices with empty ones, fills in the parent id
	// when the embedded copy omits it, and derives parsed fields.
	normalize(parentID int) error
}

// extraField decodes one appended dataset. It returns nil when the extra
// was not selected, and an empty non-nil value when it was selected but the
// response has nothing under its key.
func extraField[T any, P interface {
	*T
	extra
}](d *fieldDecoder, key string, selected bool, parentID int) P {
	if d.err != nil || !selected {
		return nil
	}
	p := P(new(T))
	if data, ok := d.raw[key]; ok && !isNull(data) {
		if err := d.dec.Unmarshal(data, p); err != nil {
			d.err = NewMalformedResponseError(fmt.Sprintf("extra %q", key), err)
			return nil
		}
	}
	if err := p.normalize(parentID); err != nil {
		d.err = NewMalformedResponseError(fmt.Sprintf("extra %q", key), err)
		return nil
	}
	return p
}

func mergePerson(dec Decoder, raw RawResponse, selected Extras) (*Person, error) {
	p := &Person{}
	d := &fieldDecoder{raw: raw, dec: dec}

	d.required("id", &p.ID)
	d.required("name", &p.Name)
	d.optional("adult", &p.Adult)
	d.optional("also_known_as", &p.AlsoKnownAs)
	d.optional("biography", &p.Biography)
	d.optional("birthday", &p.Birthday)
	d.optional("deathday", &p.Deathday)
	d.optional("gender", &p.Gender)
	d.optional("homepage", &p.Homepage)
	d.optional("imdb_id", &p.IMDbID)
	d.optional("known_for_department", &p.KnownForDepartment)
	d.optional("place_of_birth", &p.PlaceOfBirth)
	d.optional("popularity", &p.Popularity)
	d.optional("profile_path", &p.ProfilePath)

	sc := personSchema
	p.Credits = extraField[MovieCredits](d, sc.key(ExtraCredits), selected.Has(ExtraCredits), p.ID)
	p.TVCredits = extraField[TVCredits](d, sc.key(ExtraTVCredits), selected.Has(ExtraTVCredits), p.ID)
	p.Images = extraField[ProfileImages](d, sc.key(ExtraImages), selected.Has(ExtraImages), p.ID)
	p.Changes = extraField[ChangeLog](d, sc.key(ExtraChanges), selected.Has(ExtraChanges), p.ID)
	p.ExternalIDs = extraField[ExternalIDs](d, sc.key(ExtraExternalIDs), selected.Has(ExtraExternalIDs), p.ID)
	p.Translations = extraField[Translations](d, sc.key(ExtraTranslations), selected.Has(ExtraTranslations), p.ID)

	if d.err != nil {
		return nil, d.err
	}
	if p.AlsoKnownAs == nil {
		p.AlsoKnownAs = []string{}
	}
	return p, nil
}

func mergeMovie(dec Decoder, raw RawResponse, selected Extras) (*Movie, error) {
	m := &Movie{}
	d := &fieldDecoder{raw: raw, dec: dec}

	d.required("id", &m.ID)
	d.required("title", &m.Title)
	d.optional("original_title", &m.OriginalTitle)
	d.optional("original_language", &m.OriginalLanguage)
	d.optional("overview", &m.Overview)
	d.optional("tagline", &m.Tagline)
	d.optional("status", &m.Status)
	d.optional("release_date", &m.ReleaseDate)
	d.optional("runtime", &m.Runtime)
	d.optional("imdb_id", &m.IMDbID)
	d.optional("adult", &m.Adult)
	d.optional("genres", &m.Genres)
	d.optional("poster_path", &m.PosterPath)
	d.optional("backdrop_path", &m.BackdropPath)
	d.optional("popularity", &m.Popularity)
	d.optional("vote_average", &m.VoteAverage)
	d.optional("vote_count", &m.VoteCount)

	sc := movieSchema
	m.Credits = extraField[Credits](d, sc.key(ExtraCredits), selected.Has(ExtraCredits), m.ID)
	m.Images = extraField[MovieImages](d, sc.key(ExtraImages), selected.Has(ExtraImages), m.ID)
	m.Changes = extraField[ChangeLog](d, sc.key(ExtraChanges), selected.Has(ExtraChanges), m.ID)
	m.ExternalIDs = extraField[ExternalIDs](d, sc.key(ExtraExternalIDs), selected.Has(ExtraExternalIDs), m.ID)
	m.Translations = extraField[Translations](d, sc.key(ExtraTranslations), selected.Has(ExtraTranslations), m.ID)
	m.AlternativeTitles = extraField[AlternativeTitles](d, sc.key(ExtraAlternativeTitles), selected.Has(ExtraAlternativeTitles), m.ID)
	m.Keywords = extraField[Keywords](d, sc.key(ExtraKeywords), selected.Has(ExtraKeywords), m.ID)

	if d.err != nil {
		return nil, d.err
	}
	if m.Genres == nil {
		m.Genres = []Genre{}
	}
	return m, nil
}

// unsolicited lists extras present in raw that were not selected. They are
// left out of the aggregate.
func unsolicited(sc schema, raw RawResponse, selected Extras) []string {
	var keys []string
	for k, key := range sc.keys {
		if selected.Has(k) {
			continue
		}
		if data, ok := raw[key]; ok && !isNull(data) && isObject(data) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// isObject separates appended datasets from scalar fields sharing a key
// name, such as a movie's top level "imdb_id" versus "external_ids".
func isObject(data []byte) bool {
	s := strings.TrimSpace(string(data))
	return strings.HasPrefix(s, "{")
}

func parseChangeTime(value string) (time.Time, error) {
	t, err := time.Parse(changeTimeLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid change time %q: %w", value, err)
	}
	return t.UTC(), nil
}

func (c *MovieCredits) normalize(parentID int) error {
	if c.ID == 0 {
		c.ID = parentID
	}
	if c.Cast == nil {
		c.Cast = []MovieRole{}
	}
	if c.Crew == nil {
		c.Crew = []MovieJob{}
	}
	return nil
}

func (c *TVCredits) normalize(parentID int) error {
	if c.ID == 0 {
		c.ID = parentID
	}
	if c.Cast == nil {
		c.Cast = []TVRole{}
	}
	if c.Crew == nil {
		c.Crew = []TVJob{}
	}
	return nil
}

func (c *Credits) normalize(parentID int) error {
	if c.ID == 0 {
		c.ID = parentID
	}
	if c.Cast == nil {
		c.Cast = []CastMember{}
	}
	if c.Crew == nil {
		c.Crew = []CrewMember{}
	}
	return nil
}

func (i *ProfileImages) normalize(parentID int) error {
	if i.ID == 0 {
		i.ID = parentID
	}
	if i.Profiles == nil {
		i.Profiles = []Profile{}
	}
	return nil
}

func (i *MovieImages) normalize(parentID int) error {
	if i.ID == 0 {
		i.ID = parentID
	}
	if i.Backdrops == nil {
		i.Backdrops = []Image{}
	}
	if i.Posters == nil {
		i.Posters = []Image{}
	}
	if i.Logos == nil {
		i.Logos = []Image{}
	}
	return nil
}

func (l *ChangeLog) normalize(int) error {
	if l.Changes == nil {
		l.Changes = []Change{}
	}
	for i := range l.Changes {
		change := &l.Changes[i]
		if change.Items == nil {
			change.Items = []ChangeItem{}
		}
		for j := range change.Items {
			item := &change.Items[j]
			parsed, err := parseChangeTime(item.Time)
			if err != nil {
				return fmt.Errorf("change %q item %q: %w", change.Key, item.ID, err)
			}
			item.TimeParsed = parsed
		}
	}
	return nil
}

func (e *ExternalIDs) normalize(parentID int) error {
	if e.ID == 0 {
		e.ID = parentID
	}
	return nil
}

func (t *Translations) normalize(parentID int) error {
	if t.ID == 0 {
		t.ID = parentID
	}
	if t.Translations == nil {
		t.Translations = []Translation{}
	}
	return nil
}

func (a *AlternativeTitles) normalize(parentID int) error {
	if a.ID == 0 {
		a.ID = parentID
	}
	if a.Titles == nil {
		a.Titles = []AlternativeTitle{}
	}
	return nil
}

func (k *Keywords) normalize(parentID int) error {
	if k.ID == 0 {
		k.ID = parentID
	}
	if k.Keywords == nil {
		k.Keywords = []Keyword{}
	}
	return nil
}
