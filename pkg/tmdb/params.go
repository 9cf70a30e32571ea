package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const dateLayout = "2006-01-02"

// Query holds the optional request parameters shared by the endpoints.
// Zero values mean "not set" and are omitted from the request.
type Query struct {
	Language  string
	Page      int
	StartDate time.Time
	EndDate   time.Time
	Extras    Extras
}

// Option mutates a Query.
type Option func(*Query)

// WithLanguage requests localized fields, e.g. "it" or "pt-BR".
func WithLanguage(language string) Option {
	return func(q *Query) {
		q.Language = language
	}
}

// WithPage selects a result page on paginated endpoints.
func WithPage(page int) Option {
	return func(q *Query) {
		q.Page = page
	}
}

// WithExtras adds extras to the request.
func WithExtras(kinds ...Extra) Option {
	return func(q *Query) {
		q.Extras = q.Extras.Union(NewExtras(kinds...))
	}
}

// WithExtraSet adds a prebuilt set of extras to the request.
func WithExtraSet(s Extras) Option {
	return func(q *Query) {
		q.Extras = q.Extras.Union(s)
	}
}

// WithDateRange bounds change queries. A zero bound is left to the service.
func WithDateRange(start, end time.Time) Option {
	return func(q *Query) {
		q.StartDate = start
		q.EndDate = end
	}
}

// WithStartDate sets only the lower bound of a change query.
func WithStartDate(start time.Time) Option {
	return func(q *Query) {
		q.StartDate = start
	}
}

// WithEndDate sets only the upper bound of a change query.
func WithEndDate(end time.Time) Option {
	return func(q *Query) {
		q.EndDate = end
	}
}

func newQuery(opts []Option) Query {
	var q Query
	for _, opt := range opts {
		if opt != nil {
			opt(&q)
		}
	}
	return q
}

// Validate checks the caller-side preconditions on q.
func (q Query) Validate() error {
	if q.Language != "" && !isToken(q.Language) {
		return NewInvalidArgumentError(fmt.Sprintf("invalid language %q", q.Language))
	}
	if q.Page < 0 {
		return NewInvalidArgumentError(fmt.Sprintf("invalid page %d", q.Page))
	}
	if !q.StartDate.IsZero() && !q.EndDate.IsZero() && q.StartDate.After(q.EndDate) {
		return NewInvalidArgumentError(fmt.Sprintf("start date %s is after end date %s",
			q.StartDate.Format(time.RFC3339), q.EndDate.Format(time.RFC3339)))
	}
	return nil
}

// standaloneValues renders q for an endpoint that serves a single dataset.
// Such endpoints take no extras, so selecting any is an invalid argument.
func (q Query) standaloneValues(endpoint string) (url.Values, error) {
	if !q.Extras.IsEmpty() {
		return nil, NewInvalidArgumentError(fmt.Sprintf("%s does not accept extras (got %s)", endpoint, q.Extras))
	}
	return q.values(nil)
}

// values renders q into query parameters for the given endpoint schema.
// Passing a nil schema drops the extras directive.
func (q Query) values(sc *schema) (url.Values, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if !q.StartDate.IsZero() {
		params.Set("start_date", q.StartDate.UTC().Format(dateLayout))
	}
	if !q.EndDate.IsZero() {
		params.Set("end_date", q.EndDate.UTC().Format(dateLayout))
	}
	if sc != nil && !q.Extras.IsEmpty() {
		if err := sc.check(q.Extras); err != nil {
			return nil, err
		}
		params.Set("append_to_response", q.Extras.render(*sc))
	}
	return params, nil
}

func isToken(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}
