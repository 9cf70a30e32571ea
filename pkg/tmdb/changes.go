package tmdb

import (
	"context"
	"time"
)

// changeSlack widens each side of a change window. The service compares
// dates at day granularity, so an item stamped late on the day before the
// requested start (or early the day after the end) is still part of the
// answer.
const changeSlack = 24 * time.Hour

// ChangeWindow is the client side view of a change query's date range.
// A zero bound is open.
type ChangeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the window widened by one day on
// each side, bounds included.
func (w ChangeWindow) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start.Add(-changeSlack)) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End.Add(changeSlack)) {
		return false
	}
	return true
}

// Filter returns the changes restricted to items the window contains.
// A change whose items all fall outside is dropped; one the service sent
// without items is kept. The input is not modified.
func (w ChangeWindow) Filter(changes []Change) []Change {
	out := make([]Change, 0, len(changes))
	for _, change := range changes {
		items := make([]ChangeItem, 0, len(change.Items))
		for _, item := range change.Items {
			if w.Contains(item.TimeParsed) {
				items = append(items, item)
			}
		}
		if len(items) == 0 && len(change.Items) > 0 {
			continue
		}
		out = append(out, Change{Key: change.Key, Items: items})
	}
	return out
}

func (c *Client) getChanges(ctx context.Context, path string, opts []Option) ([]Change, error) {
	q := newQuery(opts)
	params, err := q.standaloneValues(path)
	if err != nil {
		return nil, err
	}

	var log ChangeLog
	if err := c.fetchInto(ctx, path, params, &log); err != nil {
		return nil, err
	}
	if err := log.normalize(0); err != nil {
		return nil, NewMalformedResponseError("failed to decode "+path, err)
	}

	return c.filterChanges(path, q, log.Changes), nil
}

// filterChanges applies the query's date range to a change log, embedded or
// standalone alike.
func (c *Client) filterChanges(path string, q Query, changes []Change) []Change {
	window := ChangeWindow{Start: q.StartDate, End: q.EndDate}
	kept := window.Filter(changes)
	if dropped := countItems(changes) - countItems(kept); dropped > 0 {
		c.logger.Debugf("[TMDB] dropped %d change items outside %s", dropped, path)
	}
	return kept
}

func (c *Client) getChangedEntities(ctx context.Context, path string, opts []Option) (*ChangedEntities, error) {
	params, err := newQuery(opts).standaloneValues(path)
	if err != nil {
		return nil, err
	}

	var list ChangedEntities
	if err := c.fetchInto(ctx, path, params, &list); err != nil {
		return nil, err
	}
	if list.Results == nil {
		list.Results = []ChangedEntity{}
	}
	return &list, nil
}

func countItems(changes []Change) int {
	n := 0
	for _, change := range changes {
		n += len(change.Items)
	}
	return n
}
