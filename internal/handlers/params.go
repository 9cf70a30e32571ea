package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

const dateLayout = "2006-01-02"

// cacheKey identifies a request by path and canonically ordered query.
func cacheKey(u *url.URL) string {
	query := u.Query()
	if len(query) == 0 {
		return u.Path
	}
	return u.Path + "?" + query.Encode()
}

// queryOptions turns the common query parameters into client options.
// withExtras enables the append parameter.
func queryOptions(c *gin.Context, withExtras bool) ([]tmdb.Option, error) {
	var opts []tmdb.Option

	if lang, ok := c.GetQuery(constants.ParamLanguage); ok {
		opts = append(opts, tmdb.WithLanguage(lang))
	}

	if withExtras {
		if list := c.Query(constants.ParamAppend); list != "" {
			extras, err := tmdb.ParseExtras(list)
			if err != nil {
				return nil, err
			}
			opts = append(opts, tmdb.WithExtraSet(extras))
		}
	}
	return opts, nil
}

// changeOptions adds the change window and page parameters.
func changeOptions(c *gin.Context) ([]tmdb.Option, error) {
	var opts []tmdb.Option

	start, err := parseDate(c, constants.ParamStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(c, constants.ParamEnd)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && end.Sub(start) > constants.MaxChangeWindowDays*24*time.Hour {
		return nil, tmdb.NewInvalidArgumentError(fmt.Sprintf("change window is limited to %d days", constants.MaxChangeWindowDays))
	}
	opts = append(opts, tmdb.WithDateRange(start, end))

	if raw := c.Query(constants.ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 || page > constants.MaxChangesPage {
			return nil, tmdb.NewInvalidArgumentError(fmt.Sprintf("invalid page %q", raw))
		}
		opts = append(opts, tmdb.WithPage(page))
	}
	return opts, nil
}

func parseDate(c *gin.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}, tmdb.NewInvalidArgumentError(fmt.Sprintf("invalid %s %q", name, raw))
		}
	}
	return t.UTC(), nil
}
