package tmdb

import (
	"fmt"
	"strings"
)

// Extra names one optional dataset that can be appended to an entity request.
type Extra int

const (
	ExtraCredits Extra = iota
	ExtraTVCredits
	ExtraImages
	ExtraChanges
	ExtraExternalIDs
	ExtraTranslations
	ExtraAlternativeTitles
	ExtraKeywords

	extraCount
)

var extraNames = [extraCount]string{
	ExtraCredits:           "credits",
	ExtraTVCredits:         "tv_credits",
	ExtraImages:            "images",
	ExtraChanges:           "changes",
	ExtraExternalIDs:       "external_ids",
	ExtraTranslations:      "translations",
	ExtraAlternativeTitles: "alternative_titles",
	ExtraKeywords:          "keywords",
}

func (e Extra) valid() bool {
	return e >= 0 && e < extraCount
}

func (e Extra) String() string {
	if !e.valid() {
		return fmt.Sprintf("Extra(%d)", int(e))
	}
	return extraNames[e]
}

// ParseExtra resolves a canonical extra name such as "credits".
func ParseExtra(name string) (Extra, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range extraNames {
		if n == name {
			return Extra(i), nil
		}
	}
	return 0, NewInvalidArgumentError(fmt.Sprintf("unknown extra %q", name))
}

// Extras is an immutable set of Extra values. The zero value is the empty
// set, meaning no optional dataset is requested.
type Extras struct {
	bits uint32
}

// NewExtras returns the set holding kinds. Out of range values are ignored.
func NewExtras(kinds ...Extra) Extras {
	var s Extras
	for _, k := range kinds {
		if k.valid() {
			s.bits |= 1 << uint(k)
		}
	}
	return s
}

// ParseExtras parses a comma separated list of extra names. Blank entries
// are skipped so "" yields the empty set.
func ParseExtras(list string) (Extras, error) {
	var s Extras
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseExtra(part)
		if err != nil {
			return Extras{}, err
		}
		s = s.Union(NewExtras(k))
	}
	return s, nil
}

// Union returns the set union of s and others.
func (s Extras) Union(others ...Extras) Extras {
	for _, o := range others {
		s.bits |= o.bits
	}
	return s
}

// Without returns s minus kinds.
func (s Extras) Without(kinds ...Extra) Extras {
	return Extras{bits: s.bits &^ NewExtras(kinds...).bits}
}

// Has reports whether k is selected.
func (s Extras) Has(k Extra) bool {
	return k.valid() && s.bits&(1<<uint(k)) != 0
}

// IsEmpty reports whether no extra is selected.
func (s Extras) IsEmpty() bool {
	return s.bits == 0
}

// Kinds lists the selected extras in declaration order.
func (s Extras) Kinds() []Extra {
	kinds := make([]Extra, 0, extraCount)
	for k := Extra(0); k < extraCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s Extras) String() string {
	kinds := s.Kinds()
	if len(kinds) == 0 {
		return "none"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, "|")
}

// schema describes one entity endpoint: its path prefix and the wire key
// each supported extra is embedded under.
type schema struct {
	name string
	keys map[Extra]string
}

var personSchema = schema{
	name: "person",
	keys: map[Extra]string{
		ExtraCredits:      "movie_credits",
		ExtraTVCredits:    "tv_credits",
		ExtraImages:       "images",
		ExtraChanges:      "changes",
		ExtraExternalIDs:  "external_ids",
		ExtraTranslations: "translations",
	},
}

var movieSchema = schema{
	name: "movie",
	keys: map[Extra]string{
		ExtraCredits:           "credits",
		ExtraImages:            "images",
		ExtraChanges:           "changes",
		ExtraExternalIDs:       "external_ids",
		ExtraTranslations:      "translations",
		ExtraAlternativeTitles: "alternative_titles",
		ExtraKeywords:          "keywords",
	},
}

// AllPersonExtras and AllMovieExtras hold every extra the endpoint supports.
var (
	AllPersonExtras = personSchema.all()
	AllMovieExtras  = movieSchema.all()
)

func (sc schema) all() Extras {
	var s Extras
	for k := range sc.keys {
		s = s.Union(NewExtras(k))
	}
	return s
}

func (sc schema) key(k Extra) string {
	return sc.keys[k]
}

// check rejects extras the endpoint cannot embed.
func (sc schema) check(s Extras) error {
	unsupported := s.Without(sc.all().Kinds()...)
	if !unsupported.IsEmpty() {
		return NewInvalidArgumentError(fmt.Sprintf("%s does not support extras %s", sc.name, unsupported))
	}
	return nil
}

// render produces the append_to_response directive: wire keys in
// declaration order joined by commas.
func (s Extras) render(sc schema) string {
	kinds := s.Kinds()
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if key := sc.key(k); key != "" {
			keys = append(keys, key)
		}
	}
	return strings.Join(keys, ",")
}
