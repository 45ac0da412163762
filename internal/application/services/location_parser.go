package services

import (
	"regexp"
	"strings"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

var (
	disallowedCharsPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespacePattern      = regexp.MustCompile(`\s+`)
	zipTokenPattern        = regexp.MustCompile(`\b\d{5}\b`)
	zipOnlyPattern         = regexp.MustCompile(`^\d{5}$`)
)

// usStateAbbreviations maps lowercase full state names to postal codes.
var usStateAbbreviations = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// stateAbbreviation returns the postal code for a full US state name.
func stateAbbreviation(name string) (string, bool) {
	abbr, ok := usStateAbbreviations[strings.ToLower(strings.TrimSpace(name))]
	return abbr, ok
}

// LocationParser turns free-text locations into match terms. It is
// permissive: input it cannot make sense of becomes a loose city/state
// match or no constraint at all, never an error.
type LocationParser struct{}

// NewLocationParser creates a new location parser
func NewLocationParser() *LocationParser {
	return &LocationParser{}
}

// Parse builds the location filter for raw.
//
// "city, state 12345" yields city AND state AND zip groups. Text without a
// comma matches city OR state, plus the state's postal code when the text is
// a full state name and the zip when it is exactly five digits.
func (p *LocationParser) Parse(raw string) entities.LocationFilter {
	if !strings.Contains(raw, ",") {
		return singleTermFilter(sanitizeLocation(raw), true)
	}

	segments := make([]string, 0, 2)
	for _, part := range strings.Split(raw, ",") {
		if s := sanitizeLocation(part); s != "" {
			segments = append(segments, s)
		}
	}

	switch len(segments) {
	case 0:
		return entities.LocationFilter{}
	case 1:
		return singleTermFilter(segments[0], false)
	}

	groups := []entities.LocationGroup{
		{Terms: []entities.LocationTerm{containsTerm(entities.LocationFieldCity, segments[0])}},
	}

	state, zip := splitZip(segments[1])
	if state != "" {
		stateGroup := entities.LocationGroup{
			Terms: []entities.LocationTerm{containsTerm(entities.LocationFieldState, state)},
		}
		if abbr, ok := stateAbbreviation(state); ok {
			stateGroup.Terms = append(stateGroup.Terms, entities.LocationTerm{
				Field:    entities.LocationFieldState,
				Operator: entities.MatchEqualsFold,
				Value:    abbr,
			})
		}
		groups = append(groups, stateGroup)
	}
	if zip != "" {
		groups = append(groups, entities.LocationGroup{
			Terms: []entities.LocationTerm{{
				Field:    entities.LocationFieldZip,
				Operator: entities.MatchEquals,
				Value:    zip,
			}},
		})
	}

	return entities.LocationFilter{Groups: groups}
}

// singleTermFilter matches term against city or state. With expand set it
// also tries the state postal code and the exact zip.
func singleTermFilter(term string, expand bool) entities.LocationFilter {
	if term == "" {
		return entities.LocationFilter{}
	}

	group := entities.LocationGroup{
		Terms: []entities.LocationTerm{
			containsTerm(entities.LocationFieldCity, term),
			containsTerm(entities.LocationFieldState, term),
		},
	}

	if expand {
		if abbr, ok := stateAbbreviation(term); ok {
			group.Terms = append(group.Terms, entities.LocationTerm{
				Field:    entities.LocationFieldState,
				Operator: entities.MatchEqualsFold,
				Value:    abbr,
			})
		}
		if zipOnlyPattern.MatchString(term) {
			group.Terms = append(group.Terms, entities.LocationTerm{
				Field:    entities.LocationFieldZip,
				Operator: entities.MatchEquals,
				Value:    term,
			})
		}
	}

	return entities.LocationFilter{Groups: []entities.LocationGroup{group}}
}

// splitZip pulls the first standalone five-digit token out of segment.
func splitZip(segment string) (rest, zip string) {
	loc := zipTokenPattern.FindStringIndex(segment)
	if loc == nil {
		return segment, ""
	}
	zip = segment[loc[0]:loc[1]]
	rest = collapseWhitespace(segment[:loc[0]] + " " + segment[loc[1]:])
	return rest, zip
}

func sanitizeLocation(s string) string {
	s = strings.ToLower(s)
	s = disallowedCharsPattern.ReplaceAllString(s, "")
	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func containsTerm(field entities.LocationField, value string) entities.LocationTerm {
	return entities.LocationTerm{Field: field, Operator: entities.MatchContains, Value: value}
}
