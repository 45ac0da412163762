package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

func term(field entities.LocationField, op entities.MatchOperator, value string) entities.LocationTerm {
	return entities.LocationTerm{Field: field, Operator: op, Value: value}
}

func TestLocationParser_CityAndState(t *testing.T) {
	filter := NewLocationParser().Parse("Austin, TX")

	require.Len(t, filter.Groups, 2)
	assert.Equal(t, []entities.LocationTerm{
		term(entities.LocationFieldCity, entities.MatchContains, "austin"),
	}, filter.Groups[0].Terms)
	assert.Equal(t, []entities.LocationTerm{
		term(entities.LocationFieldState, entities.MatchContains, "tx"),
	}, filter.Groups[1].Terms)
}

func TestLocationParser_CityStateAndZip(t *testing.T) {
	filter := NewLocationParser().Parse("  Austin ,  TX 78701 ")

	require.Len(t, filter.Groups, 3)
	assert.Equal(t, "austin", filter.Groups[0].Terms[0].Value)
	assert.Equal(t, "tx", filter.Groups[1].Terms[0].Value)
	assert.Equal(t, []entities.LocationTerm{
		term(entities.LocationFieldZip, entities.MatchEquals, "78701"),
	}, filter.Groups[2].Terms)
}

func TestLocationParser_ZipOnlyInStateSegment(t *testing.T) {
	filter := NewLocationParser().Parse("Austin, 78701")

	require.Len(t, filter.Groups, 2)
	assert.Equal(t, entities.LocationFieldCity, filter.Groups[0].Terms[0].Field)
	assert.Equal(t, entities.LocationFieldZip, filter.Groups[1].Terms[0].Field)
}

func TestLocationParser_CommaWithFullStateName(t *testing.T) {
	filter := NewLocationParser().Parse("Albany, New York")

	require.Len(t, filter.Groups, 2)
	assert.Equal(t, []entities.LocationTerm{
		term(entities.LocationFieldState, entities.MatchContains, "new york"),
		term(entities.LocationFieldState, entities.MatchEqualsFold, "NY"),
	}, filter.Groups[1].Terms)
}

func TestLocationParser_SingleSegmentAfterComma(t *testing.T) {
	for _, input := range []string{"Austin,", ", Austin", "Austin,,  ,", "Austin, !!!"} {
		filter := NewLocationParser().Parse(input)

		require.Len(t, filter.Groups, 1, input)
		assert.Equal(t, []entities.LocationTerm{
			term(entities.LocationFieldCity, entities.MatchContains, "austin"),
			term(entities.LocationFieldState, entities.MatchContains, "austin"),
		}, filter.Groups[0].Terms, input)
	}
}

func TestLocationParser_NoComma(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []entities.LocationTerm
	}{
		{
			name:  "plain city",
			input: "Nashville",
			want: []entities.LocationTerm{
				term(entities.LocationFieldCity, entities.MatchContains, "nashville"),
				term(entities.LocationFieldState, entities.MatchContains, "nashville"),
			},
		},
		{
			name:  "full state name adds abbreviation",
			input: "Texas",
			want: []entities.LocationTerm{
				term(entities.LocationFieldCity, entities.MatchContains, "texas"),
				term(entities.LocationFieldState, entities.MatchContains, "texas"),
				term(entities.LocationFieldState, entities.MatchEqualsFold, "TX"),
			},
		},
		{
			name:  "five digits adds exact zip",
			input: "78701",
			want: []entities.LocationTerm{
				term(entities.LocationFieldCity, entities.MatchContains, "78701"),
				term(entities.LocationFieldState, entities.MatchContains, "78701"),
				term(entities.LocationFieldZip, entities.MatchEquals, "78701"),
			},
		},
		{
			name:  "punctuation is stripped",
			input: "St. Louis!",
			want: []entities.LocationTerm{
				term(entities.LocationFieldCity, entities.MatchContains, "st louis"),
				term(entities.LocationFieldState, entities.MatchContains, "st louis"),
			},
		},
		{
			name:  "six digits is not a zip",
			input: "787011",
			want: []entities.LocationTerm{
				term(entities.LocationFieldCity, entities.MatchContains, "787011"),
				term(entities.LocationFieldState, entities.MatchContains, "787011"),
			},
		},
	}

	parser := NewLocationParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := parser.Parse(tt.input)
			require.Len(t, filter.Groups, 1)
			assert.Equal(t, tt.want, filter.Groups[0].Terms)
		})
	}
}

func TestLocationParser_EmptyInputHasNoConstraint(t *testing.T) {
	parser := NewLocationParser()
	for _, input := range []string{"", "   ", ",", " , , ", "%%%", "';--"} {
		assert.True(t, parser.Parse(input).IsEmpty(), "input %q", input)
	}
}

func TestLocationParser_CommaInputsNeverExceedCityStateZip(t *testing.T) {
	inputs := []string{
		"a,b,c,d,e",
		"Austin, TX 78701, USA, Earth",
		"78701, 78702 78703",
		"\x00\xff, été",
		"🎸, 🎷 12345",
		strings1000(),
	}

	parser := NewLocationParser()
	for _, input := range inputs {
		var filter entities.LocationFilter
		assert.NotPanics(t, func() { filter = parser.Parse(input) })
		assert.LessOrEqual(t, len(filter.Groups), 3)

		seen := map[entities.LocationField]int{}
		for _, g := range filter.Groups {
			for _, tm := range g.Terms {
				assert.NotEmpty(t, tm.Value)
				assert.NotContains(t, tm.Value, ",")
			}
			if len(filter.Groups) > 1 {
				seen[g.Terms[0].Field]++
			}
		}
		for field, n := range seen {
			assert.Equal(t, 1, n, "field %s repeated for %q", field, input)
		}
	}
}

func strings1000() string {
	b := make([]byte, 0, 2000)
	for i := 0; i < 1000; i++ {
		b = append(b, 'x', ',')
	}
	return string(b)
}

func TestStateAbbreviationLookup(t *testing.T) {
	abbr, ok := stateAbbreviation(" North Carolina ")
	assert.True(t, ok)
	assert.Equal(t, "NC", abbr)

	_, ok = stateAbbreviation("TX")
	assert.False(t, ok)
}
