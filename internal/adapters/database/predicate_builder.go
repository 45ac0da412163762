package database

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/zatekoja/venuediscovery/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// haversineMilesSQL is the great-circle distance in statute miles between
// the bound (lat, lng, lat) and the venue row. The cosine argument is
// clamped to [-1, 1] so rounding can never push acos out of its domain.
const haversineMilesSQL = "3959 * acos(LEAST(1.0, GREATEST(-1.0, " +
	"cos(radians(?)) * cos(radians(v.latitude)) * cos(radians(v.longitude) - radians(?)) + " +
	"sin(radians(?)) * sin(radians(v.latitude)))))"

var locationColumns = map[entities.LocationField]string{
	entities.LocationFieldCity:  "v.city",
	entities.LocationFieldState: "v.state",
	entities.LocationFieldZip:   "v.zip",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PredicateBuilder collects filter fragments. Each fragment carries its own
// bound values, so fragments can be added or skipped in any combination
// and the "$n" placeholders are only numbered when goqu renders the
// statement.
type PredicateBuilder struct {
	exprs    []exp.Expression
	distance exp.LiteralExpression
	err      error
}

// NewPredicateBuilder creates an empty predicate builder
func NewPredicateBuilder() *PredicateBuilder {
	return &PredicateBuilder{}
}

// Add appends a raw SQL fragment with one "?" per value.
func (b *PredicateBuilder) Add(fragment string, values ...interface{}) *PredicateBuilder {
	if n := strings.Count(fragment, "?"); n != len(values) {
		if b.err == nil {
			b.err = fmt.Errorf("predicate %q has %d placeholders but %d values", fragment, n, len(values))
		}
		return b
	}
	b.exprs = append(b.exprs, goqu.L(fragment, values...))
	return b
}

// AddExpression appends a goqu expression.
func (b *PredicateBuilder) AddExpression(e exp.Expression) *PredicateBuilder {
	b.exprs = append(b.exprs, e)
	return b
}

// WithDistance sets the origin for distance ranking and adds the radius
// cutoff. Venues without coordinates never match.
func (b *PredicateBuilder) WithDistance(lat, lng, radiusMiles float64) *PredicateBuilder {
	b.distance = goqu.L(haversineMilesSQL, lat, lng, lat)
	b.AddExpression(goqu.I("v.latitude").IsNotNull())
	b.AddExpression(goqu.I("v.longitude").IsNotNull())
	return b.Add("("+haversineMilesSQL+") < ?", lat, lng, lat, radiusMiles)
}

// Expressions returns the fragments in insertion order, to be AND-ed.
func (b *PredicateBuilder) Expressions() ([]exp.Expression, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.exprs, nil
}

// Distance returns the distance expression, or nil without coordinates.
func (b *PredicateBuilder) Distance() exp.LiteralExpression {
	return b.distance
}

// BuildSearchPredicates assembles every filter present in query: location,
// date range, category, tag, name and finally the distance cutoff.
func BuildSearchPredicates(query entities.SearchQuery, location entities.LocationFilter) *PredicateBuilder {
	b := NewPredicateBuilder()
	b.AddExpression(goqu.I("e.status").Eq(string(entities.EventStatusActive)))

	for _, group := range location.Groups {
		if expr := locationGroupExpression(group); expr != nil {
			b.AddExpression(expr)
		}
	}

	if query.StartDate != nil {
		b.AddExpression(goqu.I("e.date").Gte(query.StartDate.Format(dateLayout)))
	}
	if query.EndDate != nil {
		b.AddExpression(goqu.I("e.date").Lte(query.EndDate.Format(dateLayout)))
	}

	if category := strings.ToLower(query.Category); category != "" && category != "all" && category != string(entities.CategoryBoth) {
		b.AddExpression(goqu.I("e.category").Eq(category))
	}

	if query.Tag != "" {
		b.Add("? = ANY(e.tags)", query.Tag)
	}

	if query.Name != "" {
		b.AddExpression(goqu.I("v.name").ILike("%" + escapeLike(query.Name) + "%"))
	}

	if query.HasCoordinates() {
		b.WithDistance(*query.Lat, *query.Lng, entities.SearchRadiusMiles)
	}

	return b
}

func locationGroupExpression(group entities.LocationGroup) exp.Expression {
	terms := make([]exp.Expression, 0, len(group.Terms))
	for _, t := range group.Terms {
		column, ok := locationColumns[t.Field]
		if !ok || t.Value == "" {
			continue
		}
		col := goqu.I(column)
		switch t.Operator {
		case entities.MatchContains:
			terms = append(terms, col.ILike("%"+escapeLike(t.Value)+"%"))
		case entities.MatchEqualsFold:
			terms = append(terms, col.ILike(escapeLike(t.Value)))
		case entities.MatchEquals:
			terms = append(terms, col.Eq(t.Value))
		}
	}
	if len(terms) == 0 {
		return nil
	}
	return goqu.Or(terms...)
}

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
