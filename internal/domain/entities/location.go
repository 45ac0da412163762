package entities

// LocationField is a venue column a location term can match.
type LocationField string

const (
	LocationFieldCity  LocationField = "city"
	LocationFieldState LocationField = "state"
	LocationFieldZip   LocationField = "zip"
)

// MatchOperator describes how a location term is compared.
type MatchOperator string

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchOperator = "contains"
	// MatchEquals is an exact, case-sensitive match.
	MatchEquals MatchOperator = "equals"
	// MatchEqualsFold is an exact, case-insensitive match.
	MatchEqualsFold MatchOperator = "equals_fold"
)

// LocationTerm is one (field, operator, value) fragment.
type LocationTerm struct {
	Field    LocationField `json:"field"`
	Operator MatchOperator `json:"operator"`
	Value    string        `json:"value"`
}

// LocationGroup is satisfied when any of its terms match.
type LocationGroup struct {
	Terms []LocationTerm `json:"terms"`
}

// LocationFilter is satisfied when every group matches. An empty filter
// places no constraint on location.
type LocationFilter struct {
	Groups []LocationGroup `json:"groups"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f LocationFilter) IsEmpty() bool {
	for _, g := range f.Groups {
		if len(g.Terms) > 0 {
			return false
		}
	}
	return true
}
