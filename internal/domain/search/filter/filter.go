package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/savedobjects/internal/domain"
	"github.com/kailas-cloud/savedobjects/internal/domain/search/dsl"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter with must/should/must_not boolean semantics.
type Expression struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should, mustNot []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(mustNot) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must_not conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should, mustNot: mustNot}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0 && len(e.mustNot) == 0
}

// Types returns the saved-object types referenced by condition keys,
// in first-seen order. Unqualified keys are skipped.
func (e Expression) Types() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range [][]Condition{e.must, e.should, e.mustNot} {
		for _, c := range group {
			t := c.Type()
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// Render converts the expression into a query fragment.
// Should conditions require at least one match.
func (e Expression) Render() (dsl.Query, error) {
	var b dsl.Bool
	var err error
	if b.Must, err = renderGroup(e.must); err != nil {
		return nil, err
	}
	if b.Should, err = renderGroup(e.should); err != nil {
		return nil, err
	}
	if b.MustNot, err = renderGroup(e.mustNot); err != nil {
		return nil, err
	}
	if len(b.Should) > 0 {
		b.MinimumShouldMatch = 1
	}
	return b, nil
}

func renderGroup(conditions []Condition) ([]dsl.Query, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	out := make([]dsl.Query, 0, len(conditions))
	for _, c := range conditions {
		q, err := c.render()
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Condition is a single filter clause: either an exact match or a numeric range.
// Keys are qualified by type: "<type>.<attribute>".
type Condition struct {
	key       string
	match     string
	rangeExpr *Range
}

// NewMatch creates an exact match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Type returns the type qualifier of the key, or "" if unqualified.
func (c Condition) Type() string {
	typ, attr, ok := strings.Cut(c.key, ".")
	if !ok || attr == "" {
		return ""
	}
	return typ
}

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

func (c Condition) render() (dsl.Query, error) {
	if c.Type() == "" {
		return nil, domain.NewFilterSyntax(c.key, "key must be qualified as <type>.<attribute>")
	}
	switch {
	case c.IsMatch():
		return dsl.Term{Field: c.key, Value: c.match}, nil
	case c.IsRange():
		r := c.rangeExpr
		return dsl.Range{Field: c.key, GT: r.gt, GTE: r.gte, LT: r.lt, LTE: r.lte}, nil
	default:
		return nil, domain.NewFilterSyntax(c.key, "condition has neither match nor range")
	}
}

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
