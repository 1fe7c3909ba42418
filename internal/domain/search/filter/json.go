package filter

import (
	"encoding/json"
	"fmt"
)

type conditionJSON struct {
	Key   string     `json:"key"`
	Match string     `json:"match,omitempty"`
	Range *rangeJSON `json:"range,omitempty"`
}

type rangeJSON struct {
	GT  *float64 `json:"gt,omitempty"`
	GTE *float64 `json:"gte,omitempty"`
	LT  *float64 `json:"lt,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

type expressionJSON struct {
	Must    []conditionJSON `json:"must,omitempty"`
	Should  []conditionJSON `json:"should,omitempty"`
	MustNot []conditionJSON `json:"must_not,omitempty"`
}

// UnmarshalJSON decodes and validates
// {"must":[{"key":"saved.title","match":"x"}],"should":[...],"must_not":[...]}.
func (e *Expression) UnmarshalJSON(data []byte) error {
	var raw expressionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}
	must, err := conditionsFromJSON(raw.Must)
	if err != nil {
		return fmt.Errorf("must: %w", err)
	}
	should, err := conditionsFromJSON(raw.Should)
	if err != nil {
		return fmt.Errorf("should: %w", err)
	}
	mustNot, err := conditionsFromJSON(raw.MustNot)
	if err != nil {
		return fmt.Errorf("must_not: %w", err)
	}
	expr, err := NewExpression(must, should, mustNot)
	if err != nil {
		return err
	}
	*e = expr
	return nil
}

// Parse decodes a JSON filter tree.
func Parse(data []byte) (Expression, error) {
	var e Expression
	if err := json.Unmarshal(data, &e); err != nil {
		return Expression{}, err
	}
	return e, nil
}

func conditionsFromJSON(in []conditionJSON) ([]Condition, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]Condition, 0, len(in))
	for _, c := range in {
		if c.Range != nil {
			r, err := NewRangeFilter(c.Range.GT, c.Range.GTE, c.Range.LT, c.Range.LTE)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", c.Key, err)
			}
			cond, err := NewRange(c.Key, r)
			if err != nil {
				return nil, err
			}
			out = append(out, cond)
			continue
		}
		cond, err := NewMatch(c.Key, c.Match)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}
