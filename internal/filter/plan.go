package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Token is one filter as submitted by the client.
type Token struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Resolved is a validated filter. Value is an int for numeric fields and a
// string otherwise.
type Resolved struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// Plan is the sort order plus the conjunction of predicates to execute.
type Plan struct {
	OrderFields []string   `json:"orderFields"`
	Predicates  []Resolved `json:"predicates"`
}

// InequalityField returns the field carrying a non-equality operator, if any.
func (p Plan) InequalityField() string {
	for _, pr := range p.Predicates {
		if pr.Operator != Equal {
			return pr.Field
		}
	}
	return ""
}

// Validate resolves every token and checks the single-inequality rule over
// the whole list before any value is converted, so the reported error does
// not depend on submission order. At most one distinct field may use a
// non-equality operator.
func (r *Registry) Validate(tokens []Token) (string, []Resolved, error) {
	inequality := ""
	fields := make([]Field, len(tokens))
	out := make([]Resolved, len(tokens))

	for i, t := range tokens {
		f, err := r.ResolveField(t.Field)
		if err != nil {
			return "", nil, err
		}
		op, err := r.ResolveOperator(t.Operator)
		if err != nil {
			return "", nil, err
		}
		if op != Equal {
			if inequality != "" && inequality != f.Name {
				return "", nil, &MultipleInequalityFieldsError{First: inequality, Second: f.Name}
			}
			inequality = f.Name
		}
		fields[i] = f
		out[i] = Resolved{Field: f.Name, Operator: op}
	}

	for i, t := range tokens {
		v, err := convertValue(fields[i], t.Value)
		if err != nil {
			return "", nil, err
		}
		out[i].Value = v
	}
	return inequality, out, nil
}

const dateLayout = "2006-01-02"

// convertValue coerces numeric fields to int and checks values bound through
// a uuid or date cast, which the database would otherwise reject.
func convertValue(f Field, raw string) (any, error) {
	if f.Numeric {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &InvalidFilterValueError{Field: f.Name, Value: raw, Want: "an integer", Err: err}
		}
		return n, nil
	}
	switch f.Cast {
	case "uuid":
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, &InvalidFilterValueError{Field: f.Name, Value: raw, Want: "a valid key", Err: err}
		}
		return id.String(), nil
	case "date":
		d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, &InvalidFilterValueError{Field: f.Name, Value: raw, Want: "a date (YYYY-MM-DD)", Err: err}
		}
		return d.Format(dateLayout), nil
	}
	return raw, nil
}

// Assemble orders the plan: the inequality field (if any) sorts first, the
// registry's sort field always breaks ties.
func (r *Registry) Assemble(inequality string, filters []Resolved) Plan {
	order := make([]string, 0, 2)
	if inequality != "" {
		order = append(order, inequality)
	}
	order = append(order, r.sortField)
	return Plan{OrderFields: order, Predicates: filters}
}

// Build runs Validate and Assemble.
func (r *Registry) Build(tokens []Token) (Plan, error) {
	inequality, filters, err := r.Validate(tokens)
	if err != nil {
		return Plan{}, err
	}
	return r.Assemble(inequality, filters), nil
}
