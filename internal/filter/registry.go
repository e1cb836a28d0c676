// Package filter turns client supplied (field, operator, value) triples into a
// query plan that respects the single-inequality-field rule and can be applied
// to a squirrel SELECT.
package filter

import (
	"fmt"
	"regexp"
	"sort"
)

// Operator is a comparison symbol as it appears in a resolved filter.
type Operator string

const (
	Equal          Operator = "="
	GreaterThan    Operator = ">"
	GreaterOrEqual Operator = ">="
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
	NotEqual       Operator = "!="
)

func operatorTable() map[string]Operator {
	return map[string]Operator{
		"EQ":   Equal,
		"GT":   GreaterThan,
		"GTEQ": GreaterOrEqual,
		"LT":   LessThan,
		"LTEQ": LessOrEqual,
		"NE":   NotEqual,
	}
}

// Field describes one filterable property.
type Field struct {
	Token    string `yaml:"-"`        // client-facing token, e.g. MAX_ATTENDEES
	Name     string `yaml:"name"`     // storage field name, e.g. maxAttendees
	Column   string `yaml:"column"`   // SQL column; defaults to Name
	Numeric  bool   `yaml:"numeric"`  // values are coerced to int
	Repeated bool   `yaml:"repeated"` // array column, matched with ANY()
	Cast     string `yaml:"cast"`     // optional SQL cast for the bound value
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Registry maps filter tokens to operators and storage fields. A Registry is
// never modified after construction; Extend returns a new one.
type Registry struct {
	sortField string
	operators map[string]Operator
	opTokens  map[Operator]string
	fields    map[string]Field // by token
	names     map[string]Field // by storage name
}

// NewRegistry builds a registry whose plans are tie-broken by sortField.
func NewRegistry(sortField string, fields ...Field) (*Registry, error) {
	if sortField == "" {
		return nil, fmt.Errorf("filter registry: sort field is required")
	}
	r := &Registry{
		sortField: sortField,
		operators: operatorTable(),
		opTokens:  map[Operator]string{},
		fields:    map[string]Field{},
		names:     map[string]Field{},
	}
	for tok, op := range r.operators {
		r.opTokens[op] = tok
	}
	if err := r.add(fields); err != nil {
		return nil, err
	}
	return r, nil
}

// Extend returns a copy of r with additional fields.
func (r *Registry) Extend(fields ...Field) (*Registry, error) {
	next := &Registry{
		sortField: r.sortField,
		operators: r.operators,
		opTokens:  r.opTokens,
		fields:    make(map[string]Field, len(r.fields)+len(fields)),
		names:     make(map[string]Field, len(r.names)+len(fields)),
	}
	for k, v := range r.fields {
		next.fields[k] = v
	}
	for k, v := range r.names {
		next.names[k] = v
	}
	if err := next.add(fields); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *Registry) add(fields []Field) error {
	for _, f := range fields {
		if f.Token == "" || f.Name == "" {
			return fmt.Errorf("filter registry: field needs token and name (got %q/%q)", f.Token, f.Name)
		}
		if f.Column == "" {
			f.Column = f.Name
		}
		if !identRe.MatchString(f.Column) {
			return fmt.Errorf("filter registry: invalid column %q for %s", f.Column, f.Token)
		}
		if f.Cast != "" && !identRe.MatchString(f.Cast) {
			return fmt.Errorf("filter registry: invalid cast %q for %s", f.Cast, f.Token)
		}
		if _, dup := r.fields[f.Token]; dup {
			return fmt.Errorf("filter registry: duplicate token %s", f.Token)
		}
		if _, dup := r.names[f.Name]; dup {
			return fmt.Errorf("filter registry: duplicate field name %s", f.Name)
		}
		r.fields[f.Token] = f
		r.names[f.Name] = f
	}
	return nil
}

// ResolveOperator maps EQ/GT/GTEQ/LT/LTEQ/NE to its comparison symbol.
func (r *Registry) ResolveOperator(token string) (Operator, error) {
	op, ok := r.operators[token]
	if !ok {
		return "", &InvalidFilterError{Kind: "operator", Token: token}
	}
	return op, nil
}

// ResolveField maps a field token to its storage description.
func (r *Registry) ResolveField(token string) (Field, error) {
	f, ok := r.fields[token]
	if !ok {
		return Field{}, &InvalidFilterError{Kind: "field", Token: token}
	}
	return f, nil
}

// FieldToken is the reverse of ResolveField.
func (r *Registry) FieldToken(name string) (string, bool) {
	f, ok := r.names[name]
	return f.Token, ok
}

// OperatorToken is the reverse of ResolveOperator.
func (r *Registry) OperatorToken(op Operator) (string, bool) {
	tok, ok := r.opTokens[op]
	return tok, ok
}

func (r *Registry) SortField() string { return r.sortField }

// Tokens lists the registered field tokens in sorted order.
func (r *Registry) Tokens() []string {
	out := make([]string, 0, len(r.fields))
	for tok := range r.fields {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) column(name string) string {
	if f, ok := r.names[name]; ok {
		return f.Column
	}
	return name
}
