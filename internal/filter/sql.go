package filter

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Apply adds the plan's predicates (AND-ed) and ORDER BY to sb.
func (r *Registry) Apply(sb squirrel.SelectBuilder, p Plan) (squirrel.SelectBuilder, error) {
	for _, pr := range p.Predicates {
		f, ok := r.names[pr.Field]
		if !ok {
			return sb, fmt.Errorf("filter: field %q is not registered", pr.Field)
		}
		cond, err := condition(f, pr.Operator, pr.Value)
		if err != nil {
			return sb, err
		}
		sb = sb.Where(cond)
	}
	for _, name := range p.OrderFields {
		sb = sb.OrderBy(r.column(name))
	}
	return sb, nil
}

func condition(f Field, op Operator, val any) (squirrel.Sqlizer, error) {
	ph := "?"
	if f.Cast != "" {
		ph = "?::" + f.Cast
	}

	// repeated columns match when any element satisfies the comparison,
	// written as "value <mirrored op> ANY(column)"
	if f.Repeated {
		return squirrel.Expr(fmt.Sprintf("%s %s ANY(%s)", ph, mirror(op), f.Column), val), nil
	}
	if f.Cast != "" {
		return squirrel.Expr(fmt.Sprintf("%s %s %s", f.Column, op, ph), val), nil
	}

	switch op {
	case Equal:
		return squirrel.Eq{f.Column: val}, nil
	case NotEqual:
		return squirrel.NotEq{f.Column: val}, nil
	case GreaterThan:
		return squirrel.Gt{f.Column: val}, nil
	case GreaterOrEqual:
		return squirrel.GtOrEq{f.Column: val}, nil
	case LessThan:
		return squirrel.Lt{f.Column: val}, nil
	case LessOrEqual:
		return squirrel.LtOrEq{f.Column: val}, nil
	}
	return nil, fmt.Errorf("filter: unsupported operator %q", op)
}

func mirror(op Operator) Operator {
	switch op {
	case GreaterThan:
		return LessThan
	case GreaterOrEqual:
		return LessOrEqual
	case LessThan:
		return GreaterThan
	case LessOrEqual:
		return GreaterOrEqual
	}
	return op
}
