package db

import (
	"fmt"
	"regexp"
	"strings"

	"VideoTube.com/pkg/pipeline"
)

var columnName = regexp.MustCompile(`^[a-z_]+$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// translate turns a filter expression into a WHERE fragment. Only plain
// columns of the table may be referenced. A nil expression yields "".
func translate(e pipeline.Expr, cols map[string]bool) (string, []any, error) {
	if e == nil {
		return "", nil, nil
	}
	col := func(name string) (string, error) {
		if !columnName.MatchString(name) || !cols[name] {
			return "", fmt.Errorf("db: cannot filter on %q", name)
		}
		return name, nil
	}

	switch x := e.(type) {
	case pipeline.EqExpr:
		c, err := col(x.Field)
		if err != nil {
			return "", nil, err
		}
		if x.Value == nil {
			return c + " IS NULL", nil, nil
		}
		return c + " = ?", []any{x.Value}, nil
	case pipeline.InExpr:
		c, err := col(x.Field)
		if err != nil {
			return "", nil, err
		}
		if len(x.Values) == 0 {
			return "1 = 0", nil, nil
		}
		return c + " IN ?", []any{x.Values}, nil
	case pipeline.ExistsExpr:
		c, err := col(x.Field)
		if err != nil {
			return "", nil, err
		}
		return c + " IS NOT NULL", nil, nil
	case pipeline.ContainsFoldExpr:
		c, err := col(x.Field)
		if err != nil {
			return "", nil, err
		}
		return "LOWER(" + c + ") LIKE ?", []any{"%" + likeEscaper.Replace(strings.ToLower(x.Substr)) + "%"}, nil
	case pipeline.AndExpr:
		return join(x.Exprs, " AND ", cols)
	case pipeline.OrExpr:
		return join(x.Exprs, " OR ", cols)
	}
	return "", nil, fmt.Errorf("db: unsupported filter %T", e)
}

func join(exprs []pipeline.Expr, op string, cols map[string]bool) (string, []any, error) {
	parts := make([]string, 0, len(exprs))
	var args []any
	for _, sub := range exprs {
		sql, a, err := translate(sub, cols)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, sql)
		args = append(args, a...)
	}
	if len(parts) == 0 {
		return "", nil, nil
	}
	return "(" + strings.Join(parts, op) + ")", args, nil
}
