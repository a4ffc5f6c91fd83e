package interceptor

import (
	"context"

	"github.com/sqlshield/sqlshield/pkg/stmtid"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// MapperInvocation describes one ORM-mapper call site: a MyBatis-style mapper
// method bound to one resolved SQL statement, possibly with an out-of-band
// logical pagination request.
type MapperInvocation struct {
	MethodID   string
	Datasource string
	SQL        string
	Command    types.CommandKind
	Params     map[string]interface{}
	Pagination *types.PaginationMarker
}

// MapperAdapter intercepts ORM-mapper executions: the layer that resolves a
// method call (e.g. "UserMapper.findActive") to a single fixed SQL template,
// a session-scoped pagination helper, and a set of named parameters.
type MapperAdapter struct {
	base *Base
}

// NewMapperAdapter builds a MapperAdapter over base.
func NewMapperAdapter(base *Base) *MapperAdapter {
	return &MapperAdapter{base: base}
}

// Execute validates and, if allowed, runs inv via proceed.
func (a *MapperAdapter) Execute(ctx context.Context, inv MapperInvocation, proceed Proceed) (int64, error) {
	sqlCtx := types.SqlContext{
		SQL:         inv.SQL,
		Command:     inv.Command,
		Layer:       types.LayerOrmMapper,
		StatementID: stmtid.ForMapper(inv.MethodID),
		Datasource:  inv.Datasource,
		Pagination:  inv.Pagination,
		NamedParams: inv.Params,
	}
	return a.base.Intercept(ctx, sqlCtx, proceed)
}
