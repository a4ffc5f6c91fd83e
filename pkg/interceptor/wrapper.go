package interceptor

import (
	"context"

	"github.com/sqlshield/sqlshield/pkg/stmtid"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// WrapperInvocation describes one ORM-wrapper call site: a fluent
// query-builder call (e.g. a MyBatis-Plus-style QueryWrapper) that renders
// its own SQL at call time, rather than resolving a fixed template.
type WrapperInvocation struct {
	CallSiteID string
	Datasource string
	SQL        string
	Command    types.CommandKind
	Params     []interface{}
	Pagination *types.PaginationMarker
}

// WrapperAdapter intercepts ORM-wrapper executions.
type WrapperAdapter struct {
	base *Base
}

// NewWrapperAdapter builds a WrapperAdapter over base.
func NewWrapperAdapter(base *Base) *WrapperAdapter {
	return &WrapperAdapter{base: base}
}

// Execute validates and, if allowed, runs inv via proceed.
func (a *WrapperAdapter) Execute(ctx context.Context, inv WrapperInvocation, proceed Proceed) (int64, error) {
	sqlCtx := types.SqlContext{
		SQL:         inv.SQL,
		Command:     inv.Command,
		Layer:       types.LayerOrmWrapper,
		StatementID: stmtid.ForWrapper(inv.CallSiteID),
		Datasource:  inv.Datasource,
		Pagination:  inv.Pagination,
		Params:      inv.Params,
	}
	return a.base.Intercept(ctx, sqlCtx, proceed)
}
