// Package interceptor implements the Interceptor Base and its adapters: the
// components that sit in front of an ORM mapper, an ORM wrapper, or a JDBC
// driver connection and route every SQL attempt through the Validator before
// letting it proceed.
package interceptor

import (
	"context"
	"time"

	"github.com/sqlshield/sqlshield/pkg/audit"
	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/strategy"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// Validate is satisfied by *validator.Validator. Defined as an interface here
// so adapters and tests can substitute a stub.
type Validate interface {
	Validate(ctx types.SqlContext) (*types.ValidationResult, error)
}

// Proceed is the downstream call an adapter invokes once an attempt has
// cleared validation: actually run the statement and report how it went.
type Proceed func() (rowsAffected int64, err error)

// Base is the template every adapter builds on: before_execution (validate),
// apply the configured strategy, proceed (or don't), after_execution (audit).
// It has no ORM/JDBC-specific knowledge — adapters supply the SqlContext and
// the Proceed closure, Base supplies the invariant sequencing.
type Base struct {
	Validator Validate
	Strategy  func() types.Strategy
	Audit     audit.Sink
	Log       logger.Interface
}

// NewBase builds a Base wired to v, reading the enforcement strategy from
// strategyFn on every call (so a config reload takes effect immediately,
// without re-wiring the interceptor).
func NewBase(v Validate, strategyFn func() types.Strategy, sink audit.Sink, log logger.Interface) *Base {
	if sink == nil {
		sink = audit.NoopSink{}
	}
	return &Base{Validator: v, Strategy: strategyFn, Audit: sink, Log: log}
}

// Intercept runs the full before/proceed/after template around one SQL
// attempt. It returns the error to surface to the original caller: either a
// *strategy.SqlSafetyError (BLOCK strategy, statement never proceeds), or
// whatever proceed() returned.
func (b *Base) Intercept(ctx context.Context, sqlCtx types.SqlContext, proceed Proceed) (int64, error) {
	start := time.Now()

	result, err := b.Validator.Validate(sqlCtx)
	if err != nil {
		if b.Log != nil {
			b.Log.Warn("validation pipeline failed, allowing statement through", "statement_id", sqlCtx.StatementID, "error", err)
		}
		result = &types.ValidationResult{Risk: types.RiskPass}
	}

	if blockErr := strategy.Apply(b.Strategy(), result, sqlCtx.Datasource, b.Log); blockErr != nil {
		b.publish(sqlCtx, result, start, 0, blockErr, true)
		return 0, blockErr
	}

	rows, execErr := proceed()
	b.publish(sqlCtx, result, start, rows, execErr, false)
	return rows, execErr
}

func (b *Base) publish(ctx types.SqlContext, result *types.ValidationResult, start time.Time, rows int64, execErr error, blocked bool) {
	event := types.AuditEvent{
		SQL:             ctx.SQL,
		Command:         ctx.Command,
		StatementID:     ctx.StatementID,
		Datasource:      ctx.Datasource,
		ExecutionTimeMS: time.Since(start).Milliseconds(),
		RowsAffected:    rows,
		PreValidation:   result,
		Blocked:         blocked,
	}
	if execErr != nil {
		event.ErrorMessage = execErr.Error()
	}
	b.Audit.Publish(event)
}
