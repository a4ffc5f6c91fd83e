// Package strategy applies a types.Strategy to a ValidationResult: raising an
// error, logging a warning, or logging informationally, per the configured
// violation-handling strategy.
package strategy

import (
	"fmt"
	"strings"

	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/types"
)

// SQLSTATE is the standard SQLSTATE code surfaced by a blocked statement,
// chosen to match the generic "syntax error or access rule violation" class
// most JDBC/database drivers already special-case.
const SQLSTATE = "42000"

// SqlSafetyError is raised when StrategyBlock applies to a non-empty
// ValidationResult. Its Error() string is the message handed to the caller
// (and, through that, typically surfaced to whatever invoked the query).
type SqlSafetyError struct {
	Datasource string
	Result     *types.ValidationResult
}

func (e *SqlSafetyError) Error() string {
	msgs := make([]string, 0, len(e.Result.Violations))
	for _, v := range e.Result.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("SQL safety violation [datasource=%s, risk=%s]: %s",
		e.Datasource, e.Result.Risk, strings.Join(msgs, "; "))
}

// SQLState reports the SQLSTATE code for this error, for drivers/adapters
// that need to surface one (e.g. database/sql/driver errors don't carry
// SQLSTATE directly, but adapters can inspect this via errors.As).
func (e *SqlSafetyError) SQLState() string { return SQLSTATE }

// Apply enforces strategy against result. It returns a non-nil
// *SqlSafetyError only when strategy is StrategyBlock and result has
// violations; for StrategyWarn/StrategyLog it only logs, and for a passing
// result it does nothing regardless of strategy.
func Apply(strategyKind types.Strategy, result *types.ValidationResult, datasource string, log logger.Interface) error {
	if result.Passed() {
		return nil
	}

	if strategyKind.ShouldBlock() {
		return &SqlSafetyError{Datasource: datasource, Result: result}
	}

	if strategyKind.ShouldLog() && log != nil {
		args := []any{"datasource", datasource, "risk", result.Risk.String(), "violations", len(result.Violations)}
		if strategyKind == types.StrategyWarn {
			log.Warn(result.String(), args...)
		} else {
			log.Info(result.String(), args...)
		}
	}
	return nil
}
