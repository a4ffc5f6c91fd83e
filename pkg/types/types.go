// Package types defines the core data model shared by every component of the
// SQL safety validation engine: the value types that flow from an interceptor,
// through the validator, to an audit sink.
package types

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// RiskLevel is a totally ordered severity assigned to a Violation or to the
// aggregate of a ValidationResult. Higher numeric value means higher severity.
type RiskLevel int

const (
	RiskPass RiskLevel = iota
	RiskInfo
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

// String renders the risk level the way it appears in log lines and reports.
func (r RiskLevel) String() string {
	switch r {
	case RiskPass:
		return "PASS"
	case RiskInfo:
		return "INFO"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalYAML accepts the textual risk names used in rule configuration.
func (r *RiskLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	level, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// MarshalYAML renders the risk level back to its textual name.
func (r RiskLevel) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// ParseRiskLevel parses the textual risk names used in rule configuration and reports.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PASS", "":
		return RiskPass, nil
	case "INFO":
		return RiskInfo, nil
	case "LOW":
		return RiskLow, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	case "CRITICAL":
		return RiskCritical, nil
	default:
		return RiskPass, fmt.Errorf("unknown risk level %q", s)
	}
}

// CommandKind is the statement's DML/DQL classification.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandSelect
	CommandInsert
	CommandUpdate
	CommandDelete
)

func (c CommandKind) String() string {
	switch c {
	case CommandSelect:
		return "SELECT"
	case CommandInsert:
		return "INSERT"
	case CommandUpdate:
		return "UPDATE"
	case CommandDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// ExecutionLayer identifies where in the stack a SQL attempt was observed.
type ExecutionLayer int

const (
	LayerUnknown ExecutionLayer = iota
	LayerOrmMapper
	LayerOrmWrapper
	LayerJDBC
)

func (l ExecutionLayer) String() string {
	switch l {
	case LayerOrmMapper:
		return "ORM-MAPPER"
	case LayerOrmWrapper:
		return "ORM-WRAPPER"
	case LayerJDBC:
		return "JDBC"
	default:
		return "UNKNOWN"
	}
}

// Strategy is how the system responds to a non-empty ValidationResult.
type Strategy int

const (
	StrategyBlock Strategy = iota
	StrategyWarn
	StrategyLog
)

func (s Strategy) String() string {
	switch s {
	case StrategyBlock:
		return "BLOCK"
	case StrategyWarn:
		return "WARN"
	case StrategyLog:
		return "LOG"
	default:
		return "UNKNOWN"
	}
}

// ShouldBlock reports whether this strategy raises a SqlSafetyError on a non-empty result.
func (s Strategy) ShouldBlock() bool { return s == StrategyBlock }

// ShouldLog reports whether this strategy emits a log line for a non-empty result.
func (s Strategy) ShouldLog() bool { return s == StrategyWarn || s == StrategyLog }

// LogLevel returns the slog level name this strategy logs at.
func (s Strategy) LogLevel() string {
	switch s {
	case StrategyWarn:
		return "WARN"
	case StrategyLog:
		return "INFO"
	default:
		return ""
	}
}

// UnmarshalYAML accepts the textual strategy names used in configuration.
func (s *Strategy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := ParseStrategy(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML renders the strategy back to its textual name.
func (s Strategy) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// ParseStrategy parses the textual strategy names used in configuration.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BLOCK", "":
		return StrategyBlock, nil
	case "WARN":
		return StrategyWarn, nil
	case "LOG":
		return StrategyLog, nil
	default:
		return StrategyBlock, fmt.Errorf("unknown violation strategy %q", s)
	}
}

// PaginationMarker is the caller-supplied "logical pagination" hint — pagination
// requested of the ORM out-of-band, as opposed to a LIMIT literally present in
// the resolved SQL.
type PaginationMarker struct {
	Offset int
	Size   int
}

// Location pins a Violation to a place: a statement id for runtime findings, or
// a file/line pair for findings produced by the (out-of-core) static scanner.
type Location struct {
	StatementID string
	File        string
	Line        int
}

// Violation is one rule finding. Violations are value types: safe to copy and
// share across goroutines.
type Violation struct {
	Risk       RiskLevel
	Rule       string
	Message    string
	Suggestion string
	Location   *Location
}

// ValidationResult is the Validator's return value: frozen once returned by
// validate, by convention never mutated afterward even though Go cannot enforce
// that at the type level.
type ValidationResult struct {
	Risk       RiskLevel
	Violations []Violation
}

// Passed reports whether the aggregate risk is RiskPass, i.e. no violations.
func (r *ValidationResult) Passed() bool {
	return r == nil || r.Risk == RiskPass
}

// Add appends a violation and raises the aggregate risk if needed. Call sites
// must hold no concurrent reference to r while mutating (see Orchestrator).
func (r *ValidationResult) Add(v Violation) {
	r.Violations = append(r.Violations, v)
	if v.Risk > r.Risk {
		r.Risk = v.Risk
	}
}

// String renders a one-line human summary, in the style of a CLI report line.
func (r *ValidationResult) String() string {
	if r.Passed() {
		return "PASS"
	}
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, fmt.Sprintf("[%s] %s", v.Risk, v.Message))
	}
	return fmt.Sprintf("%s: %s", r.Risk, strings.Join(msgs, "; "))
}

// AST is the parsed form of a SqlContext's SQL text, produced lazily by the
// parser facade. A degraded AST (Degraded == true) signals "unparseable" under
// lenient mode; Statement is nil in that case.
type AST struct {
	Statement sqlparser.Statement
	Degraded  bool
}

// SqlContext is an immutable snapshot describing one SQL execution attempt.
// It is built by an interceptor, consumed by the Validator, and discarded
// immediately after validation — no component retains a reference past one
// validate call.
type SqlContext struct {
	SQL         string
	Command     CommandKind
	Layer       ExecutionLayer
	StatementID string
	Datasource  string
	Pagination  *PaginationMarker
	Params      []interface{}
	NamedParams map[string]interface{}
	AST         *AST
}

// WithAST returns a shallow copy of ctx carrying the given parsed AST. The
// Validator uses this to build the "enriched context" passed to checkers
// without mutating the caller's original SqlContext.
func (c SqlContext) WithAST(ast *AST) SqlContext {
	c.AST = ast
	return c
}

// RuleCheckerConfig is the per-checker configuration snapshot: an enabled
// flag, a risk-level override, and rule-specific data. Configs are immutable;
// a reload replaces the whole snapshot.
type RuleCheckerConfig struct {
	Enabled      bool
	RiskOverride *RiskLevel
	Data         map[string]interface{}
}

// ResolvedRisk returns the override when configured, else the rule's own default.
func (c *RuleCheckerConfig) ResolvedRisk(deflt RiskLevel) RiskLevel {
	if c != nil && c.RiskOverride != nil {
		return *c.RiskOverride
	}
	return deflt
}

// GlobalConfig is the process-wide configuration snapshot. It is held behind
// an atomic reference (see package config) to allow safe hot-reload: readers
// take a pointer to one snapshot and use it for the entire validate call.
type GlobalConfig struct {
	Enabled             bool
	Strategy            Strategy
	DeduplicationEnabled bool
	DeduplicationSize   int
	DeduplicationTTLMS  int64
	ParserLenientMode   bool
	ParserCacheSize     int
	LayerEnabled        map[ExecutionLayer]bool
	Rules               map[string]*RuleCheckerConfig
}

// Rule returns the configuration for the named checker, or a disabled default
// if the rule is absent from the snapshot (unknown rules are treated as off,
// never as "use the hardcoded default", so a reload can retire a rule cleanly).
func (g *GlobalConfig) Rule(name string) *RuleCheckerConfig {
	if g == nil || g.Rules == nil {
		return &RuleCheckerConfig{Enabled: false}
	}
	if c, ok := g.Rules[name]; ok && c != nil {
		return c
	}
	return &RuleCheckerConfig{Enabled: false}
}

// LayerActive reports whether the given execution layer's interceptor is enabled.
func (g *GlobalConfig) LayerActive(layer ExecutionLayer) bool {
	if g == nil || g.LayerEnabled == nil {
		return true
	}
	enabled, ok := g.LayerEnabled[layer]
	if !ok {
		return true
	}
	return enabled
}

// DeduplicationKey identifies a SQL attempt for the purposes of the
// deduplication filter: the normalized SQL text plus the fields that
// legitimately change the validation outcome.
type DeduplicationKey string

// NewDeduplicationKey derives a key from a SqlContext. It collapses runs of
// whitespace and trims the SQL text rather than hashing it verbatim or
// building a full semantic fingerprint — see the Open Questions resolution in
// DESIGN.md for why this middle ground was chosen.
func NewDeduplicationKey(ctx *SqlContext) DeduplicationKey {
	normalized := strings.Join(strings.Fields(ctx.SQL), " ")
	var pagination string
	if ctx.Pagination != nil {
		pagination = fmt.Sprintf("%d:%d", ctx.Pagination.Offset, ctx.Pagination.Size)
	}
	return DeduplicationKey(fmt.Sprintf("%s|%s|%s", ctx.Datasource, pagination, normalized))
}

// AuditEvent is the post-execution record handed to an external audit sink.
type AuditEvent struct {
	SQL               string
	Command           CommandKind
	StatementID       string
	Datasource        string
	ExecutionTimeMS   int64
	RowsAffected      int64
	ErrorMessage      string
	PreValidation     *ValidationResult
	Blocked           bool
}
