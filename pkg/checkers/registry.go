package checkers

import (
	"fmt"
	"sync"
)

// Registry holds the set of known checkers in registration order. Order
// matters: the Orchestrator runs enabled checkers in registry order, and the
// spec requires that order be preserved for deterministic violation reporting
// This mirrors the reference stack's global advisor registry, minus
// the per-engine dimension this domain doesn't need.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Checker
	ordered  []Checker
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Checker)}
}

// Register adds a checker. It panics on a nil checker or a duplicate name —
// both are programmer errors caught at init time, not runtime conditions to
// recover from.
func (r *Registry) Register(c Checker) {
	if c == nil {
		panic("checkers: cannot register a nil Checker")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[c.Name()]; exists {
		panic(fmt.Sprintf("checkers: duplicate registration for rule %q", c.Name()))
	}
	r.byName[c.Name()] = c
	r.ordered = append(r.ordered, c)
}

// Get looks up a checker by its rule name.
func (r *Registry) Get(name string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns every registered checker in registration order. The returned
// slice is a copy; mutating it does not affect the registry.
func (r *Registry) All() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Checker, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Default is the process-wide registry populated by this package's init
// function with every built-in checker. Extension code registers
// additional checkers here the same way — count-star (an Open Question the
// spec leaves ambiguous) ships through exactly this path, disabled by
// default, as a worked example of the extensibility contract.
var Default = NewRegistry()

func init() {
	Default.Register(NewNoWhereClause())
	Default.Register(NewDummyCondition())
	Default.Register(NewBlacklistField())
	Default.Register(NewWhitelistField())
	Default.Register(NewLogicalPagination())
	Default.Register(NewNoConditionPagination())
	Default.Register(NewDeepPagination())
	Default.Register(NewLargePageSize())
	Default.Register(NewMissingOrderBy())
	Default.Register(NewNoPagination())
	Default.Register(NewCountStar())
}
