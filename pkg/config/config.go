// Package config loads and hot-reloads the engine's GlobalConfig.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sqlshield/sqlshield/pkg/types"
)

// file is the on-disk shape of a config document. It mirrors types.GlobalConfig
// field-for-field but keeps its own struct so YAML/JSON tags stay decoupled
// from the in-memory type the rest of the engine consumes.
type file struct {
	Enabled              bool                         `yaml:"enabled" json:"enabled"`
	Strategy             string                       `yaml:"strategy" json:"strategy"`
	DeduplicationEnabled bool                         `yaml:"deduplication_enabled" json:"deduplication_enabled"`
	DeduplicationSize    int                          `yaml:"deduplication_size" json:"deduplication_size"`
	DeduplicationTTLMS   int64                        `yaml:"deduplication_ttl_ms" json:"deduplication_ttl_ms"`
	ParserLenientMode    bool                         `yaml:"parser_lenient_mode" json:"parser_lenient_mode"`
	ParserCacheSize      int                          `yaml:"parser_cache_size" json:"parser_cache_size"`
	Layers               map[string]bool              `yaml:"layers" json:"layers"`
	Rules                map[string]ruleFile          `yaml:"rules" json:"rules"`
}

type ruleFile struct {
	Enabled      bool                   `yaml:"enabled" json:"enabled"`
	RiskOverride string                 `yaml:"risk_override" json:"risk_override"`
	Data         map[string]interface{} `yaml:"data" json:"data"`
}

var layerNames = map[string]types.ExecutionLayer{
	"orm-mapper":  types.LayerOrmMapper,
	"orm-wrapper": types.LayerOrmWrapper,
	"jdbc":        types.LayerJDBC,
}

// LoadFromFile reads a config document from filename, trying YAML first and
// falling back to JSON — the same fallback the on-disk format historically
// used, kept here so existing JSON config documents keep working.
func LoadFromFile(filename string) (*types.GlobalConfig, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", filename)
	}

	var f file
	if yamlErr := yaml.Unmarshal(raw, &f); yamlErr != nil {
		if jsonErr := json.Unmarshal(raw, &f); jsonErr != nil {
			return nil, errors.Wrapf(yamlErr, "config: parse %s as YAML (JSON fallback also failed: %v)", filename, jsonErr)
		}
	}

	return fromFile(&f)
}

func fromFile(f *file) (*types.GlobalConfig, error) {
	strategy, err := types.ParseStrategy(f.Strategy)
	if err != nil {
		return nil, errors.Wrap(err, "config: invalid strategy")
	}

	layerEnabled := make(map[types.ExecutionLayer]bool, len(layerNames))
	for name, layer := range layerNames {
		enabled, ok := f.Layers[name]
		if !ok {
			enabled = true
		}
		layerEnabled[layer] = enabled
	}

	rules := make(map[string]*types.RuleCheckerConfig, len(f.Rules))
	for name, rf := range f.Rules {
		rc := &types.RuleCheckerConfig{Enabled: rf.Enabled, Data: normalizeRuleData(name, rf.Data)}
		if rf.RiskOverride != "" {
			risk, err := types.ParseRiskLevel(rf.RiskOverride)
			if err != nil {
				return nil, errors.Wrapf(err, "config: rule %q risk_override", name)
			}
			rc.RiskOverride = &risk
		}
		rules[name] = rc
	}

	cfg := &types.GlobalConfig{
		Enabled:              f.Enabled,
		Strategy:             strategy,
		DeduplicationEnabled: f.DeduplicationEnabled,
		DeduplicationSize:    f.DeduplicationSize,
		DeduplicationTTLMS:   f.DeduplicationTTLMS,
		ParserLenientMode:    f.ParserLenientMode,
		ParserCacheSize:      f.ParserCacheSize,
		LayerEnabled:         layerEnabled,
		Rules:                rules,
	}
	return Validate(cfg)
}

// normalizeRuleData reshapes a rule's decoded data payload from the loosely
// typed form YAML/JSON unmarshaling produces (`[]interface{}`,
// `map[string]interface{}`) into the concrete Go types each built-in
// checker's Data lookup expects (`[]string`, `map[string][]string`).
// Unrecognized rule names or malformed fields are left untouched — a
// checker's own type assertion then simply finds nothing and no-ops, rather
// than this loader rejecting a config document a future checker might parse
// differently.
func normalizeRuleData(name string, data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	switch name {
	case "blacklist-field":
		normalizeStringSliceField(data, "blacklist")
	case "no-pagination":
		normalizeStringSliceField(data, "large_tables")
	case "dummy-condition":
		normalizeStringSliceField(data, "patterns")
	case "whitelist-field":
		if m, ok := toStringSliceMap(data["tables"]); ok {
			data["tables"] = m
		}
	}
	return data
}

func normalizeStringSliceField(data map[string]interface{}, key string) {
	if v, ok := toStringSlice(data[key]); ok {
		data[key] = v
	}
}

// toStringSlice coerces a decoded YAML/JSON list (`[]interface{}` of
// strings, or an already-native `[]string`) into `[]string`.
func toStringSlice(v interface{}) ([]string, bool) {
	switch raw := v.(type) {
	case []string:
		return raw, true
	case []interface{}:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// toStringSliceMap coerces a decoded YAML/JSON object-of-lists
// (`map[string]interface{}` whose values are `[]interface{}` of strings, or
// an already-native `map[string][]string`) into `map[string][]string`.
func toStringSliceMap(v interface{}) (map[string][]string, bool) {
	switch raw := v.(type) {
	case map[string][]string:
		return raw, true
	case map[string]interface{}:
		out := make(map[string][]string, len(raw))
		for key, val := range raw {
			s, ok := toStringSlice(val)
			if !ok {
				return nil, false
			}
			out[key] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// Validate rejects negative sizes and TTL and replaces nil Rules and
// LayerEnabled maps with empty ones. It fills in no other defaults: zero
// sizes and TTL pass through unchanged (the parser facade and dedup filter
// substitute their own defaults for them), and a rule absent from cfg stays
// disabled.
func Validate(cfg *types.GlobalConfig) (*types.GlobalConfig, error) {
	if cfg.DeduplicationSize < 0 {
		return nil, errors.New("config: deduplication_size must not be negative")
	}
	if cfg.DeduplicationTTLMS < 0 {
		return nil, errors.New("config: deduplication_ttl_ms must not be negative")
	}
	if cfg.ParserCacheSize < 0 {
		return nil, errors.New("config: parser_cache_size must not be negative")
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]*types.RuleCheckerConfig{}
	}
	if cfg.LayerEnabled == nil {
		cfg.LayerEnabled = map[types.ExecutionLayer]bool{}
	}
	return cfg, nil
}
