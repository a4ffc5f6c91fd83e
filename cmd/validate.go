package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sqlshield/sqlshield/pkg/config"
	"github.com/sqlshield/sqlshield/pkg/logger"
	"github.com/sqlshield/sqlshield/pkg/types"
	"github.com/sqlshield/sqlshield/pkg/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <sql-file>",
	Short: "Validate SQL statements against the safety ruleset",
	Long: `Validate reads one or more semicolon-separated SQL statements from a
file and runs each through the same rule checkers the runtime interceptors
use, reporting any risk findings.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("output", "o", "text", "output format (text, json, yaml)")
	validateCmd.Flags().StringP("config", "c", "", "path to engine configuration file")
	validateCmd.Flags().StringP("datasource", "d", "-", "datasource name reported in findings")
	validateCmd.Flags().Bool("fail-on-violation", false, "exit with non-zero code if any violation is found")

	_ = viper.BindPFlag("validate.output", validateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("validate.config", validateCmd.Flags().Lookup("config"))
	_ = viper.BindPFlag("validate.datasource", validateCmd.Flags().Lookup("datasource"))
	_ = viper.BindPFlag("validate.fail-on-violation", validateCmd.Flags().Lookup("fail-on-violation"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	log := logger.NewWithLevel(logLevel)

	sqlFile := args[0]
	content, err := os.ReadFile(sqlFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read SQL file: %s", sqlFile)
	}

	cfg, err := loadValidateConfig()
	if err != nil {
		return err
	}

	holder := config.NewHolder(cfg, viper.GetString("validate.config"), log)
	v := validator.New(holder, validator.WithLogger(log))

	datasource := viper.GetString("validate.datasource")
	statements := splitStatements(string(content))

	results := make([]namedResult, 0, len(statements))
	for i, stmt := range statements {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		result, err := v.Validate(types.SqlContext{
			SQL:         stmt,
			Layer:       types.LayerJDBC,
			StatementID: fmt.Sprintf("cli:%d", i),
			Datasource:  datasource,
		})
		if err != nil {
			log.Error("validation failed", "statement_index", i, "error", err)
			continue
		}
		results = append(results, namedResult{Index: i, SQL: stmt, Result: result})
	}

	if err := outputValidation(results, viper.GetString("validate.output")); err != nil {
		return err
	}

	if viper.GetBool("validate.fail-on-violation") {
		for _, r := range results {
			if !r.Result.Passed() {
				os.Exit(1)
			}
		}
	}
	return nil
}

func loadValidateConfig() (*types.GlobalConfig, error) {
	path := viper.GetString("validate.config")
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// splitStatements splits a SQL file on top-level semicolons. It does not
// understand string-literal-embedded semicolons; CLI input is expected to be
// one simple statement per semicolon, same as a typical .sql migration file.
func splitStatements(content string) []string {
	return strings.Split(content, ";")
}

type namedResult struct {
	Index  int
	SQL    string
	Result *types.ValidationResult
}

func outputValidation(results []namedResult, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(results)
	case "text":
		return outputValidateText(results)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputValidateText(results []namedResult) error {
	violationCount := 0
	for _, r := range results {
		if r.Result.Passed() {
			continue
		}
		violationCount++
		fmt.Printf("[%s] statement %d: %s\n", r.Result.Risk, r.Index, strings.TrimSpace(r.SQL))
		for _, v := range r.Result.Violations {
			fmt.Printf("  - (%s) %s: %s\n", v.Risk, v.Rule, v.Message)
			if v.Suggestion != "" {
				fmt.Printf("    suggestion: %s\n", v.Suggestion)
			}
		}
	}
	if violationCount == 0 {
		fmt.Println("No issues found.")
	} else {
		fmt.Printf("Summary: %d statement(s) with findings out of %d\n", violationCount, len(results))
	}
	return nil
}
