package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/km-arc/go-formrules/framework/app"
	"github.com/km-arc/go-formrules/framework/config"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/logging"
)

var errNoRules = errors.New("no rules: pass --set or --rule")

type checkOptions struct {
	rulesFile string
	set       string
	rules     []string
	lang      string
}

func newCheckCommand(opts *options) *cobra.Command {
	co := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [field=value | field=@file]...",
		Short: "Validate input from the command line",
		Long: `Validate field values against a rule set and print the error bag as JSON.

Repeating a field adds another value, which is how list fields ("tags[]")
receive several entries. A value starting with @ is read from that file and
validated as an upload. The command exits 1 when any rule fails.`,
		Example: `  # Validate against a set from the rules file
  formrules check --rules rules.yaml --set signup email=a@example.com password=secret

  # Ad-hoc rules
  formrules check --rule 'age=number|required|gte:18' age=17

  # Uploads and lists
  formrules check --rule 'avatar=file|image' --rule 'tags[]=array|required_some' avatar=@me.png tags[]=go tags[]=rust`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger := logging.New(cfg.Log, cmd.ErrOrStderr())

			rules, err := co.resolve(cfg)
			if err != nil {
				return err
			}
			form, err := parseInput(args)
			if err != nil {
				return err
			}

			factory, err := app.NewFactory(cfg.Validation, logger)
			if err != nil {
				return err
			}
			var extra []validation.Option
			if co.lang != "" {
				tag, err := language.Parse(co.lang)
				if err != nil {
					return fmt.Errorf("language %q: %w", co.lang, err)
				}
				extra = append(extra, validation.WithLanguage(tag))
			}

			bag, err := factory.Make(form, rules, extra...).Validate(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(bag); err != nil {
				return err
			}
			if bag.Any() {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&co.rulesFile, "rules", "", "rule set file (default: VALIDATION_RULES_FILE)")
	cmd.Flags().StringVar(&co.set, "set", "", "rule set to validate against")
	cmd.Flags().StringArrayVar(&co.rules, "rule", nil, "ad-hoc rule as field=expression, repeatable; overrides the set")
	cmd.Flags().StringVar(&co.lang, "lang", "", "message language (default: VALIDATION_LANGUAGE)")
	return cmd
}

// resolve compiles the named set, then lays the --rule flags over it.
func (co *checkOptions) resolve(cfg *config.Config) (validation.Rules, error) {
	rules := validation.Rules{}

	if co.set != "" {
		path := co.rulesFile
		if path == "" {
			path = cfg.Validation.RulesFile
		}
		if path == "" {
			return nil, fmt.Errorf("--set %s: no rules file", co.set)
		}
		rf, err := validation.LoadRuleFile(path)
		if err != nil {
			return nil, err
		}
		named, err := rf.Rules(co.set)
		if err != nil {
			return nil, err
		}
		maps.Copy(rules, named)
	}

	if len(co.rules) > 0 {
		set := validation.RuleSet{}
		for _, r := range co.rules {
			field, expr, ok := strings.Cut(r, "=")
			if !ok || field == "" {
				return nil, fmt.Errorf("--rule %q: want field=expression", r)
			}
			set[field] = expr
		}
		adhoc, err := set.Compile()
		if err != nil {
			return nil, err
		}
		maps.Copy(rules, adhoc)
	}

	if len(rules) == 0 {
		return nil, errNoRules
	}
	return rules, nil
}

// parseInput turns field=value arguments into a form. field=@path reads
// the file as an upload.
func parseInput(args []string) (*validation.Form, error) {
	form := validation.NewForm()
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("argument %q: want field=value", arg)
		}
		if path, isFile := strings.CutPrefix(value, "@"); isFile && path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}
			form.Add(field, validation.BytesBlob(filepath.Base(path), data))
			continue
		}
		form.Add(field, value)
	}
	return form, nil
}
