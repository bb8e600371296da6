package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and change settings",
		Long: `Settings are stored in config.toml inside the config directory.
Environment variables named ASSISTANT_<KEY> override the file, for example
ASSISTANT_RETRIEVAL_TOP_K=5. API keys are read from OPENAI_API_KEY and
ANTHROPIC_API_KEY, including from a .env file in the working directory.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show every setting",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				for _, key := range s.Settings.Keys() {
					v, err := s.Settings.Value(key)
					if err != nil {
						return err
					}
					cmd.Printf("%-24s %s\n", key, mask(key, v))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get [key]",
			Short: "Show one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				v, err := s.Settings.Value(args[0])
				if err != nil {
					return err
				}
				cmd.Println(mask(args[0], v))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set [key] [value]",
			Short: "Change a setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				if err := s.Settings.Set(args[0], args[1]); err != nil {
					return err
				}
				cmd.Printf("%s = %s\n", args[0], mask(args[0], args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				cmd.Println(s.ConfigPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate settings and ping the configured providers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := a.svc(cmd)
				if err != nil {
					return err
				}
				var errs []error
				if err := s.Settings.Validate(); err != nil {
					errs = append(errs, err)
				}
				if err := s.Settings.ValidateEmbeddingConfig(); err != nil {
					errs = append(errs, fmt.Errorf("embedding: %w", err))
				}
				if err := s.Settings.ValidateLLMConfig(); err != nil {
					errs = append(errs, fmt.Errorf("llm: %w", err))
				}
				if len(errs) > 0 {
					return errors.Join(errs...)
				}
				cmd.Println("Settings OK")
				return nil
			},
		},
	)
	return cmd
}

// mask hides all but the last four characters of secrets.
func mask(key, value string) string {
	if !strings.HasSuffix(key, "api_key") || value == "" {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
