package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebfornari/listerine/internal/config"
	"github.com/calebfornari/listerine/internal/store"
)

var disableCmd = &cobra.Command{
	Use:   "disable <monitor_name>",
	Short: "Disable a monitor for the active environment",
	Long: "A disabled monitor still appears in runs but reports a disabled " +
		"outcome: its check never executes and its failure counter is untouched.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], func(st *store.Store, name, environment string) error {
			if err := st.Disable(name, environment); err != nil {
				return err
			}
			fmt.Printf("disabled %s%s\n", name, envSuffix(environment))
			return nil
		})
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable <monitor_name>",
	Short: "Re-enable a monitor for the active environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle(args[0], func(st *store.Store, name, environment string) error {
			if err := st.Enable(name, environment); err != nil {
				return err
			}
			fmt.Printf("enabled %s%s\n", name, envSuffix(environment))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(enableCmd)
}

func toggle(name string, op func(*store.Store, string, string) error) error {
	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}

	known := false
	for _, def := range cfg.Monitors {
		if def.Name == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("monitor %q not found in config", name)
	}

	st, err := store.Open(cfg.Options.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return op(st, name, activeEnvironment(cfg))
}

func envSuffix(environment string) string {
	if environment == "" {
		return ""
	}
	return " in " + environment
}
