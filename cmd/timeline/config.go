package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timeline/internal/platform"
	"github.com/aretw0/timeline/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the vault settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings in effect",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		s, err := platform.LoadSettings(root, platform.WithConfigPath(configPath))
		if err != nil {
			fatal("Error loading settings", err)
		}
		out, err := yaml.Marshal(config.FromSettings(s))
		if err != nil {
			fatal("Error encoding settings", err)
		}
		fmt.Fprint(os.Stdout, string(out))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting (useRegex, reference, sort, singleLine)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		s, err := platform.LoadSettings(root, platform.WithConfigPath(configPath))
		if err != nil {
			fatal("Error loading settings", err)
		}
		s, err = config.Apply(s, args[0], args[1])
		if err != nil {
			fatal("Error changing setting", err)
		}

		path := platform.SettingsPath(root, platform.WithConfigPath(configPath))
		if err := config.Save(path, s); err != nil {
			fatal("Error saving settings", err)
		}
		fmt.Printf("Set %s = %s in %s\n", args[0], args[1], path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
