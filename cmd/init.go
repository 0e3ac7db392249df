package cmd

import (
	"fmt"
	"os"

	tt "github.com/rubylint/rlint/internal/types"
	"github.com/rubylint/rlint/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: rlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = ".rlint.yaml"
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".rlint.yaml"
	}

	// Create a yaml file with rules
	config := lint.Config{
		Name: "rlint",
		Rules: map[string]tt.ConfigRule{
			"predicate-return-nil": {
				Severity:        tt.SeverityWarning,
				AllowedMethods:  []string{},
				AllowedPatterns: []string{},
			},
			"nested-method-definition": {
				Severity: tt.SeverityWarning,
			},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
