package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bist0uille/archibot/internal/config"
	"github.com/Bist0uille/archibot/internal/model"
	"github.com/Bist0uille/archibot/internal/project"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "archibot",
	Short: "CERFA paperwork assistant for architecture practices",
	Long:  "Determines which French planning authorizations a project needs, maps the project onto the CERFA form fields and fills the PDF forms.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadProject reads the project from a built-in template when name is set,
// otherwise from the single file argument.
func loadProject(args []string, templateName string) (model.ProjectInput, error) {
	if templateName != "" {
		return project.Template(templateName)
	}
	if len(args) == 0 {
		return model.ProjectInput{}, eris.New("a project file or --template is required")
	}
	return project.Load(args[0])
}

// loadIssuer reads the practice profile, falling back to the configured path.
func loadIssuer(path string) (model.Value, error) {
	if path == "" {
		path = cfg.Paths.IssuerProfile
	}
	return project.LoadIssuer(path)
}
