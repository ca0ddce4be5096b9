package cmd

import (
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render <cache-file>",
	Short: "Render an existing structured-data file without calling the API",
	Long: `Validate a structured-data file written by 'build' (possibly edited by hand)
and render it to a Word document.

Example:
  resume-builder render points.yaml --output-file resume.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&outputFile, "output-file", "", "Resume document to write (default from config, else resume.docx)")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	log := newLogger()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	paths := outputPaths{
		cache:  args[0],
		output: pick(outputFile, cfg.Defaults.OutputFile),
	}

	err = renderFromCache(log, paths, fallbackContact(cfg))
	return err
}
