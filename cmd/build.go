package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nikogura/resume-builder/pkg/cache"
	"github.com/nikogura/resume-builder/pkg/config"
	"github.com/nikogura/resume-builder/pkg/docx"
	"github.com/nikogura/resume-builder/pkg/llm"
	"github.com/nikogura/resume-builder/pkg/prompt"
	"github.com/nikogura/resume-builder/pkg/render"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Cobra boilerplate
var outputFile string

//nolint:gochecknoglobals // Cobra boilerplate
var cacheFile string

//nolint:gochecknoglobals // Cobra boilerplate
var buildCmd = &cobra.Command{
	Use:   "build <prompt-file-or-url> [api-key] [model]",
	Short: "Generate a resume from a prompt and render it",
	Long: `Send a prompt to the Claude API, save the structured reply to the cache
file, then validate and render it to a Word document.

The prompt can be provided as:
- A file path (e.g., prompt.txt)
- A URL (e.g., https://example.com/prompt.txt)

The API key and model may be given as arguments. Otherwise the API key is read
from ANTHROPIC_API_KEY (or claude_api_key) and then the config file, and the
model from RESUME_BUILDER_MODEL and then the config file.

Example:
  resume-builder build prompt.txt
  resume-builder build prompt.txt sk-ant-... claude-sonnet-4-5-20250929 --output-file out/resume.docx`,
	Args: cobra.RangeArgs(1, 3),
	RunE: runBuild,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&outputFile, "output-file", "", "Resume document to write (default from config, else resume.docx)")
	buildCmd.Flags().StringVar(&cacheFile, "cache-file", "", "Structured-data cache file (default from config, else points.yaml)")
}

func runBuild(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	log := newLogger()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var apiKey string
	apiKey, err = cfg.ResolveAPIKey(argAt(args, 1))
	if err != nil {
		return err
	}

	model := cfg.ResolveModel(argAt(args, 2))
	client := llm.NewClient(apiKey, model)

	paths := outputPaths{
		cache:  pick(cacheFile, cfg.Defaults.CacheFile),
		output: pick(outputFile, cfg.Defaults.OutputFile),
	}

	err = buildResume(ctx, log, client, args[0], paths, fallbackContact(cfg))
	return err
}

// outputPaths names the files a run writes.
type outputPaths struct {
	cache  string
	output string
}

// buildResume runs the whole pipeline: prompt, model, cache, validation, document.
func buildResume(ctx context.Context, log *logrus.Entry, client *llm.Client, input string, paths outputPaths, fallback resume.ContactInfo) (err error) {
	log.WithField("input", input).Debug("Loading prompt")

	var text string
	text, err = prompt.LoadWithContext(ctx, input)
	if err != nil {
		err = errors.Wrap(err, "failed to load prompt")
		return err
	}

	log.WithFields(logrus.Fields{
		"characters": len(text),
		"model":      client.Model(),
	}).Debug("Prompt loaded")

	var doc *yaml.Node
	err = withSpinner(os.Stdout, getVerbose(), "Generating resume content with Claude API...", func() (genErr error) {
		doc, genErr = client.GenerateDocument(ctx, text)
		return genErr
	})
	if err != nil {
		err = errors.Wrap(err, "Claude API generation failed")
		return err
	}

	if !getVerbose() {
		fmt.Println("✓ Generation complete")
	}

	err = cache.Save(paths.cache, doc)
	if err != nil {
		return err
	}

	log.WithField("cache_file", paths.cache).Debug("Structured data cached")

	err = renderFromCache(log, paths, fallback)
	return err
}

// renderFromCache validates the cache file and writes the resume document.
func renderFromCache(log *logrus.Entry, paths outputPaths, fallback resume.ContactInfo) (err error) {
	var doc *yaml.Node
	doc, err = cache.Load(paths.cache)
	if err != nil {
		return err
	}

	var bundle resume.Bundle
	bundle, err = resume.Load(doc, fallback)
	if err != nil {
		err = errors.Wrapf(err, "invalid structured data in %s", paths.cache)
		return err
	}

	log.WithFields(logrus.Fields{
		"sections": len(bundle.Sections),
		"work":     len(bundle.Model.Work),
		"projects": len(bundle.Model.Projects),
	}).Debug("Structured data validated")

	missing := missingLinks(bundle.Contact)
	if len(missing) > 0 {
		log.WithField("missing", strings.Join(missing, ",")).Warn("Profile links missing from structured data and config")
	}

	var out *docx.Document
	out, err = render.Build(bundle)
	if err != nil {
		return err
	}

	err = out.Save(paths.output)
	if err != nil {
		err = errors.Wrap(err, "failed to save resume")
		return err
	}

	fmt.Printf("Resume saved at %s\n", paths.output)

	return err
}

// missingLinks names the profile links that are still empty after the config fallback.
func missingLinks(contact resume.ContactInfo) (missing []string) {
	if contact.LinkedIn == "" {
		missing = append(missing, "linkedin")
	}
	if contact.GitHub == "" {
		missing = append(missing, "github")
	}
	return missing
}

func fallbackContact(cfg config.Config) (contact resume.ContactInfo) {
	contact = resume.ContactInfo{
		GitHub:   cfg.Contact.GitHub,
		LinkedIn: cfg.Contact.LinkedIn,
	}
	return contact
}

// argAt returns args[i], or "" when absent.
func argAt(args []string, i int) (arg string) {
	if i < len(args) {
		arg = args[i]
	}
	return arg
}

// pick returns flag when set, otherwise fallback.
func pick(flag, fallback string) (value string) {
	value = flag
	if value == "" {
		value = fallback
	}
	return value
}
