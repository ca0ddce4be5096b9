package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/nikogura/resume-builder/pkg/docx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var inspectCmd = &cobra.Command{
	Use:   "inspect <docx-file>",
	Short: "Print the text of a rendered resume",
	Long: `Print the text content of a Word document.

With --verbose, print one line per paragraph with its list, alignment and
spacing properties, which is useful for checking a rendered layout.

Example:
  resume-builder inspect resume.docx
  resume-builder inspect resume.docx -v`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	if getVerbose() {
		var paragraphs []docx.ParagraphInfo
		paragraphs, err = docx.ReadParagraphs(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read document: %s", path)
			return err
		}
		printParagraphs(os.Stdout, paragraphs)
		return err
	}

	var res *docconv.Response
	res, err = docconv.ConvertPath(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to extract text: %s", path)
		return err
	}

	fmt.Println(strings.TrimSpace(res.Body))

	return err
}

// printParagraphs writes one annotated line per paragraph.
func printParagraphs(w io.Writer, paragraphs []docx.ParagraphInfo) {
	for i, p := range paragraphs {
		_, _ = fmt.Fprintf(w, "%3d %s %q\n", i, describeParagraph(p), p.Text)
	}
}

func describeParagraph(p docx.ParagraphInfo) (desc string) {
	tags := make([]string, 0, 4)

	if p.Bullet {
		tags = append(tags, "bullet")
	}
	if p.Centered {
		tags = append(tags, "center")
	}
	if p.SpaceBefore != nil {
		tags = append(tags, fmt.Sprintf("before=%gpt", *p.SpaceBefore))
	}
	if p.SpaceAfter != nil {
		tags = append(tags, fmt.Sprintf("after=%gpt", *p.SpaceAfter))
	}
	if len(p.Runs) > 0 {
		r := p.Runs[0]
		style := fmt.Sprintf("%gpt", r.Size)
		if r.Bold {
			style += " bold"
		}
		tags = append(tags, style)
	}

	desc = "[" + strings.Join(tags, " ") + "]"
	return desc
}
