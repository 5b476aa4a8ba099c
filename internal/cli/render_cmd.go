package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/atomicfile"
	"github.com/aidanlsb/autokey/internal/render"
	"github.com/aidanlsb/autokey/internal/slugs"
	"github.com/aidanlsb/autokey/internal/ui"
)

var (
	renderOutput           string
	renderWrite            bool
	renderIncludeCommented bool
	renderFieldHeaders     bool
)

var deckRenderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a deck as keyword text",
	Long: `Render the deck to solver input text. Output goes to stdout unless --output
is given; --write places it next to the deck with a .k extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderOutput != "" && renderWrite {
			return handleErrorMsg(ErrInvalidInput, "--output and --write cannot be combined", "")
		}

		deck, code, err := loadDeck(args[0])
		if err != nil {
			return handleError(code, err, "")
		}

		opts := render.Options{
			IncludeCommented: getConfig().Render.IncludeCommented,
			FieldHeaders:     getConfig().Render.FieldHeaders,
		}
		if cmd.Flags().Changed("include-commented") {
			opts.IncludeCommented = renderIncludeCommented
		}
		if cmd.Flags().Changed("field-headers") {
			opts.FieldHeaders = renderFieldHeaders
		}

		out := renderOutput
		if renderWrite {
			out = slugs.RenderFileName(args[0])
		}

		if out == "" || out == "-" {
			if isJSONOutput() {
				text, err := render.String(deck, opts)
				if err != nil {
					return handleError(errorCode(err, ErrRenderFailed), err, renderSuggestion(err))
				}
				outputSuccess(map[string]interface{}{"text": text}, nil)
				return nil
			}
			if err := render.Write(os.Stdout, deck, opts); err != nil {
				return handleError(errorCode(err, ErrRenderFailed), err, renderSuggestion(err))
			}
			return nil
		}

		err = atomicfile.Write(out, 0o644, func(w io.Writer) error {
			return render.Write(w, deck, opts)
		})
		if err != nil {
			return handleError(errorCode(err, ErrFileWriteError), err, renderSuggestion(err))
		}
		logger.Debug("deck rendered",
			zap.String("deck", args[0]),
			zap.String("output", out),
			zap.Int("active", len(deck.Active())))

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": out}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Rendered %s", ui.FilePath(out)))
		return nil
	},
}

func renderSuggestion(err error) string {
	switch {
	case errors.Is(err, render.ErrFieldOverflow):
		return "Use 'akey deck set' to shorten the value"
	case errors.Is(err, render.ErrFieldOverlap):
		return "Fix the field positions in the catalog and add the keyword again"
	case errors.Is(err, render.ErrBlankKeyWord):
		return "Comment the keyword out again or remove it"
	}
	return ""
}

func init() {
	deckRenderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write to this file (- for stdout)")
	deckRenderCmd.Flags().BoolVarP(&renderWrite, "write", "w", false, "Write next to the deck as <name>.k")
	deckRenderCmd.Flags().BoolVar(&renderIncludeCommented, "include-commented", false, "Keep commented keywords behind $")
	deckRenderCmd.Flags().BoolVar(&renderFieldHeaders, "field-headers", false, "Write a $# line naming each card's fields")

	deckCmd.AddCommand(deckRenderCmd)
}
