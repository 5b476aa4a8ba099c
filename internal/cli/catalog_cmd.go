package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/ui"
)

var (
	catalogShowHTML bool
	catalogShowRaw  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and index the keyword catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cat, code, err := loadCatalog(ctx)
		if err != nil {
			return handleError(code, err, catalogSuggestion())
		}

		names := cat.Keywords()
		if isJSONOutput() {
			items := make([]map[string]interface{}, 0, len(names))
			for _, name := range names {
				items = append(items, map[string]interface{}{
					"name":  name,
					"cards": len(cat[name]),
				})
			}
			outputSuccess(map[string]interface{}{"keywords": items}, &Meta{Count: len(items)})
			return nil
		}

		for _, name := range names {
			fmt.Printf("%s %s\n", ui.KeyWord(name, false), ui.Hint(ui.Count(len(cat[name]), "card", "cards")))
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <keyword>",
	Short: "Describe a keyword's cards and fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cat, code, err := loadCatalog(ctx)
		if err != nil {
			return handleError(code, err, catalogSuggestion())
		}

		name := keywordName(args[0])
		templates, ok := cat.Lookup(name)
		if !ok {
			return handleErrorMsg(ErrKeyWordNotFound, fmt.Sprintf("keyword %q not in catalog", name), "Use 'akey catalog search' to find keywords")
		}

		if isJSONOutput() {
			cards := make([][]catalog.FieldSpec, 0, len(templates))
			for _, tmpl := range templates {
				cards = append(cards, tmpl.Specs())
			}
			outputSuccess(map[string]interface{}{"name": name, "cards": cards}, &Meta{Count: len(cards)})
			return nil
		}

		md, err := cat.Describe(name)
		if err != nil {
			return handleError(ErrKeyWordNotFound, err, "")
		}

		switch {
		case catalogShowRaw:
			fmt.Print(md)
		case catalogShowHTML:
			html, err := ui.MarkdownToHTML(md)
			if err != nil {
				return err
			}
			fmt.Print(html)
		default:
			display := ui.NewDisplayContext()
			out, err := ui.RenderMarkdown(md, display.TermWidth, display.IsTTY)
			if err != nil {
				return err
			}
			fmt.Print(out)
		}
		return nil
	},
}

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the keyword search index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		cat, code, err := loadCatalog(ctx)
		if err != nil {
			return handleError(code, err, catalogSuggestion())
		}

		db, err := openIndex()
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		if err := db.Rebuild(ctx, cat); err != nil {
			return handleError(ErrIndexError, err, "")
		}
		stats, err := db.Stats(ctx)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		logger.Info("index rebuilt", zap.Int("keywords", stats.Keywords), zap.Int("fields", stats.Fields))

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"keywords": stats.Keywords,
				"fields":   stats.Fields,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Indexed %s, %s",
			ui.Count(stats.Keywords, "keyword", "keywords"),
			ui.Count(stats.Fields, "field", "fields")))
		return nil
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search keyword names and field help",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		term := strings.Join(args, " ")

		db, err := openIndex()
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		stats, err := db.Stats(ctx)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		var warnings []Warning
		if stats.Keywords == 0 {
			warnings = append(warnings, Warning{Code: WarnIndexEmpty, Message: "search index is empty; run 'akey catalog index'"})
		}

		results, err := db.Search(ctx, term)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			items := make([]map[string]interface{}, 0, len(results))
			for _, r := range results {
				items = append(items, map[string]interface{}{
					"name":    r.Name,
					"cards":   r.CardCount,
					"matches": r.Matches,
				})
			}
			outputSuccessWithWarnings(map[string]interface{}{"term": term, "results": items}, warnings, &Meta{Count: len(items)})
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warningf("%s", w.Message))
		}
		if len(results) == 0 {
			fmt.Printf("No keywords match %q\n", term)
			return nil
		}
		for _, r := range results {
			line := ui.KeyWord(r.Name, false)
			if len(r.Matches) > 0 {
				line += " " + ui.Hint(strings.Join(r.Matches, ", "))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	catalogShowCmd.Flags().BoolVar(&catalogShowHTML, "html", false, "Output HTML instead of terminal markdown")
	catalogShowCmd.Flags().BoolVar(&catalogShowRaw, "raw", false, "Output the markdown source")
	catalogShowCmd.MarkFlagsMutuallyExclusive("html", "raw")

	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogIndexCmd, catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}
