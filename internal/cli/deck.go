package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/deckfile"
	"github.com/aidanlsb/autokey/internal/keyfile"
	"github.com/aidanlsb/autokey/internal/slugs"
	"github.com/aidanlsb/autokey/internal/ui"
)

var (
	deckNewPrefix   string
	deckNewForce    bool
	deckAddPolicy   catalog.Policy
	deckMergeOutput string
	deckSetForce    bool
	deckShowCards   bool
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Create and edit keyword decks",
	Long: `Decks are stored as YAML files and edited in place. Keywords are referenced
by zero-based position or by name (the first keyword with that name).`,
}

var deckNewCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create an empty deck",
	Long: `Create an empty deck file. Without a file argument the name is derived from
the prefix, for example "crash-model.deck.yaml".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := deckNewPrefix
		if !cmd.Flags().Changed("prefix") {
			prefix = getConfig().DefaultPrefix
		}

		path := slugs.DeckFileName(prefix)
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !deckNewForce {
			return handleErrorMsg(ErrDeckExists, fmt.Sprintf("deck already exists: %s", path), "Use --force to replace it")
		}

		deck := keyfile.BlankDeck()
		deck.SetPrefix(prefix)
		if err := saveDeck(path, deck); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": path, "prefix": prefix}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		return nil
	},
}

var deckAddCmd = &cobra.Command{
	Use:   "add <file> <keyword>...",
	Short: "Append catalog keywords to a deck",
	Long: `Instantiate keywords from the catalog, every field holding its default, and
append them to the deck.

With --on-error=abort (the default) nothing is added when any keyword fails.
With --on-error=skip the failing keywords are reported and the rest added.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		deck, code, err := loadDeck(path)
		if err != nil {
			return handleError(code, err, "")
		}
		cat, code, err := loadCatalog(commandContext(cmd))
		if err != nil {
			return handleError(code, err, catalogSuggestion())
		}

		names := make([]string, 0, len(args)-1)
		for _, arg := range args[1:] {
			names = append(names, keywordName(arg))
		}

		addition, buildErr := newBuilder(cat).BuildDeck(deck.Prefix(), names, deckAddPolicy)
		if buildErr != nil && deckAddPolicy == catalog.Abort {
			return handleError(errorCode(buildErr, ErrKeyWordInstantiation), buildErr,
				"Use --on-error=skip to add the keywords that can be built")
		}

		var warnings []Warning
		for _, e := range splitErrors(buildErr) {
			w := Warning{Code: WarnKeyWordSkipped, Message: e.Error()}
			var kie *keyfile.KeywordInstantiationError
			if errors.As(e, &kie) {
				w.KeyWord = kie.KeyWord
			}
			logger.Warn("keyword skipped", zap.String("keyword", w.KeyWord), zap.Error(e))
			warnings = append(warnings, w)
		}

		deck = deck.MergeDeck(addition)
		if err := saveDeck(path, deck); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		added := make([]string, 0, addition.Len())
		for _, kw := range addition.KeyWords() {
			added = append(added, kw.Name())
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"file":  path,
				"added": added,
				"total": deck.Len(),
			}, warnings, &Meta{Count: len(added)})
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Errorf("skipped %s", w.Message))
		}
		fmt.Println(ui.Successf("Added %s to %s", ui.Count(len(added), "keyword", "keywords"), ui.FilePath(path)))
		return nil
	},
}

var deckMergeCmd = &cobra.Command{
	Use:   "merge <base> <other>...",
	Short: "Append the keywords of other decks to a base deck",
	Long: `Append every keyword of the other decks, in order, to the base deck. The
base deck keeps its prefix. The result replaces the base file unless
--output is given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		merged, code, err := loadDeck(args[0])
		if err != nil {
			return handleError(code, err, "")
		}
		for _, path := range args[1:] {
			other, code, err := loadDeck(path)
			if err != nil {
				return handleError(code, err, "")
			}
			if other.Prefix() != "" && other.Prefix() != merged.Prefix() {
				logger.Info("prefix dropped in merge",
					zap.String("file", path),
					zap.String("prefix", other.Prefix()),
					zap.String("kept", merged.Prefix()))
			}
			merged = merged.MergeDeck(other)
		}

		out := args[0]
		if deckMergeOutput != "" {
			out = deckMergeOutput
		}
		if err := saveDeck(out, merged); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"file":     out,
				"prefix":   merged.Prefix(),
				"keywords": merged.Len(),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Wrote %s (%s)", ui.FilePath(out), ui.Count(merged.Len(), "keyword", "keywords")))
		return nil
	},
}

var deckShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "List the keywords of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, code, err := loadDeck(args[0])
		if err != nil {
			return handleError(code, err, "")
		}

		if isJSONOutput() {
			outputSuccess(deckfile.FromDeck(deck), &Meta{Count: deck.Len()})
			return nil
		}

		if deck.Prefix() != "" {
			fmt.Println(ui.Header("prefix: " + deck.Prefix()))
		}
		if deck.Len() == 0 {
			fmt.Println(ui.Hint("(no keywords)"))
			return nil
		}
		for i, kw := range deck.KeyWords() {
			fmt.Printf("%3d  %s %s\n", i, ui.KeyWord(kw.Name(), kw.IsCommented()), ui.Hint(ui.Count(kw.Len(), "card", "cards")))
			if !deckShowCards {
				continue
			}
			for ci, card := range kw.Cards() {
				parts := make([]string, 0, card.Len())
				for _, f := range card.Fields() {
					parts = append(parts, fmt.Sprintf("%s=%s", f.Name(), f.Default()))
				}
				fmt.Printf("       %d: %s\n", ci, strings.Join(parts, " "))
			}
		}
		return nil
	},
}

var deckSetCmd = &cobra.Command{
	Use:   "set <file> <keyword> <card> <field> <value>",
	Short: "Set a field value",
	Long: `Set the value of one field. The keyword is a position or a name, the card a
zero-based position within the keyword.

Values must be one of the field's options, if it has any, unless --force is
given. Values wider than the field are always rejected.`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, ref, cardArg, fieldName, value := args[0], args[1], args[2], args[3], args[4]

		deck, code, err := loadDeck(path)
		if err != nil {
			return handleError(code, err, "")
		}
		ki, err := resolveKeyWord(deck, ref)
		if err != nil {
			return handleError(errorCode(err, ErrKeyWordNotFound), err, "Use 'akey deck show' to list keywords")
		}
		ci, err := strconv.Atoi(cardArg)
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("card must be a number, got %q", cardArg), "")
		}

		kw, _ := deck.KeyWordAt(ki)
		card, err := kw.Card(ci)
		if err != nil {
			return handleError(ErrIndexOutOfRange, err, "")
		}
		field, ok := card.Get(fieldName)
		if !ok {
			return handleErrorMsg(ErrFieldNotFound,
				fmt.Sprintf("keyword %q card %d has no field %q", kw.Name(), ci, fieldName),
				fmt.Sprintf("Fields: %s", strings.Join(card.Names(), ", ")))
		}
		if err := checkValue(field, value, deckSetForce); err != nil {
			return handleError(ErrInvalidValue, err, "")
		}

		previous := field.Default()
		err = setField(&deck, ki, ci, field.WithDefault(value))
		if err != nil {
			return handleError(errorCode(err, ErrIndexOutOfRange), err, "")
		}
		if err := saveDeck(path, deck); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"file":     path,
				"keyword":  kw.Name(),
				"card":     ci,
				"field":    fieldName,
				"value":    value,
				"previous": previous,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("%s card %d: %s = %s", ui.KeyWord(kw.Name(), kw.IsCommented()), ci, fieldName, value))
		return nil
	},
}

// setField merges f into card ci of keyword ki.
func setField(deck *keyfile.Deck, ki, ci int, f keyfile.Field) error {
	var setErr error
	err := deck.Modify(ki, func(k *keyfile.KeyWord) {
		c, err := k.Card(ci)
		if err != nil {
			setErr = err
			return
		}
		setErr = k.SetCard(ci, c.MergeField(f))
	})
	if err != nil {
		return err
	}
	return setErr
}

// checkValue rejects values the field cannot hold. force skips the options
// check but not the width check.
func checkValue(f keyfile.Field, value string, force bool) error {
	if utf8.RuneCountInString(value) > int(f.Width()) {
		return &keyfile.FieldError{Field: f.Name(), Reason: fmt.Sprintf("%q is wider than %d columns", value, f.Width())}
	}
	if !force && !f.Allows(value) {
		return &keyfile.FieldError{Field: f.Name(), Reason: fmt.Sprintf("%q is not one of: %s", value, strings.Join(f.Options(), ", "))}
	}
	return nil
}

func init() {
	deckNewCmd.Flags().StringVar(&deckNewPrefix, "prefix", "", "Deck prefix (default from config)")
	deckNewCmd.Flags().BoolVar(&deckNewForce, "force", false, "Replace an existing file")

	deckAddCmd.Flags().Var(newPolicyValue(&deckAddPolicy, catalog.Abort), "on-error", "What to do when a keyword cannot be built: abort or skip")

	deckMergeCmd.Flags().StringVarP(&deckMergeOutput, "output", "o", "", "Write the merged deck here instead of the base file")

	deckShowCmd.Flags().BoolVar(&deckShowCards, "cards", false, "Show field values of every card")

	deckSetCmd.Flags().BoolVar(&deckSetForce, "force", false, "Accept values outside the field's options")

	deckCmd.AddCommand(deckNewCmd, deckAddCmd, deckMergeCmd, deckShowCmd, deckSetCmd)
	rootCmd.AddCommand(deckCmd)
}
