package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/autokey/internal/keyfile"
	"github.com/aidanlsb/autokey/internal/ui"
)

var deckClearKeyWordRef string

// modifyKeyWords applies fn to every referenced keyword and saves the deck.
// Nothing is written when a reference does not resolve.
func modifyKeyWords(path string, refs []string, fn func(*keyfile.KeyWord)) ([]string, error) {
	deck, code, err := loadDeck(path)
	if err != nil {
		return nil, handleError(code, err, "")
	}

	indexes := make([]int, 0, len(refs))
	for _, ref := range refs {
		i, err := resolveKeyWord(deck, ref)
		if err != nil {
			return nil, handleError(errorCode(err, ErrKeyWordNotFound), err, "Use 'akey deck show' to list keywords")
		}
		indexes = append(indexes, i)
	}

	names := make([]string, 0, len(indexes))
	for _, i := range indexes {
		kw, _ := deck.KeyWordAt(i)
		names = append(names, kw.Name())
		if err := deck.Modify(i, fn); err != nil {
			return nil, handleError(ErrIndexOutOfRange, err, "")
		}
	}

	if err := saveDeck(path, deck); err != nil {
		return nil, handleError(ErrFileWriteError, err, "")
	}
	return names, nil
}

func keywordStateCommand(use, short, verb string, fn func(*keyfile.KeyWord)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <file> <keyword>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := modifyKeyWords(args[0], args[1:], fn)
			if err != nil || names == nil {
				return err
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"file": args[0], verb: names}, &Meta{Count: len(names)})
				return nil
			}
			fmt.Println(ui.Successf("%s %s", ui.Count(len(names), "keyword", "keywords"), verb))
			return nil
		},
	}
}

var deckCommentCmd = keywordStateCommand("comment", "Comment keywords out of the deck", "commented", (*keyfile.KeyWord).Comment)

var deckUncommentCmd = keywordStateCommand("uncomment", "Make commented keywords active again", "uncommented", (*keyfile.KeyWord).Uncomment)

var deckClearCmd = &cobra.Command{
	Use:   "clear <file>",
	Short: "Clear all keywords, or one with --keyword",
	Long: `Without --keyword, drop every keyword from the deck and keep its prefix.

With --keyword, clear that one keyword: its cards and name are dropped and it
is left commented out, so it no longer appears in rendered output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if deckClearKeyWordRef != "" {
			names, err := modifyKeyWords(path, []string{deckClearKeyWordRef}, (*keyfile.KeyWord).Clear)
			if err != nil || names == nil {
				return err
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"file": path, "cleared": names}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Cleared %s", ui.KeyWord(names[0], false)))
			return nil
		}

		deck, code, err := loadDeck(path)
		if err != nil {
			return handleError(code, err, "")
		}
		removed := deck.Len()
		deck.ClearKeyWords()
		if err := saveDeck(path, deck); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": path, "removed": removed, "prefix": deck.Prefix()}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed %s", ui.Count(removed, "keyword", "keywords")))
		return nil
	},
}

var deckEmptyCmd = &cobra.Command{
	Use:   "empty <file>",
	Short: "Remove all keywords and the prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		deck, code, err := loadDeck(path)
		if err != nil {
			return handleError(code, err, "")
		}
		removed := deck.Len()
		deck.Empty()
		if err := saveDeck(path, deck); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": path, "removed": removed}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Emptied %s", ui.FilePath(path)))
		return nil
	},
}

func init() {
	deckClearCmd.Flags().StringVar(&deckClearKeyWordRef, "keyword", "", "Clear only this keyword (position or name)")

	deckCmd.AddCommand(deckCommentCmd, deckUncommentCmd, deckClearCmd, deckEmptyCmd)
}
