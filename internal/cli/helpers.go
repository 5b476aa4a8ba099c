package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/config"
	"github.com/aidanlsb/autokey/internal/deckfile"
	"github.com/aidanlsb/autokey/internal/index"
	"github.com/aidanlsb/autokey/internal/keyfile"
)

// loadCatalog reads the configured catalog. The returned code is set when
// err is non-nil.
func loadCatalog(ctx context.Context) (catalog.Catalog, string, error) {
	path := getConfig().CatalogPath()
	if strings.TrimSpace(path) == "" {
		return nil, ErrCatalogNotConfigured, errors.New("no keyword catalog configured")
	}

	cat, err := catalog.FileSource{Path: path}.Load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileReadError, err
		}
		return nil, errorCode(err, ErrCatalogInvalid), err
	}
	logger.Debug("catalog loaded",
		zap.String("path", path),
		zap.Int("keywords", len(cat)),
		zap.Int("fields", cat.FieldCount()))
	return cat, "", nil
}

func catalogSuggestion() string {
	return fmt.Sprintf("Pass --catalog, set %s, or run 'akey config set --catalog <path>'", config.EnvCatalog)
}

func newBuilder(cat catalog.Catalog) catalog.Builder {
	return catalog.Builder{Catalog: cat, Strict: getConfig().Strict}
}

func openIndex() (*index.Database, error) {
	path := getConfig().IndexPath(config.ResolveConfigPath(configPath))
	logger.Debug("opening index", zap.String("path", path))
	return index.Open(path)
}

// loadDeck reads a deck file. The returned code is set when err is non-nil.
func loadDeck(path string) (keyfile.Deck, string, error) {
	deck, err := deckfile.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keyfile.Deck{}, ErrDeckNotFound, fmt.Errorf("deck not found: %s", path)
		}
		return keyfile.Deck{}, ErrFileReadError, err
	}
	return deck, "", nil
}

func saveDeck(path string, deck keyfile.Deck) error {
	if err := deckfile.Save(path, deck); err != nil {
		return err
	}
	logger.Debug("deck saved", zap.String("path", path), zap.Int("keywords", deck.Len()))
	return nil
}

// resolveKeyWord maps a keyword reference to its position in deck. A
// reference is either a zero-based index or a keyword name, in which case
// the first keyword with that name is used.
func resolveKeyWord(deck keyfile.Deck, ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= deck.Len() {
			return -1, fmt.Errorf("keyword %d: %w (deck has %d)", i, keyfile.ErrIndexOutOfRange, deck.Len())
		}
		return i, nil
	}
	if i := deck.Find(keywordName(ref)); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("keyword %q not in deck", ref)
}

// splitErrors flattens an errors.Join result.
func splitErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
