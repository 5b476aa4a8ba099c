package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aidanlsb/autokey/internal/catalog"
)

// KeywordResult is one keyword matched by Search.
type KeywordResult struct {
	Name      string
	CardCount int
	// Matches names the fields whose name or help matched, in card order.
	Matches []string
}

// Stats summarizes the index contents.
type Stats struct {
	Keywords int
	Fields   int
}

// Rebuild replaces the index contents with cat in one transaction.
func (d *Database) Rebuild(ctx context.Context, cat catalog.Catalog) error {
	return d.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM fields"); err != nil {
			return fmt.Errorf("failed to clear fields: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM keywords"); err != nil {
			return fmt.Errorf("failed to clear keywords: %w", err)
		}

		kwStmt, err := tx.PrepareContext(ctx, "INSERT INTO keywords (name, card_count) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer kwStmt.Close()

		fieldStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO fields (keyword, card, name, default_value, help, position, width, options)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer fieldStmt.Close()

		for _, name := range cat.Keywords() {
			templates := cat[name]
			if _, err := kwStmt.ExecContext(ctx, name, len(templates)); err != nil {
				return fmt.Errorf("failed to index keyword %s: %w", name, err)
			}
			for card, tmpl := range templates {
				for _, spec := range tmpl.Specs() {
					_, err := fieldStmt.ExecContext(ctx, name, card, spec.Name, spec.DefaultValue(),
						spec.Help, spec.Position, spec.Width, strings.Join(spec.Options, ","))
					if err != nil {
						return fmt.Errorf("failed to index field %s.%s: %w", name, spec.Name, err)
					}
				}
			}
		}
		return nil
	})
}

// Search finds keywords whose name, or any field name or help text, contains
// term. Matching is case-insensitive and results are ordered by name.
func (d *Database) Search(ctx context.Context, term string) ([]KeywordResult, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	rows, err := d.db.QueryContext(ctx, `
		SELECT k.name, k.card_count, f.name
		FROM keywords k
		LEFT JOIN fields f
			ON f.keyword = k.name
			AND (lower(f.name) LIKE ? ESCAPE '\' OR lower(f.help) LIKE ? ESCAPE '\')
		WHERE lower(k.name) LIKE ? ESCAPE '\' OR f.name IS NOT NULL
		ORDER BY k.name, f.card, f.position, f.name
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()

	var results []KeywordResult
	for rows.Next() {
		var name string
		var cards int
		var field sql.NullString
		if err := rows.Scan(&name, &cards, &field); err != nil {
			return nil, err
		}
		if len(results) == 0 || results[len(results)-1].Name != name {
			results = append(results, KeywordResult{Name: name, CardCount: cards})
		}
		if field.Valid {
			last := &results[len(results)-1]
			last.Matches = append(last.Matches, field.String)
		}
	}
	return results, rows.Err()
}

// Stats counts indexed keywords and fields.
func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM keywords").Scan(&s.Keywords); err != nil {
		return Stats{}, err
	}
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fields").Scan(&s.Fields); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
