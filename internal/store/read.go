package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/fedeck/internal/deck"
)

// ErrNotFound is returned when no deck matches an id.
var ErrNotFound = errors.New("deck not found")

const deckColumns = `id, seq, model_name, model_hash, target, deck_hash, generator_version, properties, elements, lines`

// ReadDeck returns the deck with the given id, including content, sets and
// skips. A unique id prefix of at least 8 characters is also accepted.
func (s *Store) ReadDeck(ctx context.Context, id string) (DeckRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+deckColumns+`, content
		FROM decks
		WHERE id = ? OR (length(?) >= 8 AND substr(id, 1, length(?)) = ?)
		ORDER BY seq ASC, id COLLATE BINARY ASC
		LIMIT 2
	`, id, id, id, id)
	if err != nil {
		return DeckRecord{}, fmt.Errorf("read deck: %w", err)
	}
	defer rows.Close()

	var matches []DeckRecord
	for rows.Next() {
		var rec DeckRecord
		if err := rows.Scan(append(deckDest(&rec), &rec.Content)...); err != nil {
			return DeckRecord{}, fmt.Errorf("read deck: scan: %w", err)
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return DeckRecord{}, fmt.Errorf("read deck: %w", err)
	}

	switch {
	case len(matches) == 0:
		return DeckRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(matches) > 1 && matches[0].ID != id:
		return DeckRecord{}, fmt.Errorf("read deck: id prefix %q is ambiguous", id)
	}
	rec := matches[0]

	if rec.Sets, err = s.readSets(ctx, rec.ID); err != nil {
		return DeckRecord{}, err
	}
	if rec.Skipped, err = s.readSkips(ctx, rec.ID); err != nil {
		return DeckRecord{}, err
	}
	return rec, nil
}

// ListDecks returns archived decks without content, sets or skips.
// Results are ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ListDecks(ctx context.Context, filter ListFilter) ([]DeckRecord, error) {
	var where []string
	var args []any
	if filter.ModelHash != "" {
		where = append(where, "model_hash = ?")
		args = append(args, filter.ModelHash)
	}
	if filter.Target != "" {
		where = append(where, "target = ?")
		args = append(args, filter.Target)
	}
	query := `SELECT ` + deckColumns + ` FROM decks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	decks := []DeckRecord{}
	for rows.Next() {
		var rec DeckRecord
		if err := rows.Scan(deckDest(&rec)...); err != nil {
			return nil, fmt.Errorf("list decks: scan: %w", err)
		}
		decks = append(decks, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return decks, nil
}

func deckDest(rec *DeckRecord) []any {
	return []any{
		&rec.ID, &rec.Seq, &rec.ModelName, &rec.ModelHash, &rec.Target,
		&rec.DeckHash, &rec.GeneratorVersion, &rec.Properties, &rec.Elements, &rec.Lines,
	}
}

func (s *Store) readSets(ctx context.Context, deckID string) ([]SetRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT property, name, set_index, elements, synthesized
		FROM deck_sets
		WHERE deck_id = ?
		ORDER BY position ASC
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("query deck sets: %w", err)
	}
	defer rows.Close()

	sets := []SetRecord{}
	for rows.Next() {
		var set SetRecord
		var elements string
		var synthesized int
		if err := rows.Scan(&set.Property, &set.Name, &set.Index, &elements, &synthesized); err != nil {
			return nil, fmt.Errorf("scan deck set: %w", err)
		}
		if set.Elements, err = unmarshalElements(elements); err != nil {
			return nil, err
		}
		set.Synthesized = synthesized != 0
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck sets: %w", err)
	}
	return sets, nil
}

func (s *Store) readSkips(ctx context.Context, deckID string) ([]deck.Skip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT property, set_name, element, family, nodes, reason
		FROM deck_skips
		WHERE deck_id = ?
		ORDER BY position ASC
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("query deck skips: %w", err)
	}
	defer rows.Close()

	skips := []deck.Skip{}
	for rows.Next() {
		var skip deck.Skip
		if err := rows.Scan(&skip.Property, &skip.Set, &skip.Element, &skip.Family, &skip.Nodes, &skip.Reason); err != nil {
			return nil, fmt.Errorf("scan deck skip: %w", err)
		}
		skips = append(skips, skip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck skips: %w", err)
	}
	return skips, nil
}
