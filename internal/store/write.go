package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteDeck archives rec and returns the stored record.
//
// Archiving is idempotent on (model_hash, target, deck_hash): if an equal
// deck is already stored the existing record is returned with created
// false and nothing is written. Otherwise rec gets a fresh id and the next
// seq, and its sets and skips are written in the same transaction.
func (s *Store) WriteDeck(ctx context.Context, rec DeckRecord) (DeckRecord, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeckRecord{}, false, fmt.Errorf("write deck: begin: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM decks
		WHERE model_hash = ? AND target = ? AND deck_hash = ?
	`, rec.ModelHash, rec.Target, rec.DeckHash).Scan(&existingID)
	switch {
	case err == nil:
		if err := tx.Commit(); err != nil {
			return DeckRecord{}, false, fmt.Errorf("write deck: commit: %w", err)
		}
		existing, err := s.ReadDeck(ctx, existingID)
		if err != nil {
			return DeckRecord{}, false, err
		}
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return DeckRecord{}, false, fmt.Errorf("write deck: lookup: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM decks`).Scan(&seq); err != nil {
		return DeckRecord{}, false, fmt.Errorf("write deck: next seq: %w", err)
	}
	rec.ID = s.ids.Generate()
	rec.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks
		(id, seq, model_name, model_hash, target, deck_hash, generator_version, properties, elements, lines, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Seq,
		rec.ModelName,
		rec.ModelHash,
		rec.Target,
		rec.DeckHash,
		rec.GeneratorVersion,
		rec.Properties,
		rec.Elements,
		rec.Lines,
		rec.Content,
	)
	if err != nil {
		return DeckRecord{}, false, fmt.Errorf("write deck: %w", err)
	}

	for i, set := range rec.Sets {
		elements, err := marshalElements(set.Elements)
		if err != nil {
			return DeckRecord{}, false, fmt.Errorf("write deck: set %q: %w", set.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deck_sets
			(deck_id, position, property, name, set_index, elements, synthesized)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, i, set.Property, set.Name, set.Index, elements, boolToInt(set.Synthesized))
		if err != nil {
			return DeckRecord{}, false, fmt.Errorf("write deck: set %q: %w", set.Name, err)
		}
	}

	for i, skip := range rec.Skipped {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deck_skips
			(deck_id, position, property, set_name, element, family, nodes, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, i, skip.Property, skip.Set, skip.Element, skip.Family, skip.Nodes, skip.Reason)
		if err != nil {
			return DeckRecord{}, false, fmt.Errorf("write deck: skip %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return DeckRecord{}, false, fmt.Errorf("write deck: commit: %w", err)
	}
	return rec, true, nil
}
