// Package store provides a SQLite-backed archive of generated decks.
//
// Each archived deck records the model it was generated from (by content
// hash), the target format, the deck text and its hash, the element sets the
// generator resolved and the elements it skipped.
//
// # Idempotency
//
//   - UNIQUE(model_hash, target, deck_hash) on decks
//   - Archiving the same deck twice returns the existing record
//
// # Deterministic ordering
//
//   - seq is a logical counter assigned inside the write transaction
//   - All listings use ORDER BY seq ASC, id COLLATE BINARY ASC
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
