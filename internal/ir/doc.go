// Package ir provides the structural model types shared by every fedeck
// package: nodes, elements, sections, materials, element properties and the
// element-set registry.
//
// This package contains type definitions and small invariants only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key conventions:
//   - Indices are 0-based in memory and shifted to 1-based only when a deck
//     is written
//   - Model tables are read-only once serialization starts; the set
//     registry is the single insert-only exception
//   - Declaration order is significant and is preserved everywhere
package ir
