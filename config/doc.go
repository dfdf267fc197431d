// SPDX-License-Identifier: MIT

// Package config describes what to mine: the linguistic variables with their
// triangular fuzzy sets, the acceptance thresholds and the maximum rule length.
//
// The order of Variables, and of Sets inside each Variable, is significant: it
// fixes the universe of fuzzy items and therefore the enumeration and tie-break
// order of the mined rules. YAML documents keep their mapping order when
// loaded (see Parse); JSON uses ordered lists.
//
// Validation happens once, before any degree is computed. Every configuration
// problem matches ErrConfiguration through errors.Is, plus one specific
// sentinel (ErrUnknownVariable, ErrBadFuzzySet, ErrThresholdRange, ...).
// Dataset-level problems (no rows, NaN cells) surface as dataset.ErrEmptyDataset
// and dataset.ErrNonFinite.
package config
