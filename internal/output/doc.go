// Package output makes analysis reports byte-stable. Identical inputs
// must produce byte-identical JSON so reports can be diffed, cached by
// content, and snapshot-tested without false positives.
//
// Three mechanisms cooperate:
//
//  1. Float rounding: all scores round to max 6 decimal places.
//  2. Ordering: cycles and strategies sort by fixed comparators
//     (severity rank, length, membership; priority, type).
//  3. Encoding: object keys sort alphabetically, empty values are
//     omitted, floats are normalized during encoding.
package output
