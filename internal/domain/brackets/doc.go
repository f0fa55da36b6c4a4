// Package brackets turns raw division bracket rows into normalized team
// bracket records.
//
// Rows are admitted or dropped by a fixed set of rules, then every admitted
// row is coerced field by field with documented defaults. Extraction is pure:
// no I/O, no logging, input order preserved.
package brackets
