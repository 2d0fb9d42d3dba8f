// Package mapping interprets the CIGAR string and the optional fields
// of a SAM mapping record.
//
// A record exposes its raw text through the Source interface. A Cache
// owned by the record turns that text into a slice of AlignOp values
// and into TagValue values on demand, and remembers the results for
// the lifetime of the record.
//
// Failures are reported with three kinds of errors, to be tested with
// errors.Is: ErrIllegalState for queries that do not apply to the
// record, ErrFormat for text that violates the SAM grammar, and
// ErrNoSuchField for optional fields that are simply not present.
package mapping
