// Package sam represents alignment lines of SAM files as mapping
// records.
//
// An Alignment keeps the eleven mandatory fields of a SAM alignment
// line, and the optional fields as unparsed text. It implements
// mapping.Source, and owns a mapping.Cache, so that its CIGAR string
// and its optional fields are interpreted only when they are needed,
// and only once.
package sam
