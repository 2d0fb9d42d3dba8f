// elMap: interpreting CIGAR strings and optional fields of SAM records.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elmap/blob/master/LICENSE.txt>.

package sam

import (
	"github.com/exascience/elmap/mapping"
)

// FileFormatVersion is the version of the SAM format this package
// follows.
const FileFormatVersion = "1.6"

/*
Alignment represents one alignment line of a SAM file.

The optional fields are kept as their unparsed text, one entry per
field, for example "NM:i:0". Use Tag and its typed variants to
interpret them.

An Alignment must not be copied after first use.
*/
type Alignment struct {
	QNAME string
	FLAG  uint16
	RNAME string
	POS   int32
	MAPQ  byte
	CIGAR string
	RNEXT string
	PNEXT int32
	TLEN  int32
	SEQ   string
	QUAL  string
	TAGS  []string

	cache mapping.Cache
}

// Bits of the FLAG field.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

func (aln *Alignment) IsMultiple() bool      { return (aln.FLAG & Multiple) != 0 }
func (aln *Alignment) IsProper() bool        { return (aln.FLAG & Proper) != 0 }
func (aln *Alignment) IsUnmapped() bool      { return (aln.FLAG & Unmapped) != 0 }
func (aln *Alignment) IsNextUnmapped() bool  { return (aln.FLAG & NextUnmapped) != 0 }
func (aln *Alignment) IsReversed() bool      { return (aln.FLAG & Reversed) != 0 }
func (aln *Alignment) IsNextReversed() bool  { return (aln.FLAG & NextReversed) != 0 }
func (aln *Alignment) IsFirst() bool         { return (aln.FLAG & First) != 0 }
func (aln *Alignment) IsLast() bool          { return (aln.FLAG & Last) != 0 }
func (aln *Alignment) IsSecondary() bool     { return (aln.FLAG & Secondary) != 0 }
func (aln *Alignment) IsQCFailed() bool      { return (aln.FLAG & QCFailed) != 0 }
func (aln *Alignment) IsDuplicate() bool     { return (aln.FLAG & Duplicate) != 0 }
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

func (aln *Alignment) FlagEvery(flag uint16) bool    { return (aln.FLAG & flag) == flag }
func (aln *Alignment) FlagSome(flag uint16) bool     { return (aln.FLAG & flag) != 0 }
func (aln *Alignment) FlagNotEvery(flag uint16) bool { return (aln.FLAG & flag) != flag }
func (aln *Alignment) FlagNotAny(flag uint16) bool   { return (aln.FLAG & flag) == 0 }

// CigarStr implements mapping.Source.
func (aln *Alignment) CigarStr() string { return aln.CIGAR }

// TagText implements mapping.Source.
func (aln *Alignment) TagText(name string) (string, bool) {
	return mapping.FindTagText(aln.TAGS, name)
}

// Operations returns the interpreted CIGAR string. See
// mapping.Cache.Alignment.
func (aln *Alignment) Operations() ([]mapping.AlignOp, error) {
	return aln.cache.Alignment(aln)
}

// Tag returns the interpreted optional field. See mapping.Cache.Tag.
func (aln *Alignment) Tag(name string) (mapping.TagValue, error) {
	return aln.cache.Tag(aln, name)
}

func (aln *Alignment) HasTag(name string) bool { return aln.cache.HasTag(aln, name) }

func (aln *Alignment) IntTag(name string) (int64, error) { return aln.cache.IntTag(aln, name) }

func (aln *Alignment) FloatTag(name string) (float64, error) { return aln.cache.FloatTag(aln, name) }

func (aln *Alignment) CharTag(name string) (byte, error) { return aln.cache.CharTag(aln, name) }

func (aln *Alignment) StringTag(name string) (string, error) { return aln.cache.StringTag(aln, name) }

// End returns the last reference position covered by the alignment.
func (aln *Alignment) End() (int32, error) {
	ops, err := aln.Operations()
	if err != nil {
		return 0, err
	}
	return aln.POS + mapping.ReferenceLength(ops) - 1, nil
}

// CheckSeqLength reports whether SEQ has as many bases as the CIGAR
// string consumes. It is always true when SEQ or CIGAR is "*".
func (aln *Alignment) CheckSeqLength() (bool, error) {
	ops, err := aln.Operations()
	if err != nil {
		return false, err
	}
	if (aln.SEQ == "*") || (len(ops) == 0) {
		return true, nil
	}
	return int(mapping.ReadLength(ops)) == len(aln.SEQ), nil
}
