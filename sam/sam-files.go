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
	"fmt"
)

// IsHeaderLine reports whether a line of a SAM file belongs to the
// header section.
func IsHeaderLine(line string) bool {
	return (len(line) > 0) && (line[0] == '@')
}

// ParseAlignment parses the mandatory fields of a SAM alignment line,
// and keeps the optional fields as unparsed text.
func (sc *StringScanner) ParseAlignment() *Alignment {
	aln := new(Alignment)

	aln.QNAME = sc.doString()
	aln.FLAG = uint16(sc.doUint(16))
	aln.RNAME = sc.doString()
	aln.POS = sc.doInt32()
	aln.MAPQ = byte(sc.doUint(8))
	aln.CIGAR = sc.doString()
	aln.RNEXT = sc.doString()
	aln.PNEXT = sc.doInt32()
	aln.TLEN = sc.doInt32()
	aln.SEQ = sc.doString()
	aln.QUAL, _ = sc.readUntil('\t')

	for sc.Len() > 0 {
		field, _ := sc.readUntil('\t')
		aln.TAGS = append(aln.TAGS, field)
	}

	return aln
}

// ParseAlignment parses a single SAM alignment line, without the
// line terminator.
func ParseAlignment(line string) (*Alignment, error) {
	var sc StringScanner
	sc.Reset(line)
	aln := sc.ParseAlignment()
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%v, while parsing SAM alignment %v", err, line)
	}
	return aln, nil
}
