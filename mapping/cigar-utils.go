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

package mapping

import (
	"github.com/bits-and-blooms/bitset"
)

// ReferenceLength sums the lengths of all operations that consume
// reference bases.
func ReferenceLength(ops []AlignOp) int32 {
	var length int32
	for _, op := range ops {
		if op.Kind.ConsumesReference() {
			length += op.Len
		}
	}
	return length
}

// ReadLength sums the lengths of all operations that consume read
// bases. For a well-formed record this equals the length of SEQ.
func ReadLength(ops []AlignOp) int32 {
	var length int32
	for _, op := range ops {
		if op.Kind.ConsumesQuery() {
			length += op.Len
		}
	}
	return length
}

func isClip(kind OperationKind) bool {
	return (kind == SoftClip) || (kind == HardClip)
}

// ClippedLengths returns the number of soft- and hard-clipped bases at
// the left and at the right end of the alignment.
func ClippedLengths(ops []AlignOp) (left, right int32) {
	i := 0
	for ; (i < len(ops)) && isClip(ops[i].Kind); i++ {
		left += ops[i].Len
	}
	for j := len(ops) - 1; (j >= i) && isClip(ops[j].Kind); j-- {
		right += ops[j].Len
	}
	return left, right
}

// AlignedReadMask returns a bit set over the read positions (as
// counted by ReadLength) in which bit i is set if and only if read
// position i is covered by a Match operation.
func AlignedReadMask(ops []AlignOp) *bitset.BitSet {
	mask := bitset.New(uint(ReadLength(ops)))
	var pos uint
	for _, op := range ops {
		if !op.Kind.ConsumesQuery() {
			continue
		}
		if op.Kind == Match {
			for i := uint(0); i < uint(op.Len); i++ {
				mask.Set(pos + i)
			}
		}
		pos += uint(op.Len)
	}
	return mask
}
