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
	"fmt"
	"math"
	"strconv"

	"github.com/exascience/elmap/internal"
)

// An OperationKind is the type of a CIGAR operation.
type OperationKind byte

// The CIGAR operation kinds, in the order of CigarOperations.
const (
	Match OperationKind = iota
	Insertion
	Deletion
	Skip
	SoftClip
	HardClip
	Padding
)

// CigarOperations lists the CIGAR operation symbols, indexed by
// OperationKind.
const CigarOperations = "MIDNSHP"

// CigarPlaceholder is the CIGAR string of a record without alignment.
const CigarPlaceholder = "*"

var operationNames = [...]string{
	"Match", "Insertion", "Deletion", "Skip", "SoftClip", "HardClip", "Padding",
}

var cigarOperationsTable = make(map[byte]OperationKind, len(CigarOperations))

func init() {
	for i := 0; i < len(CigarOperations); i++ {
		cigarOperationsTable[CigarOperations[i]] = OperationKind(i)
	}
}

// KindFromSymbol returns the OperationKind for a CIGAR operation
// symbol. Only the symbols in CigarOperations are accepted.
func KindFromSymbol(symbol byte) (OperationKind, error) {
	if kind, ok := cigarOperationsTable[symbol]; ok {
		return kind, nil
	}
	return 0, formatError(string(symbol), "Invalid CIGAR operation")
}

// Symbol returns the CIGAR symbol of the operation kind.
func (kind OperationKind) Symbol() byte {
	if int(kind) < len(CigarOperations) {
		return CigarOperations[kind]
	}
	return '?'
}

// String returns the CIGAR symbol of the operation kind as a string.
func (kind OperationKind) String() string {
	if int(kind) < len(CigarOperations) {
		return CigarOperations[kind : kind+1]
	}
	return fmt.Sprintf("OperationKind(%d)", byte(kind))
}

// Name returns a descriptive name, such as "Match" or "SoftClip".
func (kind OperationKind) Name() string {
	if int(kind) < len(operationNames) {
		return operationNames[kind]
	}
	return kind.String()
}

// ConsumesQuery reports whether operations of this kind advance
// along the read sequence.
func (kind OperationKind) ConsumesQuery() bool {
	switch kind {
	case Match, Insertion, SoftClip:
		return true
	default:
		return false
	}
}

// ConsumesReference reports whether operations of this kind advance
// along the reference.
func (kind OperationKind) ConsumesReference() bool {
	switch kind {
	case Match, Deletion, Skip:
		return true
	default:
		return false
	}
}

// An AlignOp is one element of a CIGAR string. Len is always at
// least 1.
type AlignOp struct {
	Kind OperationKind
	Len  int32
}

func (op AlignOp) String() string {
	return strconv.FormatInt(int64(op.Len), 10) + op.Kind.String()
}

func isDigit(char byte) bool { return ('0' <= char) && (char <= '9') }

func scanCigarOperation(cigar string, i int) (op AlignOp, j int, err error) {
	for j = i; (j < len(cigar)) && isDigit(cigar[j]); j++ {
	}
	if (j == i) || (j == len(cigar)) {
		return op, i, formatError(cigar, "Invalid CIGAR string, unmatched suffix %q in", cigar[i:])
	}
	length, nerr := strconv.ParseInt(cigar[i:j], 10, 32)
	if nerr != nil {
		return op, i, formatError(cigar, "Invalid CIGAR operation length %v in", cigar[i:j])
	}
	if length < 1 {
		return op, i, formatError(cigar, "Invalid CIGAR operation length %v in", cigar[i:j])
	}
	kind, ok := cigarOperationsTable[cigar[j]]
	if !ok {
		return op, i, formatError(cigar, "Invalid CIGAR operation %q in", cigar[j])
	}
	return AlignOp{Kind: kind, Len: int32(length)}, j + 1, nil
}

// ScanCigar interprets a CIGAR string.
//
// The placeholder "*" yields an empty, non-nil slice. Any other
// string must consist entirely of one or more (length, operation)
// pairs without separators; everything else, including the empty
// string, is reported as a *FormatError and no operations are
// returned. The read and reference lengths the operations add up to
// must each fit in an int32.
func ScanCigar(cigar string) ([]AlignOp, error) {
	if cigar == CigarPlaceholder {
		return []AlignOp{}, nil
	}
	ops := make([]AlignOp, 0, 5)
	var queryLength, referenceLength int64
	for i := 0; i < len(cigar); {
		op, j, err := scanCigarOperation(cigar, i)
		if err != nil {
			return nil, err
		}
		if op.Kind.ConsumesQuery() {
			queryLength += int64(op.Len)
		}
		if op.Kind.ConsumesReference() {
			referenceLength += int64(op.Len)
		}
		if (queryLength > math.MaxInt32) || (referenceLength > math.MaxInt32) {
			return nil, formatError(cigar, "CIGAR string too long")
		}
		ops = append(ops, op)
		i = j
	}
	if len(ops) == 0 {
		return nil, formatError(cigar, "Unable to parse any operations from CIGAR string")
	}
	return ops, nil
}

// FormatCigar returns the CIGAR string for the given operations, or
// the placeholder "*" if there are none.
func FormatCigar(ops []AlignOp) string {
	if len(ops) == 0 {
		return CigarPlaceholder
	}
	buf := internal.ReserveByteBuffer()
	for _, op := range ops {
		buf = append(strconv.AppendInt(buf, int64(op.Len), 10), op.Kind.Symbol())
	}
	cigar := string(buf)
	internal.ReleaseByteBuffer(buf)
	return cigar
}
