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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCigar(t *testing.T) {
	tests := []struct {
		cigar string
		ops   []AlignOp
	}{
		{"76M", []AlignOp{{Match, 76}}},
		{"8M2I66M", []AlignOp{{Match, 8}, {Insertion, 2}, {Match, 66}}},
		{"5S10M3D2N1P4H", []AlignOp{{SoftClip, 5}, {Match, 10}, {Deletion, 3}, {Skip, 2}, {Padding, 1}, {HardClip, 4}}},
		{"2147483647M", []AlignOp{{Match, 2147483647}}},
		{"007M", []AlignOp{{Match, 7}}},
	}
	for _, test := range tests {
		ops, err := ScanCigar(test.cigar)
		require.NoError(t, err, test.cigar)
		assert.Equal(t, test.ops, ops, test.cigar)
	}
}

func TestScanCigarPlaceholder(t *testing.T) {
	ops, err := ScanCigar("*")
	require.NoError(t, err)
	assert.NotNil(t, ops)
	assert.Empty(t, ops)
}

func TestScanCigarMalformed(t *testing.T) {
	for _, cigar := range []string{
		"",
		"10M5",
		"M10",
		"10",
		"10M*",
		"x10M",
		"10M 5I",
		"10X",
		"10=",
		"0M",
		"10m",
		"2147483648M",
		"2147483647M2147483647M",
		"2147483647M1I",
		"2147483647D1N",
		"**",
	} {
		ops, err := ScanCigar(cigar)
		assert.Nil(t, ops, cigar)
		require.Error(t, err, cigar)
		assert.True(t, errors.Is(err, ErrFormat), cigar)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), cigar)
		assert.Equal(t, cigar, formatErr.Input)
	}
}

func TestKindFromSymbol(t *testing.T) {
	for i := 0; i < len(CigarOperations); i++ {
		kind, err := KindFromSymbol(CigarOperations[i])
		require.NoError(t, err)
		assert.Equal(t, OperationKind(i), kind)
		assert.Equal(t, CigarOperations[i], kind.Symbol())
	}
	_, err := KindFromSymbol('X')
	assert.True(t, errors.Is(err, ErrFormat))
	assert.Equal(t, "SoftClip", SoftClip.Name())
	assert.Equal(t, "S", SoftClip.String())
}

func TestFormatCigar(t *testing.T) {
	for _, cigar := range []string{"76M", "8M2I66M", "3H5S10M3D2N1P4S"} {
		ops, err := ScanCigar(cigar)
		require.NoError(t, err)
		assert.Equal(t, cigar, FormatCigar(ops))
	}
	assert.Equal(t, "*", FormatCigar(nil))
	assert.Equal(t, "12I", AlignOp{Insertion, 12}.String())
}

func TestLengths(t *testing.T) {
	ops, err := ScanCigar("3H5S10M2I3D4N6M1S")
	require.NoError(t, err)
	assert.Equal(t, int32(10+3+4+6), ReferenceLength(ops))
	assert.Equal(t, int32(5+10+2+6+1), ReadLength(ops))
	left, right := ClippedLengths(ops)
	assert.Equal(t, int32(8), left)
	assert.Equal(t, int32(1), right)

	left, right = ClippedLengths([]AlignOp{{SoftClip, 4}})
	assert.Equal(t, int32(4), left)
	assert.Equal(t, int32(0), right)
}

func TestAlignedReadMask(t *testing.T) {
	ops, err := ScanCigar("2S3M1I2M1D1M")
	require.NoError(t, err)
	mask := AlignedReadMask(ops)
	assert.Equal(t, uint(6), mask.Count())
	expected := []bool{false, false, true, true, true, false, true, true, true}
	for i, set := range expected {
		assert.Equal(t, set, mask.Test(uint(i)), "read position %v", i)
	}
	assert.Equal(t, uint(0), AlignedReadMask(nil).Count())
}

func TestLengthsAtLimit(t *testing.T) {
	ops, err := ScanCigar("2147483647M5H3P")
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), ReferenceLength(ops))
	assert.Equal(t, int32(2147483647), ReadLength(ops))

	ops, err = ScanCigar("2147483646M1I1D")
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), ReferenceLength(ops))
	assert.Equal(t, int32(2147483647), ReadLength(ops))
}
