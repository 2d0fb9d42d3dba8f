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

func TestParseTagText(t *testing.T) {
	name, value, err := ParseTagText("NM:i:0")
	require.NoError(t, err)
	assert.Equal(t, "NM", name)
	assert.Equal(t, TagValue{Type: TagInteger, Payload: "0"}, value)

	name, value, err = ParseTagText("XS:Z:a:b:c")
	require.NoError(t, err)
	assert.Equal(t, "XS", name)
	assert.Equal(t, TagValue{Type: TagString, Payload: "a:b:c"}, value)

	_, value, err = ParseTagText("XE:Z:")
	require.NoError(t, err)
	assert.Equal(t, "", value.Payload)
}

func TestParseTagTextMalformed(t *testing.T) {
	for _, text := range []string{"NM:ix:0", "NM::0", "NM:i", "NM", "", "NM:q:0", "NM:I:0"} {
		_, _, err := ParseTagText(text)
		require.Error(t, err, text)
		assert.True(t, errors.Is(err, ErrFormat), text)
	}
}

func TestTagDataTypes(t *testing.T) {
	for i := 0; i < len(TagTypeCodes); i++ {
		dataType, err := TagDataTypeFromSam(TagTypeCodes[i])
		require.NoError(t, err)
		assert.Equal(t, TagTypeCodes[i], dataType.SamType())
	}
	assert.Equal(t, "Integer", TagInteger.String())
}

func TestTypedValues(t *testing.T) {
	i, err := TagValue{TagInteger, "-42"}.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i)

	f, err := TagValue{TagFloat, "0.5"}.Float()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	f, err = TagValue{TagInteger, "3"}.Float()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	c, err := TagValue{TagChar, "U"}.Char()
	require.NoError(t, err)
	assert.Equal(t, byte('U'), c)

	b, err := TagValue{TagByteArray, "1AE301"}.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1a, 0xe3, 0x01}, b)

	assert.Equal(t, "ACGT", TagValue{TagString, "ACGT"}.String())
}

func TestTypedValuesMalformed(t *testing.T) {
	_, err := TagValue{TagString, "1"}.Int()
	assert.True(t, errors.Is(err, ErrFormat))
	_, err = TagValue{TagInteger, "x"}.Int()
	assert.True(t, errors.Is(err, ErrFormat))
	_, err = TagValue{TagChar, "UU"}.Char()
	assert.True(t, errors.Is(err, ErrFormat))
	_, err = TagValue{TagByteArray, "1AE"}.Bytes()
	assert.True(t, errors.Is(err, ErrFormat))
	_, err = TagValue{TagChar, "1.0"}.Float()
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestNumericArray(t *testing.T) {
	tests := []struct {
		payload string
		result  interface{}
	}{
		{"c,-1,2", []int8{-1, 2}},
		{"C,255,0", []uint8{255, 0}},
		{"s,-300", []int16{-300}},
		{"S,60000", []uint16{60000}},
		{"i,-70000,1", []int32{-70000, 1}},
		{"I,4000000000", []uint32{4000000000}},
		{"f,0.5,1", []float32{0.5, 1}},
		{"c", []int8{}},
	}
	for _, test := range tests {
		result, err := TagValue{TagNumericArray, test.payload}.NumericArray()
		require.NoError(t, err, test.payload)
		assert.Equal(t, test.result, result, test.payload)
	}
	for _, payload := range []string{"", "c,128", "x,1", "c1,2", "i,1,,2"} {
		_, err := TagValue{TagNumericArray, payload}.NumericArray()
		assert.True(t, errors.Is(err, ErrFormat), payload)
	}
}

func TestFindTagText(t *testing.T) {
	fields := []string{"XT:A:U", "NM:i:0", "N:i:3", "NM:i:7"}
	text, found := FindTagText(fields, "NM")
	assert.True(t, found)
	assert.Equal(t, "NM:i:0", text)
	_, found = FindTagText(fields, "XX")
	assert.False(t, found)
	_, found = FindTagText(fields, "nm")
	assert.False(t, found)
	text, found = FindTagText(fields, "N")
	assert.True(t, found)
	assert.Equal(t, "N:i:3", text)
}
