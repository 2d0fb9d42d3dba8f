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
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// A TagDataType is the type of an optional field, as given by its
// one-character SAM type code.
type TagDataType byte

// The optional field types defined by the SAM format.
const (
	TagChar TagDataType = iota
	TagInteger
	TagFloat
	TagString
	TagByteArray
	TagNumericArray
)

// TagTypeCodes lists the SAM type codes, indexed by TagDataType.
const TagTypeCodes = "AifZHB"

// TagDataTypeFromSam returns the TagDataType for a SAM type code.
func TagDataTypeFromSam(code byte) (TagDataType, error) {
	if i := strings.IndexByte(TagTypeCodes, code); i >= 0 {
		return TagDataType(i), nil
	}
	return 0, formatError(string(code), "Invalid SAM tag type")
}

// SamType returns the SAM type code of the data type.
func (t TagDataType) SamType() byte {
	if int(t) < len(TagTypeCodes) {
		return TagTypeCodes[t]
	}
	return '?'
}

func (t TagDataType) String() string {
	switch t {
	case TagChar:
		return "Char"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagString:
		return "String"
	case TagByteArray:
		return "ByteArray"
	case TagNumericArray:
		return "NumericArray"
	default:
		return fmt.Sprintf("TagDataType(%d)", byte(t))
	}
}

// A TagValue is the type and the unconverted payload of an optional
// field.
type TagValue struct {
	Type    TagDataType
	Payload string
}

// ParseTagText splits the text of an optional field, such as
// "NM:i:0", into its name and its value. Only the first two colons
// are separators, so the payload may contain colons itself.
func ParseTagText(text string) (name string, value TagValue, err error) {
	fields := strings.SplitN(text, ":", 3)
	if len(fields) < 3 {
		return "", TagValue{}, formatError(text, "Invalid SAM tag syntax")
	}
	if len(fields[1]) != 1 {
		return "", TagValue{}, formatError(text, "Invalid SAM tag type syntax")
	}
	dataType, err := TagDataTypeFromSam(fields[1][0])
	if err != nil {
		return "", TagValue{}, formatError(text, "Invalid SAM tag type %v in", fields[1])
	}
	return fields[0], TagValue{Type: dataType, Payload: fields[2]}, nil
}

func (value TagValue) text() string {
	return string(value.Type.SamType()) + ":" + value.Payload
}

func (value TagValue) expect(t TagDataType) error {
	if value.Type != t {
		return formatError(value.text(), "SAM tag of type %v used as %v", value.Type, t)
	}
	return nil
}

// String returns the payload unchanged.
func (value TagValue) String() string {
	return value.Payload
}

// Int converts the payload of an Integer value.
func (value TagValue) Int() (int64, error) {
	if err := value.expect(TagInteger); err != nil {
		return 0, err
	}
	result, err := strconv.ParseInt(value.Payload, 10, 64)
	if err != nil {
		return 0, formatError(value.text(), "Invalid integer in SAM tag")
	}
	return result, nil
}

// Float converts the payload of a Float or an Integer value.
func (value TagValue) Float() (float64, error) {
	if value.Type != TagInteger {
		if err := value.expect(TagFloat); err != nil {
			return 0, err
		}
	}
	result, err := strconv.ParseFloat(value.Payload, 64)
	if err != nil {
		return 0, formatError(value.text(), "Invalid number in SAM tag")
	}
	return result, nil
}

// Char converts the payload of a Char value.
func (value TagValue) Char() (byte, error) {
	if err := value.expect(TagChar); err != nil {
		return 0, err
	}
	if len(value.Payload) != 1 {
		return 0, formatError(value.text(), "Invalid character in SAM tag")
	}
	return value.Payload[0], nil
}

// Bytes decodes the hexadecimal payload of a ByteArray value.
func (value TagValue) Bytes() ([]byte, error) {
	if err := value.expect(TagByteArray); err != nil {
		return nil, err
	}
	result, err := hex.DecodeString(value.Payload)
	if err != nil {
		return nil, formatError(value.text(), "Invalid byte array in SAM tag")
	}
	return result, nil
}

/*
NumericArray converts the payload of a NumericArray value.

Depending on the element type, the result is of type []int8, []uint8,
[]int16, []uint16, []int32, []uint32, or []float32.
*/
func (value TagValue) NumericArray() (interface{}, error) {
	if err := value.expect(TagNumericArray); err != nil {
		return nil, err
	}
	payload := value.Payload
	if len(payload) == 0 {
		return nil, formatError(value.text(), "Missing element type in SAM numeric array")
	}
	var entries []string
	if len(payload) > 1 {
		if payload[1] != ',' {
			return nil, formatError(value.text(), "Invalid SAM numeric array syntax")
		}
		entries = strings.Split(payload[2:], ",")
	}
	invalid := func() (interface{}, error) {
		return nil, formatError(value.text(), "Invalid entry in SAM numeric array")
	}
	switch ntype := payload[0]; ntype {
	case 'c':
		result := make([]int8, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 8)
			if err != nil {
				return invalid()
			}
			result[i] = int8(val)
		}
		return result, nil
	case 'C':
		result := make([]uint8, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 8)
			if err != nil {
				return invalid()
			}
			result[i] = uint8(val)
		}
		return result, nil
	case 's':
		result := make([]int16, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 16)
			if err != nil {
				return invalid()
			}
			result[i] = int16(val)
		}
		return result, nil
	case 'S':
		result := make([]uint16, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 16)
			if err != nil {
				return invalid()
			}
			result[i] = uint16(val)
		}
		return result, nil
	case 'i':
		result := make([]int32, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseInt(entry, 10, 32)
			if err != nil {
				return invalid()
			}
			result[i] = int32(val)
		}
		return result, nil
	case 'I':
		result := make([]uint32, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseUint(entry, 10, 32)
			if err != nil {
				return invalid()
			}
			result[i] = uint32(val)
		}
		return result, nil
	case 'f':
		result := make([]float32, len(entries))
		for i, entry := range entries {
			val, err := strconv.ParseFloat(entry, 32)
			if err != nil {
				return invalid()
			}
			result[i] = float32(val)
		}
		return result, nil
	default:
		return nil, formatError(value.text(), "Invalid numeric array type %q in", ntype)
	}
}

// FindTagText returns the first of the given optional fields whose
// name is the given name.
func FindTagText(fields []string, name string) (string, bool) {
	for _, field := range fields {
		if (len(field) > len(name)) && (field[len(name)] == ':') && (field[:len(name)] == name) {
			return field, true
		}
	}
	return "", false
}
