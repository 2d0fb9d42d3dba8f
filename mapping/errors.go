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
	"fmt"
)

var (
	// ErrIllegalState is returned when a query is not applicable to
	// the record, for example asking for the alignment of an unmapped
	// record. It indicates a bug in the caller.
	ErrIllegalState = errors.New("illegal state")

	// ErrFormat is returned when a CIGAR string or an optional field
	// does not conform to the SAM grammar. All *FormatError values
	// unwrap to ErrFormat.
	ErrFormat = errors.New("invalid format")

	// ErrNoSuchField is returned when a record does not have the
	// requested optional field.
	ErrNoSuchField = errors.New("no such field")
)

// A FormatError describes text that could not be interpreted.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v %q", e.Reason, e.Input)
}

// Unwrap returns ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func formatError(input, format string, v ...interface{}) error {
	return &FormatError{Input: input, Reason: fmt.Sprintf(format, v...)}
}
