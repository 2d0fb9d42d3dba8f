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

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/exascience/elmap/mapping"
)

// ExplainHelp is the help string for this command.
const ExplainHelp = "explain parameters:\n" +
	"elmap explain cigar-string [cigar-string ...]\n"

func explainCigar(out io.Writer, cigar string) error {
	ops, err := mapping.ScanCigar(cigar)
	if err != nil {
		return err
	}
	left, right := mapping.ClippedLengths(ops)
	fmt.Fprintf(out, "%v\treference length %v\tread length %v\taligned %v\tclipped %v/%v\n",
		mapping.FormatCigar(ops), mapping.ReferenceLength(ops), mapping.ReadLength(ops),
		mapping.AlignedReadMask(ops).Count(), left, right)
	for _, op := range ops {
		fmt.Fprintf(out, "\t%v\t%v\n", op.Kind.Name(), op.Len)
	}
	return nil
}

// Explain implements the elmap explain command.
func Explain() error {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, ExplainHelp)
		os.Exit(1)
	}
	out := bufio.NewWriter(os.Stdout)
	for _, cigar := range os.Args[2:] {
		if err := explainCigar(out, exitOnHelp(cigar, ExplainHelp)); err != nil {
			_ = out.Flush()
			return err
		}
	}
	return out.Flush()
}
