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
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/exascience/pargo/pipeline"
	"github.com/google/uuid"

	"github.com/exascience/elmap/internal"
	"github.com/exascience/elmap/mapping"
	"github.com/exascience/elmap/sam"
)

// CheckHelp is the help string for this command.
const CheckHelp = "check parameters:\n" +
	"elmap check sam-file\n" +
	"[--tags list]\n" +
	"[--strict]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

type report struct {
	records, unmapped, malformed, seqMismatches int
	operations                                  [len(mapping.CigarOperations)]int64
	missingTags                                 map[string]int
}

func newReport() *report {
	return &report{missingTags: make(map[string]int)}
}

func (r *report) merge(other *report) {
	r.records += other.records
	r.unmapped += other.unmapped
	r.malformed += other.malformed
	r.seqMismatches += other.seqMismatches
	for kind, bases := range other.operations {
		r.operations[kind] += bases
	}
	for name, count := range other.missingTags {
		r.missingTags[name] += count
	}
}

// interpret resolves the given tags and the CIGAR string of aln.
// Absent tags are counted, all other errors are returned.
func (r *report) interpret(aln *sam.Alignment, tagNames []string) error {
	r.records++
	for _, name := range tagNames {
		if _, err := aln.Tag(name); err != nil {
			if errors.Is(err, mapping.ErrNoSuchField) {
				r.missingTags[name]++
				continue
			}
			return err
		}
	}
	if aln.IsUnmapped() {
		r.unmapped++
		return nil
	}
	ops, err := aln.Operations()
	if err != nil {
		return err
	}
	for _, op := range ops {
		r.operations[op.Kind] += int64(op.Len)
	}
	ok, err := aln.CheckSeqLength()
	if err != nil {
		return err
	}
	if !ok {
		r.seqMismatches++
	}
	return nil
}

func (r *report) log(runID uuid.UUID, input string, tagNames []string) {
	log.Printf("Check %v of %v:\n", runID, input)
	log.Printf("%v records, %v unmapped, %v malformed, %v with a SEQ length that does not match the CIGAR string.\n",
		r.records, r.unmapped, r.malformed, r.seqMismatches)
	for kind, bases := range r.operations {
		if bases > 0 {
			log.Printf("%v operations cover %v bases.\n", mapping.OperationKind(kind).Name(), bases)
		}
	}
	for _, name := range tagNames {
		log.Printf("Tag %v is missing in %v records.\n", name, r.missingTags[name])
	}
}

// checkRecords interprets all alignment lines read from reader in
// parallel. Malformed records are counted and logged, unless strict is
// set, in which case the first one aborts the check.
func checkRecords(reader io.Reader, tagNames []string, strict bool) (*report, error) {
	total := newReport()
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			partial := newReport()
			for _, line := range data.([]string) {
				if (line == "") || sam.IsHeaderLine(line) {
					continue
				}
				aln, err := sam.ParseAlignment(line)
				if err != nil {
					p.SetErr(err)
					return partial
				}
				if err := partial.interpret(aln, tagNames); err != nil {
					if strict || !errors.Is(err, mapping.ErrFormat) {
						p.SetErr(fmt.Errorf("%w, while interpreting SAM alignment %v", err, aln.QNAME))
						return partial
					}
					partial.malformed++
					log.Printf("Warning: %v, in SAM alignment %v\n", err, aln.QNAME)
				}
			}
			return partial
		})),
		pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
			total.merge(data.(*report))
			return data
		})),
	)
	if err := internal.RunPipeline(&p); err != nil {
		return nil, err
	}
	return total, nil
}

// Check implements the elmap check command.
func Check() error {
	var (
		tags, logPath string
		strict, timed bool
	)

	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	flags.StringVar(&tags, "tags", "", "comma-separated names of optional fields to interpret in every record")
	flags.BoolVar(&strict, "strict", false, "fail on the first malformed record")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", os.Getenv(LogPathEnv), "write log files to the specified directory")
	parseFlags(flags, 3, CheckHelp)

	input := getFilename(os.Args[2], CheckHelp)

	setLogOutput(logPath)

	if !checkExist("", input) {
		fmt.Fprint(os.Stderr, CheckHelp)
		return fmt.Errorf("cannot read %v", input)
	}
	fullInput, err := internal.FullPathname(input)
	if err != nil {
		return err
	}
	tagNames := splitList(tags)
	runID := uuid.New()

	var result *report
	err = timedRun(timed, "Interpreting mapping records.", func() (err error) {
		f := internal.FileOpen(input)
		defer internal.Close(f)
		result, err = checkRecords(f, tagNames, strict)
		return
	})
	if err != nil {
		return err
	}
	result.log(runID, fullInput, tagNames)
	return nil
}
