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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/elmap/mapping"
)

const testSam = "@HD\tVN:1.6\tSO:coordinate\n" +
	"@SQ\tSN:chr1\tLN:1000\n" +
	"r1\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\tIIII\tNM:i:0\tMD:Z:4\n" +
	"r2\t0\tchr1\t5\t60\t2S2M1I\t*\t0\t0\tACGTA\tIIIII\tNM:i:1\n" +
	"r3\t4\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII\n" +
	"r4\t0\tchr1\t9\t60\t3M\t*\t0\t0\tACGT\tIIII\tNM:i:0\n" +
	"r5\t0\tchr1\t9\t60\t3M2\t*\t0\t0\tACG\tIII\tNM:i:0\n"

func TestCheckRecords(t *testing.T) {
	result, err := checkRecords(strings.NewReader(testSam), []string{"NM", "MD"}, false)
	require.NoError(t, err)
	assert.Equal(t, 5, result.records)
	assert.Equal(t, 1, result.unmapped)
	assert.Equal(t, 1, result.malformed)
	assert.Equal(t, 1, result.seqMismatches)
	assert.Equal(t, int64(4+2+3), result.operations[mapping.Match])
	assert.Equal(t, int64(1), result.operations[mapping.Insertion])
	assert.Equal(t, int64(2), result.operations[mapping.SoftClip])
	assert.Equal(t, 1, result.missingTags["NM"])
	assert.Equal(t, 4, result.missingTags["MD"])
}

func TestCheckRecordsStrict(t *testing.T) {
	_, err := checkRecords(strings.NewReader(testSam), nil, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mapping.ErrFormat))
	assert.Contains(t, err.Error(), "r5")
}

func TestCheckRecordsMalformedLine(t *testing.T) {
	_, err := checkRecords(strings.NewReader("r1\t0\tchr1\n"), nil, false)
	assert.Error(t, err)
}

func TestReportMerge(t *testing.T) {
	r1, r2 := newReport(), newReport()
	r1.records, r2.records = 2, 3
	r1.operations[mapping.Match] = 10
	r2.operations[mapping.Match] = 5
	r2.missingTags["NM"] = 1
	r1.merge(r2)
	assert.Equal(t, 5, r1.records)
	assert.Equal(t, int64(15), r1.operations[mapping.Match])
	assert.Equal(t, 1, r1.missingTags["NM"])
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"NM", "MD"}, splitList("NM, MD,,"))
	assert.Nil(t, splitList(""))
}

func TestExplainCigar(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, explainCigar(&out, "2S8M2I66M"))
	assert.Equal(t,
		"2S8M2I66M\treference length 74\tread length 78\taligned 74\tclipped 2/0\n"+
			"\tSoftClip\t2\n\tMatch\t8\n\tInsertion\t2\n\tMatch\t66\n",
		out.String())

	err := explainCigar(&out, "10M5")
	assert.True(t, errors.Is(err, mapping.ErrFormat))

	err = explainCigar(&out, "-10M")
	assert.True(t, errors.Is(err, mapping.ErrFormat))

	err = explainCigar(&out, "2147483647M2147483647M")
	assert.True(t, errors.Is(err, mapping.ErrFormat))
}

func TestIsHelpFlag(t *testing.T) {
	for _, s := range []string{"-h", "--h", "-help", "--help"} {
		assert.True(t, isHelpFlag(s), s)
	}
	for _, s := range []string{"-10M", "-", "76M", "help"} {
		assert.False(t, isHelpFlag(s), s)
	}
}

func TestCheckRecordsOverlongCigar(t *testing.T) {
	line := "r1\t0\tchr1\t1\t60\t2147483647M1I\t*\t0\t0\tACGT\tIIII\n"
	result, err := checkRecords(strings.NewReader(line), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.malformed)
	assert.Equal(t, 0, result.seqMismatches)
}
