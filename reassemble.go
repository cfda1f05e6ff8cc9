/*
Copyright © 2018 the txblend authors.
This file is part of txblend.

txblend is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

txblend is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with txblend.  If not, see <http://www.gnu.org/licenses/>.
*/

package txblend

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A record is one reassembled logical record: the origin date fields from
// its header plus the time-slot values gathered from one or more physical
// lines. Unpopulated slots are NaN.
type record struct {
	year, month, day int
	label            string
	values           []float64
}

// mergeState names the phases of the reassembly state machines.
type mergeState int

const (
	// awaitingHeader: no record is open; only a header line is legal.
	awaitingHeader mergeState = iota
	// accumulating: a record is open and continuation lines extend it.
	accumulating
)

// skippable reports whether ln is ignored in every TxBLEND format:
// blank after trimming, or a '#' comment.
func skippable(ln string) bool {
	t := strings.TrimSpace(ln)
	return t == "" || strings.HasPrefix(t, "#")
}

// chunkStrings cuts s into width-byte pieces; the final piece may be
// shorter.
func chunkStrings(s string, width int) []string {
	var chunks []string
	for i := 0; i < len(s); i += width {
		end := i + width
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

// parseChunks cuts s into width-byte pieces and parses each as a number.
// All-blank pieces become NaN, keeping later slots aligned.
func parseChunks(s string, width int) ([]float64, error) {
	return parseChunkFields(chunkStrings(s, width))
}

func parseChunkFields(chunks []string) ([]float64, error) {
	var vals []float64
	for _, c := range chunks {
		field := strings.TrimSpace(c)
		if field == "" {
			vals = append(vals, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric field '%s'", field)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseTokens(tokens []string) ([]float64, error) {
	vals := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("bad numeric field '%s'", tok)
		}
		vals[i] = v
	}
	return vals, nil
}

// payloadFunc extracts the slot values carried by one continuation line.
type payloadFunc func(ln string) ([]float64, error)

// inflowPayload takes the fixed 6-byte value fields that follow the
// 13-byte date-and-sequence prefix of an inflow continuation line.
func inflowPayload(ln string) ([]float64, error) {
	return parseChunks(strings.TrimRight(ln[13:], " \t"), 6)
}

// precipPayload takes the whitespace-delimited values after the three
// date-and-sequence tokens of a precip continuation line.
func precipPayload(ln string) ([]float64, error) {
	f := strings.Fields(ln)
	if len(f) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(f))
	}
	return parseTokens(f[3:])
}

// readMonthlyRecords reassembles the inflow/precip family: a line with
// exactly 3 comma-separated fields opens a record and carries only its
// year and month; the following continuation lines carry the daily values.
// Byte 12 of a continuation line is its sequence digit, and '3' marks the
// final line of the record. The payload function is the one part that
// differs between the inflow and precip sub-formats.
func readMonthlyRecords(r io.Reader, name string, payload payloadFunc) ([]record, error) {
	var recs []record
	var rec record
	state := awaitingHeader

	scan := bufio.NewScanner(r)
	lineno := 0
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if skippable(ln) {
			continue
		}
		if parts := strings.Split(ln, ","); len(parts) == 3 {
			// Header line. An unterminated open record is discarded,
			// matching the model's own tolerance for truncated months.
			year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("txblend: %s: line %d: bad year '%s'", name, lineno, parts[0])
			}
			month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("txblend: %s: line %d: bad month '%s'", name, lineno, parts[1])
			}
			rec = record{year: year, month: month}
			state = accumulating
			continue
		}
		if state != accumulating {
			return nil, fmt.Errorf("txblend: %s: line %d: continuation line before any record header", name, lineno)
		}
		if len(ln) < 13 {
			return nil, fmt.Errorf("txblend: %s: line %d: continuation line shorter than 13 bytes", name, lineno)
		}
		vals, err := payload(ln)
		if err != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: %v", name, lineno, err)
		}
		rec.values = append(rec.values, vals...)
		if ln[12] == '3' { // final line of the record
			recs = append(recs, rec)
			state = awaitingHeader
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", name, err)
	}
	return recs, nil
}

// readPcpRecords reassembles a TxRR *.pcp file. Each record spans four
// lines tagged by their leading digit: '1' opens the record and carries
// the watershed code, year, and month ahead of the first 8-byte value
// fields; '2' and '3' are pure 8-byte continuations; '4' closes the
// record, its last two fields being trailing metadata that is dropped.
// The watershed code of the file (last one seen) is returned with the
// records.
func readPcpRecords(r io.Reader, name string) ([]record, string, error) {
	var recs []record
	var rec record
	var ws string
	state := awaitingHeader

	scan := bufio.NewScanner(r)
	lineno := 0
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if skippable(ln) {
			continue
		}
		switch ln[0] {
		case '1':
			if len(ln) < 17 {
				return nil, "", fmt.Errorf("txblend: %s: line %d: record header shorter than 17 bytes", name, lineno)
			}
			ws = strings.TrimSpace(ln[4:9])
			year, err := strconv.Atoi(strings.TrimSpace(ln[9:13]))
			if err != nil {
				return nil, "", fmt.Errorf("txblend: %s: line %d: bad year '%s'", name, lineno, ln[9:13])
			}
			month, err := strconv.Atoi(strings.TrimSpace(ln[13:15]))
			if err != nil {
				return nil, "", fmt.Errorf("txblend: %s: line %d: bad month '%s'", name, lineno, ln[13:15])
			}
			vals, err := parseChunks(ln[17:], 8)
			if err != nil {
				return nil, "", fmt.Errorf("txblend: %s: line %d: %v", name, lineno, err)
			}
			rec = record{year: year, month: month, label: ws, values: vals}
			state = accumulating
		case '2', '3':
			if state != accumulating {
				return nil, "", fmt.Errorf("txblend: %s: line %d: continuation line before any record header", name, lineno)
			}
			vals, err := parseChunks(ln[1:], 8)
			if err != nil {
				return nil, "", fmt.Errorf("txblend: %s: line %d: %v", name, lineno, err)
			}
			rec.values = append(rec.values, vals...)
		case '4':
			if state != accumulating {
				return nil, "", fmt.Errorf("txblend: %s: line %d: terminal line before any record header", name, lineno)
			}
			// The last two fields of a terminal line are trailing
			// metadata, dropped before parsing.
			chunks := chunkStrings(ln[1:], 8)
			if len(chunks) < 2 {
				return nil, "", fmt.Errorf("txblend: %s: line %d: terminal line carries fewer than 2 fields", name, lineno)
			}
			vals, err := parseChunkFields(chunks[:len(chunks)-2])
			if err != nil {
				return nil, "", fmt.Errorf("txblend: %s: line %d: %v", name, lineno, err)
			}
			rec.values = append(rec.values, vals...)
			recs = append(recs, rec)
			state = awaitingHeader
		default:
			return nil, "", fmt.Errorf("txblend: %s: line %d: unrecognized line tag '%c'", name, lineno, ln[0])
		}
	}
	if err := scan.Err(); err != nil {
		return nil, "", fmt.Errorf("txblend: reading %s: %w", name, err)
	}
	return recs, ws, nil
}

// readAverageBlocks reassembles the vel/avesalD family: a line whose first
// token is "Average" opens a record, with the date in tokens 4, 6, and 8
// (year, month, day). Any later line containing a letter is column-header
// noise and is skipped; all other lines carry values that extend the open
// record. A record is closed by the next "Average" line or by the end of
// the file.
func readAverageBlocks(r io.Reader, name string) ([]record, error) {
	var recs []record
	var rec record
	state := awaitingHeader

	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	lineno := 0
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if skippable(ln) {
			continue
		}
		f := strings.Fields(ln)
		if f[0] == "Average" {
			if state == accumulating {
				recs = append(recs, rec)
			}
			if len(f) < 9 {
				return nil, fmt.Errorf("txblend: %s: line %d: short 'Average' header", name, lineno)
			}
			year, err1 := strconv.Atoi(f[4])
			month, err2 := strconv.Atoi(f[6])
			day, err3 := strconv.Atoi(f[8])
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("txblend: %s: line %d: bad date in 'Average' header", name, lineno)
			}
			if !validDate(year, month, day) {
				return nil, fmt.Errorf("txblend: %s: line %d: invalid date %d-%d-%d", name, lineno, year, month, day)
			}
			rec = record{year: year, month: month, day: day}
			state = accumulating
			continue
		}
		if hasAlpha(ln) {
			continue
		}
		if state != accumulating {
			return nil, fmt.Errorf("txblend: %s: line %d: data line before any 'Average' header", name, lineno)
		}
		vals, err := parseTokens(f)
		if err != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: %v", name, lineno, err)
		}
		rec.values = append(rec.values, vals...)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", name, err)
	}
	if state == accumulating { // flush the final pending record
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("txblend: %s: no 'Average' header found before end of file", name)
	}
	return recs, nil
}

func hasAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}
