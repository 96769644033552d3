package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// XYField is one named zone-indexed column of the .xy output
type XYField struct {
	Name   string
	Values []float64
}

// WriteXY writes each field as a "# name" header followed by one
// "index value" line per zone.
func WriteXY(w io.Writer, fields ...XYField) (err error) {
	var (
		bw = bufio.NewWriter(w)
	)
	for _, f := range fields {
		if _, err = fmt.Fprintf(bw, "#  %s\n", f.Name); err != nil {
			return
		}
		for z, val := range f.Values {
			if _, err = fmt.Fprintf(bw, "%8d%18.8e\n", z+1, val); err != nil {
				return
			}
		}
	}
	return bw.Flush()
}

// ReadXY parses the output of WriteXY
func ReadXY(r io.Reader) (fields []XYField, err error) {
	var (
		scanner = bufio.NewScanner(r)
		cur     = -1
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, "#") {
			fields = append(fields, XYField{Name: strings.TrimSpace(line[1:])})
			cur = len(fields) - 1
			continue
		}
		if cur < 0 {
			return nil, fmt.Errorf("line %d: data before first field header", lineNum)
		}
		cols := strings.Fields(line)
		if len(cols) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, have %d", lineNum, len(cols))
		}
		var val float64
		if val, err = strconv.ParseFloat(cols[1], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		fields[cur].Values = append(fields[cur].Values, val)
	}
	err = scanner.Err()
	return
}
