// Package pricelist reads treatment and service price lists exported from
// spreadsheets into catalog items.
package pricelist

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/clinicdesk/internal/catalog"
	enc "github.com/MrJamesThe3rd/clinicdesk/internal/encoding"
)

// Parser auto-detects the delimiter, the text encoding and the column layout.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return parseRows(&positional, positionalIndex(), rows, -1)
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
}

// sniffDelimiter picks ';' or ',' from the first non-blank line.
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.Count(line, ";") >= strings.Count(line, ",") && strings.Contains(line, ";") {
			return ';'
		}

		return ','
	}

	return ','
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func positionalIndex() colIndex {
	cols := make(colIndex, 4)
	for i := range 4 {
		cols[strconv.Itoa(i)] = i
	}

	return cols
}

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into catalog params. headerIdx is the 0-based
// index of the header row, or -1 when there is none.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerIdx int) ([]catalog.CreateParams, error) {
	nameIdx := cols[p.NameCol]
	priceIdx := cols[p.PriceCol]
	kindIdx := optionalIndex(cols, p.KindCol)
	activeIdx := optionalIndex(cols, p.ActiveCol)

	var items []catalog.CreateParams

	for i, row := range rows {
		rowNum := headerIdx + i + 2 // 1-based

		name := cellValue(row, nameIdx)
		rawPrice := cellValue(row, priceIdx)

		if name == "" && rawPrice == "" {
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("row %d: missing name", rowNum)
		}

		price, err := parsePrice(rawPrice)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", rowNum, rawPrice)
		}

		if price.IsNegative() {
			return nil, fmt.Errorf("row %d: negative price %q", rowNum, rawPrice)
		}

		kind := p.DefaultKind

		if s := cellValue(row, kindIdx); s != "" {
			k, ok := catalog.ParseKind(s)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown kind %q", rowNum, s)
			}

			kind = k
		}

		active, ok := parseActive(cellValue(row, activeIdx))
		if !ok {
			return nil, fmt.Errorf("row %d: invalid active flag %q", rowNum, cellValue(row, activeIdx))
		}

		items = append(items, catalog.CreateParams{
			Name:      name,
			Kind:      kind,
			UnitPrice: price,
			Active:    active,
		})
	}

	return items, nil
}

func optionalIndex(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	idx, ok := cols[name]
	if !ok {
		return -1
	}

	return idx
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
