// Package audit turns raw site-audit exports into client profiles.
package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"solardevis-pro/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Column layout of the audit export, fixed by position:
// client; site; address; date; agent; device; hourly kWh; peak W; duration h; quantity
const auditColumns = 10

// ParseCSV parses a semicolon-delimited audit export into line items.
// The first line is a header and is discarded; blank lines are skipped.
// Parsing is total: malformed input never produces an error, only fewer
// rows or zeroed numeric fields.
func ParseCSV(text string) []models.LineItem {
	lines := splitLines(text)
	if len(lines) < 2 {
		return []models.LineItem{}
	}

	items := make([]models.LineItem, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ";")
		values := make([]string, auditColumns)
		for i := 0; i < auditColumns && i < len(fields); i++ {
			values[i] = cleanField(fields[i])
		}
		items = append(items, itemFromValues(values))
	}
	return items
}

// ParseXLSX reads the same audit export saved as an Excel workbook.
// Rows come from the first sheet with the same positional columns as the CSV.
func ParseXLSX(r io.Reader) ([]models.LineItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return []models.LineItem{}, nil
	}

	items := make([]models.LineItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		blank := true
		values := make([]string, auditColumns)
		for i := 0; i < auditColumns && i < len(row); i++ {
			values[i] = strings.TrimSpace(row[i])
			if values[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		items = append(items, itemFromValues(values))
	}
	return items, nil
}

func itemFromValues(v []string) models.LineItem {
	return models.LineItem{
		ID:              uuid.NewString(),
		Client:          v[0],
		SiteName:        v[1],
		Address:         v[2],
		VisitDate:       v[3],
		Agent:           v[4],
		Device:          v[5],
		HourlyKWh:       parseDecimal(v[6]),
		PeakW:           parseDecimal(v[7]),
		DurationHours:   parseDecimal(v[8]),
		Quantity:        parseQuantity(v[9]),
		UnitPrice:       0, // not present in the export; set in the editor
		CountsForSizing: true,
	}
}

// splitLines splits on any CR/LF combination and strips a leading BOM.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline is not an extra data row.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

// parseDecimal accepts a decimal comma as well as a decimal point.
// Unparsable values yield 0, never an error.
func parseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseQuantity(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
