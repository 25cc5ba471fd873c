package extraction

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxMagic is the zip local-file-header signature; XLSX workbooks are zip
// containers.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// SheetRows reads raw upload bytes into a rectangular row grid. XLSX
// workbooks are detected by magic bytes and opened in memory; anything else
// is treated as delimited text (comma or tab).
func SheetRows(raw []byte) ([][]string, error) {
	if bytes.HasPrefix(raw, xlsxMagic) {
		return workbookRows(raw)
	}
	return delimitedRows(raw)
}

// workbookRows opens an XLSX workbook and returns the rows of the sheet most
// likely to carry the report table. Multi-sheet workbooks frequently lead
// with a cover or chart sheet, so every sheet's leading rows are scored for
// recognizable headers and the best one wins.
func workbookRows(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	var bestRows [][]string
	bestScore := -1

	for _, name := range sheets {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil || len(rows) == 0 {
			continue
		}

		score := 0
		if _, cm, ok := FindHeaderRow(rows, 10); ok {
			score = cm.Score()
		}
		if score > bestScore {
			bestScore = score
			bestRows = rows
		}
	}

	if bestRows == nil {
		return nil, fmt.Errorf("workbook contains no readable rows")
	}
	return bestRows, nil
}

// delimitedRows parses CSV or TSV text, tolerating a UTF-8 BOM and ragged
// row lengths.
func delimitedRows(raw []byte) ([][]string, error) {
	content := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Tab-delimited exports are common enough to sniff for.
	if firstLine, _, found := strings.Cut(string(content), "\n"); found || firstLine != "" {
		if strings.Contains(firstLine, "\t") && !strings.Contains(firstLine, ",") {
			reader.Comma = '\t'
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}
	return rows, nil
}
