package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"turnovercli/internal/dataprocessing"
	"turnovercli/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeTable decodes raw file bytes into a wide table, dispatching on the
// key's extension. Anything that is not .xlsx is treated as CSV.
func decodeTable(key string, data []byte) (*dataprocessing.WideTable, error) {
	if strings.EqualFold(filepath.Ext(key), ".xlsx") {
		return decodeXLSX(key, data)
	}
	return decodeCSV(key, data)
}

func decodeCSV(key string, data []byte) (*dataprocessing.WideTable, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("malformed CSV in %s", key), err)
	}

	table := &dataprocessing.WideTable{Key: key}
	if len(rows) > 0 {
		table.Header = rows[0]
		table.Rows = rows[1:]
	}
	return table, nil
}

func decodeXLSX(key string, data []byte) (*dataprocessing.WideTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to open workbook %s", key), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewFetchError(fmt.Sprintf("workbook %s has no sheets", key), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to read sheet %q in %s", sheets[0], key), err)
	}

	table := &dataprocessing.WideTable{Key: key}
	if len(rows) > 0 {
		table.Header = rows[0]
		table.Rows = rows[1:]
	}
	return table, nil
}
