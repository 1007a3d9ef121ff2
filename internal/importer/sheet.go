package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyFile         = errors.New("file is empty or has no data rows")
	ErrUnsupportedFormat = errors.New("only .xlsx and .csv files are supported")
)

// Format is a supported upload file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatOf picks the format from a file name's extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", ErrUnsupportedFormat
}

// Record is one data row keyed by the header row, with the line it was read from.
type Record struct {
	Line   int
	Values map[string]string
}

// ParseFile reads rows from r in the given format and validates them.
// Data rows are numbered as the spreadsheet or text editor shows them, the
// header being row 1. Blank rows are skipped but still count.
func ParseFile(r io.Reader, format Format) (ParseResult, error) {
	var (
		records []Record
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = ReadXLSX(r)
	case FormatCSV:
		records, err = ReadCSV(r)
	default:
		return ParseResult{}, ErrUnsupportedFormat
	}
	if err != nil {
		return ParseResult{}, err
	}

	rows := make([]numberedRow, 0, len(records))
	for _, record := range records {
		if blankRecord(record.Values) {
			continue
		}
		rows = append(rows, numberedRow{number: record.Line, values: FromStrings(record.Values)})
	}
	if len(rows) == 0 {
		return ParseResult{}, ErrEmptyFile
	}
	return parseRows(rows), nil
}

// ReadXLSX returns the data rows of the first sheet keyed by the header row.
// Blank rows are kept so positions match sheet rows.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	if len(excelRows) < 2 {
		return nil, ErrEmptyFile
	}

	headers := excelRows[0]
	records := make([]Record, 0, len(excelRows)-1)
	for n, excelRow := range excelRows[1:] {
		record := make(map[string]string, len(headers))
		for i, value := range excelRow {
			if i < len(headers) {
				record[headers[i]] = strings.TrimSpace(value)
			}
		}
		records = append(records, Record{Line: n + 2, Values: record})
	}
	return records, nil
}

// linePositioner is implemented by *csv.Reader.
type linePositioner interface {
	FieldPos(field int) (line, column int)
}

// ReadCSV returns the data rows of a CSV file keyed by its header row.
// The reader drops blank lines, so each record carries the line it started on.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := gocsv.DefaultCSVReader(r)
	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	positions, _ := reader.(linePositioner)

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}

		line := len(records) + 2
		if positions != nil {
			line, _ = positions.FieldPos(0)
		}
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				record[header] = fields[i]
			}
		}
		records = append(records, Record{Line: line, Values: record})
	}
	return records, nil
}

func blankRecord(record map[string]string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
