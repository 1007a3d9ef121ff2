package importer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Column describes one column of the import template.
type Column struct {
	Name        string
	Required    bool
	Description string
}

// Columns lists the template columns in sheet order.
var Columns = []Column{
	{"name", true, "Product name"},
	{"description", true, "Full description; its first sentence doubles as a key feature when none is given"},
	{"keyFeatures", true, "Comma separated list (aliases: features, highlights)"},
	{"price", true, "Selling price, greater than 0"},
	{"originalPrice", false, "Price before discount"},
	{"category", true, "Category name, used when subCategory and mainCategory are empty"},
	{"mainCategory", false, "Main category name"},
	{"subCategory", false, "Sub category name, takes priority over category"},
	{"images", true, "Comma separated media URLs"},
	{"videos", false, "Comma separated media URLs"},
	{"quantity", true, "Stock count, 0 or more (alias: stock)"},
	{"sku", false, "Stock keeping unit"},
	{"isNew", false, "true/false, yes/no or 1/0"},
	{"isOnSale", false, "true/false, yes/no or 1/0"},
	{"offerPercentage", false, "Discount between 0 and 100"},
	{"sizeConstraints", false, "Free text sizing notes"},
}

func headerRow() []string {
	headers := make([]string, len(Columns))
	for i, col := range Columns {
		headers[i] = col.Name
	}
	return headers
}

// WriteCSVTemplate writes the header-only CSV template.
func WriteCSVTemplate(w io.Writer) error {
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(headerRow()); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSXTemplate writes a workbook whose first sheet holds the header row
// and whose second sheet explains every column.
func WriteXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Products"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, col := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Name)
		style := headerStyle
		if col.Required {
			style = requiredStyle
		}
		f.SetCellStyle(sheetName, cell, cell, style)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	const help = "Instructions"
	if _, err := f.NewSheet(help); err != nil {
		return err
	}
	f.SetCellValue(help, "A1", "Column")
	f.SetCellValue(help, "B1", "Required")
	f.SetCellValue(help, "C1", "Description")
	for i, col := range Columns {
		row := i + 2
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue(help, fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue(help, fmt.Sprintf("B%d", row), required)
		f.SetCellValue(help, fmt.Sprintf("C%d", row), col.Description)
	}
	f.SetColWidth(help, "C", "C", 80)

	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}
