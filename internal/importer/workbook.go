package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceRow — строка книги вместе с адресом в исходном файле. Адрес идёт в
// предупреждения партии, чтобы пользователь нашёл строку в своей таблице.
type SourceRow struct {
	Location string
	Cells    Row
}

// ReadWorkbook читает загруженный файл (xlsx/xls или csv) и возвращает строки
// всех листов одним потоком. Заголовки нормализуются здесь же, чтобы дальше
// по конвейеру ходили только канонические ключи.
func ReadWorkbook(r io.Reader, filename string) ([]SourceRow, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(r)
	}
	return readExcel(r)
}

func readExcel(r io.Reader) ([]SourceRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var out []SourceRow
	// Все листы в один поток: структура файла может меняться со временем.
	// Нумерация строк в адресе — своя у каждого листа, как её видит
	// пользователь.
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		headers := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			headers[i] = NormalizeHeader(h)
		}
		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			row := make(Row, len(headers))
			for colIdx, h := range headers {
				if h == "" {
					continue
				}
				var raw string
				if colIdx < len(rows[rowIdx]) {
					raw = rows[rowIdx][colIdx]
				}
				row[h] = excelCell(f, sheet, colIdx, rowIdx, raw)
			}
			out = append(out, SourceRow{
				Location: fmt.Sprintf("%s row %d", sheet, rowIdx+1),
				Cells:    row,
			})
		}
	}
	return out, nil
}

// excelCell классифицирует сырое значение по типу ячейки. Числовые ячейки с
// датами приходят как date-serial и разбираются уже коэрсером дат.
func excelCell(f *excelize.File, sheet string, colIdx, rowIdx int, raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return AbsentCell()
	}
	axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err == nil {
		switch t, _ := f.GetCellType(sheet, axis); t {
		case excelize.CellTypeBool:
			return BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
		case excelize.CellTypeDate:
			if serial, err := strconv.ParseFloat(raw, 64); err == nil {
				if dt, err := excelize.ExcelDateToTime(serial, false); err == nil {
					return DateCell(dt)
				}
			}
		}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberCell(n)
	}
	return TextCell(raw)
}

func readCSV(r io.Reader) ([]SourceRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}
	out := make([]SourceRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row := make(Row, len(headers))
		for colIdx, h := range headers {
			if h == "" {
				continue
			}
			var raw string
			if colIdx < len(rec) {
				raw = rec[colIdx]
			}
			row[h] = csvCell(raw)
		}
		// Заголовок — строка 1, первая строка данных — 2.
		out = append(out, SourceRow{
			Location: fmt.Sprintf("row %d", i+2),
			Cells:    row,
		})
	}
	return out, nil
}

func csvCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AbsentCell()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberCell(n)
	}
	if strings.EqualFold(trimmed, "true") || strings.EqualFold(trimmed, "false") {
		return BoolCell(strings.EqualFold(trimmed, "true"))
	}
	return TextCell(raw)
}
