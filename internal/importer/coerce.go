package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Разрешённые форматы для дат, пришедших свободным текстом. Явный список
// вместо угадывания локали: всё, что не подошло, считается отсутствующим.
var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

const isoDate = "2006-01-02"

// CoerceString приводит ячейку к строке или к отсутствию. Пустые строки и
// литерал "nan" (в любом регистре) считаются отсутствующими.
func CoerceString(c Cell) *string {
	switch c.Kind {
	case CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" || strings.EqualFold(s, "nan") {
			return nil
		}
		return &s
	case CellNumber:
		s := strconv.FormatFloat(c.Number, 'f', -1, 64)
		return &s
	case CellBool:
		s := strconv.FormatBool(c.Bool)
		return &s
	case CellDate:
		if c.Date.IsZero() {
			return nil
		}
		s := c.Date.UTC().Format(isoDate)
		return &s
	default:
		return nil
	}
}

// CoerceDate приводит ячейку к календарной дате YYYY-MM-DD (UTC). Числа
// трактуются как date-serial книги, текст разбирается по явному списку
// форматов. Второй результат — true, если сработал текстовый путь: он
// наименее надёжный и помечается предупреждением на уровне партии.
func CoerceDate(c Cell) (*string, bool) {
	switch c.Kind {
	case CellDate:
		if c.Date.IsZero() {
			return nil, false
		}
		s := c.Date.UTC().Format(isoDate)
		return &s, false
	case CellNumber:
		dt, err := excelize.ExcelDateToTime(c.Number, false)
		if err != nil || dt.IsZero() {
			return nil, false
		}
		s := dt.UTC().Format(isoDate)
		return &s, false
	case CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" || strings.EqualFold(s, "nan") {
			return nil, false
		}
		for _, layout := range textDateLayouts {
			if dt, err := time.Parse(layout, s); err == nil {
				out := dt.UTC().Format(isoDate)
				return &out, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
