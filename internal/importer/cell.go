// Package importer — конвейер импорта из табличного файла: чтение книги,
// нормализация заголовков, приведение значений ячеек, сборка записей и
// сверка партии с уже сохранённой коллекцией.
package importer

import "time"

type CellKind int

const (
	CellAbsent CellKind = iota
	CellText
	CellNumber
	CellBool
	CellDate
)

// Cell — закрытый вариант над значением ячейки. Коэрсеры разбирают Kind
// исчерпывающе вместо проверок типов во время выполнения.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
	Date   time.Time
}

func AbsentCell() Cell { return Cell{Kind: CellAbsent} }
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// Row — одна строка книги: нормализованный заголовок → ячейка.
type Row map[string]Cell
