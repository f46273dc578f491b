package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/maintdesk/workorder-service/internal/errs"
)

// located нумерует строки как в одностраничном csv: заголовок — строка 1.
func located(rows ...Row) []SourceRow {
	out := make([]SourceRow, len(rows))
	for i, r := range rows {
		out[i] = SourceRow{Location: fmt.Sprintf("row %d", i+2), Cells: r}
	}
	return out
}

func TestParseBatchRejectsFileWithoutExternalIDs(t *testing.T) {
	rows := located(
		Row{keyTaskName: TextCell("Fix door")},
		Row{keyDescription: TextCell("broken hinge")},
	)
	_, err := ParseBatch(rows, testNow)
	if !errors.Is(err, errs.ErrNoExternalID) {
		t.Fatalf("err = %v, want ErrNoExternalID", err)
	}
}

func TestParseBatchSkipsNoiseRows(t *testing.T) {
	rows := located(
		Row{keyExternalID: TextCell("WT-1"), keyTaskName: TextCell("Fix door")},
		Row{keyExternalID: AbsentCell(), keyTaskName: TextCell(""), keyDescription: TextCell("nan")},
	)
	b, err := ParseBatch(rows, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(b.Records))
	}
	if b.Records[0].ExternalID != "WT-1" {
		t.Errorf("ExternalID = %q", b.Records[0].ExternalID)
	}
}

func TestParseBatchWarnsOnDuplicates(t *testing.T) {
	rows := located(
		Row{keyExternalID: TextCell("WT-1"), keyTaskName: TextCell("first")},
		Row{keyExternalID: TextCell("WT-1"), keyTaskName: TextCell("second")},
		Row{keyExternalID: TextCell("WT-2"), keyTaskName: TextCell("other")},
	)
	b, err := ParseBatch(rows, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(b.Records))
	}
	found := false
	for _, w := range b.Warnings {
		if strings.Contains(w, `"WT-1"`) && strings.Contains(w, "2 rows") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate warning for WT-1, got %v", b.Warnings)
	}
}

// Порядок предупреждений о дубликатах детерминирован: по первому вхождению
// WT-ID в файле.
func TestParseBatchDuplicateWarningOrder(t *testing.T) {
	rows := located(
		Row{keyExternalID: TextCell("WT-9"), keyTaskName: TextCell("a")},
		Row{keyExternalID: TextCell("WT-1"), keyTaskName: TextCell("b")},
		Row{keyExternalID: TextCell("WT-9"), keyTaskName: TextCell("c")},
		Row{keyExternalID: TextCell("WT-1"), keyTaskName: TextCell("d")},
	)
	for run := 0; run < 5; run++ {
		b, err := ParseBatch(rows, testNow)
		if err != nil {
			t.Fatal(err)
		}
		if len(b.Warnings) != 2 {
			t.Fatalf("warnings = %v", b.Warnings)
		}
		if !strings.Contains(b.Warnings[0], `"WT-9"`) || !strings.Contains(b.Warnings[1], `"WT-1"`) {
			t.Fatalf("run %d: order = %v", run, b.Warnings)
		}
	}
}

// Предупреждения несут адрес строки из читателя книги: для csv это номер
// строки таблицы, для xlsx — лист и номер строки на этом листе.
func TestParseBatchWarningLocations(t *testing.T) {
	rows := []SourceRow{
		{Location: "row 2", Cells: Row{keyExternalID: TextCell("WT-1")}},
		{Location: "row 3", Cells: Row{keyExternalID: TextCell("WT-2"), keyCreatedDate: TextCell("Mar 1, 2024")}},
		{Location: "Archive row 2", Cells: Row{keyExternalID: TextCell("WT-3"), keyCreatedDate: TextCell("Mar 2, 2024")}},
	}
	b, err := ParseBatch(rows, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Warnings) != 2 {
		t.Fatalf("warnings = %v", b.Warnings)
	}
	if !strings.HasPrefix(b.Warnings[0], "row 3:") {
		t.Errorf("warnings[0] = %q", b.Warnings[0])
	}
	if !strings.HasPrefix(b.Warnings[1], "Archive row 2:") {
		t.Errorf("warnings[1] = %q", b.Warnings[1])
	}
}
