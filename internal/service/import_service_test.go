package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/model"
)

const importCSV = `WT-ID,Task Name,WT Priority,Tracking Status,Description
WT-1,Replace pump seal,4A-Critical,In Progress,Seal leaking on pump 3
WT-2,Inspect boiler,3B-Routine,Scheduled,Annual inspection
`

func newImportService() (*ImportService, *WorkOrderService) {
	workOrders := newWorkOrderService()
	return NewImportService(workOrders, testLogger()), workOrders
}

func TestImportPreviewAndCommitReplace(t *testing.T) {
	ctx := context.Background()
	svc, workOrders := newImportService()

	summary, err := svc.Preview(ctx, strings.NewReader(importCSV), "export.csv")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Rows != 2 || summary.WithExternalID != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Sample) != 2 {
		t.Errorf("sample = %d", len(summary.Sample))
	}
	if state, _ := svc.State(); state != ImportStatePreviewed {
		t.Errorf("state = %v", state)
	}

	// Хранилище до фиксации не тронуто.
	if _, total, err := workOrders.List(ctx, WorkOrderFilter{}); err != nil || total != 0 {
		t.Fatalf("store touched before commit: total=%d err=%v", total, err)
	}

	n, err := svc.Commit(ctx, ModeReplace)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("n = %d", n)
	}
	items, _, err := workOrders.List(ctx, WorkOrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	if state, _ := svc.State(); state != ImportStateIdle {
		t.Errorf("state after commit = %v", state)
	}
}

func TestImportCommitMergeKeepsUserEdits(t *testing.T) {
	ctx := context.Background()
	svc, workOrders := newImportService()

	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "export.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Commit(ctx, ModeReplace); err != nil {
		t.Fatal(err)
	}

	items, _, err := workOrders.List(ctx, WorkOrderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	var target string
	for _, w := range items {
		if w.ExternalID == "WT-1" {
			target = w.ID
		}
	}
	if _, err := workOrders.Update(ctx, target, WorkOrderPatch{Notes: strp("ordered part")}); err != nil {
		t.Fatal(err)
	}
	if _, err := workOrders.SetStatus(ctx, target, model.StatusDone); err != nil {
		t.Fatal(err)
	}

	// Повторный импорт того же файла в режиме merge.
	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "export.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Commit(ctx, ModeMerge); err != nil {
		t.Fatal(err)
	}

	got, err := workOrders.GetByID(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	if got.Notes != "ordered part" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if got.Status != model.StatusDone {
		t.Errorf("Status = %v", got.Status)
	}
}

func TestImportCommitWithoutPreview(t *testing.T) {
	svc, _ := newImportService()
	if _, err := svc.Commit(context.Background(), ModeReplace); !errors.Is(err, errs.ErrNoPreview) {
		t.Errorf("err = %v, want ErrNoPreview", err)
	}
}

func TestImportCommitUnknownMode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newImportService()
	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "x.csv"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Commit(ctx, "append"); !errors.Is(err, errs.ErrUnknownImportMode) {
		t.Errorf("err = %v, want ErrUnknownImportMode", err)
	}
}

func TestImportCancelDiscardsBatch(t *testing.T) {
	ctx := context.Background()
	svc, workOrders := newImportService()

	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "x.csv"); err != nil {
		t.Fatal(err)
	}
	svc.Cancel()
	if state, _ := svc.State(); state != ImportStateIdle {
		t.Errorf("state = %v", state)
	}
	if _, err := svc.Commit(ctx, ModeReplace); !errors.Is(err, errs.ErrNoPreview) {
		t.Errorf("err = %v, want ErrNoPreview", err)
	}
	if _, total, err := workOrders.List(ctx, WorkOrderFilter{}); err != nil || total != 0 {
		t.Errorf("total = %d err = %v", total, err)
	}
}

// gatedReader сигналит о первом Read и держит чтение, пока тест не отпустит
// release. Позволяет детерминированно застать сервис в состоянии чтения.
type gatedReader struct {
	r       io.Reader
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedReader(r io.Reader) *gatedReader {
	return &gatedReader{r: r, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedReader) Read(p []byte) (int, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return g.r.Read(p)
}

// Пока один файл читается, второй Preview отклоняется, а не встаёт в очередь.
func TestImportPreviewBusyLatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newImportService()

	gated := newGatedReader(strings.NewReader(importCSV))
	done := make(chan error, 1)
	go func() {
		_, err := svc.Preview(ctx, gated, "slow.csv")
		done <- err
	}()

	<-gated.started
	if state, _ := svc.State(); state != ImportStateReading {
		t.Fatalf("state = %v, want reading", state)
	}
	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "second.csv"); !errors.Is(err, errs.ErrImportBusy) {
		t.Fatalf("err = %v, want ErrImportBusy", err)
	}

	// Отклонённый Preview не сбивает идущее чтение.
	close(gated.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if state, _ := svc.State(); state != ImportStatePreviewed {
		t.Errorf("state = %v, want previewed", state)
	}
	if _, err := svc.Commit(ctx, ModeReplace); err != nil {
		t.Fatal(err)
	}
}

func TestImportRejectsFileWithoutExternalIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newImportService()

	csv := "Task Name,Description\nFix door,broken hinge\n"
	_, err := svc.Preview(ctx, strings.NewReader(csv), "bad.csv")
	if !errors.Is(err, errs.ErrNoExternalID) {
		t.Fatalf("err = %v, want ErrNoExternalID", err)
	}
	state, lastErr := svc.State()
	if state != ImportStateErrored {
		t.Errorf("state = %v", state)
	}
	if lastErr == "" {
		t.Error("expected last error recorded")
	}

	// После ошибки новый Preview проходит.
	if _, err := svc.Preview(ctx, strings.NewReader(importCSV), "good.csv"); err != nil {
		t.Fatal(err)
	}
}
