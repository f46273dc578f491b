package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/importer"
	"github.com/maintdesk/workorder-service/internal/model"
	"github.com/sirupsen/logrus"
)

type ImportState string

const (
	ImportStateIdle      ImportState = "idle"
	ImportStateReading   ImportState = "reading"
	ImportStatePreviewed ImportState = "previewed"
	ImportStateErrored   ImportState = "errored"
)

// Режимы фиксации партии.
const (
	ModeReplace = "replace"
	ModeMerge   = "merge"
)

const previewSampleSize = 5

// PreviewSummary — что видит пользователь перед решением replace/merge/cancel.
type PreviewSummary struct {
	Rows           int               `json:"rows"`
	WithExternalID int               `json:"with_external_id"`
	Warnings       []string          `json:"warnings,omitempty"`
	Sample         []model.WorkOrder `json:"sample"`
}

// ImportService держит одну незафиксированную партию в памяти. Состояния:
// Idle → Reading → {Previewed | Errored} → Idle; replace, merge и cancel
// терминальны для партии. Пока идёт чтение файла, второй Preview
// отклоняется — два импорта не должны гоняться за одной коллекцией.
type ImportService struct {
	workOrders *WorkOrderService
	log        *logrus.Logger

	mu      sync.Mutex
	state   ImportState
	batch   *importer.Batch
	lastErr string
}

func NewImportService(workOrders *WorkOrderService, log *logrus.Logger) *ImportService {
	return &ImportService{workOrders: workOrders, log: log, state: ImportStateIdle}
}

// Preview читает и парсит файл, складывая партию в память до решения
// пользователя. Хранилище здесь не трогается.
func (s *ImportService) Preview(ctx context.Context, r io.Reader, filename string) (*PreviewSummary, error) {
	s.mu.Lock()
	if s.state == ImportStateReading {
		s.mu.Unlock()
		return nil, errs.ErrImportBusy
	}
	s.state = ImportStateReading
	s.batch = nil
	s.lastErr = ""
	s.mu.Unlock()

	rows, err := importer.ReadWorkbook(r, filename)
	if err != nil {
		s.fail(err)
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	batch, err := importer.ParseBatch(rows, time.Now().UTC())
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.state = ImportStatePreviewed
	s.batch = batch
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"file":     filename,
		"rows":     len(batch.Records),
		"warnings": len(batch.Warnings),
	}).Info("import preview staged")
	return summarize(batch), nil
}

// Commit применяет ранее распарсенную партию в указанном режиме. Партия
// применяется целиком или никак.
func (s *ImportService) Commit(ctx context.Context, mode string) (int, error) {
	if mode != ModeReplace && mode != ModeMerge {
		return 0, errs.ErrUnknownImportMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ImportStatePreviewed || s.batch == nil {
		return 0, errs.ErrNoPreview
	}

	existing, err := s.workOrders.loadAll(ctx)
	if err != nil {
		return 0, err
	}

	var next []model.WorkOrder
	switch mode {
	case ModeReplace:
		next = importer.Replace(existing, s.batch.Records)
	case ModeMerge:
		next = importer.Merge(existing, s.batch.Records, time.Now().UTC())
	}

	if err := s.workOrders.replaceCollection(ctx, next); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{
		"mode":   mode,
		"before": len(existing),
		"after":  len(next),
	}).Info("import committed")
	s.state = ImportStateIdle
	s.batch = nil
	return len(next), nil
}

// Cancel сбрасывает партию из любого состояния.
func (s *ImportService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ImportStateIdle
	s.batch = nil
	s.lastErr = ""
}

// State — текущее состояние и последняя ошибка чтения.
func (s *ImportService) State() (ImportState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastErr
}

func (s *ImportService) fail(err error) {
	s.mu.Lock()
	s.state = ImportStateErrored
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func summarize(b *importer.Batch) *PreviewSummary {
	withID := 0
	for _, w := range b.Records {
		if w.ExternalID != "" {
			withID++
		}
	}
	sample := b.Records
	if len(sample) > previewSampleSize {
		sample = sample[:previewSampleSize]
	}
	return &PreviewSummary{
		Rows:           len(b.Records),
		WithExternalID: withID,
		Warnings:       b.Warnings,
		Sample:         sample,
	}
}
