package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/kv"
	"github.com/maintdesk/workorder-service/internal/model"
	"github.com/sirupsen/logrus"
)

// WorkOrderFilter — критерии списка. Пустое поле означает "без фильтра".
type WorkOrderFilter struct {
	Query          string
	Status         model.WorkOrderStatus
	Priority       model.Priority
	TrackingStatus string
	RespOrg        string
}

// WorkOrderPatch — частичное редактирование. nil-поле не трогается.
type WorkOrderPatch struct {
	Title       *string         `json:"title"`
	Notes       *string         `json:"notes"`
	Priority    *model.Priority `json:"priority"`
	Description *string         `json:"description"`
}

// WorkOrderService — CRUD поверх коллекции в kv-хранилище. Коллекция
// читается и пишется целиком; mu сериализует read-modify-write внутри
// процесса (одна вкладка, один пользователь — конкуренции между процессами
// по условиям задачи нет).
type WorkOrderService struct {
	store kv.Store
	log   *logrus.Logger
	mu    sync.Mutex
}

func NewWorkOrderService(store kv.Store, log *logrus.Logger) *WorkOrderService {
	return &WorkOrderService{store: store, log: log}
}

func (s *WorkOrderService) loadAll(ctx context.Context) ([]model.WorkOrder, error) {
	return loadCollection[model.WorkOrder](ctx, s.store, KeyWorkOrders)
}

func (s *WorkOrderService) saveAll(ctx context.Context, items []model.WorkOrder) error {
	return saveCollection(ctx, s.store, KeyWorkOrders, items)
}

// List возвращает отфильтрованные записи, свежие по updatedAt сверху, и
// общий размер коллекции до фильтра.
func (s *WorkOrderService) List(ctx context.Context, f WorkOrderFilter) ([]model.WorkOrder, int, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := len(items)

	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.WorkOrder, 0, len(items))
	for _, w := range items {
		if f.Status != "" && w.Status != f.Status {
			continue
		}
		if f.Priority != "" && w.Priority != f.Priority {
			continue
		}
		if f.TrackingStatus != "" && deref(w.TrackingStatus) != f.TrackingStatus {
			continue
		}
		if f.RespOrg != "" && deref(w.RespOrg) != f.RespOrg {
			continue
		}
		if query != "" && !strings.Contains(searchBlob(&w), query) {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, total, nil
}

// FilterOptions — различные значения tracking status и resp org для
// выпадающих фильтров, отсортированные.
func (s *WorkOrderService) FilterOptions(ctx context.Context) (tracking, respOrgs []string, err error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	tracking = distinct(items, func(w model.WorkOrder) *string { return w.TrackingStatus })
	respOrgs = distinct(items, func(w model.WorkOrder) *string { return w.RespOrg })
	return tracking, respOrgs, nil
}

func (s *WorkOrderService) GetByID(ctx context.Context, id string) (*model.WorkOrder, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, errs.ErrWorkOrderNotFound
}

// Create добавляет запись, созданную вручную. ID и метки времени
// назначаются здесь; статус и приоритет по умолчанию — Open/Low.
func (s *WorkOrderService) Create(ctx context.Context, wo *model.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wo.Status == "" {
		wo.Status = model.StatusOpen
	}
	if !wo.Status.Valid() {
		return errs.ErrInvalidStatus
	}
	if wo.Priority == "" {
		wo.Priority = model.PriorityLow
	}
	if !wo.Priority.Valid() {
		return errs.ErrInvalidPriority
	}
	wo.ID = uuid.NewString()
	now := time.Now().UTC()
	wo.CreatedAt = now
	wo.UpdatedAt = now
	if wo.Title == "" {
		wo.Title = "Work Order"
	}

	items, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	items = append(items, *wo)
	if err := s.saveAll(ctx, items); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": wo.ID, "title": wo.Title}).Info("work order created")
	return nil
}

func (s *WorkOrderService) Update(ctx context.Context, id string, patch WorkOrderPatch) (*model.WorkOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, errs.ErrInvalidPriority
	}

	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		w := &items[i]
		if patch.Title != nil {
			w.Title = *patch.Title
		}
		if patch.Notes != nil {
			w.Notes = *patch.Notes
		}
		if patch.Priority != nil {
			w.Priority = *patch.Priority
		}
		if patch.Description != nil {
			w.Description = patch.Description
		}
		w.UpdatedAt = time.Now().UTC()
		if err := s.saveAll(ctx, items); err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, errs.ErrWorkOrderNotFound
}

// SetStatus — быстрые действия Open / Start / Done.
func (s *WorkOrderService) SetStatus(ctx context.Context, id string, status model.WorkOrderStatus) (*model.WorkOrder, error) {
	if !status.Valid() {
		return nil, errs.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Status = status
		items[i].UpdatedAt = time.Now().UTC()
		if err := s.saveAll(ctx, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, errs.ErrWorkOrderNotFound
}

func (s *WorkOrderService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			return s.saveAll(ctx, items)
		}
	}
	return errs.ErrWorkOrderNotFound
}

// ClearAll безусловно удаляет коллекцию вместе с ключом хранилища.
func (s *WorkOrderService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, KeyWorkOrders); err != nil {
		return err
	}
	s.log.Info("work order collection cleared")
	return nil
}

// replaceCollection сохраняет результат сверки импорта. Блокировку и выбор
// replace/merge держит ImportService.
func (s *WorkOrderService) replaceCollection(ctx context.Context, items []model.WorkOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAll(ctx, items)
}

func searchBlob(w *model.WorkOrder) string {
	parts := []string{w.Title, w.ExternalID}
	for _, p := range []*string{w.FacilityNumber, w.CustomerName, w.TaskName, w.Description, w.TrackingStatus, w.RespOrg} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func distinct(items []model.WorkOrder, field func(model.WorkOrder) *string) []string {
	set := make(map[string]bool)
	for _, w := range items {
		if v := field(w); v != nil && *v != "" {
			set[*v] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
