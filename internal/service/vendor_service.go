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
	"github.com/ttacon/libphonenumber"
)

// VendorPatch — частичное редактирование контакта.
type VendorPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Website  *string `json:"website"`
	Notes    *string `json:"notes"`
}

// VendorService — справочник поставщиков. Телефон нормализуется в
// международный формат, если разбирается для региона по умолчанию; иначе
// хранится как введён (исходный справочник принимал свободный текст).
type VendorService struct {
	store  kv.Store
	log    *logrus.Logger
	region string
	mu     sync.Mutex
}

func NewVendorService(store kv.Store, log *logrus.Logger, region string) *VendorService {
	return &VendorService{store: store, log: log, region: region}
}

func (s *VendorService) loadAll(ctx context.Context) ([]model.Vendor, error) {
	return loadCollection[model.Vendor](ctx, s.store, KeyVendors)
}

func (s *VendorService) saveAll(ctx context.Context, items []model.Vendor) error {
	return saveCollection(ctx, s.store, KeyVendors, items)
}

func (s *VendorService) List(ctx context.Context, query string) ([]model.Vendor, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Vendor, 0, len(items))
	for _, v := range items {
		if q != "" {
			blob := strings.ToLower(strings.Join([]string{v.Name, v.Category, v.Phone, v.Email, v.Website, v.Notes}, " "))
			if !strings.Contains(blob, q) {
				continue
			}
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *VendorService) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, errs.ErrVendorNotFound
}

func (s *VendorService) Create(ctx context.Context, v *model.Vendor) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return errs.ErrVendorName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = uuid.NewString()
	v.Phone = s.normalizePhone(v.Phone)
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	items, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	items = append(items, *v)
	if err := s.saveAll(ctx, items); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": v.ID, "name": v.Name}).Info("vendor created")
	return nil
}

func (s *VendorService) Update(ctx context.Context, id string, patch VendorPatch) (*model.Vendor, error) {
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
		v := &items[i]
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return nil, errs.ErrVendorName
			}
			v.Name = name
		}
		if patch.Category != nil {
			v.Category = *patch.Category
		}
		if patch.Phone != nil {
			v.Phone = s.normalizePhone(*patch.Phone)
		}
		if patch.Email != nil {
			v.Email = *patch.Email
		}
		if patch.Website != nil {
			v.Website = *patch.Website
		}
		if patch.Notes != nil {
			v.Notes = *patch.Notes
		}
		v.UpdatedAt = time.Now().UTC()
		if err := s.saveAll(ctx, items); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, errs.ErrVendorNotFound
}

func (s *VendorService) Delete(ctx context.Context, id string) error {
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
	return errs.ErrVendorNotFound
}

func (s *VendorService) normalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	p, err := libphonenumber.Parse(trimmed, s.region)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return trimmed
	}
	return libphonenumber.Format(p, libphonenumber.INTERNATIONAL)
}
