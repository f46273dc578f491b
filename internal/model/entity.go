package model

import "time"

type WorkOrderStatus string

const (
	StatusOpen       WorkOrderStatus = "Open"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusDone       WorkOrderStatus = "Done"
)

func (s WorkOrderStatus) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusDone
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// WorkOrder — единица учёта работ. ID генерируется один раз и не меняется;
// ExternalID приходит из импортированной таблицы (номер WT) и служит ключом
// сверки при повторном импорте. Notes и Status принадлежат пользователю и
// переживают merge, остальные поля перезаписываются каждым импортом.
type WorkOrder struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Status   WorkOrderStatus `json:"status"`
	Priority Priority        `json:"priority"`
	Notes    string          `json:"notes,omitempty"`

	ExternalID     string  `json:"external_id,omitempty"`
	CreatedDate    *string `json:"created_date,omitempty"`
	LaborStartDate *string `json:"labor_start_date,omitempty"`
	PriorityRaw    *string `json:"priority_raw,omitempty"`

	FacilityNumber        *string `json:"facility_number,omitempty"`
	TaskName              *string `json:"task_name,omitempty"`
	Description           *string `json:"description,omitempty"`
	ResolutionDescription *string `json:"resolution_description,omitempty"`

	TrackingStatus    *string `json:"tracking_status,omitempty"`
	StatusRaw         *string `json:"status_raw,omitempty"`
	CustomerName      *string `json:"customer_name,omitempty"`
	RespOrg           *string `json:"resp_org,omitempty"`
	ResponsiblePerson *string `json:"responsible_person,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReconcileKey — ключ сверки с импортированной партией: ExternalID, если он
// есть, иначе внутренний ID.
func (w *WorkOrder) ReconcileKey() string {
	if w.ExternalID != "" {
		return w.ExternalID
	}
	return w.ID
}

// Vendor — контакт поставщика/подрядчика.
type Vendor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
	Notes    string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
