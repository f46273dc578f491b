package errs

import "errors"

var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrVendorNotFound    = errors.New("vendor not found")

	// ErrNoExternalID — в распарсенной партии нет ни одного WT-ID: скорее
	// всего загружен файл с неизвестной схемой колонок.
	ErrNoExternalID = errors.New(`import failed: no WT-ID column found, make sure the header is "WT-ID"`)

	ErrImportBusy        = errors.New("another file is being read, try again")
	ErrNoPreview         = errors.New("no import preview staged")
	ErrUnknownImportMode = errors.New(`unknown import mode: want "replace" or "merge"`)

	ErrInvalidStatus   = errors.New("invalid status: must be 'Open', 'In Progress' or 'Done'")
	ErrInvalidPriority = errors.New("invalid priority: must be 'Low', 'Medium' or 'High'")
	ErrVendorName      = errors.New("vendor name is required")
)
