package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/maintdesk/workorder-service/internal/model"
)

const titleFromDescriptionLimit = 90

// BuildWorkOrder собирает одну запись из нормализованной строки. Возвращает
// nil, если в строке нет ни WT-ID, ни названия задачи, ни описания — такие
// строки считаются шумом (пустые строки таблицы). warnings — ненадёжные
// приведения дат в этой строке.
func BuildWorkOrder(row Row, now time.Time) (*model.WorkOrder, []string) {
	externalID := CoerceString(row[keyExternalID])
	taskName := CoerceString(row[keyTaskName])
	description := CoerceString(row[keyDescription])

	if externalID == nil && taskName == nil && description == nil {
		return nil, nil
	}

	var warnings []string
	createdDate, viaText := CoerceDate(row[keyCreatedDate])
	if viaText {
		warnings = append(warnings, "created date parsed from free text")
	}
	laborStartDate, viaText := CoerceDate(row[keyLaborStartDate])
	if viaText {
		warnings = append(warnings, "labor start date parsed from free text")
	}

	trackingStatus := CoerceString(row[keyTrackingStatus])
	priorityRaw := CoerceString(row[keyPriority])

	wo := &model.WorkOrder{
		ID:       uuid.NewString(),
		Title:    deriveTitle(externalID, taskName, description),
		Status:   MapStatusFromTracking(trackingStatus),
		Priority: MapPriority(priorityRaw),
		Notes:    "",

		CreatedDate:    createdDate,
		LaborStartDate: laborStartDate,
		PriorityRaw:    priorityRaw,

		FacilityNumber:        CoerceString(row[keyFacilityNumber]),
		TaskName:              taskName,
		Description:           description,
		ResolutionDescription: CoerceString(row[keyResolution]),

		TrackingStatus:    trackingStatus,
		StatusRaw:         CoerceString(row[keyStatus]),
		CustomerName:      CoerceString(row[keyCustomerName]),
		RespOrg:           CoerceString(row[keyRespOrg]),
		ResponsiblePerson: CoerceString(row[keyResponsiblePerson]),

		CreatedAt: now,
		UpdatedAt: now,
	}
	if externalID != nil {
		wo.ExternalID = *externalID
	}
	return wo, warnings
}

// deriveTitle: название задачи, иначе первые ~90 знаков описания, иначе
// "WT <id>", иначе постоянная заглушка.
func deriveTitle(externalID, taskName, description *string) string {
	if taskName != nil {
		return *taskName
	}
	if description != nil {
		runes := []rune(*description)
		if len(runes) > titleFromDescriptionLimit {
			return string(runes[:titleFromDescriptionLimit])
		}
		return *description
	}
	if externalID != nil {
		return "WT " + *externalID
	}
	return "Work Order"
}
