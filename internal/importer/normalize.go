package importer

import "strings"

// Канонические ключи заголовков после нормализации. "WT-ID", "wt id" и
// "Wt_ID" сходятся к одному ключу.
const (
	keyExternalID        = "wtid"
	keyCreatedDate       = "createddate"
	keyPriority          = "wtpriority"
	keyFacilityNumber    = "facilitynumber"
	keyTaskName          = "taskname"
	keyDescription       = "description"
	keyResolution        = "wtresolutiondescription"
	keyTrackingStatus    = "trackingstatus"
	keyStatus            = "wtstatus"
	keyCustomerName      = "customername"
	keyRespOrg           = "resporg"
	keyResponsiblePerson = "responsibleperson"
	keyLaborStartDate    = "laborstartdate"
)

// NormalizeHeader приводит имя колонки к каноническому ключу: нижний регистр,
// всё кроме [a-z0-9] выбрасывается. Уникальность ключей не проверяется:
// при коллизии значение более поздней колонки затирает раннее.
func NormalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
