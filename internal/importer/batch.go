package importer

import (
	"fmt"
	"time"

	"github.com/maintdesk/workorder-service/internal/errs"
	"github.com/maintdesk/workorder-service/internal/model"
)

// Batch — партия, распарсенная из одного файла. Живёт в памяти до решения
// пользователя (replace / merge / cancel) и никогда не применяется частично.
type Batch struct {
	Records  []model.WorkOrder
	Warnings []string
}

// ParseBatch прогоняет строки через сборщик записей и валидирует партию
// целиком. Партия без единого WT-ID отклоняется: это ключ сверки, без него
// импорт почти наверняка означает файл с чужой схемой. Дубликаты WT-ID не
// ошибка, но попадают в предупреждения — при сверке выживает последняя
// строка. Предупреждения адресуются по Location исходной строки и идут в
// порядке появления в файле.
func ParseBatch(rows []SourceRow, now time.Time) (*Batch, error) {
	b := &Batch{}
	seen := make(map[string]int)
	var order []string

	for _, row := range rows {
		wo, warns := BuildWorkOrder(row.Cells, now)
		if wo == nil {
			continue
		}
		for _, w := range warns {
			b.Warnings = append(b.Warnings, fmt.Sprintf("%s: %s", row.Location, w))
		}
		if wo.ExternalID != "" {
			if seen[wo.ExternalID] == 0 {
				order = append(order, wo.ExternalID)
			}
			seen[wo.ExternalID]++
		}
		b.Records = append(b.Records, *wo)
	}

	for _, id := range order {
		if n := seen[id]; n > 1 {
			b.Warnings = append(b.Warnings, fmt.Sprintf("duplicate WT-ID %q appears in %d rows, the last one wins on merge", id, n))
		}
	}
	if len(order) == 0 {
		return nil, errs.ErrNoExternalID
	}
	return b, nil
}
