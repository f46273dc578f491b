package importer

import (
	"time"

	"github.com/maintdesk/workorder-service/internal/model"
)

// Replace: новая коллекция — ровно распарсенная партия. Всё, чего в партии
// нет, пропадает.
func Replace(_ []model.WorkOrder, batch []model.WorkOrder) []model.WorkOrder {
	out := make([]model.WorkOrder, len(batch))
	copy(out, batch)
	return out
}

// Merge сверяет партию с существующей коллекцией по WT-ID (при его
// отсутствии — по внутреннему ID). У совпавших записей сохраняются
// пользовательские поля: внутренний ID, заметки и вручную выставленный
// статус; всё остальное берётся из свежего импорта, updatedAt обновляется
// моментом сверки. Несовпавшие записи партии вставляются как новые.
// Записи, которых нет в партии, остаются нетронутыми: merge ничего не
// удаляет.
func Merge(existing []model.WorkOrder, batch []model.WorkOrder, now time.Time) []model.WorkOrder {
	byKey := make(map[string]model.WorkOrder, len(existing))
	for _, w := range existing {
		byKey[w.ReconcileKey()] = w
	}

	// Дубликаты ключа внутри партии: последняя строка выигрывает. Порядок
	// первых вхождений сохраняется.
	deduped := make([]model.WorkOrder, 0, len(batch))
	pos := make(map[string]int, len(batch))
	for _, incoming := range batch {
		key := incoming.ReconcileKey()
		if i, ok := pos[key]; ok {
			deduped[i] = incoming
			continue
		}
		pos[key] = len(deduped)
		deduped = append(deduped, incoming)
	}

	matched := make(map[string]bool, len(deduped))
	out := make([]model.WorkOrder, 0, len(existing)+len(deduped))
	for _, incoming := range deduped {
		prev, ok := byKey[incoming.ReconcileKey()]
		if !ok {
			out = append(out, incoming)
			continue
		}
		matched[prev.ID] = true
		merged := incoming
		merged.ID = prev.ID
		merged.Notes = prev.Notes
		if prev.Status != "" {
			merged.Status = prev.Status
		}
		merged.CreatedAt = prev.CreatedAt
		merged.UpdatedAt = now
		out = append(out, merged)
	}

	for _, w := range existing {
		if !matched[w.ID] {
			out = append(out, w)
		}
	}
	return out
}
