package importer

import (
	"strings"

	"github.com/maintdesk/workorder-service/internal/model"
)

// MapPriority — тотальное отображение кода приоритета WT в три уровня.
// Исходный код при этом сохраняется в записи как есть. Отсутствующий или
// неопознанный код — Low.
func MapPriority(raw *string) model.Priority {
	var s string
	if raw != nil {
		s = strings.ToLower(*raw)
	}
	switch {
	case strings.HasPrefix(s, "4a"), strings.HasPrefix(s, "3a"), strings.Contains(s, "high"):
		return model.PriorityHigh
	case strings.HasPrefix(s, "3b"), strings.Contains(s, "medium"):
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// MapStatusFromTracking — статус по свободному тексту tracking status.
// "await"/"sched" сознательно дают Open, а не отдельное состояние;
// Done из импорта не выводится никогда — только руками пользователя.
func MapStatusFromTracking(tracking *string) model.WorkOrderStatus {
	var s string
	if tracking != nil {
		s = strings.ToLower(*tracking)
	}
	switch {
	case strings.Contains(s, "progress"),
		strings.Contains(s, "materiel complete"),
		strings.Contains(s, "material complete"):
		return model.StatusInProgress
	case strings.Contains(s, "await"), strings.Contains(s, "sched"):
		return model.StatusOpen
	default:
		return model.StatusOpen
	}
}
