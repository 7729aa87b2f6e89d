package services

import "taskboard/internal/models"

// Задачи переводятся в любой статус напрямую; таблицы переходов нет.
// NextStatus — это подсказка для UI (цикл), не серверное правило.

var allowedStatuses = map[models.TaskStatus]bool{
	models.StatusPending:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
}

func IsAllowedStatus(s models.TaskStatus) bool {
	return allowedStatuses[s]
}

// NextStatus returns the suggested follow-up status for the quick-cycle
// control: pending → in_progress → completed → pending. It is never
// consulted on the mutation path; any status may be set directly.
func NextStatus(s models.TaskStatus) models.TaskStatus {
	switch s {
	case models.StatusPending:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusCompleted
	case models.StatusCompleted:
		return models.StatusPending
	}
	return models.StatusPending
}
