package remove_absence_day

import "context"

type AbsenceService interface {
	RemoveAbsenceDay(ctx context.Context, userID, entryID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
