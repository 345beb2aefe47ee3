package withdraw_waitlist

import "context"

type WaitlistService interface {
	Withdraw(ctx context.Context, userID, entryID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
