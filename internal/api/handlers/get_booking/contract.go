package get_booking

import (
	"context"

	"github.com/nash87/parkhub-sub000/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id string, userID string, role string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
