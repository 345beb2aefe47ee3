package models

import (
	"errors"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
	"github.com/nash87/parkhub-sub000/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string  `json:"user_id"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	SlotID        string  `json:"slot_id"`
	LotID         string  `json:"lot_id"`
	BookingType   string  `json:"booking_type"`
	DauerInterval *string `json:"dauer_interval,omitempty"`
	Weekdays      []int   `json:"weekdays,omitempty"`
	StartTime     string  `json:"start_time"` // ISO 8601
	EndTime       *string `json:"end_time,omitempty"`
	Status        string  `json:"status"`

	// Денормализованные данные
	LotName      string  `json:"lot_name"`
	SlotNumber   string  `json:"slot_number"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`

	CancelledAt *string `json:"cancelled_at,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		SlotID:       b.SlotID,
		LotID:        b.LotID,
		BookingType:  string(b.Kind),
		Weekdays:     b.Weekdays,
		StartTime:    b.StartTime.Format(time.RFC3339),
		Status:       string(b.Status),
		LotName:      b.LotName,
		SlotNumber:   b.SlotLabel,
		VehiclePlate: b.VehiclePlate,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.DauerInterval != nil {
		resp.DauerInterval = ptr.Ptr(string(*b.DauerInterval))
	}

	if b.EndTime != nil {
		resp.EndTime = ptr.Ptr(b.EndTime.Format(time.RFC3339))
	}

	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
