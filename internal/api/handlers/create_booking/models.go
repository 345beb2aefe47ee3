package create_booking

import (
	"fmt"
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
	createBooking "github.com/nash87/parkhub-sub000/internal/usecase/create_booking"
	"github.com/nash87/parkhub-sub000/pkg/ptr"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID        string  `json:"slot_id"`
	BookingType   string  `json:"booking_type"`             // one_time, multi_day, permanent
	DauerInterval *string `json:"dauer_interval,omitempty"` // weekly, monthly
	Weekdays      []int   `json:"weekdays,omitempty"`       // 0 = понедельник
	StartTime     string  `json:"start_time"`               // RFC 3339
	EndTime       *string `json:"end_time,omitempty"`       // RFC 3339
	VehicleID     *string `json:"vehicle_id,omitempty"`
	VehiclePlate  *string `json:"vehicle_plate,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	SlotID        string  `json:"slot_id"`
	LotID         string  `json:"lot_id"`
	BookingType   string  `json:"booking_type"`
	DauerInterval *string `json:"dauer_interval,omitempty"`
	Weekdays      []int   `json:"weekdays,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time,omitempty"`
	Status        string  `json:"status"`
	LotName       string  `json:"lot_name"`
	SlotNumber    string  `json:"slot_number"`
	VehiclePlate  *string `json:"vehicle_plate,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}

	var endTime *time.Time
	if r.EndTime != nil {
		parsed, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid end_time: %w", err)
		}
		endTime = &parsed
	}

	var dauerInterval *domain.DauerInterval
	if r.DauerInterval != nil {
		interval := domain.DauerInterval(*r.DauerInterval)
		dauerInterval = &interval
	}

	return &createBooking.Request{
		UserID:        userID,
		SlotID:        r.SlotID,
		Kind:          domain.BookingKind(r.BookingType),
		DauerInterval: dauerInterval,
		Weekdays:      r.Weekdays,
		StartTime:     startTime,
		EndTime:       endTime,
		VehicleID:     r.VehicleID,
		VehiclePlate:  r.VehiclePlate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		SlotID:       resp.SlotID,
		LotID:        resp.LotID,
		BookingType:  string(resp.Kind),
		Weekdays:     resp.Weekdays,
		StartTime:    resp.StartTime.Format(time.RFC3339),
		Status:       resp.Status,
		LotName:      resp.LotName,
		SlotNumber:   resp.SlotLabel,
		VehiclePlate: resp.VehiclePlate,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.DauerInterval != nil {
		result.DauerInterval = ptr.Ptr(string(*resp.DauerInterval))
	}

	if resp.EndTime != nil {
		result.EndTime = ptr.Ptr(resp.EndTime.Format(time.RFC3339))
	}

	return result
}
