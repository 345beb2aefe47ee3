package create_booking

import (
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        string               // ID пользователя
	SlotID        string               // ID парковочного места
	Kind          domain.BookingKind   // Тип бронирования: one_time, multi_day, permanent
	DauerInterval *domain.DauerInterval // Интервал постоянного бронирования: weekly или monthly
	Weekdays      []int                // Дни недели для weekly (0 = понедельник)
	StartTime     time.Time            // Начало бронирования
	EndTime       *time.Time           // Конец бронирования (nil для permanent)
	VehicleID     *string              // ID транспорта (опционально)
	VehiclePlate  *string              // Госномер свободным текстом, имеет приоритет над реестром

}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string                // ID созданного бронирования
	UserID        string                // ID пользователя
	SlotID        string                // ID места
	LotID         string                // ID парковки
	Kind          domain.BookingKind    // Тип бронирования
	DauerInterval *domain.DauerInterval // Интервал постоянного бронирования
	Weekdays      []int                 // Дни недели для weekly
	StartTime     time.Time             // Начало
	EndTime       *time.Time            // Конец (nil для permanent)
	Status        string                // Статус бронирования

	// Денормализованные данные
	LotName      string  // Название парковки
	SlotLabel    string  // Номер места
	VehiclePlate *string // Госномер

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
