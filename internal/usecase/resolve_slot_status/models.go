package resolve_slot_status

import (
	"time"

	"github.com/nash87/parkhub-sub000/internal/occupancy"
)

// SlotRequest модель запроса статуса одного места
type SlotRequest struct {
	SlotID   string    // ID места
	At       time.Time // Момент, на который вычисляется статус
	ViewerID string    // ID пользователя, запросившего статус
}

// SlotStatus вычисленный статус одного места
type SlotStatus struct {
	SlotID         string           // ID места
	Label          string           // Номер места
	Position       int              // Позиция в ряду
	RowID          string           // ID ряда
	Status         occupancy.Status // Вычисленный статус
	AssignedUserID *string          // Закрепленный владелец, если есть
}

// GridRequest модель запроса статусов всех мест парковки
type GridRequest struct {
	LotID    string    // ID парковки
	At       time.Time // Момент, на который вычисляется статус
	ViewerID string    // ID пользователя, запросившего статусы
}

// GridResponse статусы всех мест парковки на заданный момент
type GridResponse struct {
	LotID   string        // ID парковки
	LotName string        // Название парковки
	At      time.Time     // Момент вычисления
	Slots   []*SlotStatus // Статусы мест в порядке рядов и позиций
}
