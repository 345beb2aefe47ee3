package domain

import "time"

// RowSide сторона ряда относительно проезжей части
type RowSide string

const (
	SideTop    RowSide = "top"
	SideBottom RowSide = "bottom"
)

// SlotFlag административный флаг слота
type SlotFlag string

const (
	FlagDisabled SlotFlag = "disabled"
	FlagBlocked  SlotFlag = "blocked"
)

// ParkingLot represents a parking lot with its layout
type ParkingLot struct {
	ID        string
	Name      string
	Address   string
	Rows      []LotRow
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LotRow ряд слотов внутри парковки
type LotRow struct {
	ID       string
	LotID    string
	Side     RowSide
	Position int
	Slots    []ParkingSlot
}

// ParkingSlot represents an individual parking slot.
//
// Disabled и Blocked — независимые административные флаги; оба перекрывают
// любой статус, выведенный из бронирований и отсутствий. AssignedUserID
// помечает постоянного владельца слота для homeoffice-резолюции.
type ParkingSlot struct {
	ID             string
	LotID          string
	RowID          string
	Label          string
	Position       int
	Disabled       bool
	Blocked        bool
	AssignedUserID *string
}

// IsAdministrativelyUnavailable returns true if either admin flag is set
func (s *ParkingSlot) IsAdministrativelyUnavailable() bool {
	return s.Disabled || s.Blocked
}

// ValidRowSide проверяет допустимость значения стороны ряда
func ValidRowSide(side RowSide) bool {
	return side == SideTop || side == SideBottom
}

// ValidSlotFlag проверяет допустимость значения флага
func ValidSlotFlag(flag SlotFlag) bool {
	return flag == FlagDisabled || flag == FlagBlocked
}
