package models

import (
	"time"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

// Request модели

// SlotSpec описание места в запросе на создание или изменение схемы
type SlotSpec struct {
	ID       *string `json:"id,omitempty"` // Существующее место при изменении схемы
	Label    string  `json:"label"`
	Position int     `json:"position"`
}

// RowSpec описание ряда в запросе на создание или изменение схемы
type RowSpec struct {
	Side     string     `json:"side"` // top или bottom
	Position int        `json:"position"`
	Slots    []SlotSpec `json:"slots"`
}

// CreateLotRequest запрос на создание парковки
type CreateLotRequest struct {
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Rows    []RowSpec `json:"rows"`
}

// UpdateLayoutRequest запрос на изменение схемы парковки
type UpdateLayoutRequest struct {
	LotID   string    `json:"-"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Rows    []RowSpec `json:"rows"`
}

// SetSlotFlagRequest запрос на установку административного флага места
type SetSlotFlagRequest struct {
	SlotID string `json:"-"`
	Flag   string `json:"flag"` // disabled или blocked
	Value  bool   `json:"value"`
}

// AssignSlotRequest запрос на закрепление места за пользователем
type AssignSlotRequest struct {
	SlotID string  `json:"-"`
	UserID *string `json:"user_id"` // nil снимает закрепление
}

// Response модели

// SlotResponse ответ с данными места
type SlotResponse struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Position       int     `json:"position"`
	Disabled       bool    `json:"disabled"`
	Blocked        bool    `json:"blocked"`
	AssignedUserID *string `json:"assigned_user_id,omitempty"`
}

// RowResponse ответ с данными ряда
type RowResponse struct {
	ID       string         `json:"id"`
	Side     string         `json:"side"`
	Position int            `json:"position"`
	Slots    []SlotResponse `json:"slots"`
}

// LotResponse ответ с данными парковки
type LotResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Address   string        `json:"address"`
	Rows      []RowResponse `json:"rows"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// LotListResponse ответ со списком парковок без схемы рядов
type LotListResponse struct {
	Lots []LotSummary `json:"lots"`
}

// LotSummary краткие данные парковки для списка
type LotSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Методы конвертации

// FromDomainLot конвертирует domain модель в DTO
func FromDomainLot(lot *domain.ParkingLot) *LotResponse {
	if lot == nil {
		return nil
	}

	resp := &LotResponse{
		ID:        lot.ID,
		Name:      lot.Name,
		Address:   lot.Address,
		Rows:      make([]RowResponse, len(lot.Rows)),
		CreatedAt: lot.CreatedAt,
		UpdatedAt: lot.UpdatedAt,
	}

	for i, row := range lot.Rows {
		rowResp := RowResponse{
			ID:       row.ID,
			Side:     string(row.Side),
			Position: row.Position,
			Slots:    make([]SlotResponse, len(row.Slots)),
		}
		for j, slot := range row.Slots {
			rowResp.Slots[j] = SlotResponse{
				ID:             slot.ID,
				Label:          slot.Label,
				Position:       slot.Position,
				Disabled:       slot.Disabled,
				Blocked:        slot.Blocked,
				AssignedUserID: slot.AssignedUserID,
			}
		}
		resp.Rows[i] = rowResp
	}

	return resp
}

// FromDomainLotList конвертирует список domain моделей в краткие DTO
func FromDomainLotList(lots []*domain.ParkingLot) *LotListResponse {
	resp := &LotListResponse{
		Lots: make([]LotSummary, 0, len(lots)),
	}

	for _, lot := range lots {
		resp.Lots = append(resp.Lots, LotSummary{
			ID:        lot.ID,
			Name:      lot.Name,
			Address:   lot.Address,
			CreatedAt: lot.CreatedAt,
			UpdatedAt: lot.UpdatedAt,
		})
	}

	return resp
}
