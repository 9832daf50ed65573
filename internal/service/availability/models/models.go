package models

import (
	"time"

	"github.com/prisma-detailing/DetailingService/internal/domain"
	"github.com/prisma-detailing/DetailingService/pkg/types"
)

// Request модели

// WindowInput окно доступности из запроса
type WindowInput struct {
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "17:00"
	IsAvailable bool   `json:"isAvailable"`
}

// SetAvailabilityRequest запрос на замену окон доступности на дату
type SetAvailabilityRequest struct {
	UserID     int64         `json:"userId"`
	DetailerID int64         `json:"detailerId"`
	Date       time.Time     `json:"date"`
	Windows    []WindowInput `json:"windows"`
}

// GetAvailabilityRequest запрос на получение окон доступности на дату
type GetAvailabilityRequest struct {
	UserID     int64     `json:"userId"`
	DetailerID int64     `json:"detailerId"`
	Date       time.Time `json:"date"`
}

// SetActiveRequest запрос на включение/выключение детейлера в подборе
type SetActiveRequest struct {
	UserID     int64 `json:"userId"`
	DetailerID int64 `json:"detailerId"`
	IsActive   bool  `json:"isActive"`
}

// Response модели

// WindowResponse окно доступности в ответе
type WindowResponse struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// AvailabilityResponse ответ с окнами доступности детейлера на дату
type AvailabilityResponse struct {
	DetailerID int64            `json:"detailerId"`
	Date       string           `json:"date"` // "2026-09-14"
	Windows    []WindowResponse `json:"windows"`
}

// Методы конвертации

// ToDomainWindow конвертирует окно запроса в domain модель
func (w *WindowInput) ToDomainWindow(detailerID int64, date time.Time) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DetailerID:  detailerID,
		Date:        date,
		StartTime:   types.TimeString(w.StartTime),
		EndTime:     types.TimeString(w.EndTime),
		IsAvailable: w.IsAvailable,
	}
}

// FromDomainWindows конвертирует список domain моделей в DTO
func FromDomainWindows(detailerID int64, date time.Time, windows []*domain.AvailabilityWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		DetailerID: detailerID,
		Date:       date.Format(domain.DateFormat),
		Windows:    make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:          w.ID,
			StartTime:   w.StartTime.String(),
			EndTime:     w.EndTime.String(),
			IsAvailable: w.IsAvailable,
		})
	}
	return resp
}
