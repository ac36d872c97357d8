package models

import (
	"time"

	"github.com/vmrkv/CST-BookingService/internal/domain"
)

// Request модели

// TemplateWindow окно доступности внутри одного дня недели
type TemplateWindow struct {
	StartTime   string `json:"startTime"` // "09:00"
	EndTime     string `json:"endTime"`   // "13:00"
	MaxBookings int    `json:"maxBookings"`
}

// ReplaceDayRequest запрос на полную замену окон одного дня недели.
// Пустой список окон делает день нерабочим
type ReplaceDayRequest struct {
	Windows []TemplateWindow `json:"windows"`
}

// CopyDayRequest запрос на копирование окон одного дня недели в другие
type CopyDayRequest struct {
	SourceDay  int   `json:"sourceDay"`  // 0=воскресенье .. 6=суббота
	TargetDays []int `json:"targetDays"` // Дни, в которые копируются окна
}

// CreateTimeOffRequest запрос на создание отпуска
type CreateTimeOffRequest struct {
	StartDate string  `json:"startDate"` // "2026-09-01"
	EndDate   string  `json:"endDate"`   // "2026-09-14", включительно
	Reason    *string `json:"reason,omitempty"`
}

// CreateBreakRequest запрос на создание перерыва.
// Либо DayOfWeek (еженедельный перерыв), либо Date (разовый)
type CreateBreakRequest struct {
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	Date      *string `json:"date,omitempty"` // "2026-09-01"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// Response модели

// TemplateWindowResponse окно доступности в ответе
type TemplateWindowResponse struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxBookings int    `json:"maxBookings"`
	IsActive    bool   `json:"isActive"`
}

// DayScheduleResponse окна одного дня недели
type DayScheduleResponse struct {
	DayOfWeek int                      `json:"dayOfWeek"`
	Windows   []TemplateWindowResponse `json:"windows"`
}

// WeekScheduleResponse недельное расписание консультанта.
// Дни присутствуют всегда, с воскресенья (0) по субботу (6)
type WeekScheduleResponse struct {
	ConsultantID int64                 `json:"consultantId"`
	Days         []DayScheduleResponse `json:"days"`
}

// TimeOffResponse созданный отпуск
type TimeOffResponse struct {
	ID           int64     `json:"id"`
	ConsultantID int64     `json:"consultantId"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BreakResponse созданный перерыв
type BreakResponse struct {
	ID           int64     `json:"id"`
	ConsultantID int64     `json:"consultantId"`
	DayOfWeek    *int      `json:"dayOfWeek,omitempty"`
	Date         *string   `json:"date,omitempty"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Методы конвертации

// FromDomainTemplates раскладывает шаблоны консультанта по дням недели
func FromDomainTemplates(consultantID int64, templates []*domain.WeeklyTemplate) *WeekScheduleResponse {
	resp := &WeekScheduleResponse{
		ConsultantID: consultantID,
		Days:         make([]DayScheduleResponse, 7),
	}

	for day := 0; day < 7; day++ {
		resp.Days[day] = DayScheduleResponse{
			DayOfWeek: day,
			Windows:   make([]TemplateWindowResponse, 0),
		}
	}

	for _, t := range templates {
		if t.DayOfWeek < 0 || t.DayOfWeek > 6 {
			continue
		}
		resp.Days[t.DayOfWeek].Windows = append(resp.Days[t.DayOfWeek].Windows, TemplateWindowResponse{
			ID:          t.ID,
			StartTime:   t.StartTime.String(),
			EndTime:     t.EndTime.String(),
			MaxBookings: t.MaxBookings,
			IsActive:    t.IsActive,
		})
	}

	return resp
}

// FromDomainTimeOff конвертирует domain модель отпуска в DTO
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	if t == nil {
		return nil
	}
	return &TimeOffResponse{
		ID:           t.ID,
		ConsultantID: t.ConsultantID,
		StartDate:    t.StartDate.Format(domain.DateFormat),
		EndDate:      t.EndDate.Format(domain.DateFormat),
		Reason:       t.Reason,
		CreatedAt:    t.CreatedAt,
	}
}

// FromDomainBreak конвертирует domain модель перерыва в DTO
func FromDomainBreak(b *domain.Break) *BreakResponse {
	if b == nil {
		return nil
	}

	resp := &BreakResponse{
		ID:           b.ID,
		ConsultantID: b.ConsultantID,
		DayOfWeek:    b.DayOfWeek,
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		CreatedAt:    b.CreatedAt,
	}

	if b.Date != nil {
		dateStr := b.Date.Format(domain.DateFormat)
		resp.Date = &dateStr
	}

	return resp
}
