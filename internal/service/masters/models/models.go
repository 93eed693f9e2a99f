package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateMasterRequest запрос на создание мастера
type CreateMasterRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateMasterRequest) ToDomain() *domain.Master {
	return &domain.Master{
		Name:        r.Name,
		Description: r.Description,
		Photo:       r.Photo,
	}
}

// UpdateMasterRequest запрос на частичное обновление профиля мастера
// Nil-поля не изменяются
type UpdateMasterRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
}

// ToDomain конвертирует request в domain модель обновления
func (r *UpdateMasterRequest) ToDomain() domain.MasterUpdate {
	return domain.MasterUpdate{
		Name:        r.Name,
		Description: r.Description,
		Photo:       r.Photo,
	}
}

// Response модели

// MasterResponse ответ с данными мастера
type MasterResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MasterListResponse ответ со списком мастеров
type MasterListResponse struct {
	Masters []MasterResponse `json:"masters"`
}

// FromDomainMaster конвертирует domain модель в DTO
func FromDomainMaster(m *domain.Master) *MasterResponse {
	if m == nil {
		return nil
	}

	return &MasterResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Photo:       m.Photo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomainMasterList конвертирует список domain моделей в DTO
func FromDomainMasterList(masters []*domain.Master) *MasterListResponse {
	resp := &MasterListResponse{
		Masters: make([]MasterResponse, 0, len(masters)),
	}

	for _, m := range masters {
		if mr := FromDomainMaster(m); mr != nil {
			resp.Masters = append(resp.Masters, *mr)
		}
	}

	return resp
}
