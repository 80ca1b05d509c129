package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Name        string          `gorm:"column:nombre;not null" json:"nombre"`
	Description string          `gorm:"column:descripcion;type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:decimal(10,2);not null" json:"precio"`

	// 0 = removed, 1 = available, 2 = unavailable
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Treatments []TreatmentService `gorm:"foreignKey:ServiceID" json:"tratamientos,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
