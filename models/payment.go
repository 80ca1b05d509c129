package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TreatmentID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"tratamientoId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	PaidAt       *time.Time      `gorm:"column:fecha_pago" json:"fechaPago"`
	Method       *string         `gorm:"column:metodo_pago;type:varchar(20)" json:"metodoPago"`
	Details      *string         `gorm:"column:detalle;type:text" json:"detalle"`
	VoluntaryAid bool            `gorm:"column:es_ayuda_voluntaria;not null;default:false" json:"esAyudaVoluntaria"`

	// 0 = removed, 1 = pending, 2 = completed, 3 = cancelled
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Treatment Treatment `gorm:"foreignKey:TreatmentID" json:"tratamiento,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
