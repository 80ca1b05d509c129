package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	ScheduledAt time.Time `gorm:"column:fecha_reserva;not null" json:"fechaReserva"`
	Details     string    `gorm:"column:detalles;type:text" json:"detalles"`

	// 0 = removed, 1 = pending, 2 = completed, 3 = cancelled
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	User User `gorm:"foreignKey:UserID" json:"usuario,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
