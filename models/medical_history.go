package models

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory is keyed by the owning pet: exactly one history per pet,
// created in the same transaction as the pet itself.
type MedicalHistory struct {
	PetID           uuid.UUID `gorm:"type:uuid;primary_key" json:"historialMascotaId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Notes *string `gorm:"column:descripcion_tratamientos;type:text" json:"descripcionTratamientos"`

	// 0 = removed, 1 = new, 2 = pending treatment, 3 = treatments completed,
	// 4 = archived
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Pet        Pet         `gorm:"foreignKey:PetID" json:"mascota,omitempty"`
	Treatments []Treatment `gorm:"foreignKey:MedicalHistoryID" json:"tratamientos,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}
