package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Medication struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Name        string  `gorm:"column:nombre;not null" json:"nombre"`
	Image       *string `gorm:"column:imagen" json:"imagen"`
	Code        *string `gorm:"column:codigo;uniqueIndex" json:"codigo"`
	Description *string `gorm:"column:descripcion" json:"descripcion"`
	Directions  *string `gorm:"column:indicaciones" json:"indicaciones"`
	Unit        *string `gorm:"column:unidad_medida" json:"unidadMedida"`

	Stock           int             `gorm:"not null;default:0" json:"stock"`
	QuantityPerUnit int             `gorm:"column:cantidad_por_unidad;not null;default:1" json:"cantidadPorUnidad"`
	Remainder       int             `gorm:"column:sobrante;not null;default:0" json:"sobrante"`
	Price           decimal.Decimal `gorm:"column:precio;type:decimal(10,2);not null" json:"precio"`
	Type            string          `gorm:"column:tipo;type:varchar(20);not null" json:"tipo"`

	// 0 = removed, 1 = in stock, 2 = depleted, 3 = expired
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Treatments []TreatmentMedication `gorm:"foreignKey:MedicationID" json:"tratamientos,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
