package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID         *uuid.UUID `gorm:"type:uuid;index" json:"idPropietario"`
	CreatedByUserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Name       string     `gorm:"column:nombre;not null" json:"nombre"`
	Image      *string    `gorm:"column:imagen" json:"imagen"`
	Species    string     `gorm:"column:especie;type:varchar(10);not null" json:"especie"`
	Breed      *string    `gorm:"column:raza" json:"raza"`
	BirthDate  *time.Time `gorm:"column:fecha_nacimiento" json:"fechaNacimiento"`
	Sex        string     `gorm:"column:sexo;type:varchar(10);not null" json:"sexo"`
	Details    *string    `gorm:"column:detalles" json:"detalles"`
	Weight     *float64   `gorm:"column:peso" json:"peso"`
	Sterilized *bool      `gorm:"column:esterilizado" json:"esterilizado"`

	// 0 = removed, 1 = registered, 2 = attended, 3 = in treatment,
	// 4 = discharged, 5 = hospitalized, 6 = deceased
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Owner   *User           `gorm:"foreignKey:OwnerID" json:"usuario,omitempty"`
	History *MedicalHistory `gorm:"foreignKey:PetID" json:"historial,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
