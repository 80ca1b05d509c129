package models

import (
	"time"

	"vetcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Name            string  `gorm:"not null" json:"name"`
	PaternalSurname *string `gorm:"column:apellido_pat" json:"apellidoPat"`
	MaternalSurname *string `gorm:"column:apellido_mat" json:"apellidoMat"`
	Phone           *string `gorm:"column:celular" json:"celular"`
	Address         *string `gorm:"column:direccion" json:"direccion"`

	Role          string     `gorm:"column:rol;type:varchar(20);not null;default:'Usuario'" json:"rol"`
	EmailVerified *time.Time `json:"emailVerified"`

	// 0 = removed, 1 = active, 2 = inactive
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	Pets         []Pet         `gorm:"foreignKey:OwnerID" json:"mascotas,omitempty"`
	Reservations []Reservation `gorm:"foreignKey:UserID" json:"reservas,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// FullName joins name and surnames, skipping the ones not on record.
func (u *User) FullName() string {
	full := u.Name
	if u.PaternalSurname != nil && *u.PaternalSurname != "" {
		full += " " + *u.PaternalSurname
	}
	if u.MaternalSurname != nil && *u.MaternalSurname != "" {
		full += " " + *u.MaternalSurname
	}
	return full
}
