package ds

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account of the catalog. Requests and created services point at it.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);not null" json:"username" validate:"required"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	Email        string    `gorm:"type:varchar(100);not null" json:"email" validate:"required,email"`
	RoleID       uint      `gorm:"not null;index" json:"role_id" validate:"required"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`

	Role *Role `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"role,omitempty" validate:"-"`
}

func (User) TableName() string { return "users" }

func (u User) Key() uint { return u.ID }

// HashPassword returns the bcrypt hash stored in PasswordHash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
