package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a farmer account; every other record is scoped to its owner
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Age      *int   `gorm:"type:int" json:"age,omitempty"`
	Gender   string `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Address  string `gorm:"type:varchar(500)" json:"address,omitempty"`
	Mobile   string `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile" validate:"required"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Mobile string    `json:"mobile"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Mobile: u.Mobile,
	}
}
