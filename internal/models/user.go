package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the only persisted entity. The two OTP pairs (code + epoch-ms
// expiry) are always written together: issuing sets both, consuming clears
// both in the same update.
type User struct {
	ID                uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	IsAccountVerified bool      `gorm:"not null;default:false" json:"isAccountVerified"`
	VerifyOtp         string    `gorm:"size:16" json:"-"`
	VerifyOtpExpireAt int64     `gorm:"not null;default:0" json:"-"`
	ResetOtp          string    `gorm:"size:16" json:"-"`
	ResetOtpExpireAt  int64     `gorm:"not null;default:0" json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Public returns the fields safe to serialize to clients.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":                u.ID,
		"name":              u.Name,
		"email":             u.Email,
		"isAccountVerified": u.IsAccountVerified,
		"createdAt":         u.CreatedAt,
		"updatedAt":         u.UpdatedAt,
	}
}
