package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique" json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"` // 'user' atau 'admin'

	CreatedAt time.Time `json:"created_at"`
}
