package domain

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"idUsuario"`
	Name      string    `gorm:"type:text;not null" json:"nombre"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

// Admin grants elevated capability by existing: at most one row per user,
// and the row carries no data beyond the link itself.
type Admin struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_admins_user"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Admin) TableName() string { return "admins" }
