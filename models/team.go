package models

import (
	"time"
)

type Team struct {
	ID          uint        `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Name        string      `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string      `gorm:"size:500" json:"description"`
	Developers  []Developer `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"developers"`
}

// Developer is one roster member of a team. Password is optional; an empty
// password means any password is accepted at engineer login.
type Developer struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	TeamID     uint   `gorm:"not null;index" json:"-"`
	Name       string `gorm:"not null;size:200" json:"name"`
	Email      string `gorm:"size:200" json:"email"`
	Password   string `gorm:"size:200" json:"-"`
	AccessLink string `gorm:"size:500" json:"access_link"`
}

// FindDeveloper returns the roster entry with the given name, or nil.
func (t *Team) FindDeveloper(name string) *Developer {
	for i := range t.Developers {
		if t.Developers[i].Name == name {
			return &t.Developers[i]
		}
	}
	return nil
}
