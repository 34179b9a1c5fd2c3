package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:255"`
}

// SectionRow is the storage shape shared by every résumé section table.
// The kind-specific fields live inside Data exactly as the client submitted
// them; list-valued kinds keep their entries in a JSON array under the
// kind's list key, each entry carrying its own id.
type SectionRow struct {
	gorm.Model
	UserID uint           `gorm:"index"`
	Data   datatypes.JSON `gorm:"type:jsonb"`
}
