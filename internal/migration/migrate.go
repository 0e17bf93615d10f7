package migration

import (
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the messaging tables. The unique
// indexes on the chat pair and membership tables are the storage-level
// guard behind findOrCreate and idempotent joins, so this must run
// before the API serves traffic.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Student{},
		&domain.Mentor{},
		&domain.DirectChat{},
		&domain.Group{},
		&domain.GroupStudent{},
		&domain.GroupMentor{},
		&domain.Message{},
		&domain.Notification{},
	)
}
