package domain

import "time"

// Mentor represents a mentor (instructor) account.
type Mentor struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	SchoolID  int       `gorm:"column:school_id;index" json:"school_id"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Mentor) TableName() string {
	return "mentors"
}

// ToAccount converts the row to the resolver's account view.
func (m *Mentor) ToAccount() *Account {
	return &Account{ID: m.ID, Kind: KindMentor, Name: m.Name, Email: m.Email}
}
