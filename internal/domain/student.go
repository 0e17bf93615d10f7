package domain

import "time"

// Student represents a student account. The student and mentor tables
// have separate auto-increment sequences, so the two id spaces are
// disjoint; a ParticipantRef is only unambiguous because of this.
type Student struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	SchoolID  int       `gorm:"column:school_id;index" json:"school_id"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

// ToAccount converts the row to the resolver's account view.
func (s *Student) ToAccount() *Account {
	return &Account{ID: s.ID, Kind: KindStudent, Name: s.Name, Email: s.Email}
}
