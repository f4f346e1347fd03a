package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a canonical named subject of learning. The skill name is the
// dedup key: at most one record may exist per name.
type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Question  string    `gorm:"column:question;not null" json:"question"`
	Skill     string    `gorm:"column:skill;not null;uniqueIndex:uniq_skill_name" json:"skill"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Skill) TableName() string { return "skill" }

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
