package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap holds the generated curriculum document for exactly one Skill.
// The skill name is denormalized so reads don't need a join. The document
// itself is stored as JSON; it is validated against RoadmapDoc before any
// write (see services.GeminiService).
type Roadmap struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SkillID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"skill_id"`
	Skill     string         `gorm:"column:skill;not null" json:"skill"`
	Roadmap   datatypes.JSON `gorm:"column:roadmap;type:jsonb" json:"roadmap"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (Roadmap) TableName() string { return "roadmap" }

func (r *Roadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
