package repos

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/types"
)

func testDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Skill{}, &types.Roadmap{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return db, log
}

func TestSkillRepoCreateIfAbsent(t *testing.T) {
	db, log := testDB(t)
	repo := NewSkillRepo(db, log)
	ctx := context.Background()

	first, won, err := repo.CreateIfAbsent(ctx, nil, "I want to learn gardening", "Gardening")
	if err != nil {
		t.Fatalf("first CreateIfAbsent failed: %v", err)
	}
	if !won {
		t.Fatal("first insert should win")
	}
	if first.ID == uuid.Nil {
		t.Fatal("created skill has no id")
	}

	second, won, err := repo.CreateIfAbsent(ctx, nil, "teach me gardening please", "Gardening")
	if err != nil {
		t.Fatalf("second CreateIfAbsent failed: %v", err)
	}
	if won {
		t.Fatal("second insert must lose to the first")
	}
	if second.ID != first.ID {
		t.Fatalf("loser adopted %s, want winner %s", second.ID, first.ID)
	}
	if second.Question != "I want to learn gardening" {
		t.Fatalf("loser must see the winner's record, got question %q", second.Question)
	}

	names, err := repo.ListNames(ctx, nil)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Gardening" {
		t.Fatalf("expected exactly one skill name, got %v", names)
	}
}

func TestSkillRepoListDetailedNewestFirst(t *testing.T) {
	db, log := testDB(t)
	repo := NewSkillRepo(db, log)
	ctx := context.Background()

	for _, name := range []string{"Gardening", "Cybersecurity", "Web Development"} {
		if _, _, err := repo.CreateIfAbsent(ctx, nil, "q: "+name, name); err != nil {
			t.Fatalf("CreateIfAbsent(%q) failed: %v", name, err)
		}
	}
	// force a distinct ordering key regardless of clock resolution
	if err := db.Model(&types.Skill{}).Where("skill = ?", "Web Development").
		Update("created_at", gorm.Expr("datetime('now', '+1 hour')")).Error; err != nil {
		t.Fatalf("bump created_at: %v", err)
	}

	skills, err := repo.ListDetailed(ctx, nil)
	if err != nil {
		t.Fatalf("ListDetailed failed: %v", err)
	}
	if len(skills) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(skills))
	}
	if skills[0].Skill != "Web Development" {
		t.Fatalf("expected newest first, got %q", skills[0].Skill)
	}
}

func TestSkillRepoGetByNameNotFound(t *testing.T) {
	db, log := testDB(t)
	repo := NewSkillRepo(db, log)

	_, err := repo.GetByName(context.Background(), nil, "No Such Skill")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoadmapRepoRoundTrip(t *testing.T) {
	db, log := testDB(t)
	skillRepo := NewSkillRepo(db, log)
	roadmapRepo := NewRoadmapRepo(db, log)
	ctx := context.Background()

	skill, _, err := skillRepo.CreateIfAbsent(ctx, nil, "I want to learn gardening", "Gardening")
	if err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}

	doc := datatypes.JSON(`[{"MajorNode":"Basics","Topics":[{"SubNode":"Soil","Description":"d","Resources":["r"]}]}]`)
	created, err := roadmapRepo.Create(ctx, nil, &types.Roadmap{
		SkillID: skill.ID,
		Skill:   skill.Skill,
		Roadmap: doc,
	})
	if err != nil {
		t.Fatalf("Create roadmap failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created roadmap has no id")
	}

	fetched, err := roadmapRepo.GetBySkillID(ctx, nil, skill.ID)
	if err != nil {
		t.Fatalf("GetBySkillID failed: %v", err)
	}
	if fetched.Skill != "Gardening" {
		t.Fatalf("fetched skill %q", fetched.Skill)
	}
	if string(fetched.Roadmap) != string(doc) {
		t.Fatalf("stored document changed: %s", fetched.Roadmap)
	}
}

func TestRoadmapRepoGetBySkillIDNotFound(t *testing.T) {
	db, log := testDB(t)
	repo := NewRoadmapRepo(db, log)

	_, err := repo.GetBySkillID(context.Background(), nil, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
