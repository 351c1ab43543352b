package database

import (
	"context"
	"log"
	"testing"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"jobportal-backend/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	teardown, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	m.Run()

	if teardown != nil {
		if terr := teardown(context.Background()); terr != nil {
			log.Fatalf("could not teardown postgres container: %v", terr)
		}
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestMigrationTables(t *testing.T) {
	for _, mdl := range model.MigrateAble {
		if !testDB.Migrator().HasTable(mdl) {
			t.Fatalf("expected table for %T to exist after migration", mdl)
		}
	}
}

func TestSeedData(t *testing.T) {
	var userCount int64
	if err := testDB.Model(&model.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if userCount < 3 {
		t.Fatalf("expected at least 3 seeded users, got %d", userCount)
	}

	if TestJob1.ID == 0 || TestJob2.ID == 0 || TestJob3.ID == 0 {
		t.Fatal("expected seeded jobs to have ids assigned")
	}
	if TestAdminUser.Role != model.RoleAdmin {
		t.Fatalf("expected seeded admin role to be admin, got %s", TestAdminUser.Role)
	}
}
