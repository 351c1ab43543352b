package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context) error

// Exported test users and jobs shared by handler tests
var (
	TestAdminUser m.User
	TestUser1     m.User
	TestUser2     m.User

	// Plain password shared by all seeded accounts
	TestSeedPassword = "SeedPass123!"

	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users and jobs if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{
			Email:       "user1@example.com",
			Username:    "seed_user_1",
			Password:    hashedPwd,
			DateOfBirth: "1995-04-12",
			Role:        m.RoleUser,
		},
		{
			Email:       "user2@example.com",
			Username:    "seed_user_2",
			Password:    hashedPwd,
			DateOfBirth: "1992-09-30",
			Role:        m.RoleUser,
		},
		{
			Email:       "admin@example.com",
			Username:    "seed_admin",
			Password:    hashedPwd,
			DateOfBirth: "1988-01-01",
			Role:        m.RoleAdmin,
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Username {
		case "seed_user_1":
			TestUser1 = u
		case "seed_user_2":
			TestUser2 = u
		case "seed_admin":
			TestAdminUser = u
		}
	}

	jobs := []m.Job{
		{
			UserID: TestUser1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Backend Engineer",
				Company:      "TechNova",
				Location:     "Berlin",
				Type:         "Full-time",
				Skills:       pq.StringArray{"Go", "PostgreSQL"},
				Salary:       "90k",
				Description:  "Work on Go services and database layers.",
				Requirements: "Go experience; SQL familiarity",
			},
		},
		{
			UserID: TestUser1.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Frontend Developer",
				Company:      "DataForge",
				Location:     "Remote",
				Type:         "Part-time",
				Skills:       pq.StringArray{"React", "Node.js"},
				Salary:       "60k",
				Description:  "Build component libraries in React.",
				Requirements: "JS/TS fundamentals",
			},
		},
		{
			UserID: TestUser2.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Data Analyst",
				Company:      "TechNova",
				Location:     "berlin, de",
				Type:         "Full-time",
				Skills:       pq.StringArray{"SQL", "Python"},
				Salary:       "75k",
				Description:  "Support data cleansing and dashboards.",
				Requirements: "SQL; basic statistics",
			},
		},
	}

	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1 = jobs[0]
	TestJob2 = jobs[1]
	TestJob3 = jobs[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"seed_user_1", "seed_user_2", "seed_admin",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "seed_user_1":
			TestUser1 = u
		case "seed_user_2":
			TestUser2 = u
		case "seed_admin":
			TestAdminUser = u
		}
	}

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
