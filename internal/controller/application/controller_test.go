package application

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"jobportal-backend/internal/database"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

func jobParams(jobID uint) gin.Params {
	return gin.Params{{Key: "id", Value: fmt.Sprint(jobID)}}
}

func TestApply(t *testing.T) {
	ac := NewApplicationController(testDB)

	payload := gin.H{
		"name":        "Seed User Two",
		"email":       "user2@example.com",
		"coverLetter": "I have relevant experience.",
	}
	rec, resp, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser2, jobParams(database.TestJob1.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, model.ApplicationStatusPending, data["status"])

	var count int64
	require.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestUser2.ID, database.TestJob1.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestApplyAgainAllowed(t *testing.T) {
	ac := NewApplicationController(testDB)

	payload := gin.H{
		"name":        "Seed User Two",
		"email":       "user2@example.com",
		"coverLetter": "Second attempt with a better letter.",
	}
	rec, _, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser2, jobParams(database.TestJob1.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestUser2.ID, database.TestJob1.ID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestApplyMissingFields(t *testing.T) {
	ac := NewApplicationController(testDB)

	payload := gin.H{"name": "No Letter"}
	rec, resp, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser1, jobParams(database.TestJob1.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name, email and cover letter are required", resp["message"])
}

func TestApplyInvalidEmail(t *testing.T) {
	ac := NewApplicationController(testDB)

	payload := gin.H{
		"name":        "Bad Email",
		"email":       "not-an-email",
		"coverLetter": "Hello",
	}
	rec, _, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser1, jobParams(database.TestJob1.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyUnknownJob(t *testing.T) {
	ac := NewApplicationController(testDB)

	payload := gin.H{
		"name":        "Ghost Applicant",
		"email":       "ghost@example.com",
		"coverLetter": "Hello",
	}
	rec, resp, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser1, jobParams(999999))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid job or cv reference", resp["message"])
}

func TestApplyUnknownCV(t *testing.T) {
	ac := NewApplicationController(testDB)

	cvID := uint(999999)
	payload := gin.H{
		"name":        "No Such CV",
		"email":       "user1@example.com",
		"coverLetter": "Hello",
		"cvId":        cvID,
	}
	rec, resp, err := utilities.SimulateAuthAPICall(ac.ApplyHandler, "/api/jobs/apply", http.MethodPost, payload,
		database.TestUser1, jobParams(database.TestJob2.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid job or cv reference", resp["message"])
}

func TestMyApplications(t *testing.T) {
	ac := NewApplicationController(testDB)

	// TestUser2 applied twice to TestJob1 in the tests above
	rec, resp, err := utilities.SimulateAuthAPICall(ac.MyApplications, "/api/user/applications", http.MethodGet, nil,
		database.TestUser2, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	listings := resp["data"].([]interface{})
	require.Len(t, listings, 2)

	first := listings[0].(map[string]interface{})
	assert.Equal(t, database.TestJob1.Title, first["job_title"])
	assert.Equal(t, database.TestJob1.Company, first["job_company"])
	assert.Equal(t, model.ApplicationStatusPending, first["status"])
}

func TestMyApplicationsEmpty(t *testing.T) {
	ac := NewApplicationController(testDB)

	rec, resp, err := utilities.SimulateAuthAPICall(ac.MyApplications, "/api/user/applications", http.MethodGet, nil,
		database.TestAdminUser, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	listings, ok := resp["data"].([]interface{})
	require.True(t, ok, "an empty result must still be an array")
	assert.Empty(t, listings)
}
