package profile

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"jobportal-backend/internal/database"
	"jobportal-backend/internal/middleware"
	"jobportal-backend/internal/model"
	"jobportal-backend/internal/testutil"
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

// uploadEngine wires UploadCV behind the body size limit with the given user
// already authenticated, the way the real route is mounted.
func uploadEngine(user model.User) *gin.Engine {
	pc := NewProfileController(testDB)
	r := gin.New()
	r.POST("/user/upload-cv",
		middleware.SizeLimit(5<<20),
		func(c *gin.Context) { c.Set("user", user) },
		pc.UploadCV,
	)
	return r
}

func TestGetProfile(t *testing.T) {
	pc := NewProfileController(testDB)

	rec, resp, err := utilities.SimulateAuthAPICall(pc.GetProfile, "/api/user/profile", http.MethodGet, nil,
		database.TestUser1, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, database.TestUser1.Email, data["email"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword, "password hash must never be serialized")
}

func TestUpdateProfileUsernameOnly(t *testing.T) {
	pc := NewProfileController(testDB)

	payload := gin.H{"username": "renamed_user_1"}
	rec, resp, err := utilities.SimulateAuthAPICall(pc.UpdateProfile, "/api/user/profile", http.MethodPut, payload,
		database.TestUser1, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "renamed_user_1", data["username"])
	// Fields that were absent stay untouched
	assert.Equal(t, database.TestUser1.Email, data["email"])

	var stored model.User
	require.NoError(t, testDB.Where("id = ?", database.TestUser1.ID).First(&stored).Error)
	assert.Equal(t, "renamed_user_1", stored.Username)
	database.TestUser1 = stored
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	pc := NewProfileController(testDB)

	payload := gin.H{"email": database.TestUser2.Email}
	rec, resp, err := utilities.SimulateAuthAPICall(pc.UpdateProfile, "/api/user/profile", http.MethodPut, payload,
		database.TestUser1, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already taken", resp["message"])
}

func TestUpdateProfileKeepOwnEmail(t *testing.T) {
	pc := NewProfileController(testDB)

	// Re-submitting the current email is not a conflict
	payload := gin.H{"email": database.TestUser1.Email, "username": "renamed_again"}
	rec, _, err := utilities.SimulateAuthAPICall(pc.UpdateProfile, "/api/user/profile", http.MethodPut, payload,
		database.TestUser1, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadCV(t *testing.T) {
	content := []byte("%PDF-1.4 fake cv content")
	rec, resp := testutil.MakeMultipartRequest("cv", "resume.pdf", content, "",
		uploadEngine(database.TestUser1), "/user/upload-cv")
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "resume.pdf", data["original_name"])
	assert.Equal(t, "application/pdf", data["mime_type"])
	assert.EqualValues(t, len(content), data["size"])
	_, hasContent := data["content"]
	assert.False(t, hasContent, "file bytes must not appear in the response")

	var cv model.UserCV
	require.NoError(t, testDB.Where("user_id = ?", database.TestUser1.ID).First(&cv).Error)
	assert.Equal(t, content, cv.Content)
}

func TestUploadCVUnsupportedExtension(t *testing.T) {
	rec, resp := testutil.MakeMultipartRequest("cv", "resume.txt", []byte("plain text"), "",
		uploadEngine(database.TestUser1), "/user/upload-cv")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "error", resp["status"])
}

func TestUploadCVTooLarge(t *testing.T) {
	oversized := bytes.Repeat([]byte("a"), 5<<20+1)
	rec, _ := testutil.MakeMultipartRequest("cv", "huge.pdf", oversized, "",
		uploadEngine(database.TestUser2), "/user/upload-cv")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.UserCV{}).
		Where("user_id = ?", database.TestUser2.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "an oversized upload must not be stored")
}

func TestGetCV(t *testing.T) {
	pc := NewProfileController(testDB)

	var cv model.UserCV
	require.NoError(t, testDB.Where("user_id = ?", database.TestUser1.ID).First(&cv).Error)

	rec, _, _ := utilities.SimulateAuthAPICall(pc.GetCV, "/user/cv", http.MethodGet, nil,
		database.TestUser1, gin.Params{{Key: "id", Value: fmt.Sprint(cv.ID)}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resume.pdf")
	assert.Equal(t, cv.Content, rec.Body.Bytes())
}

func TestGetCVOwnedByAnotherUser(t *testing.T) {
	pc := NewProfileController(testDB)

	var cv model.UserCV
	require.NoError(t, testDB.Where("user_id = ?", database.TestUser1.ID).First(&cv).Error)

	rec, resp, err := utilities.SimulateAuthAPICall(pc.GetCV, "/user/cv", http.MethodGet, nil,
		database.TestUser2, gin.Params{{Key: "id", Value: fmt.Sprint(cv.ID)}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to access this CV", resp["message"])
}

func TestGetCVMalformedID(t *testing.T) {
	pc := NewProfileController(testDB)

	rec, resp, err := utilities.SimulateAuthAPICall(pc.GetCV, "/user/cv", http.MethodGet, nil,
		database.TestUser1, gin.Params{{Key: "id", Value: "abc"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid cv id", resp["message"])
}

func TestGetCVNotFound(t *testing.T) {
	pc := NewProfileController(testDB)

	rec, resp, err := utilities.SimulateAuthAPICall(pc.GetCV, "/user/cv", http.MethodGet, nil,
		database.TestUser1, gin.Params{{Key: "id", Value: "999999"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CV not found", resp["message"])
}
