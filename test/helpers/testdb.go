package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"weijob_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// LoginUser signs in through the API with a fresh open-id and returns the
// issued token plus the user's id. Login auto-registers unknown open-ids,
// so no separate registration step exists.
func LoginUser(t *testing.T, ts *TestServer, nickname string) (string, string) {
	openID := fmt.Sprintf("test-openid-%d", time.Now().UnixNano())

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"openId":   openID,
		"nickname": nickname,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)
	require.NotEmpty(t, loginResponse.User.ID)

	return loginResponse.Token, loginResponse.User.ID
}

// CreateJob inserts a listing directly into the transaction. PublishDay
// is taken as given, which is how tests fabricate historical listings.
func CreateJob(t *testing.T, tx *gorm.DB, publisherID, title, publishDay string) *models.Job {
	job := &models.Job{
		PublisherID:   publisherID,
		Title:         title,
		Company:       "Test Company",
		City:          "上海",
		Contact:       "13812345678",
		ContactPerson: "王经理",
		ContactTime:   "9:00-18:00",
		PublishDay:    publishDay,
		Status:        models.JobStatusActive,
	}
	require.NoError(t, tx.Create(job).Error, "failed to create test job")
	return job
}

// Today returns the current calendar day in gating format.
func Today() string {
	return time.Now().Format(models.DayFormat)
}

// DaysAgo returns the calendar day n days before today.
func DaysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(models.DayFormat)
}
