package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/peakspace-dev/peakspace/internal/outbox"
	"github.com/peakspace-dev/peakspace/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingDispatcher captures fan-out jobs instead of running them
type recordingDispatcher struct {
	jobs []outbox.Job
}

func (d *recordingDispatcher) Enqueue(job outbox.Job) bool {
	d.jobs = append(d.jobs, job)
	return true
}

func setupSubmissionService(t *testing.T) (*SubmissionService, *gorm.DB, *recordingDispatcher) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Inquiry{},
		&models.QuestionnaireResponse{},
		&models.AnalyticsEvent{},
	))

	cfg := &config.Config{
		Email: config.EmailConfig{Enabled: false},
	}

	dispatcher := &recordingDispatcher{}
	notifier := NewNotifier(cfg, NewEmailService(&cfg.Email), database)
	svc := NewSubmissionService(database, dispatcher, notifier)

	return svc, database, dispatcher
}

func questionnaireInput() QuestionnaireInput {
	return QuestionnaireInput{
		Responses: map[string]interface{}{
			"spaceType":  "warehouse",
			"size":       float64(2000),
			"location":   "denver",
			"budget":     "2000-3500",
			"timeline":   "asap",
			"leaseOrBuy": "lease",
		},
		UserInfo: types.SubmitUserInfo{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "3035551234",
		},
	}
}

func TestSubmitQuestionnaire(t *testing.T) {
	svc, database, dispatcher := setupSubmissionService(t)

	result, err := svc.SubmitQuestionnaire(context.Background(), questionnaireInput())
	require.NoError(t, err)
	require.NotNil(t, result)

	var user models.User
	require.NoError(t, database.First(&user, result.UserID).Error)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.NotNil(t, user.LastContactAt)

	var inquiry models.Inquiry
	require.NoError(t, database.First(&inquiry, result.InquiryID).Error)
	assert.Equal(t, "questionnaire", inquiry.Type)
	assert.Equal(t, "new", inquiry.Status)
	require.NotNil(t, inquiry.UserID)
	assert.Equal(t, user.ID, *inquiry.UserID)
	assert.Contains(t, inquiry.Message, "warehouse")
	assert.Contains(t, inquiry.Message, "denver")

	var response models.QuestionnaireResponse
	require.NoError(t, database.First(&response, result.ResponseID).Error)
	assert.Equal(t, 2000, response.BudgetMin)
	assert.Equal(t, 3500, response.BudgetMax)
	assert.Equal(t, 1500, response.SizeMin)
	assert.Equal(t, 3000, response.SizeMax)
	assert.Equal(t, "warehouse", response.SpaceType)
	assert.Equal(t, inquiry.ID, response.InquiryID)

	// Fan-out was enqueued, never executed inline
	assert.NotEmpty(t, dispatcher.jobs)
}

func TestSubmitQuestionnaire_UpsertByEmail(t *testing.T) {
	svc, database, _ := setupSubmissionService(t)

	first, err := svc.SubmitQuestionnaire(context.Background(), questionnaireInput())
	require.NoError(t, err)

	second := questionnaireInput()
	second.UserInfo.Phone = "7205559876"
	secondResult, err := svc.SubmitQuestionnaire(context.Background(), second)
	require.NoError(t, err)

	// One user, refreshed contact fields
	assert.Equal(t, first.UserID, secondResult.UserID)

	var userCount int64
	require.NoError(t, database.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)

	var user models.User
	require.NoError(t, database.First(&user, first.UserID).Error)
	assert.Equal(t, "7205559876", user.Phone)

	// Two separate inquiry/response pairs
	var inquiryCount, responseCount int64
	require.NoError(t, database.Model(&models.Inquiry{}).Count(&inquiryCount).Error)
	require.NoError(t, database.Model(&models.QuestionnaireResponse{}).Count(&responseCount).Error)
	assert.Equal(t, int64(2), inquiryCount)
	assert.Equal(t, int64(2), responseCount)
	assert.NotEqual(t, first.InquiryID, secondResult.InquiryID)
}

func TestSubmitQuestionnaire_MissingNameOrEmail(t *testing.T) {
	svc, database, dispatcher := setupSubmissionService(t)

	input := questionnaireInput()
	input.UserInfo.Email = ""

	_, err := svc.SubmitQuestionnaire(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = questionnaireInput()
	input.UserInfo.Name = "   "

	_, err = svc.SubmitQuestionnaire(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Nothing written, nothing enqueued
	var userCount int64
	require.NoError(t, database.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(0), userCount)
	assert.Empty(t, dispatcher.jobs)
}

func TestSubmitQuestionnaire_UnknownBudgetDefaults(t *testing.T) {
	svc, database, _ := setupSubmissionService(t)

	input := questionnaireInput()
	input.Responses["budget"] = "whatever-it-takes"

	result, err := svc.SubmitQuestionnaire(context.Background(), input)
	require.NoError(t, err)

	var response models.QuestionnaireResponse
	require.NoError(t, database.First(&response, result.ResponseID).Error)
	assert.Equal(t, 0, response.BudgetMin)
	assert.Equal(t, 999999, response.BudgetMax)
}

func TestSubmitQuestionnaire_StringSizeCoerced(t *testing.T) {
	svc, database, _ := setupSubmissionService(t)

	input := questionnaireInput()
	input.Responses["size"] = "2000"

	result, err := svc.SubmitQuestionnaire(context.Background(), input)
	require.NoError(t, err)

	var response models.QuestionnaireResponse
	require.NoError(t, database.First(&response, result.ResponseID).Error)
	assert.Equal(t, 1500, response.SizeMin)
	assert.Equal(t, 3000, response.SizeMax)
}

func TestSubmitLead(t *testing.T) {
	svc, database, dispatcher := setupSubmissionService(t)

	result, err := svc.SubmitLead(context.Background(), LeadInput{
		Name:   "Bob Smith",
		Email:  "Bob@Example.com",
		Phone:  "3035550000",
		Source: "homepage",
		Page:   "/contact",
	})
	require.NoError(t, err)

	var inquiry models.Inquiry
	require.NoError(t, database.First(&inquiry, result.InquiryID).Error)
	assert.Equal(t, "lead_capture", inquiry.Type)
	assert.Equal(t, "bob@example.com", inquiry.Email)
	assert.Equal(t, "homepage", inquiry.Source)

	var user models.User
	require.NoError(t, database.First(&user, result.UserID).Error)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "homepage", user.LeadSource)

	assert.NotEmpty(t, dispatcher.jobs)
}

func TestSubmitLead_MissingPhone(t *testing.T) {
	svc, _, _ := setupSubmissionService(t)

	_, err := svc.SubmitLead(context.Background(), LeadInput{
		Name:  "Bob Smith",
		Email: "bob@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
