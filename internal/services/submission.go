package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peakspace-dev/peakspace/internal/metrics"
	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/peakspace-dev/peakspace/internal/outbox"
	"github.com/peakspace-dev/peakspace/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInvalidInput marks precondition failures the handler maps to 400.
var ErrInvalidInput = errors.New("invalid input")

// QuestionnaireInput is the payload of a completed wizard.
type QuestionnaireInput struct {
	Responses map[string]interface{}
	UserInfo  types.SubmitUserInfo
}

// LeadInput is the payload of the simple lead-capture form.
type LeadInput struct {
	Name   string
	Email  string
	Phone  string
	Source string
	Page   string
}

// SubmissionResult reports the rows written by a composite submit.
type SubmissionResult struct {
	UserID     uint
	InquiryID  uint
	ResponseID uint
	BudgetMin  int
	BudgetMax  int
	SizeMin    int
	SizeMax    int
}

// SubmissionService turns a submission into durable rows: user upsert,
// inquiry, questionnaire response — one transaction, so a partial failure
// cannot orphan a user row. Fan-out is enqueued only after commit.
type SubmissionService struct {
	db         *gorm.DB
	dispatcher outbox.Dispatcher
	notifier   *Notifier
}

func NewSubmissionService(database *gorm.DB, dispatcher outbox.Dispatcher, notifier *Notifier) *SubmissionService {
	return &SubmissionService{
		db:         database,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

// SubmitQuestionnaire writes the user/inquiry/response triple for a
// completed wizard and enqueues the notification fan-out.
func (s *SubmissionService) SubmitQuestionnaire(ctx context.Context, input QuestionnaireInput) (*SubmissionResult, error) {
	info := input.UserInfo
	info.Email = strings.ToLower(strings.TrimSpace(info.Email))
	info.Name = strings.TrimSpace(info.Name)

	if info.Name == "" || info.Email == "" {
		metrics.SubmissionsTotal.WithLabelValues("questionnaire", "invalid").Inc()
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	spaceType := stringAnswer(input.Responses, "spaceType")
	location := stringAnswer(input.Responses, "location")
	budgetLabel := stringAnswer(input.Responses, "budget")
	timeline := stringAnswer(input.Responses, "timeline")
	leaseOrBuy := stringAnswer(input.Responses, "leaseOrBuy")
	size := intAnswer(input.Responses, "size")

	budget := BudgetRange(budgetLabel)
	sizeRange := SizeRange(size)
	summary := synthesizeMessage(spaceType, size, location, budgetLabel, leaseOrBuy)

	responsesJSON, err := json.Marshal(input.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize responses: %w", err)
	}

	result := &SubmissionResult{
		BudgetMin: budget.Min,
		BudgetMax: budget.Max,
		SizeMin:   sizeRange.Min,
		SizeMax:   sizeRange.Max,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := upsertUser(tx, info, "questionnaire")
		if err != nil {
			return err
		}

		inquiry := models.Inquiry{
			UserID:  &user.ID,
			Type:    "questionnaire",
			Status:  "new",
			Name:    info.Name,
			Email:   info.Email,
			Phone:   info.Phone,
			Company: info.Company,
			Message: summary,
		}

		if err := tx.Create(&inquiry).Error; err != nil {
			return fmt.Errorf("failed to create inquiry: %w", err)
		}

		response := models.QuestionnaireResponse{
			UserID:     user.ID,
			InquiryID:  inquiry.ID,
			Responses:  datatypes.JSON(responsesJSON),
			SpaceType:  spaceType,
			Location:   location,
			SizeMin:    sizeRange.Min,
			SizeMax:    sizeRange.Max,
			BudgetMin:  budget.Min,
			BudgetMax:  budget.Max,
			Timeline:   timeline,
			LeaseOrBuy: leaseOrBuy,
		}

		if err := tx.Create(&response).Error; err != nil {
			return fmt.Errorf("failed to create questionnaire response: %w", err)
		}

		result.UserID = user.ID
		result.InquiryID = inquiry.ID
		result.ResponseID = response.ID
		return nil
	})

	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("questionnaire", "failure").Inc()
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues("questionnaire", "success").Inc()

	for _, job := range s.notifier.QuestionnaireJobs(info, summary, input.Responses, result.UserID, result.InquiryID) {
		s.dispatcher.Enqueue(job)
	}

	return result, nil
}

// SubmitLead writes the user/inquiry pair for the lead-capture form.
func (s *SubmissionService) SubmitLead(ctx context.Context, input LeadInput) (*SubmissionResult, error) {
	info := types.SubmitUserInfo{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Phone: input.Phone,
	}

	if info.Name == "" || info.Email == "" || info.Phone == "" {
		metrics.SubmissionsTotal.WithLabelValues("lead_capture", "invalid").Inc()
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrInvalidInput)
	}

	source := input.Source
	if source == "" {
		source = "website"
	}

	message := fmt.Sprintf("Lead captured from %s", source)
	if input.Page != "" {
		message = fmt.Sprintf("%s (%s)", message, input.Page)
	}

	result := &SubmissionResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := upsertUser(tx, info, source)
		if err != nil {
			return err
		}

		inquiry := models.Inquiry{
			UserID:  &user.ID,
			Type:    "lead_capture",
			Status:  "new",
			Name:    info.Name,
			Email:   info.Email,
			Phone:   info.Phone,
			Source:  source,
			Page:    input.Page,
			Message: message,
		}

		if err := tx.Create(&inquiry).Error; err != nil {
			return fmt.Errorf("failed to create inquiry: %w", err)
		}

		result.UserID = user.ID
		result.InquiryID = inquiry.ID
		return nil
	})

	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("lead_capture", "failure").Inc()
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues("lead_capture", "success").Inc()

	for _, job := range s.notifier.LeadJobs(info, source, input.Page, result.InquiryID) {
		s.dispatcher.Enqueue(job)
	}

	return result, nil
}

// upsertUser inserts a user by email or refreshes contact fields on the
// existing row. Concurrent submissions for the same email race
// last-writer-wins, which is acceptable here.
func upsertUser(tx *gorm.DB, info types.SubmitUserInfo, leadSource string) (*models.User, error) {
	now := time.Now()

	var user models.User
	err := tx.Where("email = ?", info.Email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:          info.Name,
			Email:         info.Email,
			Phone:         info.Phone,
			Company:       info.Company,
			LeadSource:    leadSource,
			LastContactAt: &now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	updates := map[string]interface{}{
		"name":            info.Name,
		"last_contact_at": &now,
	}
	if info.Phone != "" {
		updates["phone"] = info.Phone
	}
	if info.Company != "" {
		updates["company"] = info.Company
	}

	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// synthesizeMessage builds the human-readable summary shown in admin views
func synthesizeMessage(spaceType string, size int, location, budget, leaseOrBuy string) string {
	if spaceType == "" {
		spaceType = "space"
	}
	if location == "" {
		location = "any location"
	}
	if budget == "" {
		budget = "unspecified"
	}
	if leaseOrBuy == "" {
		leaseOrBuy = "lease"
	}

	return fmt.Sprintf("Looking to %s a %s (~%d sqft) in %s, budget %s/mo.",
		leaseOrBuy, spaceType, size, location, budget)
}

func stringAnswer(responses map[string]interface{}, key string) string {
	if responses == nil {
		return ""
	}
	if v, ok := responses[key].(string); ok {
		return v
	}
	return ""
}

func intAnswer(responses map[string]interface{}, key string) int {
	if responses == nil {
		return 0
	}

	switch v := responses[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
