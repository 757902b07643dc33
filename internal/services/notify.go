package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/peakspace-dev/peakspace/internal/outbox"
	"github.com/peakspace-dev/peakspace/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

// CRMContactRequest is the generic contact payload pushed to the CRM webhook
type CRMContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Source  string `json:"source"`
}

const slackUsername = "PeakSpace Leads"

// Notifier builds the best-effort fan-out jobs fired after a successful
// core write. Unconfigured channels produce no job.
type Notifier struct {
	cfg       *config.Config
	email     *EmailService
	db        *gorm.DB
	broadcast func()
	client    *http.Client
}

func NewNotifier(cfg *config.Config, email *EmailService, database *gorm.DB) *Notifier {
	return &Notifier{
		cfg:    cfg,
		email:  email,
		db:     database,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBroadcast wires the admin dashboard refresh callback
func (n *Notifier) SetBroadcast(fn func()) {
	n.broadcast = fn
}

// QuestionnaireJobs returns the fan-out for a completed questionnaire.
func (n *Notifier) QuestionnaireJobs(info types.SubmitUserInfo, summary string, responses map[string]interface{}, userID, inquiryID uint) []outbox.Job {
	jobs := []outbox.Job{
		{
			Name: "confirmation_email",
			Run: func(ctx context.Context) error {
				return n.email.SendQuestionnaireConfirmation(info.Email, info.Name, summary)
			},
		},
		{
			Name: "operator_email",
			Run: func(ctx context.Context) error {
				return n.email.SendLeadNotification(info.Name, info.Email, info.Phone, summary)
			},
		},
		n.analyticsJob("questionnaire_submitted", info.Email, map[string]interface{}{
			"responses":  responses,
			"user_id":    userID,
			"inquiry_id": inquiryID,
		}),
	}

	if n.cfg.Notify.SlackWebhookURL != "" {
		jobs = append(jobs, n.slackJob("New questionnaire submission", summary, info))
	}
	if n.cfg.Notify.CRMWebhookURL != "" {
		jobs = append(jobs, n.crmJob(info, "questionnaire"))
	}
	if n.broadcast != nil {
		jobs = append(jobs, outbox.Job{
			Name: "dashboard_refresh",
			Run: func(ctx context.Context) error {
				n.broadcast()
				return nil
			},
		})
	}

	return jobs
}

// LeadJobs returns the fan-out for a plain lead-capture submission.
func (n *Notifier) LeadJobs(info types.SubmitUserInfo, source, page string, inquiryID uint) []outbox.Job {
	message := fmt.Sprintf("Lead captured from %s", page)
	if page == "" {
		message = "Lead captured"
	}

	jobs := []outbox.Job{
		{
			Name: "operator_email",
			Run: func(ctx context.Context) error {
				return n.email.SendLeadNotification(info.Name, info.Email, info.Phone, message)
			},
		},
		n.analyticsJob("lead_captured", info.Email, map[string]interface{}{
			"source":     source,
			"page":       page,
			"inquiry_id": inquiryID,
		}),
	}

	if n.cfg.Notify.SlackWebhookURL != "" {
		jobs = append(jobs, n.slackJob("New lead captured", message, info))
	}
	if n.cfg.Notify.CRMWebhookURL != "" {
		jobs = append(jobs, n.crmJob(info, source))
	}
	if n.broadcast != nil {
		jobs = append(jobs, outbox.Job{
			Name: "dashboard_refresh",
			Run: func(ctx context.Context) error {
				n.broadcast()
				return nil
			},
		})
	}

	return jobs
}

func (n *Notifier) analyticsJob(eventName, userKey string, properties map[string]interface{}) outbox.Job {
	return outbox.Job{
		Name: "analytics_event",
		Run: func(ctx context.Context) error {
			props, err := json.Marshal(properties)
			if err != nil {
				return fmt.Errorf("failed to marshal event properties: %w", err)
			}

			event := models.AnalyticsEvent{
				EventName:  eventName,
				Properties: datatypes.JSON(props),
				UserKey:    userKey,
			}

			return n.db.WithContext(ctx).Create(&event).Error
		},
	}
}

func (n *Notifier) slackJob(title, text string, info types.SubmitUserInfo) outbox.Job {
	payload := SlackWebhookRequest{
		Username:  slackUsername,
		IconEmoji: ":office:",
		Text:      fmt.Sprintf(":tada: *%s*", title),
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: title,
				Text:  text,
				Fields: []SlackField{
					{Title: "Name", Value: info.Name, Short: true},
					{Title: "Email", Value: info.Email, Short: true},
					{Title: "Phone", Value: info.Phone, Short: true},
					{Title: "Company", Value: info.Company, Short: true},
				},
				Footer:    "PeakSpace lead capture",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return outbox.Job{
		Name: "slack_webhook",
		Run: func(ctx context.Context) error {
			return n.postJSON(ctx, n.cfg.Notify.SlackWebhookURL, payload)
		},
	}
}

func (n *Notifier) crmJob(info types.SubmitUserInfo, source string) outbox.Job {
	payload := CRMContactRequest{
		Name:    info.Name,
		Email:   info.Email,
		Phone:   info.Phone,
		Company: info.Company,
		Source:  source,
	}

	return outbox.Job{
		Name: "crm_contact",
		Run: func(ctx context.Context) error {
			return n.postJSON(ctx, n.cfg.Notify.CRMWebhookURL, payload)
		},
	}
}

func (n *Notifier) postJSON(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
