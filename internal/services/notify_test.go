package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireJobs_SkipsUnconfiguredChannels(t *testing.T) {
	cfg := &config.Config{Email: config.EmailConfig{Enabled: false}}
	n := NewNotifier(cfg, NewEmailService(&cfg.Email), nil)

	jobs := n.QuestionnaireJobs(types.SubmitUserInfo{Name: "Jane", Email: "jane@example.com"}, "summary", nil, 1, 2)

	names := make([]string, 0, len(jobs))
	for _, job := range jobs {
		names = append(names, job.Name)
	}

	assert.Contains(t, names, "confirmation_email")
	assert.Contains(t, names, "operator_email")
	assert.Contains(t, names, "analytics_event")
	assert.NotContains(t, names, "slack_webhook")
	assert.NotContains(t, names, "crm_contact")
	assert.NotContains(t, names, "dashboard_refresh")
}

func TestSlackJob_PostsPayload(t *testing.T) {
	var received SlackWebhookRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		Email:  config.EmailConfig{Enabled: false},
		Notify: config.NotifyConfig{SlackWebhookURL: server.URL},
	}
	n := NewNotifier(cfg, NewEmailService(&cfg.Email), nil)

	info := types.SubmitUserInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "3035551234"}
	jobs := n.LeadJobs(info, "homepage", "/contact", 7)

	var slackJob bool
	for _, job := range jobs {
		if job.Name == "slack_webhook" {
			slackJob = true
			require.NoError(t, job.Run(context.Background()))
		}
	}
	require.True(t, slackJob, "expected a slack job when the webhook is configured")

	assert.Equal(t, slackUsername, received.Username)
	require.Len(t, received.Attachments, 1)

	fields := received.Attachments[0].Fields
	var foundEmail bool
	for _, field := range fields {
		if field.Title == "Email" {
			foundEmail = true
			assert.Equal(t, "jane@example.com", field.Value)
		}
	}
	assert.True(t, foundEmail)
}

func TestCRMJob_FailureIsReturnedNotPanicked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := &config.Config{
		Email:  config.EmailConfig{Enabled: false},
		Notify: config.NotifyConfig{CRMWebhookURL: server.URL},
	}
	n := NewNotifier(cfg, NewEmailService(&cfg.Email), nil)

	jobs := n.LeadJobs(types.SubmitUserInfo{Name: "Jane", Email: "jane@example.com"}, "homepage", "", 1)

	for _, job := range jobs {
		if job.Name == "crm_contact" {
			err := job.Run(context.Background())
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "502")
		}
	}
}

func TestBroadcastJobIncludedWhenWired(t *testing.T) {
	cfg := &config.Config{Email: config.EmailConfig{Enabled: false}}
	n := NewNotifier(cfg, NewEmailService(&cfg.Email), nil)

	called := false
	n.SetBroadcast(func() { called = true })

	jobs := n.QuestionnaireJobs(types.SubmitUserInfo{Name: "Jane", Email: "jane@example.com"}, "summary", nil, 1, 2)

	for _, job := range jobs {
		if job.Name == "dashboard_refresh" {
			require.NoError(t, job.Run(context.Background()))
		}
	}
	assert.True(t, called)
}
