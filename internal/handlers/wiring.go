package handlers

import (
	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/outbox"
	"github.com/peakspace-dev/peakspace/internal/services"
	"github.com/peakspace-dev/peakspace/internal/wizard"
)

var (
	cfg          *config.Config
	submissions  *services.SubmissionService
	emailService *services.EmailService
	drafts       wizard.DraftStore
	dispatcher   outbox.Dispatcher
)

// Init wires the handler package once at startup.
func Init(c *config.Config, s *services.SubmissionService, e *services.EmailService, d wizard.DraftStore, o outbox.Dispatcher) {
	cfg = c
	submissions = s
	emailService = e
	drafts = d
	dispatcher = o
}
