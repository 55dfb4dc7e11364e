package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
)

// Relay outcomes reported to RelayMetrics
const (
	OutcomeSent            = "sent"
	OutcomeInvalid         = "invalid"
	OutcomeAttachmentError = "attachment_error"
	OutcomeSendError       = "send_error"
)

// RelayMetrics observes relay outcomes
type RelayMetrics interface {
	ObserveEmail(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveEmail(string) {}

// RelayConfig limits the relay
type RelayConfig struct {
	// MaxBatch bounds the messages per request
	MaxBatch int
	// RatePerSecond throttles SMTP sends across all requests; 0 disables
	RatePerSecond float64
	Burst         int
}

// DefaultRelayConfig returns the default relay limits
func DefaultRelayConfig() RelayConfig {
	return RelayConfig{MaxBatch: 100, RatePerSecond: 5, Burst: 5}
}

// RelayService sends batches of emails through the SMTP sender. A failed
// message never aborts the rest of the batch.
type RelayService struct {
	sender   notification.Sender
	fetcher  notification.AttachmentFetcher
	settings *SettingsService
	gate     identity.SubscriptionGate
	limiter  *rate.Limiter
	cfg      RelayConfig
	metrics  RelayMetrics
	logger   *zap.Logger
}

// RelayOption configures a RelayService
type RelayOption func(*RelayService)

// WithRelayMetrics sets the metrics sink
func WithRelayMetrics(m RelayMetrics) RelayOption {
	return func(s *RelayService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRelayLogger sets the logger
func WithRelayLogger(logger *zap.Logger) RelayOption {
	return func(s *RelayService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRelayService creates a new RelayService
func NewRelayService(
	sender notification.Sender,
	fetcher notification.AttachmentFetcher,
	settings *SettingsService,
	gate identity.SubscriptionGate,
	cfg RelayConfig,
	opts ...RelayOption,
) *RelayService {
	if gate == nil {
		gate = identity.OpenGate
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultRelayConfig().MaxBatch
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	s := &RelayService{
		sender:   sender,
		fetcher:  fetcher,
		settings: settings,
		gate:     gate,
		limiter:  rate.NewLimiter(limit, burst),
		cfg:      cfg,
		metrics:  nopMetrics{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send relays a batch for a tenant after checking the subscription gate
func (s *RelayService) Send(ctx context.Context, tenantID uuid.UUID, req SendEmailsRequest) (*notification.Result, error) {
	decision, err := s.gate.Check(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if len(req.Emails) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "At least one email is required")
	}
	if len(req.Emails) > s.cfg.MaxBatch {
		return nil, shared.NewDomainError("BATCH_TOO_LARGE", fmt.Sprintf("At most %d emails per request", s.cfg.MaxBatch))
	}

	var stored *notification.SMTPSettings
	messages := make([]notification.Message, len(req.Emails))
	for i, e := range req.Emails {
		msg := notification.Message{
			To:            e.To,
			Subject:       e.Subject,
			HTML:          e.HTML,
			AttachmentURL: e.AttachmentURL,
		}
		if e.Settings != nil {
			msg.Settings = e.Settings.toDomain()
		} else {
			if stored == nil {
				if s.settings == nil {
					return nil, notification.ErrInvalidSettings
				}
				smtp, err := s.settings.Resolve(ctx, tenantID)
				if err != nil {
					return nil, err
				}
				stored = &smtp
			}
			msg.Settings = *stored
		}
		messages[i] = msg
	}
	return s.SendMessages(ctx, messages), nil
}

// SendMessages relays already built messages. Success is true only if every
// message was handed to the SMTP server.
func (s *RelayService) SendMessages(ctx context.Context, messages []notification.Message) *notification.Result {
	ctx, span := telemetry.StartServiceSpan(ctx, "email", "relay", telemetry.SpanAttrEmailCount, len(messages))
	defer span.End()

	result := &notification.Result{}
	defer func() { telemetry.SetAttributes(span, "email_failed", len(result.Failures)) }()
	for i, msg := range messages {
		if err := s.sendOne(ctx, msg); err != nil {
			result.Failures = append(result.Failures, notification.Failure{
				Index: i,
				To:    msg.To,
				Error: err.Error(),
			})
			s.logger.Warn("Email relay failed",
				zap.Int("index", i),
				zap.String("to", msg.To),
				zap.Error(err),
			)
			continue
		}
		result.Sent++
	}
	result.Success = len(result.Failures) == 0
	return result
}

func (s *RelayService) sendOne(ctx context.Context, msg notification.Message) error {
	if err := msg.Settings.Validate(); err != nil {
		s.metrics.ObserveEmail(OutcomeInvalid)
		return err
	}
	if err := msg.Validate(); err != nil {
		s.metrics.ObserveEmail(OutcomeInvalid)
		return err
	}

	var attachment *notification.Attachment
	if msg.AttachmentURL != "" {
		if s.fetcher == nil {
			s.metrics.ObserveEmail(OutcomeAttachmentError)
			return shared.ErrExternalService.WithDetails(map[string]any{"reason": "attachments are not supported"})
		}
		a, err := s.fetcher.Fetch(ctx, msg.AttachmentURL)
		if err != nil {
			s.metrics.ObserveEmail(OutcomeAttachmentError)
			return externalError("fetch attachment", err)
		}
		attachment = a
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.metrics.ObserveEmail(OutcomeSendError)
		return fmt.Errorf("relay throttled: %w", err)
	}
	if err := s.sender.Send(ctx, msg, attachment); err != nil {
		s.metrics.ObserveEmail(OutcomeSendError)
		return externalError("send", err)
	}
	s.metrics.ObserveEmail(OutcomeSent)
	return nil
}

// externalError keeps domain errors and wraps anything else as an
// external-service failure
func externalError(op string, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, shared.ErrExternalService, err)
}
