package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// RelayMetrics counts relayed emails and reminder dispatch runs. It
// satisfies notification.RelayMetrics and scheduler.DispatchObserver.
type RelayMetrics struct {
	emails        *Counter
	dispatchRuns  *Counter
	remindersSent *Counter
	reminderFails *Counter
}

// NewRelayMetrics creates the instruments on meter
func NewRelayMetrics(meter metric.Meter) (*RelayMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	emails, err := NewCounter(meter, "pf_email_relay_total", "Emails handled by the relay by outcome", "{emails}")
	if err != nil {
		return nil, err
	}
	runs, err := NewCounter(meter, "pf_reminder_dispatch_runs_total", "Reminder dispatch runs by result", "{runs}")
	if err != nil {
		return nil, err
	}
	sent, err := NewCounter(meter, "pf_reminders_sent_total", "Reminder emails sent", "{emails}")
	if err != nil {
		return nil, err
	}
	failed, err := NewCounter(meter, "pf_reminders_failed_total", "Reminder emails that could not be sent", "{emails}")
	if err != nil {
		return nil, err
	}
	return &RelayMetrics{emails: emails, dispatchRuns: runs, remindersSent: sent, reminderFails: failed}, nil
}

// ObserveEmail implements notification.RelayMetrics
func (m *RelayMetrics) ObserveEmail(outcome string) {
	m.emails.Inc(context.Background(), AttrOutcome.String(outcome))
}

// ObserveDispatch records one dispatch run
func (m *RelayMetrics) ObserveDispatch(sent, failed int, err error) {
	ctx := context.Background()
	if err != nil {
		m.dispatchRuns.Inc(ctx, AttrResult.String("error"))
	} else {
		m.dispatchRuns.Inc(ctx, AttrResult.String("ok"))
	}
	m.remindersSent.Add(ctx, int64(sent))
	m.reminderFails.Add(ctx, int64(failed))
}
