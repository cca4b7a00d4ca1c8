package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/showware/resledger/internal/domain"
)

// ReservationLister provides paged access to reservations for scanning.
type ReservationLister interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Reservation, error)
}

// Notifier receives payment reminders for reservations that need attention.
type Notifier interface {
	Notify(ctx context.Context, reminder *Reminder) error
}

// Reminder describes one reservation with an open balance under time pressure.
type Reminder struct {
	ReservationID  string
	CustomerName   string
	AmountDue      string
	Status         domain.PaymentStatus
	Urgency        domain.Urgency
	PaymentDueDate *time.Time
	EventDate      *time.Time
}

// Scanner periodically walks all reservations, recomputes their financial
// state, and emits a reminder for every one classified urgent or overdue.
type Scanner struct {
	repo      ReservationLister
	notifier  Notifier
	logger    zerolog.Logger
	policy    domain.UrgencyPolicy
	batchSize int
	interval  time.Duration
}

// Config for Scanner.
type Config struct {
	Repo      ReservationLister
	Notifier  Notifier
	Logger    zerolog.Logger
	Policy    domain.UrgencyPolicy
	BatchSize int           // Reservations fetched per page
	Interval  time.Duration // Polling interval
}

// NewScanner creates a new Scanner.
func NewScanner(cfg Config) *Scanner {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Policy == (domain.UrgencyPolicy{}) {
		cfg.Policy = domain.DefaultUrgencyPolicy
	}

	return &Scanner{
		repo:      cfg.Repo,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
		policy:    cfg.Policy,
		batchSize: cfg.BatchSize,
		interval:  cfg.Interval,
	}
}

// Start runs the scan loop until the context is cancelled.
func (s *Scanner) Start(ctx context.Context) error {
	s.logger.Info().
		Int("batch_size", s.batchSize).
		Dur("interval", s.interval).
		Msg("reminder scanner started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.Scan(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial reminder scan failed")
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reminder scanner shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.logger.Error().Err(err).Msg("reminder scan failed")
			}
		}
	}
}

// Scan walks every reservation once and notifies for urgent and overdue ones.
func (s *Scanner) Scan(ctx context.Context) error {
	now := time.Now().UTC()
	offset := 0
	notified := 0

	for {
		reservations, err := s.repo.List(ctx, s.batchSize, offset)
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			break
		}

		for _, r := range reservations {
			snap := domain.SummarizeWithPolicy(r, now, s.policy)
			if snap.Urgency != domain.UrgencyUrgent && snap.Urgency != domain.UrgencyOverdue {
				continue
			}

			reminder := &Reminder{
				ReservationID:  r.ID,
				CustomerName:   r.CustomerName,
				AmountDue:      snap.AmountDueFormatted,
				Status:         snap.Status,
				Urgency:        snap.Urgency,
				PaymentDueDate: r.PaymentDueDate,
				EventDate:      r.EventDate,
			}
			if err := s.notifier.Notify(ctx, reminder); err != nil {
				s.logger.Error().Err(err).
					Str("reservation_id", r.ID).
					Msg("failed to deliver reminder")
				continue
			}
			notified++
		}

		if len(reservations) < s.batchSize {
			break
		}
		offset += s.batchSize
	}

	if notified > 0 {
		s.logger.Info().Int("count", notified).Msg("payment reminders sent")
	}
	return nil
}

// LogNotifier writes reminders to the log. It stands in until a real
// delivery channel (mail, messaging) is wired up.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the reminder.
func (n *LogNotifier) Notify(ctx context.Context, reminder *Reminder) error {
	evt := n.logger.Warn().
		Str("reservation_id", reminder.ReservationID).
		Str("customer", reminder.CustomerName).
		Str("amount_due", reminder.AmountDue).
		Str("status", string(reminder.Status)).
		Str("urgency", string(reminder.Urgency))
	if reminder.PaymentDueDate != nil {
		evt = evt.Time("payment_due_date", *reminder.PaymentDueDate)
	}
	if reminder.EventDate != nil {
		evt = evt.Time("event_date", *reminder.EventDate)
	}
	evt.Msg("PAYMENT REMINDER")
	return nil
}
