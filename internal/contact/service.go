package contact

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome labels recorded for every submission attempt.
const (
	OutcomeSaved            = "saved"
	OutcomeInvalid          = "invalid"
	OutcomeFailed           = "failed"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeRateLimited      = "rate_limited"
)

const notifyTimeout = 30 * time.Second

// MessageStore is the persistence the service writes to.
type MessageStore interface {
	Insert(ctx context.Context, name, email, message string) (int64, error)
}

// Notifier tells the site owner about a saved message.
type Notifier interface {
	NotifyContact(ctx context.Context, sub Submission, id int64) error
}

// Recorder counts submission outcomes.
type Recorder interface {
	RecordSubmission(outcome string)
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sends an owner notification after each saved message.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRecorder records submission outcomes.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// Service accepts submissions and appends them to the store.
type Service struct {
	store    MessageStore
	logger   *zap.Logger
	notifier Notifier
	recorder Recorder

	pending sync.WaitGroup
}

// NewService creates a Service backed by store.
func NewService(logger *zap.Logger, store MessageStore, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates sub and persists it, returning the new row id.
// Errors are *ValidationError or *StorageError.
func (s *Service) Submit(ctx context.Context, sub Submission) (int64, error) {
	s.logger.Info("contact submission received",
		zap.Bool("name", sub.Name != ""),
		zap.Bool("email", sub.Email != ""),
		zap.Bool("message", sub.Message != ""),
	)

	if err := sub.Validate(); err != nil {
		s.logger.Info("contact submission rejected", zap.Error(err))
		s.Record(OutcomeInvalid)
		return 0, err
	}

	id, err := s.store.Insert(ctx, sub.Name, sub.Email, sub.Message)
	if err != nil {
		s.logger.Error("save contact message failed", zap.Error(err))
		s.Record(OutcomeFailed)
		return 0, &StorageError{Err: err}
	}

	s.logger.Info("contact message saved", zap.Int64("id", id))
	s.Record(OutcomeSaved)

	if s.notifier != nil {
		s.pending.Add(1)
		go s.notify(sub, id)
	}
	return id, nil
}

// Record counts outcome if a recorder is configured.
func (s *Service) Record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordSubmission(outcome)
	}
}

// Wait blocks until in-flight notifications finish.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) notify(sub Submission, id int64) {
	defer s.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyContact(ctx, sub, id); err != nil {
		s.logger.Warn("contact notification failed", zap.Int64("id", id), zap.Error(err))
		return
	}
	s.logger.Info("contact notification sent", zap.Int64("id", id))
}
