package contactform

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSubmitInProgress is returned by Submit while a request is in flight.
var ErrSubmitInProgress = errors.New("contact form: submission already in progress")

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the real clock used for auto-reset timers.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// Controller owns the form fields and the submission state machine:
// idle -> submitting -> success|error -> idle. Safe for concurrent use.
type Controller struct {
	sender    Sender
	scheduler Scheduler

	mu       sync.Mutex
	fields   Fields
	state    State
	status   string
	timer    Timer
	gen      uint64
	observer func(Snapshot)
}

// New creates an idle controller with empty fields.
func New(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender:    sender,
		scheduler: RealClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe registers fn to be called after every state change, including
// timer-driven resets. fn runs outside the controller lock.
func (c *Controller) Observe(fn func(Snapshot)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UpdateField sets one field. Unknown names are ignored.
func (c *Controller) UpdateField(name, value string) {
	c.mu.Lock()
	switch name {
	case FieldName:
		c.fields.Name = value
	case FieldEmail:
		c.fields.Email = value
	case FieldMessage:
		c.fields.Message = value
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.notify()
}

// Submit sends the current fields. It blocks until the sender returns and
// reports the failure, if any, as *ResponseError or *NetworkError. The state
// reflects the outcome either way.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	c.stopTimerLocked()
	c.state = StateSubmitting
	c.status = ""
	fields := c.fields
	c.gen++
	gen := c.gen
	c.mu.Unlock()
	c.notify()

	_, err := c.send(ctx, fields)

	c.mu.Lock()
	if err == nil {
		c.fields = Fields{}
		c.state = StateSuccess
		c.status = StatusSent
		c.scheduleResetLocked(gen, SuccessResetDelay)
	} else {
		c.state = StateError
		c.status = errorStatus(err)
		c.scheduleResetLocked(gen, ErrorResetDelay)
	}
	c.mu.Unlock()
	c.notify()

	return err
}

// Close cancels a pending auto-reset.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.gen++
	c.mu.Unlock()
}

// send converts panics from a misbehaving sender into a NetworkError so the
// form always lands in a terminal state.
func (c *Controller) send(ctx context.Context, f Fields) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &NetworkError{}
		}
	}()
	msg, err = c.sender.Send(ctx, f)
	if err != nil {
		var re *ResponseError
		var ne *NetworkError
		if !errors.As(err, &re) && !errors.As(err, &ne) {
			err = &NetworkError{Err: err}
		}
	}
	return msg, err
}

func (c *Controller) scheduleResetLocked(gen uint64, d time.Duration) {
	c.timer = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		c.state = StateIdle
		c.status = ""
		c.timer = nil
		c.mu.Unlock()
		c.notify()
	})
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Fields: c.fields, Status: c.status}
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.observer
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func errorStatus(err error) string {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return StatusUnknownFail
}
