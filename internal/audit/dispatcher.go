package audit

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ActionSignup          = "user.signup"
	ActionVerify          = "user.verify"
	ActionLogin           = "user.login"
	ActionProfileUpdate   = "user.update"
	ActionOnboardingDone  = "onboarding.complete"
	ActionTankCreate      = "tank.create"
	ActionTankUpdate      = "tank.update"
	ActionTankDelete      = "tank.delete"
	ActionFishAdd         = "fish.add"
	ActionFishRemove      = "fish.remove"
	ActionWaterParamsSet  = "water_parameters.set"
	ActionWaterParamsCalc = "water_parameters.recalculate"
	ActionAlertsUpdate    = "alerts.update"
	ActionPhotoUpload     = "tank.photo"
)

const (
	EntityUser = "user"
	EntityTank = "tank"
	EntityFish = "fish"
)

type Event struct {
	UserID   uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	log    logrus.FieldLogger
	queue  chan Event

	done chan struct{}

	// mu guards closed; senders hold it shared so Close cannot close the
	// queue under them.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger, log logrus.FieldLogger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		logger: logger,
		log:    log.WithField("component", "audit"),
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Error("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.WithField("action", ev.Action).Warn("audit queue closed, dropping event")
		return
	}
	select {
	case d.queue <- ev:
	default:
		// a full queue never fails the request
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// Discard is a Recorder that drops every event.
type Discard struct{}

func (Discard) Dispatch(Event) {}

// ID is a helper for the optional EntityID field.
func ID(id uint) *uint { return &id }
