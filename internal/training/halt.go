package training

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroEpochs is returned when a halt condition allows no epoch at all.
var ErrZeroEpochs = errors.New("halt condition allows zero epochs")

// HaltCondition decides when training stops.
type HaltCondition interface {
	// Done is called after every epoch with the 1-based epoch count, the
	// epoch's loss and the time spent training so far.
	Done(epoch int, loss float64, elapsed time.Duration) bool

	// Validate reports configuration errors before training starts.
	Validate() error

	// String describes the condition for logs and reports.
	String() string
}

// Epochs stops after a fixed number of epochs.
type Epochs uint

// Done implements HaltCondition.
func (e Epochs) Done(epoch int, _ float64, _ time.Duration) bool {
	return epoch >= int(e)
}

// Validate implements HaltCondition.
func (e Epochs) Validate() error {
	if e == 0 {
		return ErrZeroEpochs
	}
	return nil
}

func (e Epochs) String() string {
	return fmt.Sprintf("epochs(%d)", uint(e))
}

// LossBelow stops once the loss drops below Threshold, or after MaxEpochs.
type LossBelow struct {
	Threshold float64
	MaxEpochs uint
}

// Done implements HaltCondition.
func (l LossBelow) Done(epoch int, loss float64, _ time.Duration) bool {
	return loss < l.Threshold || epoch >= int(l.MaxEpochs)
}

// Validate implements HaltCondition.
func (l LossBelow) Validate() error {
	if l.MaxEpochs == 0 {
		return ErrZeroEpochs
	}
	if l.Threshold <= 0 {
		return fmt.Errorf("loss threshold must be positive, got %v", l.Threshold)
	}
	return nil
}

func (l LossBelow) String() string {
	return fmt.Sprintf("loss_below(%g, max %d epochs)", l.Threshold, l.MaxEpochs)
}

// Timeout stops once Duration has elapsed, or after MaxEpochs.
type Timeout struct {
	Duration  time.Duration
	MaxEpochs uint
}

// Done implements HaltCondition.
func (t Timeout) Done(epoch int, _ float64, elapsed time.Duration) bool {
	return elapsed >= t.Duration || epoch >= int(t.MaxEpochs)
}

// Validate implements HaltCondition.
func (t Timeout) Validate() error {
	if t.MaxEpochs == 0 {
		return ErrZeroEpochs
	}
	if t.Duration <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", t.Duration)
	}
	return nil
}

func (t Timeout) String() string {
	return fmt.Sprintf("timeout(%s, max %d epochs)", t.Duration, t.MaxEpochs)
}
