package service

import (
	"time"

	"go.uber.org/zap"

	"chalk/internal/modules/classroom/domain"
	classroomout "chalk/internal/modules/classroom/port/out"
	"chalk/internal/platform/logging"
)

// RevealController drives a RevealState from a recurring scheduler task.
type RevealController struct {
	state      *domain.RevealState
	scheduler  classroomout.Scheduler
	interval   time.Duration
	onComplete func()
	logger     *zap.Logger

	handle classroomout.Handle
}

func NewRevealController(segments []domain.Segment, scheduler classroomout.Scheduler, interval time.Duration, onComplete func(), logger *zap.Logger) *RevealController {
	return &RevealController{
		state:      domain.NewRevealState(segments),
		scheduler:  scheduler,
		interval:   interval,
		onComplete: onComplete,
		logger:     logging.OrNop(logger),
	}
}

// Start is a no-op while the reveal runs or when nothing is left. A reveal
// halted by a lesson switch picks up at its revealed count.
func (c *RevealController) Start() bool {
	switch {
	case c.state.Begin():
		c.logger.Debug("reveal started", zap.Int("segments", c.state.Len()), zap.Duration("interval", c.interval))
	case c.state.Resume():
		c.logger.Debug("reveal resumed", zap.Int("revealed", c.state.Revealed()), zap.Int("segments", c.state.Len()))
	default:
		return false
	}
	c.handle = c.scheduler.ScheduleRecurring(c.interval, c.tick)
	return true
}

func (c *RevealController) tick() {
	if !c.state.Active() {
		return
	}
	if !c.state.Advance() {
		return
	}
	c.cancel()
	c.logger.Debug("reveal complete", zap.Int("segments", c.state.Len()))
	if c.onComplete != nil {
		c.onComplete()
	}
}

// Stop tears the reveal down. It is safe to call more than once.
func (c *RevealController) Stop() {
	c.state.Halt()
	c.cancel()
}

func (c *RevealController) IsRevealing() bool {
	return c.state.Active()
}

func (c *RevealController) State() *domain.RevealState {
	return c.state
}

func (c *RevealController) cancel() {
	if c.handle == nil {
		return
	}
	c.handle.Cancel()
	c.handle = nil
}
