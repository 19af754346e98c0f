package out

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	classroomout "chalk/internal/modules/classroom/port/out"
)

// FireMsg is posted into the Bubble Tea program for every timer tick.
type FireMsg struct {
	ID uint64
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramScheduler turns recurring timers into program messages so that fire
// callbacks run inside Update, on the goroutine that owns session state.
type ProgramScheduler struct {
	mu     sync.Mutex
	sender Sender
	nextID uint64
	tasks  map[uint64]*scheduledTask
}

type scheduledTask struct {
	fire func()
	stop chan struct{}
	once sync.Once
}

type taskHandle struct {
	scheduler *ProgramScheduler
	id        uint64
}

func NewProgramScheduler() *ProgramScheduler {
	return &ProgramScheduler{tasks: map[uint64]*scheduledTask{}}
}

// Attach sets the program that receives ticks. Ticks raised before Attach
// are dropped.
func (s *ProgramScheduler) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *ProgramScheduler) ScheduleRecurring(interval time.Duration, fire func()) classroomout.Handle {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	task := &scheduledTask{fire: fire, stop: make(chan struct{})}
	s.tasks[id] = task
	s.mu.Unlock()

	go s.run(id, interval, task)
	return &taskHandle{scheduler: s, id: id}
}

func (s *ProgramScheduler) run(id uint64, interval time.Duration, task *scheduledTask) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-task.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			sender := s.sender
			s.mu.Unlock()
			if sender != nil {
				sender.Send(FireMsg{ID: id})
			}
		}
	}
}

// Dispatch runs the callback behind msg. It reports false for anything that
// is not a live FireMsg, including ticks queued before a cancel.
func (s *ProgramScheduler) Dispatch(msg tea.Msg) bool {
	fire, ok := msg.(FireMsg)
	if !ok {
		return false
	}
	s.mu.Lock()
	task, live := s.tasks[fire.ID]
	s.mu.Unlock()
	if !live {
		return false
	}
	task.fire()
	return true
}

// Live reports how many timers are running.
func (s *ProgramScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (h *taskHandle) Cancel() {
	s := h.scheduler
	s.mu.Lock()
	task, ok := s.tasks[h.id]
	delete(s.tasks, h.id)
	s.mu.Unlock()
	if ok {
		task.once.Do(func() { close(task.stop) })
	}
}
