package out_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	classroomoutadapter "chalk/internal/modules/classroom/adapter/out"
)

type chanSender struct {
	msgs chan tea.Msg
}

func (s chanSender) Send(msg tea.Msg) {
	select {
	case s.msgs <- msg:
	default:
	}
}

func TestProgramSchedulerDeliversThroughDispatch(t *testing.T) {
	t.Parallel()
	sched := classroomoutadapter.NewProgramScheduler()
	sender := chanSender{msgs: make(chan tea.Msg, 16)}
	sched.Attach(sender)

	fired := 0
	handle := sched.ScheduleRecurring(5*time.Millisecond, func() { fired++ })
	defer handle.Cancel()

	select {
	case msg := <-sender.msgs:
		if !sched.Dispatch(msg) {
			t.Fatalf("expected live tick to dispatch")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
	if fired != 1 {
		t.Fatalf("expected one firing, got %d", fired)
	}
}

func TestProgramSchedulerDropsTicksAfterCancel(t *testing.T) {
	t.Parallel()
	sched := classroomoutadapter.NewProgramScheduler()
	sender := chanSender{msgs: make(chan tea.Msg, 16)}
	sched.Attach(sender)

	fired := 0
	handle := sched.ScheduleRecurring(5*time.Millisecond, func() { fired++ })
	var queued tea.Msg
	select {
	case queued = <-sender.msgs:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
	handle.Cancel()
	handle.Cancel()

	if sched.Dispatch(queued) {
		t.Fatalf("tick queued before cancel must be dropped")
	}
	if fired != 0 {
		t.Fatalf("cancelled task must not fire, got %d", fired)
	}
	if sched.Live() != 0 {
		t.Fatalf("expected no live timers, got %d", sched.Live())
	}
}

func TestDispatchIgnoresForeignMessages(t *testing.T) {
	t.Parallel()
	sched := classroomoutadapter.NewProgramScheduler()
	if sched.Dispatch(tea.KeyMsg{}) {
		t.Fatalf("non-tick messages should not dispatch")
	}
}
