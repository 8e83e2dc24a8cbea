package command

// Sender is the producer side of the Bus. Every producer (input pump, task
// worker, directory watcher) holds its own copy.
type Sender chan<- Command

// Send enqueues cmd, blocking while the Bus is full.
func (s Sender) Send(cmd Command) {
	s <- cmd
}

// TrySend enqueues cmd unless the Bus is full.
func (s Sender) TrySend(cmd Command) bool {
	select {
	case s <- cmd:
		return true
	default:
		return false
	}
}

// Bus is the single multi-producer, single-consumer queue feeding the
// dispatcher.
type Bus struct {
	ch chan Command
}

// NewBus creates a Bus buffering up to capacity commands.
func NewBus(capacity int) *Bus {
	if capacity < 1 {
		capacity = 1
	}
	return &Bus{ch: make(chan Command, capacity)}
}

// Sender returns a producer handle.
func (b *Bus) Sender() Sender {
	return b.ch
}

// Drain returns the commands queued at the time of the call, in enqueue
// order, without blocking. Commands sent while draining wait for the next
// call.
func (b *Bus) Drain() []Command {
	n := len(b.ch)
	if n == 0 {
		return nil
	}
	out := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		select {
		case cmd := <-b.ch:
			out = append(out, cmd)
		default:
			return out
		}
	}
	return out
}
