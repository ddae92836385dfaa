// Package queue provides the unbounded channel pair linking the
// blocking producers (X event reader, IPC workers) to the dispatch
// loop. Both inbound paths buffer entirely in memory with no flow
// control; that is an accepted property of the design, not an
// oversight.
package queue

// New returns a connected send/receive channel pair. Sends never block:
// a pump goroutine parks everything in an in-memory buffer until the
// receiver drains it. Closing the send side delivers the remaining
// items and then closes the receive side.
func New[T any]() (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)

	go func() {
		defer close(out)
		var buf []T
		for {
			if len(buf) == 0 {
				item, ok := <-in
				if !ok {
					return
				}
				buf = append(buf, item)
			}
			select {
			case item, ok := <-in:
				if !ok {
					// Drain what is left.
					for _, item := range buf {
						out <- item
					}
					return
				}
				buf = append(buf, item)
			case out <- buf[0]:
				buf = buf[1:]
			}
		}
	}()

	return in, out
}
