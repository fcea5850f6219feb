package processor

import "context"

// Watch returns a channel that receives the id of every surface a message
// touches, until ctx is cancelled. Rendering stays pull-based: the event is
// a hint to re-render, it carries no state.
//
// Slow consumers are not waited for; a notification is dropped when the
// subscriber's buffer is full.
func (p *Processor) Watch(ctx context.Context) <-chan string {
	ch := make(chan string, 16)

	p.watchMu.Lock()
	p.watchers[ch] = struct{}{}
	p.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		p.watchMu.Lock()
		delete(p.watchers, ch)
		p.watchMu.Unlock()
		close(ch)
	}()

	return ch
}

func (p *Processor) notify(surfaceID string) {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()
	for ch := range p.watchers {
		select {
		case ch <- surfaceID:
		default:
		}
	}
}
