package services

import (
	"sync"

	"github.com/google/uuid"

	"gitdeck/internal/domain"
	"gitdeck/internal/logging"
)

const (
	publishQueueSize = 64
	subscriberBuffer = 16
	pendingLimit     = 256
)

// subscriber buffers notifications for one consumer. Dispatch appends to the
// pending slice without ever blocking; a forwarder goroutine moves events to
// the receive channel at the consumer's pace. When pending overflows, the
// oldest event is discarded so a stalled consumer still sees the most recent
// state changes once it resumes.
type subscriber struct {
	ch      chan domain.Notification
	done    chan struct{}
	mu      sync.Mutex
	pending []domain.Notification
	wake    chan struct{}
}

func newSubscriber() *subscriber {
	return &subscriber{
		ch:   make(chan domain.Notification, subscriberBuffer),
		done: make(chan struct{}),
		wake: make(chan struct{}, 1),
	}
}

func (s *subscriber) enqueue(id string, notification domain.Notification) {
	s.mu.Lock()
	if len(s.pending) >= pendingLimit {
		logging.Logger.Warn("subscriber lagging, oldest event dropped",
			"subscriber", id,
			"event", s.pending[0].Event,
		)
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, notification)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// forward runs until the subscriber is removed, draining pending into the
// receive channel in order. It owns closing the channel.
func (s *subscriber) forward() {
	defer close(s.ch)

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		select {
		case s.ch <- next:
		case <-s.done:
			return
		}
	}
}

type subscribeRequest struct {
	reply chan subscribeReply
}

type subscribeReply struct {
	ch <-chan domain.Notification
	id string
}

// Notifier fans session change events out to subscribers. A single dispatch
// goroutine preserves publication order across all subscribers and also
// registers new subscriptions, so a subscriber never receives an event that
// was published before it subscribed.
type Notifier struct {
	done  chan struct{}
	mu    sync.RWMutex
	once  sync.Once
	queue chan domain.Notification
	subCh chan subscribeRequest
	subs  map[string]*subscriber
}

func NewNotifier() *Notifier {
	n := &Notifier{
		done:  make(chan struct{}),
		queue: make(chan domain.Notification, publishQueueSize),
		subCh: make(chan subscribeRequest),
		subs:  make(map[string]*subscriber),
	}
	go n.dispatch()
	return n
}

// Subscribe registers a new subscriber and returns its id plus the receive
// channel. Registration is ordered after every event already published, and
// the channel is closed on Unsubscribe or when the notifier shuts down.
func (n *Notifier) Subscribe() (string, <-chan domain.Notification) {
	req := subscribeRequest{reply: make(chan subscribeReply, 1)}

	select {
	case n.subCh <- req:
	case <-n.done:
		return "", closedChannel()
	}

	select {
	case reply := <-req.reply:
		return reply.id, reply.ch
	case <-n.done:
		select {
		case reply := <-req.reply:
			return reply.id, reply.ch
		default:
			return "", closedChannel()
		}
	}
}

func closedChannel() <-chan domain.Notification {
	ch := make(chan domain.Notification)
	close(ch)
	return ch
}

// Unsubscribe removes a subscriber. Unknown ids are a no-op.
func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sub, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(sub.done)
	}
}

// Publish enqueues a notification for delivery. Events from a single
// session arrive here from its serializer worker, so queue order matches
// mutation completion order.
func (n *Notifier) Publish(notification domain.Notification) {
	select {
	case n.queue <- notification:
	case <-n.done:
	}
}

func (n *Notifier) dispatch() {
	for {
		select {
		case notification := <-n.queue:
			n.deliver(notification)
		case req := <-n.subCh:
			// Flush everything published before this subscription so the
			// new subscriber only sees later events
			n.drainQueue()
			req.reply <- n.register()
		case <-n.done:
			return
		}
	}
}

func (n *Notifier) drainQueue() {
	for {
		select {
		case notification := <-n.queue:
			n.deliver(notification)
		default:
			return
		}
	}
}

func (n *Notifier) register() subscribeReply {
	n.mu.Lock()
	defer n.mu.Unlock()

	select {
	case <-n.done:
		return subscribeReply{id: "", ch: closedChannel()}
	default:
	}

	id := uuid.NewString()
	sub := newSubscriber()
	n.subs[id] = sub
	go sub.forward()
	return subscribeReply{id: id, ch: sub.ch}
}

func (n *Notifier) deliver(notification domain.Notification) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for id, sub := range n.subs {
		sub.enqueue(id, notification)
	}
}

// Close stops dispatch and closes every subscriber channel
func (n *Notifier) Close() {
	n.once.Do(func() {
		n.mu.Lock()
		close(n.done)
		for id, sub := range n.subs {
			delete(n.subs, id)
			close(sub.done)
		}
		n.mu.Unlock()
	})
}
