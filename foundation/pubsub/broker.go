package pubsub

import (
	"fmt"
	"sync"
	"time"
)

const (
	subscribeWait = 3 * time.Second
	pollInterval  = 50 * time.Millisecond
)

type Broker struct {
	topics map[string][]*Subscriber
	sync.RWMutex
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string][]*Subscriber),
	}
}

// Publish delivers data to every subscriber of topic. A topic comes into
// existence with its first subscriber, so Publish waits up to subscribeWait
// for one to show up before giving up.
func (b *Broker) Publish(topic string, data any) error {
	deadline := time.Now().Add(subscribeWait)

	for {
		b.RLock()
		subs, exists := b.topics[topic]
		b.RUnlock()

		if exists {
			for _, sub := range subs {
				sub.Signal(data)
			}
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}

		time.Sleep(pollInterval)
	}
}

func (b *Broker) Subscribe(topic string, s *Subscriber) {
	b.Lock()
	defer b.Unlock()
	{
		b.topics[topic] = append(b.topics[topic], s)
	}
}

func (b *Broker) UnSubscribe(topic string, s *Subscriber) error {
	b.Lock()
	defer b.Unlock()
	{
		subs, exists := b.topics[topic]
		if !exists {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}

		b.topics[topic] = removeFromSlice(subs, s)
		s.CloseChannel()
	}

	return nil
}

// =================================================================================================================

func removeFromSlice[T comparable](s []T, d T) []T {
	for i := range s {
		if s[i] == d {
			s[i] = s[len(s)-1]
			return s[:len(s)-1]
		}
	}
	return s
}
