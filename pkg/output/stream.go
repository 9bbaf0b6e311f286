// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "sync"

// Subscriber consumes output events from the stream. Implementations decide
// per event whether they care (ShouldHandle) and how to render it (Handle).
type Subscriber interface {
	// Name returns the subscriber identifier, used for unsubscribe and logs.
	Name() string

	// ShouldHandle decides if this subscriber cares about the event.
	ShouldHandle(event OutputEvent) bool

	// Handle processes an output event.
	Handle(event OutputEvent)
}

// OutputEventStream fans emitted events out to the registered subscribers.
// Emission is synchronous and in subscription order, so a strictly
// sequential caller observes its own output in the order it was produced.
type OutputEventStream struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewOutputEventStream creates an empty event stream.
func NewOutputEventStream() *OutputEventStream {
	return &OutputEventStream{}
}

// Subscribe registers a subscriber for future events.
func (s *OutputEventStream) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Unsubscribe removes a subscriber by name.
func (s *OutputEventStream) Unsubscribe(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.subscribers[:0]
	for _, sub := range s.subscribers {
		if sub.Name() != name {
			kept = append(kept, sub)
		}
	}
	s.subscribers = kept
}

// SubscriberCount returns the number of registered subscribers.
func (s *OutputEventStream) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Emit delivers an event to every subscriber that wants it.
func (s *OutputEventStream) Emit(event OutputEvent) {
	s.mu.RLock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.ShouldHandle(event) {
			sub.Handle(event)
		}
	}
}
