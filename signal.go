package spark

import "reflect"

// WriteableSignal is the atomic reactive value container. It has no
// dependencies of its own and is not owned by any scope; it becomes garbage
// once nothing subscribes to or references it.
type WriteableSignal[T any] struct {
	sourceBase

	rt      *Runtime
	value   T
	version uint64
	equals  func(a, b T) bool
}

// Signal creates a writeable signal holding initial.
func Signal[T any](rt *Runtime, initial T) *WriteableSignal[T] {
	return &WriteableSignal[T]{
		sourceBase: sourceBase{id: rt.nextID()},
		rt:         rt,
		value:      initial,
	}
}

// WithEquals replaces the signal's equality predicate. Useful where the
// default is too expensive or has the wrong semantics, e.g. slices that
// should compare by identity.
func (s *WriteableSignal[T]) WithEquals(fn func(a, b T) bool) *WriteableSignal[T] {
	s.equals = fn
	return s
}

// Value returns the current value and registers the signal as a dependency
// of the running computation, if any.
func (s *WriteableSignal[T]) Value() T {
	s.rt.track(s)
	return s.value
}

// Peek returns the current value without registering a dependency.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

// SetValue writes a new value. If it is equal to the current value under the
// signal's predicate nothing happens: no version bump, no notifications.
// Otherwise direct subscribers are marked and, outside a batch, the effect
// queue is flushed before SetValue returns.
func (s *WriteableSignal[T]) SetValue(value T) {
	if s.eq(s.value, value) {
		return
	}
	s.value = value
	s.version++

	for _, sub := range append([]*node(nil), s.subs...) {
		s.rt.mark(sub, stateDirty)
	}
	if s.rt.batchDepth == 0 {
		s.rt.flush()
	}
}

// Update applies fn to the current value and writes the result.
func (s *WriteableSignal[T]) Update(fn func(old T) T) {
	s.SetValue(fn(s.value))
}

func (s *WriteableSignal[T]) eq(a, b T) bool {
	if s.equals != nil {
		return s.equals(a, b)
	}
	return defaultEquals(a, b)
}

func (s *WriteableSignal[T]) producerVersion() uint64 { return s.version }

// settle is a no-op: a plain signal is always up to date.
func (s *WriteableSignal[T]) settle() {}

// defaultEquals uses == for the common scalar kinds and falls back to
// reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
