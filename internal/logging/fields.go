package logging

import (
	"strconv"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// With applies fields to e in order and returns it for Msg/Send.
func With(e *bolt.Event, fields ...Field) *bolt.Event {
	for _, f := range fields {
		e = f(e)
	}
	return e
}

// RunID adds the experiment run ID.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Configuration adds the catalogue entry name.
func Configuration(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("configuration", name)
	}
}

// Protocol adds the protocol name.
func Protocol(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("protocol", name)
	}
}

// Agents adds the agent count.
func Agents(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("agents", n)
	}
}

// Trial adds the trial index.
func Trial(i int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("trial", i)
	}
}

// Day adds a day number.
func Day(d int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("day", d)
	}
}

// Seed adds the run seed. It is written as a string because it is a full
// 64-bit value.
func Seed(seed uint64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("seed", strconv.FormatUint(seed, 10))
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
