package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Journal appends capture events to a writer as newline-delimited JSON.
//
// Writes happen inline on the caller's goroutine; the engine is single
// threaded and a journal must not be shared between engines running in
// parallel. After the first write error the journal goes quiet and Err
// reports it.
type Journal struct {
	enc  *json.Encoder
	now  func() time.Time
	seq  uint64
	tick uint64
	err  error
}

// NewJournal creates a journal writing to w.
func NewJournal(w io.Writer) *Journal {
	return &Journal{
		enc: json.NewEncoder(w),
		now: time.Now,
	}
}

// SetClock replaces the timestamp source, mainly for reproducible output.
func (j *Journal) SetClock(now func() time.Time) {
	j.now = now
}

// SetTick records the simulation tick stamped on subsequent events.
func (j *Journal) SetTick(tick uint64) {
	if j != nil {
		j.tick = tick
	}
}

// Emit writes one event. It returns false once the journal has failed.
func (j *Journal) Emit(eventType EventType, payload interface{}) bool {
	if j == nil || j.err != nil {
		return false
	}

	j.seq++
	event := NewEvent(eventType, j.tick, j.now(), payload)
	event.Sequence = j.seq

	if err := j.enc.Encode(event); err != nil {
		j.err = fmt.Errorf("journal event %d: %w", j.seq, err)
		return false
	}
	return true
}

// Count returns the number of events emitted so far.
func (j *Journal) Count() uint64 {
	if j == nil {
		return 0
	}
	return j.seq
}

// Err returns the first write error, if any.
func (j *Journal) Err() error {
	if j == nil {
		return nil
	}
	return j.err
}

// ReadJournal decodes every event from r.
func ReadJournal(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return events, fmt.Errorf("journal line %d: %w", line, err)
		}
		events = append(events, e)
	}
	return events, scanner.Err()
}
