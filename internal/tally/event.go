package tally

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"attendsync/internal/attendance"
	"attendsync/internal/queue"
)

// TypeMarked is the queue message type published after an admission.
const TypeMarked = "attendance.marked"

// Event describes an admitted attendance record.
type Event struct {
	RecordID           string    `json:"record_id"`
	StudentID          string    `json:"student_id"`
	WindowID           string    `json:"attendance_window_id"`
	HallID             string    `json:"hall_id"`
	BatchID            string    `json:"batch_id"`
	VerificationMethod string    `json:"verification_method"`
	MarkedAt           time.Time `json:"marked_at"`
}

// EventFor builds the event for rec.
func EventFor(rec attendance.Record) Event {
	return Event{
		RecordID:           rec.ID,
		StudentID:          rec.StudentID,
		WindowID:           rec.WindowID,
		HallID:             rec.HallID,
		BatchID:            rec.BatchID,
		VerificationMethod: rec.VerificationMethod,
		MarkedAt:           rec.MarkedAt,
	}
}

// Encode wraps ev in a queue message.
func Encode(ev Event) (queue.Message, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return queue.Message{}, err
	}
	return queue.Message{Type: TypeMarked, Body: body}, nil
}

// Decode reads an event from msg.
func Decode(msg queue.Message) (Event, error) {
	if msg.Type != TypeMarked {
		return Event{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	var ev Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		return Event{}, fmt.Errorf("decode %s: %w", TypeMarked, err)
	}
	if ev.WindowID == "" || ev.StudentID == "" {
		return Event{}, fmt.Errorf("decode %s: missing window or student", TypeMarked)
	}
	return ev, nil
}

// Publisher announces admitted records on a queue.
type Publisher struct {
	q queue.Queue
}

// NewPublisher creates a publisher over q.
func NewPublisher(q queue.Queue) *Publisher {
	return &Publisher{q: q}
}

// Publish sends the event for rec.
func (p *Publisher) Publish(ctx context.Context, rec attendance.Record) error {
	msg, err := Encode(EventFor(rec))
	if err != nil {
		return err
	}
	return p.q.Publish(ctx, msg)
}
