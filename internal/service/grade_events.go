package service

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/dto"
)

// GradeEventPublisher broadcasts grade-recorded events to interested
// consumers (notification workers, report builders). Delivery is best-effort;
// the ledger never fails a grade write because the broker is down.
type GradeEventPublisher interface {
	PublishGradeRecorded(ctx context.Context, event dto.GradeRecordedEvent) error
}

type natsGradeEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSGradeEventPublisher constructs a NATS-backed publisher. A nil
// connection yields a publisher that drops events silently, which keeps local
// development broker-free.
func NewNATSGradeEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) GradeEventPublisher {
	if subject == "" {
		subject = "campus.grades.recorded"
	}

	return &natsGradeEventPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "grade_event_publisher").Logger(),
	}
}

func (p *natsGradeEventPublisher) PublishGradeRecorded(_ context.Context, event dto.GradeRecordedEvent) error {
	if p.conn == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return err
	}

	p.logger.Debug().
		Uint("student_id", event.StudentID).
		Uint("assignment_id", event.AssignmentID).
		Msg("published grade recorded event")
	return nil
}
