package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Actions recorded against an employee file.
const (
	ActionRecordSave   = "record.save"
	ActionBankUpdate   = "bank.update"
	ActionBasicUpdate  = "basic.update"
	ActionSalaryAppend = "salary.append"
)

// Event is one entry in an employee's change trail. Entity narrows the action
// to a record type or ledger row where that applies.
type Event struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actorId"`
	Action     string    `json:"action"`
	EmployeeID string    `json:"employeeId"`
	Entity     string    `json:"entity,omitempty"`
	RequestID  string    `json:"requestId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, evt Event) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_id, action, employee_id, entity, request_id)
    VALUES ($1,$2,$3,$4,$5)
  `, evt.ActorID, evt.Action, evt.EmployeeID, evt.Entity, evt.RequestID)
	return err
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(actor_id, ''), action, employee_id, COALESCE(entity, ''), COALESCE(request_id, ''), created_at
    FROM audit_events
    WHERE employee_id = $1
    ORDER BY created_at DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EmployeeID, &evt.Entity, &evt.RequestID, &evt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
