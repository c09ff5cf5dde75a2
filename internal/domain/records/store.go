package records

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emprof/internal/domain/docs"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, employeeID string, typ Type) (*Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT COALESCE(number, ''),
           issue_date, expiry_date,
           COALESCE(fields, '{}'::jsonb),
           COALESCE(doc_url, ''),
           COALESCE(doc_data, ''),
           COALESCE(doc_name, ''),
           COALESCE(doc_mime, ''),
           updated_at
    FROM employee_records
    WHERE employee_id = $1 AND record_type = $2
  `, employeeID, string(typ))

	rec := Record{Type: typ}
	var fieldsJSON []byte
	err := row.Scan(
		&rec.Number, &rec.IssueDate, &rec.ExpiryDate, &fieldsJSON,
		&rec.Document.RemoteURL, &rec.Document.InlineData,
		&rec.Document.FileName, &rec.Document.MimeType,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fieldsJSON, &rec.Fields); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context, employeeID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT record_type,
           COALESCE(number, ''),
           issue_date, expiry_date,
           COALESCE(fields, '{}'::jsonb),
           COALESCE(doc_url, ''),
           COALESCE(doc_data, ''),
           COALESCE(doc_name, ''),
           COALESCE(doc_mime, ''),
           updated_at
    FROM employee_records
    WHERE employee_id = $1
    ORDER BY record_type
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var fieldsJSON []byte
		if err := rows.Scan(
			&rec.Type, &rec.Number, &rec.IssueDate, &rec.ExpiryDate, &fieldsJSON,
			&rec.Document.RemoteURL, &rec.Document.InlineData,
			&rec.Document.FileName, &rec.Document.MimeType,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(fieldsJSON, &rec.Fields); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert overwrites the record for (employee, type) in place. Identity
// documents are never hard-deleted and keep no history of an expired
// instance, so a plain overwrite is the whole lifecycle.
func (s *Store) Upsert(ctx context.Context, employeeID string, rec Record) error {
	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_records
      (employee_id, record_type, number, issue_date, expiry_date, fields,
       doc_url, doc_data, doc_name, doc_mime, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    ON CONFLICT (employee_id, record_type) DO UPDATE SET
      number = EXCLUDED.number,
      issue_date = EXCLUDED.issue_date,
      expiry_date = EXCLUDED.expiry_date,
      fields = EXCLUDED.fields,
      doc_url = EXCLUDED.doc_url,
      doc_data = EXCLUDED.doc_data,
      doc_name = EXCLUDED.doc_name,
      doc_mime = EXCLUDED.doc_mime,
      updated_at = EXCLUDED.updated_at
  `,
		employeeID, string(rec.Type), nullIfEmpty(rec.Number), rec.IssueDate, rec.ExpiryDate, fieldsJSON,
		nullIfEmpty(rec.Document.RemoteURL), nullIfEmpty(rec.Document.InlineData),
		nullIfEmpty(rec.Document.FileName), nullIfEmpty(rec.Document.MimeType),
		rec.UpdatedAt,
	)
	return err
}

// Document returns the stored document reference for a record tag, for lazy
// resolution.
func (s *Store) Document(ctx context.Context, employeeID string, typ Type) (docs.Reference, error) {
	rec, err := s.Get(ctx, employeeID, typ)
	if err != nil {
		return docs.Reference{}, err
	}
	return rec.Document, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
