package salary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emprof/internal/domain/docs"
)

var ErrEntryNotFound = errors.New("salary history entry not found")

// ErrSyntheticEntry rejects an attempt to persist a display-only initial
// entry as a real ledger row.
var ErrSyntheticEntry = errors.New("synthetic initial entry must not be persisted")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, employeeID string) ([]HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, from_date, to_date,
           basic, house_rent_allowance, vehicle_allowance, fuel_allowance, other_allowance,
           COALESCE(extras, '[]'::jsonb),
           COALESCE(doc_url, ''), COALESCE(doc_data, ''), COALESCE(doc_name, ''), COALESCE(doc_mime, '')
    FROM salary_history
    WHERE employee_id = $1
    ORDER BY from_date DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(
			&entry.ID, &entry.Month, &entry.FromDate, &entry.ToDate,
			&entry.Basic, &entry.HouseRentAllowance, &entry.VehicleAllowance,
			&entry.FuelAllowance, &entry.OtherAllowance,
			&entry.Extras,
			&entry.OfferLetter.RemoteURL, &entry.OfferLetter.InlineData,
			&entry.OfferLetter.FileName, &entry.OfferLetter.MimeType,
		); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Append adds one ledger row. The ledger is append-only; rows are never
// updated or deleted through this store.
func (s *Store) Append(ctx context.Context, employeeID string, entry HistoryEntry) (string, error) {
	if entry.IsInitial {
		return "", ErrSyntheticEntry
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_history
      (employee_id, month, from_date, to_date,
       basic, house_rent_allowance, vehicle_allowance, fuel_allowance, other_allowance,
       extras, doc_url, doc_data, doc_name, doc_mime)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING id
  `,
		employeeID, entry.Month, entry.FromDate, entry.ToDate,
		entry.Basic, entry.HouseRentAllowance, entry.VehicleAllowance,
		entry.FuelAllowance, entry.OtherAllowance,
		extrasOrNull(entry.Extras),
		nullIfEmpty(entry.OfferLetter.RemoteURL), nullIfEmpty(entry.OfferLetter.InlineData),
		nullIfEmpty(entry.OfferLetter.FileName), nullIfEmpty(entry.OfferLetter.MimeType),
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// OfferLetter returns the document reference for one ledger row, addressed by
// docID on salaryOfferLetter fetches.
func (s *Store) OfferLetter(ctx context.Context, employeeID, entryID string) (docs.Reference, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT COALESCE(doc_url, ''), COALESCE(doc_data, ''), COALESCE(doc_name, ''), COALESCE(doc_mime, '')
    FROM salary_history
    WHERE employee_id = $1 AND id = $2
  `, employeeID, entryID)

	var ref docs.Reference
	err := row.Scan(&ref.RemoteURL, &ref.InlineData, &ref.FileName, &ref.MimeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return docs.Reference{}, ErrEntryNotFound
	}
	if err != nil {
		return docs.Reference{}, err
	}
	return ref, nil
}

// Latest returns the most recent ledger row, or ErrEntryNotFound on an empty
// ledger.
func (s *Store) Latest(ctx context.Context, employeeID string) (*HistoryEntry, error) {
	entries, err := s.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}
	return &entries[0], nil
}

func extrasOrNull(extras []LabelledAmount) any {
	if len(extras) == 0 {
		return nil
	}
	return extras
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
