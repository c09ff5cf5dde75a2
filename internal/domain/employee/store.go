package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emprof/internal/domain/docs"
	"emprof/internal/domain/salary"
	cryptoutil "emprof/internal/platform/crypto"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

const profileColumns = `
    id,
    COALESCE(employee_number, ''),
    first_name, last_name, email,
    COALESCE(phone, ''),
    COALESCE(nationality, ''),
    COALESCE(designation, ''),
    date_of_birth, date_of_joining,
    COALESCE(basic, 0), COALESCE(house_rent_allowance, 0),
    COALESCE(vehicle_allowance, 0), COALESCE(fuel_allowance, 0),
    COALESCE(other_allowance, 0),
    COALESCE(bank_name, ''),
    COALESCE(bank_account, ''),
    bank_account_enc,
    COALESCE(iban, ''),
    COALESCE(bank_doc_url, ''), COALESCE(bank_doc_name, ''), COALESCE(bank_doc_mime, ''),
    COALESCE(offer_doc_url, ''), COALESCE(offer_doc_data, ''), COALESCE(offer_doc_name, ''), COALESCE(offer_doc_mime, ''),
    created_at, updated_at`

func (s *Store) Get(ctx context.Context, employeeID string) (*Profile, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+profileColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)
	return s.scanProfile(row)
}

func (s *Store) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+profileColumns+`
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		profile, err := s.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *profile)
	}
	return out, rows.Err()
}

func (s *Store) scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var bankPlain string
	var bankEnc []byte
	err := row.Scan(
		&p.ID, &p.EmployeeNumber, &p.FirstName, &p.LastName, &p.Email,
		&p.Phone, &p.Nationality, &p.Designation,
		&p.DateOfBirth, &p.DateOfJoining,
		&p.Basic, &p.HouseRentAllowance, &p.VehicleAllowance, &p.FuelAllowance, &p.OtherAllowance,
		&p.BankName, &bankPlain, &bankEnc, &p.IBAN,
		&p.BankAttachment.RemoteURL, &p.BankAttachment.FileName, &p.BankAttachment.MimeType,
		&p.OfferLetter.RemoteURL, &p.OfferLetter.InlineData, &p.OfferLetter.FileName, &p.OfferLetter.MimeType,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.BankAccount = decryptFallback(s.Crypto, bankEnc, bankPlain)
	return &p, nil
}

func (s *Store) UpdateBasic(ctx context.Context, employeeID string, p Profile) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, phone = $4,
        nationality = $5, designation = $6,
        date_of_birth = $7, date_of_joining = $8,
        updated_at = now()
    WHERE id = $9
  `,
		p.FirstName, p.LastName, p.Email, p.Phone, p.Nationality, p.Designation,
		p.DateOfBirth, p.DateOfJoining, employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBank stores the bank details, encrypting the account number when a
// data key is configured and falling back to plaintext when not.
func (s *Store) UpdateBank(ctx context.Context, employeeID string, p Profile) error {
	var plain any = p.BankAccount
	var enc []byte
	if s.Crypto != nil && s.Crypto.Configured() {
		var err error
		enc, err = s.Crypto.EncryptString(p.BankAccount)
		if err != nil {
			return err
		}
		plain = nil
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET bank_name = $1, bank_account = $2, bank_account_enc = $3, iban = $4,
        bank_doc_url = $5, bank_doc_name = $6, bank_doc_mime = $7,
        updated_at = now()
    WHERE id = $8
  `,
		p.BankName, plain, enc, p.IBAN,
		nullIfEmpty(p.BankAttachment.RemoteURL), nullIfEmpty(p.BankAttachment.FileName), nullIfEmpty(p.BankAttachment.MimeType),
		employeeID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Compensation extracts the current pay components for ledger synthesis.
func (s *Store) Compensation(ctx context.Context, employeeID string) (salary.Compensation, error) {
	p, err := s.Get(ctx, employeeID)
	if err != nil {
		return salary.Compensation{}, err
	}
	return salary.Compensation{
		Basic:              p.Basic,
		HouseRentAllowance: p.HouseRentAllowance,
		VehicleAllowance:   p.VehicleAllowance,
		FuelAllowance:      p.FuelAllowance,
		OtherAllowance:     p.OtherAllowance,
		DateOfJoining:      p.DateOfJoining,
	}, nil
}

// BankAttachment and CompanyOfferLetter back the bankAttachment and
// offerLetter document tags.
func (s *Store) BankAttachment(ctx context.Context, employeeID string) (docs.Reference, error) {
	p, err := s.Get(ctx, employeeID)
	if err != nil {
		return docs.Reference{}, err
	}
	return p.BankAttachment, nil
}

func (s *Store) CompanyOfferLetter(ctx context.Context, employeeID string) (docs.Reference, error) {
	p, err := s.Get(ctx, employeeID)
	if err != nil {
		return docs.Reference{}, err
	}
	return p.OfferLetter, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func decryptFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if crypto == nil || !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}
