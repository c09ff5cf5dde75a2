package catalog

import (
	"context"
	"errors"
	"strings"

	"emprof/internal/domain/docs"
	"emprof/internal/domain/employee"
	"emprof/internal/domain/records"
	"emprof/internal/domain/salary"
)

// Category groups catalog entries for display.
type Category string

const (
	CategoryBasicDetails Category = "Basic Details"
	CategorySalary       Category = "Salary"
	CategoryPersonalInfo Category = "Personal Information"
	CategoryTraining     Category = "Training"
	CategoryFines        Category = "Fines"
	CategoryRewards      Category = "Rewards"
	CategoryLoans        Category = "Loans & Advances"
	CategoryOther        Category = "Other"
)

// categoryKeywords maps a substring of the entry's source string to its
// category. First match wins; order puts the more specific words first.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"salary", CategorySalary},
	{"offer", CategorySalary},
	{"training", CategoryTraining},
	{"certificate", CategoryTraining},
	{"fine", CategoryFines},
	{"reward", CategoryRewards},
	{"loan", CategoryLoans},
	{"advance", CategoryLoans},
	{"bank", CategoryPersonalInfo},
	{"signature", CategoryPersonalInfo},
	{"education", CategoryPersonalInfo},
	{"experience", CategoryPersonalInfo},
	{"passport", CategoryBasicDetails},
	{"visa", CategoryBasicDetails},
	{"emirates", CategoryBasicDetails},
	{"labour", CategoryBasicDetails},
	{"insurance", CategoryBasicDetails},
	{"license", CategoryBasicDetails},
}

func Categorize(source string) Category {
	lowered := strings.ToLower(source)
	for _, entry := range categoryKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.category
		}
	}
	return CategoryOther
}

// Entry is one document in the aggregated view, with the tag and docID needed
// to resolve it later.
type Entry struct {
	Tag      docs.Tag       `json:"tag"`
	DocID    string         `json:"docId,omitempty"`
	Category Category       `json:"category"`
	Source   string         `json:"source"`
	Document docs.Reference `json:"document"`
}

// Service aggregates every document reference reachable from an employee
// record. The view is recomputed per call and never stored.
type Service struct {
	records   *records.Store
	salaries  *salary.Store
	employees *employee.Store
}

func NewService(recordStore *records.Store, salaryStore *salary.Store, employeeStore *employee.Store) *Service {
	return &Service{records: recordStore, salaries: salaryStore, employees: employeeStore}
}

func (s *Service) Catalog(ctx context.Context, employeeID string) ([]Entry, error) {
	profile, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var out []Entry
	add := func(tag docs.Tag, docID, source string, ref docs.Reference) {
		if !ref.Present() {
			return
		}
		out = append(out, Entry{
			Tag:      tag,
			DocID:    docID,
			Category: Categorize(source),
			Source:   source,
			Document: ref,
		})
	}

	recs, err := s.records.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		add(rec.Type.Tag(), "", string(rec.Type), rec.Document)
	}

	add(docs.TagBankAttachment, "", "bank attachment", profile.BankAttachment)
	add(docs.TagOfferLetter, "", "offer letter", profile.OfferLetter)

	entries, err := s.salaries.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		add(docs.TagSalaryOffer, entry.ID, "salary offer letter", entry.OfferLetter)
	}

	return out, nil
}

// Fetch implements docs.Fetcher over the stores, routing a tag (plus docID
// for ledger entries) to the owning table. This is the backend half of lazy
// resolution.
func (s *Service) Fetch(ctx context.Context, employeeID string, tag docs.Tag, docID string) (docs.RawDocument, error) {
	ref, err := s.Reference(ctx, employeeID, tag, docID)
	if err != nil {
		return docs.RawDocument{}, err
	}
	if !ref.Present() {
		return docs.RawDocument{}, docs.ErrNotFound
	}
	data := ref.RemoteURL
	if data == "" {
		data = ref.InlineData
	}
	return docs.RawDocument{Data: data, Name: ref.FileName, MimeType: ref.MimeType}, nil
}

func (s *Service) Reference(ctx context.Context, employeeID string, tag docs.Tag, docID string) (docs.Reference, error) {
	switch tag {
	case docs.TagBankAttachment:
		return s.employees.BankAttachment(ctx, employeeID)
	case docs.TagOfferLetter:
		return s.employees.CompanyOfferLetter(ctx, employeeID)
	case docs.TagSalaryOffer:
		ref, err := s.salaries.OfferLetter(ctx, employeeID, docID)
		if errors.Is(err, salary.ErrEntryNotFound) {
			return docs.Reference{}, docs.ErrNotFound
		}
		return ref, err
	default:
		typ, err := records.ParseType(string(tag))
		if err != nil {
			return docs.Reference{}, err
		}
		ref, err := s.records.Document(ctx, employeeID, typ)
		if errors.Is(err, records.ErrRecordNotFound) {
			return docs.Reference{}, docs.ErrNotFound
		}
		return ref, err
	}
}
