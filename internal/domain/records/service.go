package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emprof/internal/domain/docs"
	"emprof/internal/domain/validate"
	"emprof/internal/platform/storage"
)

type Service struct {
	store    *Store
	uploader storage.Uploader
}

func NewService(store *Store, uploader storage.Uploader) *Service {
	return &Service{store: store, uploader: uploader}
}

func (s *Service) Store() *Store {
	return s.store
}

// View pairs a record with its derived lifecycle state for display.
type View struct {
	Record *Record `json:"record,omitempty"`
	State  State   `json:"state"`
}

func (s *Service) Get(ctx context.Context, employeeID string, typ Type, now time.Time) (View, error) {
	rec, err := s.store.Get(ctx, employeeID, typ)
	if errors.Is(err, ErrRecordNotFound) {
		return View{State: StateAbsent}, nil
	}
	if err != nil {
		return View{}, err
	}
	return View{Record: rec, State: StateAt(rec, now)}, nil
}

func (s *Service) List(ctx context.Context, employeeID string, now time.Time) (map[Type]View, error) {
	stored, err := s.store.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make(map[Type]View, len(AllTypes()))
	for _, typ := range AllTypes() {
		out[typ] = View{State: StateAbsent}
	}
	for i := range stored {
		rec := &stored[i]
		out[rec.Type] = View{Record: rec, State: StateAt(rec, now)}
	}
	return out, nil
}

// Renewal produces the blank draft for renewing an existing record: number,
// dates, and document cleared, cross-cutting fields retained. The stored
// record stays as it is until the renewal is saved.
func (s *Service) Renewal(ctx context.Context, employeeID string, typ Type) (Draft, error) {
	rec, err := s.store.Get(ctx, employeeID, typ)
	if err != nil {
		return Draft{}, err
	}
	return RenewDraft(*rec), nil
}

// Save validates a draft and persists it over the existing record. Validation
// failures come back as a field map and block the write. A fresh inline upload
// is pushed to remote storage first; when that fails the save is aborted
// entirely so a record never loses its document to a half-applied write.
func (s *Service) Save(ctx context.Context, employeeID string, typ Type, draft Draft, now time.Time) (*Record, validate.ErrorMap, error) {
	existing, err := s.store.Get(ctx, employeeID, typ)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, nil, err
	}
	if errors.Is(err, ErrRecordNotFound) {
		existing = nil
	}

	if errs := ValidateDraft(typ, draft, existing, now); !errs.Empty() {
		return nil, errs, nil
	}

	doc, err := s.resolveDraftDocument(ctx, typ, draft, existing)
	if err != nil {
		return nil, nil, err
	}

	rec := mergeDraft(typ, draft, existing, doc, now)
	if err := s.store.Upsert(ctx, employeeID, rec); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return &rec, nil, nil
}

func (s *Service) resolveDraftDocument(ctx context.Context, typ Type, draft Draft, existing *Record) (docs.Reference, error) {
	switch {
	case isFreshUpload(draft.Document):
		url, err := s.uploader.Upload(ctx, storage.UploadRequest{
			DataURL:      asDataURL(draft.Document),
			Folder:       string(typ),
			FileName:     draft.Document.FileName,
			ResourceType: "auto",
		})
		if err != nil {
			return docs.Reference{}, err
		}
		return docs.Reference{
			RemoteURL: url,
			FileName:  draft.Document.FileName,
			MimeType:  draft.Document.Mime(),
		}, nil
	case draft.Document.RemoteURL != "":
		return draft.Document, nil
	case docs.IsAbsoluteURL(draft.Document.InlineData):
		return docs.Reference{
			RemoteURL: draft.Document.InlineData,
			FileName:  draft.Document.FileName,
			MimeType:  draft.Document.MimeType,
		}, nil
	case existing != nil:
		return existing.Document, nil
	default:
		return draft.Document, nil
	}
}

// mergeDraft folds a validated draft over the existing record. Omitted draft
// fields keep the persisted value; present-but-blank ones were either
// rejected by validation already or clear an optional value.
func mergeDraft(typ Type, draft Draft, existing *Record, doc docs.Reference, now time.Time) Record {
	rec := Record{Type: typ, Document: doc, UpdatedAt: now, Fields: map[string]string{}}
	if existing != nil {
		rec.Number = existing.Number
		rec.IssueDate = existing.IssueDate
		rec.ExpiryDate = existing.ExpiryDate
		for name, value := range existing.Fields {
			rec.Fields[name] = value
		}
	}
	if draft.Number != nil && *draft.Number != "" {
		rec.Number = *draft.Number
	}
	if draft.IssueDate != nil {
		rec.IssueDate = nil
		if parsed, err := validate.ParseDate(*draft.IssueDate); err == nil {
			rec.IssueDate = &parsed
		}
	}
	if draft.ExpiryDate != nil {
		rec.ExpiryDate = nil
		if parsed, err := validate.ParseDate(*draft.ExpiryDate); err == nil {
			rec.ExpiryDate = &parsed
		}
	}
	for name, value := range draft.Fields {
		if value == "" {
			delete(rec.Fields, name)
			continue
		}
		rec.Fields[name] = value
	}
	return rec
}

func asDataURL(ref docs.Reference) string {
	if len(ref.InlineData) >= 5 && ref.InlineData[:5] == "data:" {
		return ref.InlineData
	}
	return "data:" + ref.Mime() + ";base64," + ref.InlineData
}
