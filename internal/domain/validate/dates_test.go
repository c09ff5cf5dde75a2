package validate

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestDateRangeValidPair(t *testing.T) {
	errs := DateRange("2024-01-10", "2026-01-10", DateBounds{RequireIssue: true, RequireExpiry: true}, testNow)
	if !errs.Empty() {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestDateRangeRequired(t *testing.T) {
	errs := DateRange("", "", DateBounds{RequireIssue: true, RequireExpiry: true}, testNow)
	if errs.Issue != "Issue date is required" {
		t.Fatalf("issue: got %q", errs.Issue)
	}
	if errs.Expiry != "Expiry date is required" {
		t.Fatalf("expiry: got %q", errs.Expiry)
	}
}

func TestDateRangeBlankOptional(t *testing.T) {
	errs := DateRange("", "", DateBounds{}, testNow)
	if !errs.Empty() {
		t.Fatalf("optional blanks should pass, got %+v", errs)
	}
}

func TestDateRangeBadFormat(t *testing.T) {
	errs := DateRange("10/01/2024", "not-a-date", DateBounds{}, testNow)
	if errs.Issue != "must be a valid date in YYYY-MM-DD format" {
		t.Fatalf("issue: got %q", errs.Issue)
	}
	if errs.Expiry != "must be a valid date in YYYY-MM-DD format" {
		t.Fatalf("expiry: got %q", errs.Expiry)
	}
}

func TestDateRangeIssueMustBePast(t *testing.T) {
	errs := DateRange("2026-01-01", "", DateBounds{}, testNow)
	if errs.Issue != "Issue date must be a past date" {
		t.Fatalf("got %q", errs.Issue)
	}
	// the clock day itself is not a past date
	errs = DateRange("2025-06-15", "", DateBounds{}, testNow)
	if errs.Issue != "Issue date must be a past date" {
		t.Fatalf("same-day issue: got %q", errs.Issue)
	}
}

func TestDateRangeExpiryMustBeFuture(t *testing.T) {
	errs := DateRange("", "2024-01-01", DateBounds{}, testNow)
	if errs.Expiry != "Expiry date must be a future date" {
		t.Fatalf("got %q", errs.Expiry)
	}
}

func TestDateRangeOrderingWinsOverClock(t *testing.T) {
	// Expiry is both in the past and not after the issue date. The ordering
	// message wins so the user is told about the relationship, not the clock.
	errs := DateRange("2024-05-10", "2024-05-01", DateBounds{}, testNow)
	if errs.Expiry != "Expiry date must be later than the issue date" {
		t.Fatalf("got %q", errs.Expiry)
	}
	if errs.Issue != "" {
		t.Fatalf("issue date is valid, got %q", errs.Issue)
	}
}

func TestDateRangeOrderingEqualDates(t *testing.T) {
	errs := DateRange("2024-05-10", "2024-05-10", DateBounds{}, testNow)
	if errs.Expiry != "Expiry date must be later than the issue date" {
		t.Fatalf("got %q", errs.Expiry)
	}
}

func TestDateRangeOrderingFutureExpiry(t *testing.T) {
	// Ordering applies even when the expiry passes the clock check.
	errs := DateRange("2026-05-10", "2026-01-01", DateBounds{}, testNow)
	if errs.Expiry != "Expiry date must be later than the issue date" {
		t.Fatalf("got %q", errs.Expiry)
	}
}

func TestParseDateFormats(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	got, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatalf("got %v", got)
	}

	got, err = ParseDate("2024-03-05T12:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
		t.Fatalf("got %v", got)
	}
}
