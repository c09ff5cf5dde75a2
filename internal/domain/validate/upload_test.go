package validate

import "testing"

func TestUploadAcceptsAllowedTypes(t *testing.T) {
	if errs := Upload("scan.pdf", "application/pdf", 1024); !errs.Empty() {
		t.Fatalf("pdf should pass, got %+v", errs)
	}
	if errs := Upload("photo.JPG", "image/jpeg", 1024); !errs.Empty() {
		t.Fatalf("extension match is case-insensitive, got %+v", errs)
	}
	if errs := Upload("scan.png", "", 1024); !errs.Empty() {
		t.Fatalf("missing declared mime is fine, got %+v", errs)
	}
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	errs := Upload("payload.exe", "", 10)
	if errs["file"] != "File must be a PDF, JPEG, or PNG" {
		t.Fatalf("got %q", errs["file"])
	}
}

func TestUploadRejectsMimeMismatch(t *testing.T) {
	errs := Upload("scan.pdf", "image/png", 10)
	if errs["file"] != "File must be a PDF, JPEG, or PNG" {
		t.Fatalf("got %q", errs["file"])
	}
}

func TestUploadRejectsOversize(t *testing.T) {
	errs := Upload("scan.pdf", "application/pdf", MaxUploadBytes+1)
	if errs["file"] != "File must be 5MB or smaller" {
		t.Fatalf("got %q", errs["file"])
	}
}

func TestValidCountry(t *testing.T) {
	if !ValidCountry("India") || !ValidCountry("india") {
		t.Fatal("known country should validate in any case")
	}
	if ValidCountry("Narnia") {
		t.Fatal("unknown country should fail")
	}
	if len(Countries()) == 0 {
		t.Fatal("country list should not be empty")
	}
}
