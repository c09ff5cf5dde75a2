package catalog

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		source string
		want   Category
	}{
		{"passport", CategoryBasicDetails},
		{"visa-employment", CategoryBasicDetails},
		{"emiratesId", CategoryBasicDetails},
		{"medicalInsurance", CategoryBasicDetails},
		{"drivingLicense", CategoryBasicDetails},
		{"salary offer letter", CategorySalary},
		{"offer letter", CategorySalary},
		{"bank attachment", CategoryPersonalInfo},
		{"training certificate", CategoryTraining},
		{"parking fine", CategoryFines},
		{"annual reward", CategoryRewards},
		{"loan agreement", CategoryLoans},
		{"advance payment", CategoryLoans},
		{"random attachment", CategoryOther},
	}
	for _, c := range cases {
		if got := Categorize(c.source); got != c.want {
			t.Fatalf("%q: got %s, want %s", c.source, got, c.want)
		}
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	if got := Categorize("Salary Offer Letter"); got != CategorySalary {
		t.Fatalf("got %s", got)
	}
}
