package salary

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// LetterData is everything the salary certificate needs; the caller assembles
// it from the employee profile and the ledger head.
type LetterData struct {
	EmployeeName   string
	EmployeeNumber string
	Nationality    string
	DateOfJoining  *time.Time
	Entry          HistoryEntry
}

// Letter renders a salary certificate PDF and returns the file path.
func Letter(dir string, data LetterData) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, fmt.Sprintf("salary-letter-%s-%d.pdf", data.EmployeeNumber, time.Now().Unix()))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Certificate")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.EmployeeNumber))
	pdf.Ln(7)
	if data.Nationality != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Nationality: %s", data.Nationality))
		pdf.Ln(7)
	}
	if data.DateOfJoining != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Date of joining: %s", data.DateOfJoining.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Ln(3)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %.2f", data.Entry.Basic))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("House rent allowance: %.2f", data.Entry.HouseRentAllowance))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Vehicle allowance: %.2f", data.Entry.VehicleAllowance))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Fuel allowance: %.2f", data.Entry.FuelAllowance))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Other allowances: %.2f", data.Entry.OtherAllowance))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total monthly salary: %.2f", data.Entry.Total()))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
