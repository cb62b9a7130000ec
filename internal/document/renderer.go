// Package document renders PDF receipts, account records and money
// statements onto disk. File names carry a ULID so two documents for
// the same account generated within the same second never collide.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"cleverbank/internal/domain"
	"cleverbank/pkg/utils"

	"github.com/jung-kurt/gofpdf"
)

const (
	categoryCheck     = "check"
	categoryRecord    = "record"
	categoryStatement = "statement"
)

type Renderer struct {
	dir string
	gen *utils.AccountNumberGenerator
}

func NewRenderer(dir string, gen *utils.AccountNumberGenerator) *Renderer {
	return &Renderer{dir: dir, gen: gen}
}

// SaveCheck writes a bank receipt PDF and returns its path.
func (r *Renderer) SaveCheck(check *domain.Check) (string, error) {
	pdf := newPage("Bank check")

	writeRow(pdf, "Check:", check.ID)
	writeRow(pdf, "Date:", check.Date)
	writeRow(pdf, "Time:", check.Time)
	writeRow(pdf, "Transaction type:", check.TransactionType)
	if check.SupplierBank != "" {
		writeRow(pdf, "Supplier bank:", check.SupplierBank)
	}
	if check.ConsumerBank != "" {
		writeRow(pdf, "Consumer bank:", check.ConsumerBank)
	}
	if check.SupplierAccount != "" {
		writeRow(pdf, "Supplier account:", check.SupplierAccount)
	}
	if check.ConsumerAccount != "" {
		writeRow(pdf, "Consumer account:", check.ConsumerAccount)
	}
	writeRow(pdf, "Amount:", check.Amount)

	return r.save(pdf, categoryCheck)
}

// SaveAccountRecord writes an account activity record PDF, header
// fields followed by one table row per transaction.
func (r *Renderer) SaveAccountRecord(record *domain.AccountRecord) (string, error) {
	pdf := newPage("Account record")

	writeRow(pdf, "Bank:", record.Bank)
	writeRow(pdf, "Client:", record.Client)
	writeRow(pdf, "Account:", record.Account)
	writeRow(pdf, "Opening date:", record.AccountCreateDate)
	writeRow(pdf, "Period:", record.Period)
	writeRow(pdf, "Created:", record.CreateDateTime)
	writeRow(pdf, "Balance:", record.Balance)

	pdf.Ln(4)
	writeTableRow(pdf, "Date", "Type", "Amount", true)
	for _, t := range record.Transactions {
		writeTableRow(pdf, t.Date, t.Type, t.Amount, false)
	}

	return r.save(pdf, categoryRecord)
}

// SaveStatement writes a money statement PDF with the aggregate
// replenishment and withdrawal totals.
func (r *Renderer) SaveStatement(st *domain.Statement) (string, error) {
	pdf := newPage("Money statement")

	writeRow(pdf, "Bank:", st.Bank)
	writeRow(pdf, "Client:", st.Client)
	writeRow(pdf, "Account:", st.Account)
	writeRow(pdf, "Opening date:", st.AccountCreateDate)
	writeRow(pdf, "Period:", st.Period)
	writeRow(pdf, "Created:", st.CreateDateTime)
	writeRow(pdf, "Balance:", st.Balance)

	pdf.Ln(4)
	writeTableRow(pdf, "", "Replenishment", "Withdrawal", true)
	writeTableRow(pdf, "", st.Replenishment, st.Withdrawal, false)

	return r.save(pdf, categoryStatement)
}

func (r *Renderer) save(pdf *gofpdf.Fpdf, category string) (string, error) {
	dir := filepath.Join(r.dir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create document dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s%s.pdf", category, r.gen.Next()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write %s pdf: %w", category, err)
	}
	return path, nil
}

func newPage(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	return pdf
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "R", false, 0, "")
}

func writeTableRow(pdf *gofpdf.Fpdf, date, kind, amount string, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", 11)
		defer pdf.SetFont("Helvetica", "", 11)
	}
	pdf.CellFormat(40, 7, date, "1", 0, "C", false, 0, "")
	pdf.CellFormat(100, 7, kind, "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, amount, "1", 1, "C", false, 0, "")
}
