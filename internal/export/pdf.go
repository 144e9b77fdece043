package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jperaza/divvy/internal/models"
)

const lineHeight = 8.0

// PDF writes a printable receipt with the same content as Text: expense
// breakdown followed by required payments. Core PDF fonts only cover
// Latin-1, so the arrow glyph becomes "->" here.
func PDF(w io.Writer, expenses []models.Expense, people []models.Person, settlements []models.Settlement) error {
	directory := NewDirectory(people)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, lineHeight*2, "Expense Summary", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, lineHeight*1.5, "Expense Breakdown:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, expense := range expenses {
		names := make([]string, len(expense.SplitBetween))
		for i, id := range expense.SplitBetween {
			names[i] = directory.Name(id)
		}

		pdf.CellFormat(0, lineHeight, expense.Description, "", 1, "L", false, 0, "")
		indented(pdf, fmt.Sprintf("Amount: $%s", expense.Amount.StringFixed(2)))
		indented(pdf, fmt.Sprintf("Paid by: %s", directory.Name(expense.PaidByID)))
		indented(pdf, fmt.Sprintf("Split between: %s", strings.Join(names, ", ")))
		if share, ok := perPersonShare(expense); ok {
			indented(pdf, fmt.Sprintf("Each person pays: $%s", share.StringFixed(2)))
		}
		pdf.Ln(lineHeight / 2)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, lineHeight*1.5, "Required Payments:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, settlement := range settlements {
		header := fmt.Sprintf("%s -> %s",
			directory.Name(settlement.From), directory.Name(settlement.To))
		pdf.CellFormat(0, lineHeight, header, "", 1, "L", false, 0, "")
		indented(pdf, fmt.Sprintf("Amount: $%s", settlement.Amount.StringFixed(2)))
		indented(pdf, fmt.Sprintf("Payment details: %s", directory.PaymentDetails(settlement.To)))
		pdf.Ln(lineHeight / 2)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(lineHeight)
	pdf.CellFormat(0, lineHeight,
		fmt.Sprintf("Generated on %s", time.Now().Format("Jan 2, 2006")),
		"", 1, "C", false, 0, "")

	return pdf.Output(w)
}

func indented(pdf *gofpdf.Fpdf, text string) {
	pdf.SetX(pdf.GetX() + 10)
	pdf.CellFormat(0, lineHeight, text, "", 1, "L", false, 0, "")
}
