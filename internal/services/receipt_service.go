package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// PurchaseFinder is the lookup the receipt needs.
type PurchaseFinder interface {
	GetByID(ctx context.Context, id string) (domain.Purchase, error)
}

// ReceiptService renders a purchase as a PDF receipt.
type ReceiptService struct {
	Repo      PurchaseFinder
	RequestID string
	Now       func() time.Time
}

func (s ReceiptService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ReceiptService) Generate(ctx context.Context, id string) ([]byte, string, error) {
	p, err := lookup(s.Repo.GetByID(ctx, id))
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", domain.NotFoundError{Resource: "purchase"}
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", utils.KV("purchase_id", id))
	return buildReceiptPDF(*p, s.now())
}

func buildReceiptPDF(p domain.Purchase, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	receiptNo := "RCP-" + utils.SafeFilenamePart(p.ID)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"No Receipt : " + receiptNo,
		"Date       : " + issued.Format("2006-01-02 15:04"),
		"Item       : " + p.Name,
		"Price      : " + amountOrRaw(p.Price),
		"Quantity   : " + p.Quantity,
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+receiptTotal(p))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", utils.SafeFilenamePart(p.Name+"_"+p.ID))
	return buf.Bytes(), filename, nil
}

func amountOrRaw(s string) string {
	if v, err := utils.ParseAmount(s); err == nil {
		return utils.FormatRupiah(v)
	}
	return s
}

// receiptTotal is price*quantity when both parse, "-" otherwise.
func receiptTotal(p domain.Purchase) string {
	price, err := utils.ParseAmount(p.Price)
	if err != nil {
		return "-"
	}
	qty, err := utils.ParseAmount(p.Quantity)
	if err != nil {
		return "-"
	}
	return utils.FormatRupiah(price * qty)
}
