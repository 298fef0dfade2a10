// Package receipt renders sale receipts as PDFs for the register's thermal
// or laser printer, with the transaction number QR-coded at the bottom so a
// return can be scanned instead of typed.
package receipt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/smartpos/smartposgo/internal/models"
)

// Data is everything a rendered receipt needs; all of it comes from the
// local store so receipts print offline
type Data struct {
	Transaction models.Transaction
	Items       []models.TransactionItem
	Customer    *models.Customer
	Settings    models.StoreSettings
	CashierName string
}

// Generate renders the receipt PDF
func Generate(data Data) ([]byte, error) {
	// 80mm receipt roll width; height grows with the item count
	height := 120.0 + float64(len(data.Items))*6.0
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(5, 6, 5)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	lineW := 70.0

	// Header
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(lineW, 6, data.Settings.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	if data.Settings.StoreAddress != "" {
		pdf.CellFormat(lineW, 4, data.Settings.StoreAddress, "", 1, "C", false, 0, "")
	}
	if data.Settings.StorePhone != "" {
		pdf.CellFormat(lineW, 4, data.Settings.StorePhone, "", 1, "C", false, 0, "")
	}
	if data.Settings.GSTNumber != "" {
		pdf.CellFormat(lineW, 4, "GST# "+data.Settings.GSTNumber, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(lineW, 4, data.Transaction.TransactionNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(lineW, 4, data.Transaction.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	if data.CashierName != "" {
		pdf.CellFormat(lineW, 4, "Cashier: "+data.CashierName, "", 1, "L", false, 0, "")
	}
	if data.Customer != nil {
		pdf.CellFormat(lineW, 4, "Customer: "+data.Customer.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)

	// Items
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(34, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(8, 5, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(14, 5, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(14, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, item := range data.Items {
		name := item.ProductName
		if name == "" {
			name = item.ProductID
		}
		if len(name) > 22 {
			name = name[:22]
		}
		pdf.CellFormat(34, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(8, 5, strconv.Itoa(item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 5, item.UnitPrice, "", 0, "R", false, 0, "")
		pdf.CellFormat(14, 5, item.TotalPrice, "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	// Totals
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(42, 5, "Subtotal", "T", 0, "L", false, 0, "")
	pdf.CellFormat(28, 5, data.Transaction.Subtotal, "T", 1, "R", false, 0, "")
	pdf.CellFormat(42, 5, fmt.Sprintf("Tax (%s%%)", trimRate(data.Settings.TaxRate)), "", 0, "L", false, 0, "")
	pdf.CellFormat(28, 5, data.Transaction.Tax, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(42, 6, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(28, 6, data.Transaction.Total, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(lineW, 4, "Paid by "+data.Transaction.PaymentMethod, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// QR code of the transaction number
	qrPng, err := qrcode.Encode(data.Transaction.TransactionNumber, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("receipt: encode qr: %w", err)
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	reader := bytes.NewReader(qrPng)
	_ = pdf.RegisterImageOptionsReader("txn_qr", imgOptions, reader)

	qrSize := 22.0
	qrX := 5 + (lineW-qrSize)/2
	pdf.ImageOptions("txn_qr", qrX, pdf.GetY(), qrSize, qrSize, false, imgOptions, 0, "")
	pdf.SetY(pdf.GetY() + qrSize + 2)

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(lineW, 4, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func trimRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
