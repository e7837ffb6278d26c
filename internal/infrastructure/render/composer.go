package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	pageWidth    = 210.0 // A4 portrait, millimetres
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0

	printableWidth = pageWidth - marginLeft - marginRight

	rowHeight        = 7.0
	photoWidth       = (printableWidth - 10.0) / 2
	photoHeight      = 60.0
	defaultImageWait = 10 * time.Second
)

// CompanyInfo is the static letterhead and footer content
type CompanyInfo struct {
	Name         string
	AddressLines []string
	Phone        string
	Email        string
	LogoURL      string
}

// ComposerConfig contains configuration for the vector composer
type ComposerConfig struct {
	Company CompanyInfo
	// ImageTimeout bounds each remote image fetch
	ImageTimeout time.Duration
	// HTTPClient used for remote images; defaults to http.DefaultClient
	HTTPClient *http.Client
	// Logger for degradation events
	Logger *zap.Logger
}

// Composer produces print-quality PDFs by issuing ordered drawing
// commands against an A4 vector canvas.
type Composer struct {
	company      CompanyInfo
	imageTimeout time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewComposer creates a vector PDF composer
func NewComposer(config *ComposerConfig) *Composer {
	if config == nil {
		config = &ComposerConfig{}
	}
	if config.ImageTimeout == 0 {
		config.ImageTimeout = defaultImageWait
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Composer{
		company:      config.Company,
		imageTimeout: config.ImageTimeout,
		httpClient:   config.HTTPClient,
		logger:       logger,
	}
}

// Compose renders the document to PDF bytes. Image failures degrade
// per element; any other drawing failure fails the whole operation.
func (c *Composer) Compose(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, NewRenderError(ErrCodeInvalidInput, "document is nil", nil)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	c.drawLetterhead(ctx, pdf)
	c.drawTitleAndMeta(pdf, doc)
	y := c.drawBillTo(pdf, doc)
	y = c.drawSubject(pdf, doc, y)
	y = c.drawItemsTable(pdf, doc, y)
	y = c.drawTotals(pdf, doc, y)
	c.drawTerms(pdf, doc, y)
	if doc.Kind == KindQuotation && doc.SignatureDataURI != "" {
		c.drawSignature(pdf, doc)
	}
	c.drawFooter(pdf)
	// Footer and signature rewind to page 1; move back before appending
	pdf.SetPage(pdf.PageCount())
	if doc.Kind == KindInvoice && len(doc.Photos) > 0 {
		c.drawPhotoPages(ctx, pdf, doc.Photos)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "pdf serialization failed", err)
	}
	return buf.Bytes(), nil
}

// drawLetterhead draws the logo and company block at fixed coordinates.
// Logo failures fall back to a text-only letterhead.
func (c *Composer) drawLetterhead(ctx context.Context, pdf *gofpdf.Fpdf) {
	textX := marginLeft
	if c.company.LogoURL != "" {
		if err := c.placeImage(ctx, pdf, c.company.LogoURL, "logo", marginLeft, marginTop, 30, 0); err != nil {
			c.logger.Warn("letterhead logo unavailable, using text fallback",
				zap.String("url", c.company.LogoURL), zap.Error(err))
		} else {
			textX = marginLeft + 35
		}
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetXY(textX, marginTop)
	pdf.CellFormat(0, 6, c.company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range c.company.AddressLines {
		pdf.SetX(textX)
		pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}
	if c.company.Phone != "" {
		pdf.SetX(textX)
		pdf.CellFormat(0, 4.5, "Tel: "+c.company.Phone, "", 1, "L", false, 0, "")
	}
}

// drawTitleAndMeta draws the document title, number and meta rows
func (c *Composer) drawTitleAndMeta(pdf *gofpdf.Fpdf, doc *Document) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(marginLeft, 45)
	pdf.CellFormat(0, 8, doc.Kind.Title(), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "No: "+doc.ReferenceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+FormatDate(doc.IssueDate), "", 1, "R", false, 0, "")

	dueLabel := "Due Date: "
	if doc.Kind == KindQuotation {
		dueLabel = "Valid Until: "
	}
	if !doc.DueDate.IsZero() {
		pdf.CellFormat(0, 5, dueLabel+FormatDate(doc.DueDate), "", 1, "R", false, 0, "")
	}
	if doc.Status != "" {
		pdf.CellFormat(0, 5, "Status: "+doc.Status, "", 1, "R", false, 0, "")
	}
	if doc.Kind == KindInvoice && doc.SourceQuotation != "" {
		pdf.CellFormat(0, 5, "Ref Quotation: "+doc.SourceQuotation, "", 1, "R", false, 0, "")
	}
}

// drawBillTo draws the customer block line by line, advancing a running
// cursor. Returns the Y position where the next section starts.
func (c *Composer) drawBillTo(pdf *gofpdf.Fpdf, doc *Document) float64 {
	y := 80.0
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 5, "Bill To:", "", 1, "L", false, 0, "")
	y += 5

	pdf.SetFont("Arial", "", 10)
	lines := []string{doc.Customer.Name}
	if doc.Customer.UnitNumber != "" {
		lines = append(lines, doc.Customer.UnitNumber)
	}
	if doc.Customer.Address != "" {
		lines = append(lines, doc.Customer.Address)
	}
	if doc.Customer.Phone != "" {
		lines = append(lines, doc.Customer.Phone)
	}
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		y += 5
	}
	return y + 5
}

// drawSubject draws the optional one-line subject
func (c *Composer) drawSubject(pdf *gofpdf.Fpdf, doc *Document, y float64) float64 {
	if doc.Subject == "" {
		return y
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 5, "Subject: "+doc.Subject, "", 1, "L", false, 0, "")
	return y + 8
}

// tableColumns returns the column widths as fixed proportions of the
// printable width
func tableColumns() (desc, qty, price, amount float64) {
	return printableWidth * 0.45, printableWidth * 0.12, printableWidth * 0.20, printableWidth * 0.23
}

// drawItemsTable renders the grouped items table with shaded category
// header rows. Returns the Y position after the table.
func (c *Composer) drawItemsTable(pdf *gofpdf.Fpdf, doc *Document, y float64) float64 {
	descW, qtyW, priceW, amountW := tableColumns()

	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(descW, rowHeight, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, rowHeight, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(priceW, rowHeight, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(amountW, rowHeight, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y += rowHeight

	for _, group := range GroupItems(doc.Items) {
		y = c.ensureSpace(pdf, y, rowHeight)
		pdf.SetXY(marginLeft, y)
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(printableWidth, rowHeight, group.Label, "1", 1, "L", true, 0, "")
		y += rowHeight

		pdf.SetFont("Arial", "", 9)
		for _, item := range group.Items {
			y = c.ensureSpace(pdf, y, rowHeight)
			qty := item.Quantity.String()
			if item.Unit != "" {
				qty += " " + item.Unit
			}
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(descW, rowHeight, item.Description, "1", 0, "L", false, 0, "")
			pdf.CellFormat(qtyW, rowHeight, qty, "1", 0, "C", false, 0, "")
			pdf.CellFormat(priceW, rowHeight, FormatCurrency(item.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(amountW, rowHeight, FormatCurrency(item.Amount), "1", 1, "R", false, 0, "")
			y += rowHeight
		}
	}
	return y + 4
}

// ensureSpace starts a new page when the next row would cross the
// bottom margin. Returns the Y position to draw at.
func (c *Composer) ensureSpace(pdf *gofpdf.Fpdf, y, needed float64) float64 {
	if y+needed <= pageHeight-marginBottom {
		return y
	}
	pdf.AddPage()
	return marginTop
}

// totalsLine is one row of the totals block
type totalsLine struct {
	Label string
	Value string
	Bold  bool
}

// totalsLines derives the totals block rows. The grand total prints
// the document's stored total, never a sum of item rows.
func totalsLines(doc *Document) []totalsLine {
	lines := []totalsLine{
		{Label: "Subtotal:", Value: FormatCurrency(doc.Subtotal)},
	}
	if doc.Kind == KindInvoice && doc.TaxRate.IsPositive() {
		lines = append(lines, totalsLine{
			Label: fmt.Sprintf("Tax (%s%%):", doc.TaxRate.String()),
			Value: FormatCurrency(doc.TaxAmount),
		})
	}
	if doc.Kind == KindQuotation && doc.RequiresDeposit {
		lines = append(lines, totalsLine{
			Label: fmt.Sprintf("Deposit (%s%%):", doc.DepositPercent.String()),
			Value: FormatCurrency(doc.DepositAmount),
		})
	}
	if doc.Kind == KindInvoice && doc.IsDepositInvoice {
		lines = append(lines, totalsLine{
			Label: "Deposit:",
			Value: FormatCurrency(doc.DepositAmount),
		})
	}
	lines = append(lines, totalsLine{
		Label: "Total:",
		Value: FormatCurrency(doc.Total),
		Bold:  true,
	})
	return lines
}

// drawTotals renders the right-aligned totals block
func (c *Composer) drawTotals(pdf *gofpdf.Fpdf, doc *Document, y float64) float64 {
	labelW := printableWidth * 0.30
	valueW := printableWidth * 0.23
	x := marginLeft + printableWidth - labelW - valueW

	for _, line := range totalsLines(doc) {
		y = c.ensureSpace(pdf, y, 6)
		style := ""
		if line.Bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, 6, line.Label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, line.Value, "", 1, "R", false, 0, "")
		y += 6
	}

	return y + 4
}

// drawTerms renders the optional free-text terms, word-wrapped to the
// printable width
func (c *Composer) drawTerms(pdf *gofpdf.Fpdf, doc *Document, y float64) {
	if doc.Terms == "" {
		return
	}
	y = c.ensureSpace(pdf, y, 12)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 5, "Terms & Conditions:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.SetX(marginLeft)
	pdf.MultiCell(printableWidth, 4, doc.Terms, "", "L", false)
}

// drawSignature renders the customer's acceptance signature near the
// bottom of the first page. Failures are logged, not fatal.
func (c *Composer) drawSignature(pdf *gofpdf.Fpdf, doc *Document) {
	data, imageType, err := decodeDataURI(doc.SignatureDataURI)
	if err != nil {
		c.logger.Warn("signature image unavailable",
			zap.String("reference", doc.ReferenceNumber), zap.Error(err))
		return
	}

	pdf.SetPage(1)
	name := "signature-" + doc.ReferenceNumber
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		c.logger.Warn("signature image rejected",
			zap.String("reference", doc.ReferenceNumber), zap.String("error", pdf.Error().Error()))
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, marginLeft, pageHeight-marginBottom-40, 50, 0, false, opts, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(marginLeft, pageHeight-marginBottom-14)
	pdf.CellFormat(50, 4, "Accepted by customer", "T", 1, "L", false, 0, "")
}

// drawPhotoPages lays out work photos two per row on fresh pages.
// Each failed image gets a bordered placeholder instead of aborting.
func (c *Composer) drawPhotoPages(ctx context.Context, pdf *gofpdf.Fpdf, photos []Attachment) {
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(0, 6, "Work Photos", "", 1, "L", false, 0, "")

	y := marginTop + 10
	cellHeight := photoHeight + 10
	for i, photo := range photos {
		col := i % 2
		if col == 0 && y+cellHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		x := marginLeft + float64(col)*(photoWidth+10)

		name := fmt.Sprintf("photo-%d", photo.Index)
		if err := c.placeImage(ctx, pdf, photo.URL, name, x, y, photoWidth, photoHeight); err != nil {
			c.logger.Warn("work photo unavailable, drawing placeholder",
				zap.String("url", photo.URL), zap.Error(err))
			pdf.Rect(x, y, photoWidth, photoHeight, "D")
			pdf.SetFont("Arial", "I", 9)
			pdf.SetXY(x, y+photoHeight/2-2)
			pdf.CellFormat(photoWidth, 4, "Image not available", "", 0, "C", false, 0, "")
		}
		if photo.Caption != "" {
			pdf.SetFont("Arial", "", 8)
			pdf.SetXY(x, y+photoHeight+1)
			pdf.CellFormat(photoWidth, 4, photo.Caption, "", 0, "C", false, 0, "")
		}

		if col == 1 {
			y += cellHeight
		}
	}
}

// drawFooter renders the fixed contact and copyright lines on the
// first page
func (c *Composer) drawFooter(pdf *gofpdf.Fpdf) {
	pdf.SetPage(1)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-14)
	contact := c.company.Phone
	if c.company.Email != "" {
		if contact != "" {
			contact += " | "
		}
		contact += c.company.Email
	}
	pdf.CellFormat(printableWidth, 4, contact, "T", 1, "C", false, 0, "")
	pdf.SetX(marginLeft)
	pdf.CellFormat(printableWidth, 4,
		fmt.Sprintf("(c) %d %s. All rights reserved.", time.Now().Year(), c.company.Name),
		"", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// placeImage fetches and draws one image. The caller decides how a
// failure degrades.
func (c *Composer) placeImage(ctx context.Context, pdf *gofpdf.Fpdf, url, name string, x, y, w, h float64) error {
	data, imageType, err := c.fetchImage(ctx, url)
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return err
	}
	return nil
}

// fetchImage loads image bytes from a data URI or over HTTP with a
// bounded timeout
func (c *Composer) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURI(url)
	}

	ctx, cancel := context.WithTimeout(ctx, c.imageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, imageTypeFor(resp.Header.Get("Content-Type"), url), nil
}

// decodeDataURI converts a data URI to image bytes and a gofpdf
// image type
func decodeDataURI(uri string) ([]byte, string, error) {
	// Format: data:image/png;base64,iVBORw0KGgo...
	idx := strings.Index(uri, ",")
	if idx == -1 {
		return nil, "", fmt.Errorf("invalid data URI format")
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, "", err
	}
	return data, imageTypeFor(uri[:idx], ""), nil
}

// imageTypeFor maps a media type or file extension to gofpdf's
// image type string
func imageTypeFor(mediaType, url string) string {
	probe := strings.ToLower(mediaType + " " + url)
	switch {
	case strings.Contains(probe, "jpeg"), strings.Contains(probe, "jpg"):
		return "JPG"
	case strings.Contains(probe, "gif"):
		return "GIF"
	default:
		return "PNG"
	}
}
