package document

import (
	"bytes"
	"html/template"

	"github.com/tradeworks/backend/internal/infrastructure/render"
)

// documentTemplate is the HTML view of a document used by the capture
// strategy. It mirrors the vector layout: letterhead, title and meta,
// bill-to, grouped items table, totals, terms and photos.
var documentTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"currency": render.FormatCurrency,
	"date":     render.FormatDate,
	// Signatures arrive as data URIs, which the default URL filter
	// would strip from src attributes
	"safeurl": func(s string) template.URL { return template.URL(s) },
}).Parse(`
<div class="document">
  <div class="letterhead">
    {{if .Company.LogoURL}}<img class="logo" src="{{.Company.LogoURL}}" alt="">{{end}}
    <div class="company">
      <h2>{{.Company.Name}}</h2>
      {{range .Company.AddressLines}}<div>{{.}}</div>{{end}}
      <div>{{.Company.Phone}} {{.Company.Email}}</div>
    </div>
  </div>

  <div class="header">
    <h1>{{.Doc.Kind.Title}}</h1>
    <table class="meta">
      <tr><td>No:</td><td>{{.Doc.ReferenceNumber}}</td></tr>
      <tr><td>Date:</td><td>{{date .Doc.IssueDate}}</td></tr>
      {{if .IsInvoice}}
      <tr><td>Due Date:</td><td>{{date .Doc.DueDate}}</td></tr>
      {{else}}
      <tr><td>Valid Until:</td><td>{{date .Doc.DueDate}}</td></tr>
      {{end}}
      {{if .Doc.Status}}<tr><td>Status:</td><td>{{.Doc.Status}}</td></tr>{{end}}
      {{if .Doc.SourceQuotation}}<tr><td>Ref Quotation:</td><td>{{.Doc.SourceQuotation}}</td></tr>{{end}}
    </table>
  </div>

  <div class="bill-to">
    <h3>Bill To</h3>
    <div>{{.Doc.Customer.Name}}</div>
    {{if .Doc.Customer.UnitNumber}}<div>{{.Doc.Customer.UnitNumber}}</div>{{end}}
    {{if .Doc.Customer.Address}}<div>{{.Doc.Customer.Address}}</div>{{end}}
    {{if .Doc.Customer.Phone}}<div>{{.Doc.Customer.Phone}}</div>{{end}}
    {{if .Doc.Customer.Email}}<div>{{.Doc.Customer.Email}}</div>{{end}}
  </div>

  {{if .Doc.Subject}}<div class="subject">Subject: {{.Doc.Subject}}</div>{{end}}

  <table class="items">
    <thead>
      <tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
    </thead>
    <tbody>
      {{range .Groups}}
      <tr class="group"><td colspan="4">{{.Label}}</td></tr>
      {{range .Items}}
      <tr>
        <td>{{.Description}}</td>
        <td>{{.Quantity}} {{.Unit}}</td>
        <td>{{currency .UnitPrice}}</td>
        <td>{{currency .Amount}}</td>
      </tr>
      {{end}}
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal:</td><td>{{currency .Doc.Subtotal}}</td></tr>
    {{if .Doc.TaxRate.IsPositive}}<tr><td>Tax ({{.Doc.TaxRate}}%):</td><td>{{currency .Doc.TaxAmount}}</td></tr>{{end}}
    {{if .Doc.RequiresDeposit}}<tr><td>Deposit ({{.Doc.DepositPercent}}%):</td><td>{{currency .Doc.DepositAmount}}</td></tr>{{end}}
    {{if .Doc.IsDepositInvoice}}<tr><td>Deposit:</td><td>{{currency .Doc.DepositAmount}}</td></tr>{{end}}
    <tr class="total"><td>Total:</td><td>{{currency .Doc.Total}}</td></tr>
  </table>

  {{if .Doc.Terms}}
  <div class="terms">
    <h3>Terms</h3>
    <p>{{.Doc.Terms}}</p>
  </div>
  {{end}}

  {{if .Doc.SignatureDataURI}}
  <div class="signature">
    <img src="{{safeurl .Doc.SignatureDataURI}}" alt="Customer signature">
    <div>Accepted by customer</div>
  </div>
  {{end}}

  {{if .Doc.Photos}}
  <div class="photos">
    <h3>Work Photos</h3>
    {{range .Doc.Photos}}
    <figure>
      <img src="{{safeurl .URL}}" alt="">
      {{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}
    </figure>
    {{end}}
  </div>
  {{end}}
</div>
<style>
  .document { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #111; }
  .letterhead { display: flex; gap: 12px; border-bottom: 2px solid #333; padding-bottom: 8px; }
  .logo { height: 48px; }
  .header h1 { text-align: right; letter-spacing: 2px; }
  .meta td:first-child { font-weight: bold; padding-right: 8px; }
  .items { width: 100%; border-collapse: collapse; margin-top: 12px; }
  .items th { background: #323232; color: #fff; text-align: left; padding: 4px 6px; }
  .items td { border-bottom: 1px solid #ddd; padding: 4px 6px; }
  .items tr.group td { background: #e6e6e6; font-weight: bold; }
  .totals { margin-left: auto; margin-top: 8px; }
  .totals td { padding: 2px 6px; text-align: right; }
  .totals tr.total td { font-weight: bold; border-top: 1px solid #333; }
  .photos figure { display: inline-block; width: 45%; margin: 6px; }
  .photos img { width: 100%; }
  .signature img { height: 60px; }
</style>
`))

// templateData is what the HTML view renders from
type templateData struct {
	Doc       *render.Document
	Company   render.CompanyInfo
	Groups    []render.ItemGroup
	IsInvoice bool
}

// RenderHTML produces the HTML view of a document for the capture
// strategy
func RenderHTML(doc *render.Document, company render.CompanyInfo) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, templateData{
		Doc:       doc,
		Company:   company,
		Groups:    render.GroupItems(doc.Items),
		IsInvoice: doc.Kind == render.KindInvoice,
	})
	if err != nil {
		return "", render.NewRenderError(render.ErrCodeRenderFailed, "html template execution failed", err)
	}
	return buf.String(), nil
}
