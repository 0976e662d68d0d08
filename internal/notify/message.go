package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
)

// Message is a rendered email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

const confirmationText = `Hello {{.Shipping.FullName}},

Thank you for your order. Reference: {{.Token}}

{{range .Orders}}- #{{.ID}} {{if .ProductName}}{{.ProductName}}{{else}}product {{.ProductID}}{{end}} x{{.Quantity}}: {{money .TotalPrice}}
{{end}}
Subtotal: {{money .SubTotal}}
Shipping: {{money .ShippingFee}}
Total:    {{money .GrandTotal}}

Payment method: {{.PaymentMethod}}
Ship to: {{.Shipping.Address}}
`

const confirmationHTML = `<p>Hello {{.Shipping.FullName}},</p>
<p>Thank you for your order. Reference: <strong>{{.Token}}</strong></p>
<table>
{{range .Orders}}<tr><td>#{{.ID}}</td><td>{{if .ProductName}}{{.ProductName}}{{else}}product {{.ProductID}}{{end}}</td><td>x{{.Quantity}}</td><td>{{money .TotalPrice}}</td></tr>
{{end}}</table>
<p>Subtotal: {{money .SubTotal}}<br>Shipping: {{money .ShippingFee}}<br><strong>Total: {{money .GrandTotal}}</strong></p>
<p>Payment method: {{.PaymentMethod}}<br>Ship to: {{.Shipping.Address}}</p>
`

type moneyer interface{ StringFixed(int32) string }

var funcs = map[string]any{
	"money": func(d moneyer) string { return d.StringFixed(2) },
}

var (
	textTmpl = texttemplate.Must(texttemplate.New("confirmation").Funcs(funcs).Parse(confirmationText))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("confirmation").Funcs(funcs).Parse(confirmationHTML))
)

// ConfirmationMessage renders the order confirmation email for c.
func ConfirmationMessage(c order.Confirmation) (Message, error) {
	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, c); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}
	if err := htmlTmpl.Execute(&html, c); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}
	return Message{
		To:      c.Shipping.Email,
		ToName:  c.Shipping.FullName,
		Subject: fmt.Sprintf("Order confirmation %s", c.Token),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
