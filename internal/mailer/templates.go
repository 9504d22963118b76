package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

// Template names understood by Render.
const (
	TemplateContact   = "contact"
	TemplateBooking   = "booking"
	TemplateDishOrder = "dish_order"
)

// Field is one labelled line in a notification body.
type Field struct {
	Label string
	Value string
}

// Dish is one line of an order table.
type Dish struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
}

// Notification is the data every template receives.
type Notification struct {
	Heading string
	Fields  []Field
	Message string
	Dishes  []Dish
	Total   decimal.Decimal
}

const layout = `{{define "header"}}<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>{{.Heading}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
<h2>{{.Heading}}</h2>
<table>{{range .Fields}}{{if .Value}}
<tr><td><strong>{{.Label}}:</strong></td><td>{{.Value}}</td></tr>{{end}}{{end}}
</table>{{end}}
{{define "footer"}}</body></html>{{end}}`

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"money": func(v decimal.Decimal) string { return "$" + v.StringFixed(2) },
}).Parse(layout + `
{{define "contact"}}{{template "header" .}}
<h3>Message</h3>
<p style="white-space: pre-wrap;">{{.Message}}</p>
{{template "footer" .}}{{end}}

{{define "booking"}}{{template "header" .}}
{{if .Message}}<h3>Additional information</h3>
<p style="white-space: pre-wrap;">{{.Message}}</p>{{end}}
{{template "footer" .}}{{end}}

{{define "dish_order"}}{{template "header" .}}
{{if .Dishes}}<h3>Selected dishes</h3>
<table border="1" cellpadding="4" style="border-collapse: collapse;">
<tr><th>Dish</th><th>Qty</th><th>Price</th><th>Total</th></tr>{{range .Dishes}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{money .Price}}</td><td>{{money .Total}}</td></tr>{{end}}
<tr><td colspan="3"><strong>Order total</strong></td><td><strong>{{money .Total}}</strong></td></tr>
</table>{{end}}
{{if .Message}}<h3>Additional information</h3>
<p style="white-space: pre-wrap;">{{.Message}}</p>{{end}}
{{template "footer" .}}{{end}}
`))

// Render executes the named template. User-supplied values are HTML-escaped.
func Render(name string, data Notification) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s email: %w", name, err)
	}
	return buf.String(), nil
}
