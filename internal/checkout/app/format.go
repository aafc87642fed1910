package app

import (
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders order summaries as chat-friendly text. Amounts stay in
// integer minor units all the way to the printed digits.
type Formatter struct {
	printer *message.Printer
	decimal string
}

func NewFormatter(tag language.Tag) *Formatter {
	p := message.NewPrinter(tag)
	// the locale's decimal separator sits between the two digits
	sample := []rune(p.Sprint(number.Decimal(1.5, number.Scale(1))))
	decimal := "."
	if len(sample) > 2 {
		decimal = string(sample[1 : len(sample)-1])
	}
	return &Formatter{printer: p, decimal: decimal}
}

// Money formats m using the currency's standard number of decimals.
func (f *Formatter) Money(m domain.Money) string {
	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return f.printer.Sprintf("%s %d", m.Currency, m.Amount)
	}
	scale, _ := currency.Standard.Rounding(unit)

	sign := ""
	amount := m.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	divisor := int64(1)
	for i := 0; i < scale; i++ {
		divisor *= 10
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.printer.Sprint(currency.NarrowSymbol(unit)))
	b.WriteString(f.printer.Sprint(number.Decimal(amount / divisor)))
	if scale > 0 {
		b.WriteString(f.decimal)
		b.WriteString(f.printer.Sprint(number.Decimal(amount%divisor, number.MinIntegerDigits(scale), number.NoSeparator())))
	}
	return b.String()
}

func (f *Formatter) Format(s domain.Summary) string {
	var b strings.Builder

	b.WriteString("*New Purchase Order*\n\n")
	if name := s.Customer.FullName(); name != "" {
		fmt.Fprintf(&b, "*Customer:*\n%s\n\n", name)
	}
	if s.Customer.Address != "" {
		fmt.Fprintf(&b, "*Address:*\n%s\n\n", s.Customer.Address)
	}
	if s.Customer.Phone != "" {
		fmt.Fprintf(&b, "*Phone:*\n%s\n\n", s.Customer.Phone)
	}

	b.WriteString("*Products:*\n")
	for _, ln := range s.Lines {
		fmt.Fprintf(&b, "%s x%d - %s\n", ln.Name, ln.Quantity, f.Money(ln.LineTotal))
	}

	fmt.Fprintf(&b, "\n*Total: %s*", f.Money(s.Total))
	if s.Reference != "" {
		fmt.Fprintf(&b, "\n\nRef: %s", s.Reference)
	}
	return b.String()
}
