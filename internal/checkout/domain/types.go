package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type Customer struct {
	FirstName string
	LastName  string
	Address   string
	Phone     string
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type SummaryLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice Money
	LineTotal Money
}

// Summary is the finalized order handed to a messaging channel.
type Summary struct {
	Reference string
	Customer  Customer
	Lines     []SummaryLine
	Total     Money
	CreatedAt time.Time
}

// Order pairs a summary with its human-readable rendering.
type Order struct {
	Summary Summary
	Text    string
}

type Receipt struct {
	Channel   string
	Reference string
	// URL is set by channels that finish the handoff in the customer's
	// browser, such as a click-to-chat link.
	URL string
}
