package domain

import "time"

type Money struct {
	Currency string
	Amount   int64
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       Money
	CategoryID  string
	ImageURL    string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID   string
	Name string
	Slug string
}
