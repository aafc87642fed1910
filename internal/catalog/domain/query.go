package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

type Result struct {
	Page         []Product
	PageCount    int
	TotalMatches int
	// PageIndex is the page actually served after clamping.
	PageIndex int
}

type matcher struct {
	fold     cases.Caser
	term     string
	category string
	spec     FilterSpec
}

// CategoryKey is the form category ids are compared in: trimmed and case
// folded.
func CategoryKey(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

func newMatcher(spec FilterSpec) *matcher {
	m := &matcher{fold: cases.Fold(), spec: spec}
	m.term = m.fold.String(spec.SearchTerm)
	if strings.TrimSpace(spec.Category) != CategoryAll {
		m.category = CategoryKey(spec.Category)
	}
	return m
}

func (m *matcher) search(p Product) bool {
	if m.term == "" {
		return true
	}
	if strings.Contains(m.fold.String(p.Name), m.term) {
		return true
	}
	return p.Description != "" && strings.Contains(m.fold.String(p.Description), m.term)
}

func (m *matcher) inCategory(p Product) bool {
	if m.category == "" {
		return true
	}
	return CategoryKey(p.CategoryID) == m.category
}

func (m *matcher) inPriceRange(p Product) bool {
	if p.Price.Amount < m.spec.MinPrice {
		return false
	}
	return m.spec.MaxPrice == nil || p.Price.Amount <= *m.spec.MaxPrice
}

func (m *matcher) match(p Product) bool {
	return m.search(p) && m.inCategory(p) && m.inPriceRange(p)
}

// Query filters products by spec and returns the requested page. Input order
// is kept. Inconsistent bounds such as MinPrice > MaxPrice give an empty
// result rather than an error.
func Query(products []Product, spec FilterSpec) Result {
	spec = spec.normalized()
	m := newMatcher(spec)

	matches := make([]Product, 0, len(products))
	for _, p := range products {
		if m.match(p) {
			matches = append(matches, p)
		}
	}

	total := len(matches)
	pageCount := (total + spec.PageSize - 1) / spec.PageSize
	page := min(spec.PageIndex, max(pageCount, 1))

	start := min((page-1)*spec.PageSize, total)
	end := min(start+spec.PageSize, total)

	return Result{
		Page:         matches[start:end:end],
		PageCount:    pageCount,
		TotalMatches: total,
		PageIndex:    page,
	}
}
