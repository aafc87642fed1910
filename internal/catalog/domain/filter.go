package domain

const (
	// CategoryAll disables the category predicate.
	CategoryAll = "all"

	DefaultPageSize = 12
)

// FilterSpec is the full set of search, category, price and page parameters
// applied to the catalog. Prices are in minor units and both bounds are
// inclusive. A nil MaxPrice means no upper bound, so the zero FilterSpec
// matches every product.
//
// The With* setters for filter dimensions return a copy on page 1; only
// WithPage moves between pages.
type FilterSpec struct {
	SearchTerm string
	Category   string
	MinPrice   int64
	MaxPrice   *int64
	PageIndex  int
	PageSize   int
}

func NewFilterSpec(pageSize int) FilterSpec {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterSpec{
		Category:  CategoryAll,
		MinPrice:  0,
		PageIndex: 1,
		PageSize:  pageSize,
	}
}

func (f FilterSpec) WithSearchTerm(term string) FilterSpec {
	f.SearchTerm = term
	f.PageIndex = 1
	return f
}

func (f FilterSpec) WithCategory(category string) FilterSpec {
	f.Category = category
	f.PageIndex = 1
	return f
}

func (f FilterSpec) WithMinPrice(amount int64) FilterSpec {
	f.MinPrice = amount
	f.PageIndex = 1
	return f
}

func (f FilterSpec) WithMaxPrice(amount int64) FilterSpec {
	f.MaxPrice = &amount
	f.PageIndex = 1
	return f
}

// WithoutMaxPrice drops the upper price bound.
func (f FilterSpec) WithoutMaxPrice() FilterSpec {
	f.MaxPrice = nil
	f.PageIndex = 1
	return f
}

func (f FilterSpec) WithPage(page int) FilterSpec {
	f.PageIndex = max(page, 1)
	return f
}

// normalized fills zero-valued fields with their defaults. A MaxPrice of zero
// is kept: a caller may ask for free products only.
func (f FilterSpec) normalized() FilterSpec {
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageIndex < 1 {
		f.PageIndex = 1
	}
	if f.Category == "" {
		f.Category = CategoryAll
	}
	return f
}
