package shared

const (
	DefaultPage  = 1
	DefaultLimit = 20

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilters represents standard list page filters
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	IsActive *bool
	StoreID  *int64
}

func (f ListFilters) Offset() int {
	page := f.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	return (page - 1) * f.PageSize()
}

func (f ListFilters) PageSize() int {
	if f.Limit <= 0 || f.Limit > 200 {
		return DefaultLimit
	}
	return f.Limit
}
