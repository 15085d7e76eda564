package dto

// Pagination is the meta envelope returned alongside paginated lists.
type Pagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
}

// NewPagination builds the envelope. LastPage is 0 when there are no rows.
func NewPagination(total, perPage, currentPage int) Pagination {
	lastPage := 0
	if total > 0 && perPage > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	return Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
	}
}
