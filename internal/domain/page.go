package domain

// PageResponse wraps a page of projections with pagination metadata.
type PageResponse[T any] struct {
	Content          []T `json:"content"`
	Number           int `json:"number"`
	Size             int `json:"size"`
	NumberOfElements int `json:"numberOfElements"`
}

// NewPageResponse builds the wrapper, never leaving Content nil so the
// JSON always carries an array.
func NewPageResponse[T any](content []T, number, size int) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	return PageResponse[T]{
		Content:          content,
		Number:           number,
		Size:             size,
		NumberOfElements: len(content),
	}
}
