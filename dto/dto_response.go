package dto

// Response is the success envelope of every endpoint.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListResponse adds a count to list payloads.
type ListResponse struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Data    any    `json:"data"`
}
