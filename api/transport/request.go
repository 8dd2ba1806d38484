package transport

// TaskCreateRequest is the payload for creating a task. Status is optional
// and defaults to pending.
type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskUpdateRequest is the payload for a partial update. Pointer fields keep
// absent distinct from explicitly cleared: a field missing from the JSON body
// stays nil and is never written through to the record.
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// StatusUpdateRequest is the payload for the status-only update.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
