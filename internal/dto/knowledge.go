package dto

type UploadStats struct {
	TotalItems    int `json:"totalItems"`
	ChunksCreated int `json:"chunksCreated"`
	Errors        int `json:"errors"`
}

type ItemResult struct {
	Question string `json:"question"`
	Status   string `json:"status"` // success | error
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

type UploadResponse struct {
	Message string       `json:"message"`
	Stats   UploadStats  `json:"stats"`
	Details []ItemResult `json:"details"`
}
