package dto

import "meeting-notes-backend/internal/summary/domain"

// UploadRequest is the JSON form of an inline transcript. Multipart uploads
// use the "transcript" file field or the "text" form field instead.
type UploadRequest struct {
	Text string `json:"text"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Length  int    `json:"length"`
}

type SummarizeRequest struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

type SummarizeResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Prompt  string `json:"prompt"`
}

type SummariesResponse struct {
	Summaries []domain.SummaryListItem `json:"summaries"`
}

type SummaryResponse struct {
	Summary *domain.Summary `json:"summary"`
}

type UpdateSummaryRequest struct {
	Summary string `json:"summary"`
}

type UpdateSummaryResponse struct {
	Success bool            `json:"success"`
	Summary *domain.Summary `json:"summary"`
}

type ShareRequest struct {
	SummaryID  string   `json:"summaryId"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
}

type ShareResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Count   int                     `json:"count"`
	Results []domain.DeliveryResult `json:"results"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string                  `json:"error"`
	Results []domain.DeliveryResult `json:"results,omitempty"`
}
