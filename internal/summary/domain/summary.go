package domain

import "time"

// DefaultPrompt is used when a summarize request carries no instruction.
const DefaultPrompt = "Summarize the following meeting transcript in clear, concise bullet points:"

// Summary is one generated meeting summary and the transcript it came from.
type Summary struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	OriginalText string    `json:"originalText" gorm:"type:text;not null"`
	Prompt       string    `json:"prompt" gorm:"type:text;not null"`
	Summary      string    `json:"summary" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index:idx_summaries_created_at;precision:6;not null"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"precision:6;not null"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// SummaryListItem is the list projection; it leaves out the transcript.
type SummaryListItem struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Summary) ListItem() SummaryListItem {
	return SummaryListItem{
		ID:        s.ID,
		Prompt:    s.Prompt,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// WasEdited reports whether the summary changed after it was generated.
func (s *Summary) WasEdited() bool {
	return s.UpdatedAt.After(s.CreatedAt)
}

// DeliveryResult is the outcome of sending a summary to one recipient.
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
