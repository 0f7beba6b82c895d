package models

// ShareStatus is the client-visible state of a staged share, carried in the
// shell's query parameters.
type ShareStatus string

const (
	ShareStatusPending ShareStatus = "pending"
	ShareStatusSuccess ShareStatus = "success"
	ShareStatusError   ShareStatus = "error"
)

// Query parameter names used to thread share state through the shell URL.
// These are a serialization contract with static/app.js and the templates;
// renaming one is a breaking change.
const (
	ParamSharedTitle   = "shared_title"
	ParamSharedText    = "shared_text"
	ParamSharedURL     = "shared_url"
	ParamSharedFiles   = "shared_files"
	ParamSharedTags    = "shared_tags"
	ParamSharedStatus  = "shared_status"
	ParamSharedError   = "shared_error"
	ParamSharedDetails = "shared_details"
)

// SharePayload is an OS-level share submission as received, before
// normalization. All fields are optional; an all-empty payload is rejected.
type SharePayload struct {
	Title     string
	Text      string
	URL       string
	FileCount int
}

// IsEmpty reports whether the share carries nothing usable.
func (p SharePayload) IsEmpty() bool {
	return p.Title == "" && p.Text == "" && p.URL == "" && p.FileCount == 0
}

// NormalizedTool is the canonical payload forwarded to the upstream catalog
// API. URL must be non-empty before forwarding; its absence is a terminal
// error for the ingestion flow.
type NormalizedTool struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  int      `json:"category_id"`
	IsFavorite  bool     `json:"is_favorite"`
}

// ShareState is what the shell renders: a staged share awaiting confirmation,
// or the outcome of a forward. It lives only in the page URL and in memory.
type ShareState struct {
	Status  ShareStatus
	Title   string
	Text    string
	URL     string
	Files   int
	Tags    []string
	Error   string
	Details string
}
