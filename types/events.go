package types

// Event types broadcast to widget pages over the notify WebSocket.
const (
	EventUploadStart    = "upload_start"
	EventUploadProgress = "upload_progress"
	EventUploadEnd      = "upload_end"
	EventUploadError    = "upload_error"
	EventAlert          = "alert"
)

// UploadEvent is a notification message pushed to connected widget pages.
type UploadEvent struct {
	Type      string       `json:"type"`
	SessionID string       `json:"sessionId,omitempty"`
	Loaded    int64        `json:"loaded,omitempty"`
	Total     int64        `json:"total,omitempty"`
	Files     []RemoteFile `json:"files,omitempty"`
	Message   string       `json:"message,omitempty"`
}
