package dto

// APIResponse is the structured result every caller-facing operation returns.
type APIResponse struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func Success(data interface{}) APIResponse {
	return APIResponse{OK: true, Data: data}
}

func Failure(message string) APIResponse {
	return APIResponse{OK: false, Error: message}
}

// EvidenceUploadResponse describes a stored evidence file.
type EvidenceUploadResponse struct {
	Path string `json:"path"`
	Mime string `json:"mime"`
	Size int64  `json:"size"`
}
