package dto

// ReportErrorRequest is the public ingestion payload submitted by monitored
// applications. Reporters may send an api key, a name, or both; the registry
// resolves either and auto-provisions by name when the key is unknown.
type ReportErrorRequest struct {
	ApiKey      string `json:"api_key"`
	AppName     string `json:"app_name" validate:"omitempty,min=1,max=255"`
	Message     string `json:"message" validate:"required"`
	StackTrace  string `json:"stack_trace"`
	ApiEndpoint string `json:"api_endpoint"`
	HttpMethod  string `json:"http_method"`
	Severity    string `json:"severity"`
}

// ReportErrorResponse mirrors the reporter-facing contract:
// result  0 -> stored, -1 -> application inactive, -2 -> application paused.
type ReportErrorResponse struct {
	Result     int    `json:"result"`
	ErrorLogId string `json:"error_log_id,omitempty"`
	AlertId    string `json:"alert_id,omitempty"`
	Severity   string `json:"severity,omitempty"`
}
