package transport

// TaskRequest is shared by create and update; empty strings mean "not
// provided" on update.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Project     string `json:"project"`
	Type        string `json:"type"`
	Deadline    string `json:"deadline"`
}

type StartSessionRequest struct {
	Mode           string `json:"mode"`
	Project        string `json:"project"`
	PlannedMinutes int    `json:"plannedMinutes"`
}

type EndSessionRequest struct {
	Rating int    `json:"rating"`
	Note   string `json:"note"`
}

type ProfileUpdateRequest struct {
	Email  string            `json:"email"`
	Role   string            `json:"role"`
	Status string            `json:"status"`
	Meta   map[string]string `json:"metadata"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
