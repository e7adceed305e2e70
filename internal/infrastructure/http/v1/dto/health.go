package dto

// HealthResponse is returned by the probe endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// InfoResponse describes the running service.
type InfoResponse struct {
	App          string `json:"app"`
	Version      string `json:"version"`
	Storage      string `json:"storage"`
	Acquisitions int    `json:"acquisitions"`
	AuthEnabled  bool   `json:"authEnabled"`
}
