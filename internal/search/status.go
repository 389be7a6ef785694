package search

// Status is the engine-wide snapshot the UI polls while a search runs.
// Stored in an atomic.Value; read and replaced whole.
type Status struct {
	Running     bool   `json:"running"`
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastResults int    `json:"last_results"`
}
