package analytics

// RequestEvent is one entry of the request window.
type RequestEvent struct {
	Query      string `json:"query"`
	Results    int    `json:"results"`
	HadResults bool   `json:"had_results"`
}

// WindowStats summarizes the request window.
type WindowStats struct {
	Requests         int `json:"requests"`
	NoResultRequests int `json:"no_result_requests"`
	Capacity         int `json:"capacity"`
}
