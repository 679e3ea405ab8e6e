package bookings

// SubmitResponse is the data of a successful submission
type SubmitResponse struct {
	Saved  int   `json:"saved"`
	Groups int   `json:"groups"`
	Seats  []int `json:"seats"`
	Rows   []Row `json:"rows"`
}

// ErrorDetails describes a rejected submission
type ErrorDetails struct {
	Kind          Kind     `json:"kind"`
	Message       string   `json:"message"`
	Group         int      `json:"group,omitempty"` // 1-based index of the failing group
	Fields        []string `json:"fields,omitempty"`
	Mobiles       []string `json:"mobiles,omitempty"`
	Seats         []int    `json:"seats,omitempty"`
	CommittedRows []Row    `json:"committed_rows,omitempty"`
	Retryable     bool     `json:"retryable"`
}

// LegacyResponse is the body of POST /submit. SavedSeats and FailedGroup
// are set when a failure left earlier rows saved.
type LegacyResponse struct {
	OK          bool   `json:"ok"`
	Message     string `json:"message"`
	SavedSeats  []int  `json:"saved_seats,omitempty"`
	FailedGroup int    `json:"failed_group,omitempty"` // 1-based
}
