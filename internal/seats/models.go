package seats

// SeatMap is what the seat picker page renders
type SeatMap struct {
	SeatCount    int   `json:"seat_count"`
	Booked       []int `json:"booked"`
	Available    []int `json:"available"`
	DoubleBooked []int `json:"double_booked"`
}

// DuplicateSeat is a seat stored more than once
type DuplicateSeat struct {
	Seat  int `json:"seat"`
	Count int `json:"count"`
}

// Report summarises the stored seats with duplicates collapsed
type Report struct {
	SeatCount      int             `json:"seat_count"`
	TotalEntries   int             `json:"total_entries"`
	DistinctBooked int             `json:"distinct_booked"`
	AvailableCount int             `json:"available_count"`
	Seats          []int           `json:"seats"`
	Duplicates     []DuplicateSeat `json:"duplicates"`
	OutOfRange     []int           `json:"out_of_range"`
}

// BookedResponse is the /booked-seats body
type BookedResponse struct {
	Booked []int  `json:"booked"`
	Error  string `json:"error,omitempty"`
}
