package dto

// AvailableTimesResponse is the availability lookup payload. BookedTimes is
// included so the booking widget can grey out taken slots without a second
// request.
type AvailableTimesResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"availableTimes"`
	BookedTimes    []string `json:"bookedTimes"`
}
