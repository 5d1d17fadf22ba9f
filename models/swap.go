package models

const (
	SwapStatusPending  = "PENDING"
	SwapStatusAccepted = "ACCEPTED"
	SwapStatusRejected = "REJECTED"
)

// SwapRequest asks another driver to take over a ride assignment.
type SwapRequest struct {
	ID                 string `json:"id"`
	RequestingDriverID string `json:"requesting_driver_id"`
	RequestedDriverID  string `json:"requested_driver_id"`
	RideAssignmentID   string `json:"ride_assignment_id"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at,omitempty"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

// SwapRequestInput is the "request a swap" form.
type SwapRequestInput struct {
	RideAssignmentID  string `json:"ride_assignment_id" binding:"required"`
	RequestedDriverID string `json:"requested_driver_id" binding:"required"`
}
