package trip

type CreateTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Outcome     string `json:"outcome"`
}

type UpdateTripRequest struct {
	Destination string `json:"destination" binding:"required"`
	Purpose     string `json:"purpose" binding:"required"`
	Outcome     string `json:"outcome"`
}

type TripResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Destination string  `json:"destination"`
	Purpose     string  `json:"purpose"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Outcome     string  `json:"outcome"`
	Status      string  `json:"status"`
	SubmittedAt *string `json:"submitted_at,omitempty"`
}
