package dto

// StopRequest is an inline stop supplied with a plan request.
// Lat and Lon must be given together or not at all.
type StopRequest struct {
	StopID       string   `json:"stop_id"`
	CustomerName string   `json:"customer_name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Items        []string `json:"items"`
	Amount       float64  `json:"amount"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
}

type PlanRequest struct {
	Depot               *Point        `json:"depot"`
	DepotName           string        `json:"depot_name"`
	StopIDs             []string      `json:"stop_ids"`
	Stops               []StopRequest `json:"stops"`
	Strategy            string        `json:"strategy"`
	AverageSpeedKmh     *float64      `json:"average_speed_kmh"`
	DwellMinutesPerStop *float64      `json:"dwell_minutes_per_stop"`
	Resolve             bool          `json:"resolve"`
}

type PlanStopResponse struct {
	Position             int      `json:"position"`
	StopID               string   `json:"stop_id"`
	CustomerName         string   `json:"customer_name"`
	Address              string   `json:"address"`
	City                 string   `json:"city"`
	Items                []string `json:"items"`
	Amount               float64  `json:"amount"`
	Location             Point    `json:"location"`
	LegDistanceKm        float64  `json:"leg_distance_km"`
	CumulativeDistanceKm float64  `json:"cumulative_distance_km"`
}

type PlanResponse struct {
	Depot                  Point              `json:"depot"`
	Strategy               string             `json:"strategy"`
	Stops                  []PlanStopResponse `json:"stops"`
	ReturnLegKm            float64            `json:"return_leg_km"`
	TotalDistanceKm        float64            `json:"total_distance_km"`
	DrivingHours           float64            `json:"driving_hours"`
	DwellHours             float64            `json:"dwell_hours"`
	EstimatedDurationHours float64            `json:"estimated_duration_hours"`
}
