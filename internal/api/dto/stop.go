package dto

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type StopResponse struct {
	StopID       string   `json:"stop_id"`
	CustomerName string   `json:"customer_name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Items        []string `json:"items"`
	Amount       float64  `json:"amount"`
	Location     *Point   `json:"location"`
	Resolved     bool     `json:"resolved"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}

type DepotResponse struct {
	Name     string `json:"name"`
	Location Point  `json:"location"`
	Default  bool   `json:"default"`
}

type ListDepotsResponse struct {
	Depots []DepotResponse `json:"depots"`
}
