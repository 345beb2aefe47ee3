package vehicleservice

// Vehicle модель транспорта из реестра
type Vehicle struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Plate  string `json:"plate"`
	Brand  string `json:"brand"`
	Model  string `json:"model"`
}
