package models

// PortfolioStats is derived from the experience collection on every request.
type PortfolioStats struct {
	TotalExperience   string `json:"totalExperience"`
	TotalCompanies    int    `json:"totalCompanies"`
	TotalProjects     int    `json:"totalProjects"`
	TotalTechnologies int    `json:"totalTechnologies"`
	CurrentPosition   bool   `json:"currentPosition"`
	LastUpdated       string `json:"lastUpdated"`
}
