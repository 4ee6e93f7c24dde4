package models

// AppStoreApp is the reshaped iTunes lookup result. It is fetched per request
// and never stored.
type AppStoreApp struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Screenshots []string `json:"screenshots"`
	AppStoreURL string   `json:"appStoreUrl"`
	Version     string   `json:"version"`
	Rating      float64  `json:"rating"`
	RatingCount int64    `json:"ratingCount"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Developer   string   `json:"developer"`
	Category    string   `json:"category"`
	ReleaseDate string   `json:"releaseDate"`
	Size        int64    `json:"size"`
}
