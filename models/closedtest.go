package models

import "time"

// ClosedTest is an app currently distributed to invited testers only.
type ClosedTest struct {
	ID           string `json:"_id"`
	AppName      string `json:"appName"`
	PackageName  string `json:"packageName"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	GoogleGroup  string `json:"googleGroup"`
	PlayStoreURL string `json:"playStoreUrl"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ParseClosedTest maps a stored document, normalizing the dates and the active flag.
func ParseClosedTest(doc Document, now time.Time) ClosedTest {
	return ClosedTest{
		ID:           IDString(doc["_id"]),
		AppName:      stringField(doc, "appName"),
		PackageName:  stringField(doc, "packageName"),
		Description:  stringField(doc, "description"),
		Icon:         stringField(doc, "icon"),
		GoogleGroup:  stringField(doc, "googleGroup"),
		PlayStoreURL: stringField(doc, "playStoreUrl"),
		IsActive:     NormalizeActive(doc["isActive"]),
		CreatedAt:    NormalizeDate(doc["createdAt"], now),
		UpdatedAt:    NormalizeDate(doc["updatedAt"], now),
	}
}

// TestingStatus answers whether a package is known to be in closed testing.
// AppData is either the stored ClosedTest or a PackageAvailability stub.
type TestingStatus struct {
	IsInClosedTesting bool `json:"isInClosedTesting"`
	AppData           any  `json:"appData"`
}

type PackageAvailability struct {
	PackageName string `json:"packageName"`
	IsAvailable bool   `json:"isAvailable"`
}
