package models

import (
	"time"
)

// Experience is one employment record shown on the portfolio.
type Experience struct {
	ID            string   `json:"_id"`
	CompanyName   string   `json:"companyName"`
	Position      string   `json:"position"`
	WorkStart     string   `json:"workStart"`
	WorkEnd       *string  `json:"workEnd"`
	Description   string   `json:"description"`
	Technologies  []string `json:"technologies"`
	Logo          string   `json:"logo,omitempty"`
	Website       string   `json:"website,omitempty"`
	Location      string   `json:"location,omitempty"`
	PlayStoreApps []any    `json:"playStoreApps,omitempty"`
	AppStoreApps  []any    `json:"appStoreApps,omitempty"`
	WebApps       []any    `json:"webApps,omitempty"`
}

// ParseExperience maps a stored company document onto an Experience.
// It never fails; missing or odd fields come back empty.
func ParseExperience(doc Document) Experience {
	exp := Experience{
		ID:            IDString(doc["_id"]),
		CompanyName:   stringField(doc, "companyName"),
		Position:      stringField(doc, "position"),
		WorkStart:     stringField(doc, "workStart"),
		WorkEnd:       workEnd(doc["workEnd"]),
		Description:   stringField(doc, "description"),
		Technologies:  stringList(doc["technologies"]),
		Logo:          stringField(doc, "logo"),
		Website:       stringField(doc, "website"),
		Location:      stringField(doc, "location"),
		PlayStoreApps: plainList(anyList(doc["playStoreApps"])),
		AppStoreApps:  plainList(anyList(doc["appStoreApps"])),
		WebApps:       plainList(anyList(doc["webApps"])),
	}
	return exp
}

// workEnd returns nil for an ongoing position. Stored records mark that with a
// missing field, null, an empty string or the literal "null".
func workEnd(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" || t == "null" {
			return nil
		}
		return &t
	}
	if ts, ok := ParseDateValue(v); ok {
		s := FormatISO(ts)
		return &s
	}
	return nil
}

// IsCurrent reports whether the position has no end date.
func (e Experience) IsCurrent() bool {
	return e.WorkEnd == nil
}

func (e Experience) StartTime() (time.Time, bool) {
	return ParseDate(e.WorkStart)
}

func (e Experience) EndTime() (time.Time, bool) {
	if e.WorkEnd == nil {
		return time.Time{}, false
	}
	return ParseDate(*e.WorkEnd)
}

// ProjectCount sums the app lists attached to the record.
func (e Experience) ProjectCount() int {
	return len(e.PlayStoreApps) + len(e.AppStoreApps) + len(e.WebApps)
}
