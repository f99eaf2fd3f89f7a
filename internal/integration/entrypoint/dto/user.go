// Package dto defines data transfer objects for API requests and responses.
package dto

// UpdateProfileRequest represents the request body for updating the profile.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name      *string                  `json:"name"`
	Reminders *ReminderSettingsRequest `json:"reminders"`
}

// ReminderSettingsRequest represents reminder preferences in requests.
type ReminderSettingsRequest struct {
	Enabled  bool `json:"enabled"`
	SevenDay bool `json:"seven_day"`
	OneDay   bool `json:"one_day"`
}

// QuoteListResponse represents a batch of ethical inspiration quotes.
type QuoteListResponse struct {
	Quotes []string `json:"quotes"`
}
