package types

// UserProfile is the cosmetic identity shown on the dashboard.
type UserProfile struct {
	Name    string `json:"name" validate:"max=120"`
	Company string `json:"company" validate:"max=120"`
}
