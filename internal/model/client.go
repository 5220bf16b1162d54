package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format used in responses
const DateLayout = "2006-01-02"

// birthDateLayouts are accepted on input, day-first being the format clients are used to
var birthDateLayouts = []string{"02-01-2006", DateLayout}

// RegisterClientRequest represents the request to register a new client
type RegisterClientRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
}

// ClientResponse represents a client and the numbers of the accounts it owns
type ClientResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BirthDate      string `json:"birth_date,omitempty"`
	Address        string `json:"address"`
	AccountNumbers []int  `json:"account_numbers"`
}

// Validate validates the register client request
func (r *RegisterClientRequest) Validate() error {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)

	if r.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if len(r.ID) > 32 {
		return &ValidationError{Field: "id", Message: "id cannot exceed 32 characters"}
	}
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(r.Name) > 255 {
		return &ValidationError{Field: "name", Message: "name cannot exceed 255 characters"}
	}
	if len(r.Address) > 255 {
		return &ValidationError{Field: "address", Message: "address cannot exceed 255 characters"}
	}
	if _, err := r.ParsedBirthDate(); err != nil {
		return err
	}
	return nil
}

// ParsedBirthDate parses BirthDate as dd-mm-yyyy or yyyy-mm-dd. An empty value yields the zero time.
func (r *RegisterClientRequest) ParsedBirthDate() (time.Time, error) {
	s := strings.TrimSpace(r.BirthDate)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{
		Field:   "birth_date",
		Message: "birth date must be dd-mm-yyyy or yyyy-mm-dd",
	}
}
