package dto

import (
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/service"
)

// AgeInput accepts an age given as a JSON number or numeric string. Malformed
// values are kept so validation can report them against the field.
type AgeInput struct {
	Value   decimal.Decimal
	Present bool
	Numeric bool
	Raw     string
}

// UnmarshalJSON never fails; validation decides what is acceptable.
func (a *AgeInput) UnmarshalJSON(b []byte) error {
	*a = AgeInput{}
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` {
		return nil
	}
	a.Present = true
	a.Raw = strings.Trim(raw, `"`)
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err == nil {
		a.Value = d
		a.Numeric = true
	}
	return nil
}

// ageValue exposes AgeInput to the validator: nil when absent, the raw string
// when not numeric, a float64 otherwise. Pointers keep a zero age "present".
func ageValue(field reflect.Value) interface{} {
	age, ok := field.Interface().(AgeInput)
	if !ok || !age.Present {
		return nil
	}
	if !age.Numeric {
		raw := age.Raw
		return &raw
	}
	f := age.Value.InexactFloat64()
	return &f
}

// AnimalCreateRequest payload for POST /animals.
type AnimalCreateRequest struct {
	Type string   `json:"type" validate:"required,oneof=sheep goat cow camel"`
	Name string   `json:"name" validate:"required,min=1,max=255"`
	Age  AgeInput `json:"age" validate:"required,numeric,gte=0,lte=50"`
}

func (r *AnimalCreateRequest) messages() map[string]string {
	return map[string]string{
		"type.required": "The animal type field is required.",
		"type.oneof":    "The animal type must be one of: sheep, goat, cow, camel.",
		"name.required": "The animal name field is required.",
		"name.min":      "The animal name must have at least 1 character.",
		"name.max":      "The animal name may not be greater than 255 characters.",
		"age.required":  "The animal age field is required.",
		"age.numeric":   "The animal age must be a number.",
		"age.gte":       "The animal age must be at least 0.",
		"age.lte":       "The animal age may not be greater than 50 years.",
	}
}

// Normalize trims string inputs before validation.
func (r *AnimalCreateRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.Name = strings.TrimSpace(r.Name)
}

// ToInput converts a validated request. Ages are kept to two decimal places.
func (r *AnimalCreateRequest) ToInput() (service.CreateAnimalInput, error) {
	species, err := domain.ParseSpecies(r.Type)
	if err != nil {
		return service.CreateAnimalInput{}, err
	}
	return service.CreateAnimalInput{
		Species: species,
		Name:    r.Name,
		Age:     r.Age.Value.Round(2),
	}, nil
}

// AnimalResponse is the public shape of an animal.
type AnimalResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Age          string  `json:"age"`
	FedAt        *string `json:"fed_at"`
	GroomedAt    *string `json:"groomed_at"`
	SacrificedAt *string `json:"sacrificed_at"`
	IsSacrificed bool    `json:"is_sacrificed"`
}

// NewAnimalResponse maps a domain animal.
func NewAnimalResponse(a *domain.Animal) AnimalResponse {
	return AnimalResponse{
		ID:           a.ID,
		Type:         string(a.Species),
		Name:         a.Name,
		Age:          a.Age.StringFixed(2),
		FedAt:        formatTimePtr(a.FedAt),
		GroomedAt:    formatTimePtr(a.GroomedAt),
		SacrificedAt: formatTimePtr(a.SacrificedAt()),
		IsSacrificed: a.IsSacrificed(),
	}
}

// NewAnimalListResponse maps a slice, never returning nil.
func NewAnimalListResponse(animals []domain.Animal) []AnimalResponse {
	out := make([]AnimalResponse, 0, len(animals))
	for i := range animals {
		out = append(out, NewAnimalResponse(&animals[i]))
	}
	return out
}

// FeedResponse is returned by POST /animals/:id/feed.
type FeedResponse struct {
	ID    string `json:"id"`
	FedAt string `json:"fed_at"`
}

// GroomResponse is returned by POST /animals/:id/groom.
type GroomResponse struct {
	ID        string `json:"id"`
	GroomedAt string `json:"groomed_at"`
}

// SacrificeResponse is returned by POST /animals/:id/sacrifice.
type SacrificeResponse struct {
	ID           string `json:"id"`
	SacrificedAt string `json:"sacrificed_at"`
	IsSacrificed bool   `json:"is_sacrificed"`
}

func NewFeedResponse(a *domain.Animal) FeedResponse {
	return FeedResponse{ID: a.ID, FedAt: FormatTime(*a.FedAt)}
}

func NewGroomResponse(a *domain.Animal) GroomResponse {
	return GroomResponse{ID: a.ID, GroomedAt: FormatTime(*a.GroomedAt)}
}

func NewSacrificeResponse(a *domain.Animal) SacrificeResponse {
	return SacrificeResponse{ID: a.ID, SacrificedAt: FormatTime(*a.SacrificedAt()), IsSacrificed: true}
}
