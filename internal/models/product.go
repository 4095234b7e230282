package models

import (
	"github.com/go-playground/validator/v10"
)

// Bounds enforced on product fields. Category length matches the column width.
const (
	MinPrice             = 0.0
	MaxPrice             = 1_000_000.0
	MaxDescriptionLength = 250
	MaxCategoryLength    = 63
)

// Product represents a product in the catalog.
// ID is nil until the repository assigns one on create; domain logic never sets it.
type Product struct {
	ID             *int64   `json:"id" gorm:"primaryKey"`
	Name           string   `json:"name" gorm:"type:varchar(100);not null" validate:"required"`
	Description    string   `json:"description" gorm:"type:varchar(250);not null" validate:"required,max=250"`
	Category       string   `json:"category" gorm:"type:varchar(63);not null" validate:"required,max=63"`
	Available      bool     `json:"available" gorm:"not null"`
	Price          float64  `json:"price" validate:"gte=0,lte=1000000"`
	Rating         *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	NoOfUsersRated int      `json:"no_of_users_rated" validate:"gte=0"`
}

// Deserialize populates the product from an untyped JSON mapping.
// It checks presence and type of every required field strictly: a string "true"
// for available is rejected, not coerced. Any "id" in the payload is ignored.
// Rating and no_of_users_rated are optional and default to unset / 0.
func (p *Product) Deserialize(data map[string]any) error {
	name, err := requireString(data, "name")
	if err != nil {
		return err
	}
	description, err := requireString(data, "description")
	if err != nil {
		return err
	}
	category, err := requireString(data, "category")
	if err != nil {
		return err
	}

	rawAvailable, ok := data["available"]
	if !ok || rawAvailable == nil {
		return missingField("available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return typeError("available", "must be a boolean")
	}

	rawPrice, ok := data["price"]
	if !ok || rawPrice == nil {
		return missingField("price")
	}
	price, ok := asFloat(rawPrice)
	if !ok {
		return typeError("price", "must be a number")
	}

	var rating *float64
	if raw, ok := data["rating"]; ok && raw != nil {
		value, ok := asFloat(raw)
		if !ok {
			return typeError("rating", "must be a number")
		}
		rating = &value
	}

	usersRated := 0
	if raw, ok := data["no_of_users_rated"]; ok && raw != nil {
		value, ok := asFloat(raw)
		if !ok {
			return typeError("no_of_users_rated", "must be an integer")
		}
		usersRated = int(value)
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Available = available
	p.Price = price
	p.Rating = rating
	p.NoOfUsersRated = usersRated
	return nil
}

// Validate runs the range and length checks declared on the struct tags.
func (p *Product) Validate(validate *validator.Validate) error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{
			Kind:    KindOutOfRange,
			Message: err.Error(),
		}
	}
	return nil
}

// Serialize returns the product as a JSON-ready mapping. Rating is nil when the
// product has never been rated; ID is nil until the product is persisted.
func (p *Product) Serialize() map[string]any {
	serialized := map[string]any{
		"name":              p.Name,
		"description":       p.Description,
		"category":          p.Category,
		"available":         p.Available,
		"price":             p.Price,
		"no_of_users_rated": p.NoOfUsersRated,
	}
	if p.ID != nil {
		serialized["id"] = *p.ID
	} else {
		serialized["id"] = nil
	}
	if p.Rating != nil {
		serialized["rating"] = *p.Rating
	} else {
		serialized["rating"] = nil
	}
	return serialized
}

func requireString(data map[string]any, field string) (string, error) {
	raw, ok := data[field]
	if !ok || raw == nil {
		return "", missingField(field)
	}
	value, ok := raw.(string)
	if !ok {
		return "", typeError(field, "must be a string")
	}
	return value, nil
}

// asFloat accepts the numeric types a decoded JSON payload or a hand-built
// map may carry.
func asFloat(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}
