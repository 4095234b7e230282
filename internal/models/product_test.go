package models_test

import (
	"testing"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]any {
	return map[string]any{
		"name":        "shirt",
		"category":    "men's clothing",
		"available":   true,
		"description": "relaxed",
		"price":       20.0,
	}
}

func TestDeserializeProduct(t *testing.T) {
	product := &models.Product{}
	err := product.Deserialize(validPayload())

	require.NoError(t, err)
	assert.Nil(t, product.ID)
	assert.Equal(t, "shirt", product.Name)
	assert.Equal(t, "men's clothing", product.Category)
	assert.Equal(t, "relaxed", product.Description)
	assert.True(t, product.Available)
	assert.Equal(t, 20.0, product.Price)
	assert.Nil(t, product.Rating)
	assert.Equal(t, 0, product.NoOfUsersRated)
}

func TestDeserializeMissingFields(t *testing.T) {
	for _, field := range []string{"name", "description", "category", "available", "price"} {
		t.Run(field, func(t *testing.T) {
			payload := validPayload()
			delete(payload, field)

			product := &models.Product{}
			err := product.Deserialize(payload)

			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, models.KindMissingField, validationErr.Kind)
			assert.Equal(t, field, validationErr.Field)
		})
	}
}

func TestDeserializeNullFieldIsMissing(t *testing.T) {
	payload := validPayload()
	payload["price"] = nil

	product := &models.Product{}
	err := product.Deserialize(payload)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.KindMissingField, validationErr.Kind)
}

func TestDeserializeBadAvailable(t *testing.T) {
	// A string "true" must be rejected, not coerced.
	payload := validPayload()
	payload["available"] = "true"

	product := &models.Product{}
	err := product.Deserialize(payload)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.KindTypeError, validationErr.Kind)
	assert.Equal(t, "available", validationErr.Field)
}

func TestDeserializeBadPrice(t *testing.T) {
	payload := validPayload()
	payload["price"] = "string!"

	product := &models.Product{}
	err := product.Deserialize(payload)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, models.KindTypeError, validationErr.Kind)
	assert.Equal(t, "price", validationErr.Field)
}

func TestDeserializeOptionalRating(t *testing.T) {
	payload := validPayload()
	payload["rating"] = 4.5
	payload["no_of_users_rated"] = 3

	product := &models.Product{}
	require.NoError(t, product.Deserialize(payload))
	require.NotNil(t, product.Rating)
	assert.Equal(t, 4.5, *product.Rating)
	assert.Equal(t, 3, product.NoOfUsersRated)
}

func TestDeserializeNullRatingDefaults(t *testing.T) {
	payload := validPayload()
	payload["rating"] = nil
	payload["no_of_users_rated"] = nil

	product := &models.Product{}
	require.NoError(t, product.Deserialize(payload))
	assert.Nil(t, product.Rating)
	assert.Equal(t, 0, product.NoOfUsersRated)
}

func TestDeserializeIgnoresID(t *testing.T) {
	payload := validPayload()
	payload["id"] = 42

	product := &models.Product{}
	require.NoError(t, product.Deserialize(payload))
	assert.Nil(t, product.ID)
}

func TestSerializeNewProduct(t *testing.T) {
	product := &models.Product{}
	require.NoError(t, product.Deserialize(validPayload()))

	data := product.Serialize()
	assert.Nil(t, data["id"])
	assert.Equal(t, "shirt", data["name"])
	assert.Equal(t, "men's clothing", data["category"])
	assert.True(t, data["available"].(bool))
	assert.Equal(t, "relaxed", data["description"])
	assert.Equal(t, 20.0, data["price"])
	assert.Nil(t, data["rating"])
	assert.Equal(t, 0, data["no_of_users_rated"])
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	payload := validPayload()
	payload["rating"] = 3.5
	payload["no_of_users_rated"] = 7

	product := &models.Product{}
	require.NoError(t, product.Deserialize(payload))
	data := product.Serialize()

	// Every field except id survives the round trip; deserialize ignores id
	// and serialize reports whatever the entity holds.
	for _, field := range []string{"name", "category", "available", "description", "price"} {
		assert.Equal(t, payload[field], data[field], field)
	}
	assert.Equal(t, 3.5, data["rating"])
	assert.Equal(t, 7, data["no_of_users_rated"])
}

func TestValidateRejectsOutOfRangePrice(t *testing.T) {
	validate := validator.New()

	product := &models.Product{}
	require.NoError(t, product.Deserialize(validPayload()))
	product.Price = models.MaxPrice + 1

	var validationErr *models.ValidationError
	require.ErrorAs(t, product.Validate(validate), &validationErr)
	assert.Equal(t, models.KindOutOfRange, validationErr.Kind)
}

func TestValidateRejectsOverlongFields(t *testing.T) {
	validate := validator.New()

	product := &models.Product{}
	require.NoError(t, product.Deserialize(validPayload()))
	product.Description = longString(models.MaxDescriptionLength + 1)
	assert.Error(t, product.Validate(validate))

	product = &models.Product{}
	require.NoError(t, product.Deserialize(validPayload()))
	product.Category = longString(models.MaxCategoryLength + 1)
	assert.Error(t, product.Validate(validate))
}

func TestValidateAcceptsBounds(t *testing.T) {
	validate := validator.New()

	product := &models.Product{}
	require.NoError(t, product.Deserialize(validPayload()))
	product.Price = models.MaxPrice
	assert.NoError(t, product.Validate(validate))

	product.Price = models.MinPrice
	assert.NoError(t, product.Validate(validate))
}

func longString(n int) string {
	s := make([]byte, n)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}
