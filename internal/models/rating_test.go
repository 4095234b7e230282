package models_test

import (
	"testing"

	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRatingFirstSubmission(t *testing.T) {
	// The first score is taken exactly, not averaged with a phantom prior.
	product := &models.Product{}
	product.ApplyRating(4)

	require.NotNil(t, product.Rating)
	assert.Equal(t, 4.0, *product.Rating)
	assert.Equal(t, 1, product.NoOfUsersRated)
}

func TestApplyRatingTwoSubmissions(t *testing.T) {
	product := &models.Product{}
	product.ApplyRating(2)
	product.ApplyRating(4)

	require.NotNil(t, product.Rating)
	assert.Equal(t, 3.0, *product.Rating)
	assert.Equal(t, 2, product.NoOfUsersRated)
}

func TestApplyRatingZeroCountResetsMean(t *testing.T) {
	// A stale rating with a zero count is treated as unrated.
	stale := 2.0
	product := &models.Product{Rating: &stale, NoOfUsersRated: 0}
	product.ApplyRating(5)

	require.NotNil(t, product.Rating)
	assert.Equal(t, 5.0, *product.Rating)
	assert.Equal(t, 1, product.NoOfUsersRated)
}

func TestApplyRatingIsRunningMean(t *testing.T) {
	scores := []int{5, 3, 4, 1, 2, 5, 5, 3}

	product := &models.Product{}
	sum := 0
	for i, score := range scores {
		product.ApplyRating(score)
		sum += score

		require.NotNil(t, product.Rating)
		assert.InDelta(t, float64(sum)/float64(i+1), *product.Rating, 1e-9)
		assert.Equal(t, i+1, product.NoOfUsersRated)
	}
}

func TestApplyRatingStaysInRange(t *testing.T) {
	product := &models.Product{}
	for _, score := range []int{1, 5, 1, 5, 1, 1, 5} {
		product.ApplyRating(score)
		assert.GreaterOrEqual(t, *product.Rating, 1.0)
		assert.LessOrEqual(t, *product.Rating, 5.0)
	}
}
