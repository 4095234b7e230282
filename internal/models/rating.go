package models

// ApplyRating folds one submitted score into the product's running mean.
//
// The score must already be validated as an integer in [1, 5]; the fold itself
// performs no range check, so a caller skipping validation can push the mean
// out of range. The first submission sets the rating to the score exactly
// rather than averaging it with a phantom prior value.
func (p *Product) ApplyRating(score int) {
	if p.Rating == nil || p.NoOfUsersRated == 0 {
		rating := float64(score)
		p.Rating = &rating
		p.NoOfUsersRated = 1
		return
	}
	rating := (*p.Rating*float64(p.NoOfUsersRated) + float64(score)) / float64(p.NoOfUsersRated+1)
	p.Rating = &rating
	p.NoOfUsersRated++
}
