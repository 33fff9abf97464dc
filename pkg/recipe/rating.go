// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

import (
	"strconv"
	"strings"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
)

// Accepted vote range, inclusive.
const (
	MinVote = 1
	MaxVote = 5
)

// RatingSummary is the projection returned after a vote.
type RatingSummary struct {
	RatingValue float64 `json:"rating_value" yaml:"rating_value"`
	VotesSum    int     `json:"votes_sum" yaml:"votes_sum"`
	VotesCount  int     `json:"votes_count" yaml:"votes_count"`
}

// RatingOf projects the rating fields of r.
func RatingOf(r Recipe) RatingSummary {
	return RatingSummary{
		RatingValue: r.RatingValue,
		VotesSum:    r.VotesSum,
		VotesCount:  r.VotesCount,
	}
}

// Rating returns the mean vote, or 0 when nobody has voted.
func Rating(sum, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// ApplyVote adds one vote of value v to r and recomputes its rating.
// The range is not checked here; see ValidateVote.
func ApplyVote(r *Recipe, v int) {
	r.VotesCount++
	r.VotesSum += v
	r.RatingValue = Rating(r.VotesSum, r.VotesCount)
}

// Recalculate derives RatingValue from the vote counters.
func (r *Recipe) Recalculate() {
	r.RatingValue = Rating(r.VotesSum, r.VotesCount)
}

// ValidateVote returns an UNPROCESSABLE_ENTITY error unless v is within [MinVote, MaxVote].
func ValidateVote(v int) error {
	if v < MinVote || v > MaxVote {
		return apperrors.NewWithContext(apperrors.ErrCodeUnprocessable,
			"vote must be between 1 and 5", map[string]any{
				"vote": v,
				"min":  MinVote,
				"max":  MaxVote,
			})
	}
	return nil
}

// ParseVote parses and range-checks a vote given as text.
func ParseVote(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.WrapWithContext(apperrors.ErrCodeUnprocessable,
			"vote must be an integer", err, map[string]any{"vote": s})
	}
	if err := ValidateVote(v); err != nil {
		return 0, err
	}
	return v, nil
}
