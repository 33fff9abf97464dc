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

package store

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/recipe"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data_test.csv")
	return New(path, WithClock(tickingClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))))
}

func sample(title, cuisine string) recipe.Recipe {
	return recipe.Recipe{
		BoxType:              recipe.BoxTypeGourmet,
		Title:                title,
		Slug:                 strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		MarketingDescription: "A " + title,
		RecipeDietTypeID:     recipe.DietTypeMeat,
		RecipeCuisine:        cuisine,
		CaloriesKcal:         ptr.To(401),
	}
}

func seed(t *testing.T, s *Store, n int) []recipe.Recipe {
	t.Helper()
	out := make([]recipe.Recipe, 0, n)
	for i := range n {
		r, err := s.Create(context.TODO(), sample("Recipe "+strconv.Itoa(i+1), "british"))
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func assertSortedUnique(t *testing.T, s *Store) {
	t.Helper()
	recs, err := s.Load(context.TODO(), nil)
	require.NoError(t, err)
	for i := 1; i < len(recs); i++ {
		assert.Less(t, recs[i-1].ID, recs[i].ID, "records must be strictly ascending by id")
	}
}

func TestLoadCreatesHeaderOnlyFile(t *testing.T) {
	s := newTestStore(t)

	recs, err := s.Load(context.TODO(), nil)
	require.NoError(t, err)
	assert.Empty(t, recs)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, strings.Join(recipe.Fields(), ",")+"\n", string(data))
}

func TestInit(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Init(context.TODO())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Init(context.TODO())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)

	prev := 0
	for i := range 4 {
		r, err := s.Create(context.TODO(), sample("Dish "+strconv.Itoa(i), "italian"))
		require.NoError(t, err)
		assert.Greater(t, r.ID, prev)
		assert.Equal(t, r.CreatedAt, r.UpdatedAt)
		assert.False(t, r.CreatedAt.IsZero())
		prev = r.ID
	}
	assertSortedUnique(t, s)
}

func TestCreateIgnoresClientManagedFields(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 2)

	in := sample("Stew", "british")
	in.ID = 1
	in.RatingValue = 4.5
	in.CreatedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	out, err := s.Create(context.TODO(), in)
	require.NoError(t, err)
	assert.Equal(t, 3, out.ID)
	assert.Zero(t, out.RatingValue)
	assert.NotEqual(t, in.CreatedAt, out.CreatedAt)
}

func TestCreateAfterDeleteOfMaxDoesNotReuseLowerIDs(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 3)

	_, err := s.Delete(context.TODO(), 2)
	require.NoError(t, err)

	r, err := s.Create(context.TODO(), sample("Curry", "indian"))
	require.NoError(t, err)
	assert.Equal(t, 4, r.ID)
	assertSortedUnique(t, s)
}

func TestFindOneAfterCreate(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 2)

	created, err := s.Create(context.TODO(), sample("Risotto", "italian"))
	require.NoError(t, err)

	got, found, err := s.FindOne(context.TODO(), recipe.FieldID, strconv.Itoa(created.ID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)
}

func TestFindOneLastMatchWins(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 3)

	got, found, err := s.FindOne(context.TODO(), recipe.FieldRecipeCuisine, "british")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, got.ID)
}

func TestFindOneAbsentAndUnknownField(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 1)

	_, found, err := s.FindOne(context.TODO(), recipe.FieldID, "42")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = s.FindOne(context.TODO(), "colour", "red")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestRoundTripEveryField(t *testing.T) {
	s := newTestStore(t)

	in := recipe.Recipe{
		BoxType:                recipe.BoxTypeVegetarian,
		Title:                  `Sweet "Chilli", Lime`,
		Slug:                   "sweet-chilli-lime",
		ShortTitle:             "Chilli",
		MarketingDescription:   "Line one\nline two",
		CaloriesKcal:           ptr.To(511),
		ProteinGrams:           ptr.To(11),
		FatGrams:               ptr.To(62),
		CarbsGrams:             ptr.To(0),
		Bulletpoint1:           "one",
		Bulletpoint2:           "two",
		Bulletpoint3:           "three",
		RecipeDietTypeID:       recipe.DietTypeVegetarian,
		Season:                 "all",
		Base:                   "noodles",
		ProteinSource:          "tofu",
		PreparationTimeMinutes: ptr.To(35),
		ShelfLifeDays:          ptr.To(4),
		EquipmentNeeded:        "Appetite",
		OriginCountry:          "Great Britain",
		RecipeCuisine:          "asian",
		InYourBox:              "tofu, lime",
		RecipeReference:        "59",
		VotesCount:             3,
		VotesSum:               10,
	}

	created, err := s.Create(context.TODO(), in)
	require.NoError(t, err)

	recs, err := s.Load(context.TODO(), nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, created, got)
	for _, field := range recipe.Fields() {
		want, _ := created.Text(field)
		have, _ := got.Text(field)
		assert.Equal(t, want, have, "field %s", field)
	}
	assert.InDelta(t, 10.0/3.0, got.RatingValue, 1e-9)
}

func TestRoundTripMultiLineText(t *testing.T) {
	s := newTestStore(t)

	in := sample("Layered", "french")
	in.MarketingDescription = "line1\r\nline2\rline3\nline4"
	in.InYourBox = "flour\r\n"

	created, err := s.Create(context.TODO(), in)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\nline3\nline4", created.MarketingDescription)
	assert.Equal(t, "flour\n", created.InYourBox)

	got, found, err := s.Get(context.TODO(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)

	in.MarketingDescription = "a\r\nb"
	updated, err := s.Update(context.TODO(), created.ID, in)
	require.NoError(t, err)

	got, _, err = s.Get(context.TODO(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got.MarketingDescription)
	assert.Equal(t, updated, got)
}

func TestVoteSequence(t *testing.T) {
	s := newTestStore(t)
	created := seed(t, s, 1)[0]

	votes := []int{5, 3, 4, 1, 2, 5}
	sum := 0
	var last recipe.Recipe
	for _, v := range votes {
		var err error
		last, err = s.Vote(context.TODO(), created.ID, v)
		require.NoError(t, err)
		sum += v
	}

	assert.Equal(t, len(votes), last.VotesCount)
	assert.Equal(t, sum, last.VotesSum)
	assert.InDelta(t, float64(sum)/float64(len(votes)), last.RatingValue, 1e-9)
	assert.Equal(t, created.CreatedAt, last.CreatedAt)
	assert.True(t, last.UpdatedAt.After(created.UpdatedAt))

	got, found, err := s.Get(context.TODO(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, last, got)
}

func TestVoteErrors(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 1)

	tests := []struct {
		name string
		id   int
		vote int
		code apperrors.ErrorCode
	}{
		{"below range", 1, 0, apperrors.ErrCodeUnprocessable},
		{"above range", 1, 6, apperrors.ErrCodeUnprocessable},
		{"absent id", 99, 3, apperrors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Vote(context.TODO(), tt.id, tt.vote)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestListPagination(t *testing.T) {
	s := newTestStore(t)
	created := seed(t, s, 5)

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantIDs []int
	}{
		{"first two", 0, 2, []int{created[0].ID, created[1].ID}},
		{"middle", 2, 2, []int{created[2].ID, created[3].ID}},
		{"clipped", 4, 10, []int{created[4].ID}},
		{"past end", 10, 5, []int{}},
		{"no limit", 1, -1, []int{created[1].ID, created[2].ID, created[3].ID, created[4].ID}},
		{"zero limit", 0, 0, []int{}},
		{"max limit", 1, math.MaxInt, []int{created[1].ID, created[2].ID, created[3].ID, created[4].ID}},
		{"max offset and limit", math.MaxInt, math.MaxInt, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := s.List(context.TODO(), tt.offset, tt.limit, nil)
			require.NoError(t, err)
			ids := make([]int, 0, len(recs))
			for _, r := range recs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestListFilterIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	for _, c := range []string{"italian", "Italian", "british", "italian", "ITALIAN"} {
		_, err := s.Create(context.TODO(), sample("Dish", c))
		require.NoError(t, err)
	}

	recs, err := s.List(context.TODO(), 0, -1, map[string]string{recipe.FieldRecipeCuisine: "italian"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "italian", r.RecipeCuisine)
	}

	_, err = s.List(context.TODO(), 0, 10, map[string]string{"cuisine": "italian"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	created := seed(t, s, 2)

	in := sample("Renamed", "french")
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := s.Update(context.TODO(), created[0].ID, in)
	require.NoError(t, err)

	assert.Equal(t, created[0].ID, out.ID)
	assert.Equal(t, "Renamed", out.Title)
	assert.Equal(t, created[0].CreatedAt, out.CreatedAt)
	assert.True(t, out.UpdatedAt.After(created[0].UpdatedAt))
	assertSortedUnique(t, s)

	_, err = s.Update(context.TODO(), 404, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	s := newTestStore(t)

	in := sample("Stew", "irish")
	in.ShelfLifeDays = ptr.To(3)
	in.VotesCount = 2
	in.VotesSum = 9
	created, err := s.Create(context.TODO(), in)
	require.NoError(t, err)
	require.NotNil(t, created.CaloriesKcal)
	require.Equal(t, 4.5, created.RatingValue)

	out, err := s.Update(context.TODO(), created.ID, recipe.Recipe{
		BoxType:          recipe.BoxTypeGourmet,
		Title:            "Stew",
		RecipeDietTypeID: recipe.DietTypeMeat,
		RecipeCuisine:    "irish",
	})
	require.NoError(t, err)

	got, found, err := s.Get(context.TODO(), created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, out, got)

	assert.Nil(t, got.CaloriesKcal)
	assert.Nil(t, got.ShelfLifeDays)
	assert.Empty(t, got.Slug)
	assert.Empty(t, got.MarketingDescription)
	assert.Zero(t, got.VotesCount)
	assert.Zero(t, got.VotesSum)
	assert.Zero(t, got.RatingValue)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	created := seed(t, s, 3)
	id := created[1].ID

	deleted, err := s.Delete(context.TODO(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := s.Get(context.TODO(), id)
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err = s.Delete(context.TODO(), id)
	require.NoError(t, err)
	assert.False(t, deleted)

	recs, err := s.Load(context.TODO(), nil)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assertSortedUnique(t, s)
}

func TestLoadFilter(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 4)

	recs, err := s.Load(context.TODO(), func(r recipe.Recipe) bool { return r.ID%2 == 0 })
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[0].ID)
	assert.Equal(t, 4, recs[1].ID)

	// A filter passed to one call does not affect the next.
	recs, err = s.Load(context.TODO(), nil)
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

func TestMalformedRowFailsLoad(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short row", "id,title\n1\n", ""},
		{"bad id", "id,title\nabc,Soup\n", recipe.FieldID},
		{"bad timestamp", "id,created_at\n1,2024-01-01\n", recipe.FieldCreatedAt},
		{"bad optional int", "id,calories_kcal\n1,lots\n", recipe.FieldCaloriesKcal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := New(path).Load(context.TODO(), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRow))
			assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))

			var se *apperrors.StructuredError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, 2, se.Context["row"])
			assert.Equal(t, tt.field, se.Context["field"])
		})
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.TODO()))

	require.NoError(t, os.WriteFile(s.Path(), []byte("id,title\nabc,Soup\n"), 0o600))
	err := s.Ping(context.TODO())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRow))

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()
	require.Error(t, s.Ping(ctx))
}

func TestLoadMapsColumnsByHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	body := "title,extra,id,votes_count,votes_sum,created_at\n" +
		"Soup,ignored,7,2,9,30/06/2015 17:58:00\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	recs, err := New(path).Load(context.TODO(), nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, 7, r.ID)
	assert.Equal(t, "Soup", r.Title)
	assert.Equal(t, 2, r.VotesCount)
	assert.Equal(t, 9, r.VotesSum)
	assert.Equal(t, time.Date(2015, 6, 30, 17, 58, 0, 0, time.UTC), r.CreatedAt)
	assert.Nil(t, r.CaloriesKcal)
}

func TestUnreadableStorage(t *testing.T) {
	dir := t.TempDir()
	// A directory at the file path cannot be read as a file.
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := New(path).Load(context.TODO(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnreadable))
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
}

func TestCanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	_, err := s.Load(ctx, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
