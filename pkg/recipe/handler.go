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
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/nataliastanko/recipes-api/pkg/defaults"
	apperrors "github.com/nataliastanko/recipes-api/pkg/errors"
	"github.com/nataliastanko/recipes-api/pkg/serializer"
	"github.com/nataliastanko/recipes-api/pkg/server"
)

// Repository is the recipe storage used by Handler.
type Repository interface {
	List(ctx context.Context, offset, limit int, filters map[string]string) ([]Recipe, error)
	Get(ctx context.Context, id int) (Recipe, bool, error)
	Create(ctx context.Context, r Recipe) (Recipe, error)
	Update(ctx context.Context, id int, r Recipe) (Recipe, error)
	Delete(ctx context.Context, id int) (bool, error)
	Vote(ctx context.Context, id, value int) (Recipe, error)
}

// DeleteResponse is returned after a recipe is deleted.
type DeleteResponse struct {
	Deleted bool `json:"deleted" yaml:"deleted"`
}

// Handler serves the recipe REST endpoints.
type Handler struct {
	repo    Repository
	timeout time.Duration
}

// NewHandler returns a Handler backed by repo.
func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:    repo,
		timeout: defaults.RecipeHandlerTimeout,
	}
}

// Routes returns the handler functions keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /recipes":                     h.HandleList,
		"GET /recipes/{$}":                 h.HandleList,
		"POST /recipes":                    h.HandleCreate,
		"POST /recipes/{$}":                h.HandleCreate,
		"GET /recipes/{id}":                h.HandleGet,
		"PUT /recipes/{id}":                h.HandleUpdate,
		"DELETE /recipes/{id}":             h.HandleDelete,
		"POST /recipes/{id}/rating/{vote}": h.HandleVote,
	}
}

// HandleList serves GET /recipes.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid list query", nil)
		return
	}

	slog.Debug("listing recipes",
		"offset", q.Offset,
		"limit", q.Limit,
		"filters", q.Filters,
	)

	recs, err := h.repo.List(ctx, q.Offset, q.Limit, q.Filters)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list recipes", nil)
		return
	}
	if recs == nil {
		recs = []Recipe{}
	}

	serializer.RespondJSON(w, http.StatusOK, recs)
}

// HandleGet serves GET /recipes/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, ok := h.find(ctx, w, r, id)
	if !ok {
		return
	}

	serializer.RespondJSON(w, http.StatusOK, rec)
}

// HandleCreate serves POST /recipes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	in, ok := readRecipe(w, r)
	if !ok {
		return
	}

	out, err := h.repo.Create(ctx, in)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to create recipe", nil)
		return
	}

	slog.Debug("recipe created", "id", out.ID)
	w.Header().Set("Location", "/recipes/"+strconv.Itoa(out.ID))
	serializer.RespondJSON(w, http.StatusCreated, out)
}

// HandleUpdate serves PUT /recipes/{id}. The recipe is fully replaced.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := h.find(ctx, w, r, id); !ok {
		return
	}

	in, ok := readRecipe(w, r)
	if !ok {
		return
	}

	out, err := h.repo.Update(ctx, id, in)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to update recipe", nil)
		return
	}

	slog.Debug("recipe updated", "id", out.ID)
	serializer.RespondJSON(w, http.StatusOK, out)
}

// HandleDelete serves DELETE /recipes/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, ok := h.find(ctx, w, r, id); !ok {
		return
	}

	deleted, err := h.repo.Delete(ctx, id)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to delete recipe", nil)
		return
	}

	slog.Debug("recipe deleted", "id", id, "deleted", deleted)
	serializer.RespondJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}

// HandleVote serves POST /recipes/{id}/rating/{vote} and returns the new rating.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	vote, err := ParseVote(r.PathValue("vote"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid vote", nil)
		return
	}

	rec, err := h.repo.Vote(ctx, id, vote)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to record vote", nil)
		return
	}

	recipeVotesTotal.WithLabelValues(strconv.Itoa(vote)).Inc()
	serializer.RespondJSON(w, http.StatusOK, RatingOf(rec))
}

func (h *Handler) find(ctx context.Context, w http.ResponseWriter, r *http.Request, id int) (Recipe, bool) {
	rec, found, err := h.repo.Get(ctx, id)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read recipe", nil)
		return Recipe{}, false
	}
	if !found {
		server.WriteError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound,
			"Recipe not found", false, map[string]any{"id": id})
		return Recipe{}, false
	}
	return rec, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid recipe id", nil)
		return 0, false
	}
	return id, true
}

// readRecipe decodes, allow-lists and validates the request body. On failure
// it writes the error response and returns false.
func readRecipe(w http.ResponseWriter, r *http.Request) (Recipe, bool) {
	p, err := decodePayload(w, r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid request body", nil)
		return Recipe{}, false
	}

	if extra := UnknownFields(p); len(extra) > 0 {
		recipeValidationFailures.WithLabelValues("extra_fields").Inc()
		server.WriteError(w, r, http.StatusUnprocessableEntity, apperrors.ErrCodeUnprocessable,
			"No extra fields allowed", false, map[string]any{"fields": extra})
		return Recipe{}, false
	}

	if v := Validate(p); !v.Empty() {
		recipeValidationFailures.WithLabelValues("violations").Inc()
		server.WriteError(w, r, http.StatusUnprocessableEntity, apperrors.ErrCodeUnprocessable,
			"Validation failed", false, map[string]any{"violations": v})
		return Recipe{}, false
	}

	rec, err := FromPayload(p)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid recipe", nil)
		return Recipe{}, false
	}
	return rec, true
}

// decodePayload reads a JSON object or a URL-encoded form. An empty body
// decodes to an empty payload.
func decodePayload(w http.ResponseWriter, r *http.Request) (Payload, error) {
	if r.Body == nil {
		return Payload{}, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(defaults.MaxRequestBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse form body", err)
		}
		p := Payload{}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
		return p, nil
	default:
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()

		var p Payload
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				return Payload{}, nil
			}
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "request body must be a JSON object", err)
		}
		if p == nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "request body must be a JSON object")
		}
		return p, nil
	}
}
