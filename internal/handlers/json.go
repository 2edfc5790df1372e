package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"articleboard/internal/logger"
	"articleboard/internal/services"
	"articleboard/internal/utils/helpers"
)

// JSONHandler serves the two legacy ad-hoc JSON endpoints, /judge and /good.
// Their wire format is a bare JSON value, not the usual envelope.
type JSONHandler struct {
	lookup *services.UserLookupService
	likes  *services.LikeCounterService
}

func NewJSONHandler(lookup *services.UserLookupService, likes *services.LikeCounterService) *JSONHandler {
	return &JSONHandler{lookup: lookup, likes: likes}
}

// Judge godoc
// @Summary Look up a user by email
// @Description Unknown addresses yield an empty placeholder user, never an error.
// @Tags legacy
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} models.User
// @Router /judge [get]
func (h *JSONHandler) Judge(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user := h.lookup.FindByEmail(r.Context(), email)
	helpers.Raw(w, http.StatusOK, user)
}

// Good godoc
// @Summary Increment the like counter
// @Description Without a good parameter returns 1, otherwise good+1. With an
// id parameter the per-article counter is incremented and returned instead.
// @Tags legacy
// @Produce json
// @Param good query int false "Previous counter value"
// @Param id query int false "Article ID"
// @Success 200 {integer} int
// @Router /good [get]
func (h *JSONHandler) Good(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		articleID, err := strconv.Atoi(raw)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid article id")
			return
		}
		helpers.Raw(w, http.StatusOK, h.likes.Increment(articleID))
		return
	}

	var prev *int
	if raw := r.URL.Query().Get("good"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			helpers.Error(w, http.StatusBadRequest, "invalid good value")
			return
		}
		prev = &n
	}

	value := h.likes.Bump(prev)
	logger.WithCtx(r.Context()).Debug("good endpoint hit", zap.Int("value", value))
	helpers.Raw(w, http.StatusOK, value)
}
