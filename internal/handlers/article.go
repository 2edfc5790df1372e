package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"articleboard/internal/logger"
	"articleboard/internal/models"
	"articleboard/internal/repository"
	"articleboard/internal/services"
	"articleboard/internal/utils/helpers"
	"articleboard/web"
)

type ArticleHandler struct {
	svc    services.ArticleService
	likes  *services.LikeCounterService
	detail *template.Template
}

func NewArticleHandler(svc services.ArticleService, likes *services.LikeCounterService) *ArticleHandler {
	return &ArticleHandler{
		svc:    svc,
		likes:  likes,
		detail: template.Must(template.ParseFS(web.Templates, "templates/article_detail.html")),
	}
}

// ShowArticleDetail godoc
// @Summary Server-rendered article detail page
// @Tags articles
// @Produce html
// @Param id query int true "Article ID"
// @Success 200 {string} string "rendered page"
// @Failure 404 {string} string "article not found"
// @Router /showArticleDetail [get]
func (h *ArticleHandler) ShowArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid article id", http.StatusBadRequest)
		return
	}

	article, err := h.svc.ShowArticleDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.WithCtx(r.Context()).Error("failed to load article detail", zap.Int("id", id), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = h.detail.Execute(w, map[string]interface{}{
		"Article": article,
		"Likes":   h.likes.Get(id),
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("failed to render article detail", zap.Int("id", id), zap.Error(err))
	}
}

// GetAll godoc
// @Summary List all articles ordered by id
// @Tags articles
// @Produce json
// @Success 200 {array} models.Article
// @Router /api/articles [get]
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetAll(r.Context())
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "failed to list articles")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// GetByID godoc
// @Summary Fetch one article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "article not found"
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.svc.ShowArticleDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			helpers.Error(w, http.StatusNotFound, "article not found")
			return
		}
		helpers.Error(w, http.StatusInternalServerError, "failed to load article")
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Search godoc
// @Summary Fuzzy search over title, author name and content
// @Description Combines the non-empty filters with OR; all filters empty returns every article.
// @Tags articles
// @Produce json
// @Param title query string false "Title substring"
// @Param name query string false "Author name substring"
// @Param content query string false "Content substring"
// @Success 200 {array} models.Article
// @Router /api/articles/search [get]
func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := models.ArticleSearchQuery{
		Title:   r.URL.Query().Get("title"),
		Name:    r.URL.Query().Get("name"),
		Content: r.URL.Query().Get("content"),
	}

	list, err := h.search(r, q)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "article search failed")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// search dispatches a single-filter query to the matching single-field
// finder and everything else to the combined search.
func (h *ArticleHandler) search(r *http.Request, q models.ArticleSearchQuery) ([]*models.Article, error) {
	switch {
	case q.Title != "" && q.Name == "" && q.Content == "":
		return h.svc.FindByTitle(r.Context(), q.Title)
	case q.Name != "" && q.Title == "" && q.Content == "":
		return h.svc.FindByName(r.Context(), q.Name)
	case q.Content != "" && q.Title == "" && q.Name == "":
		return h.svc.FindByContent(r.Context(), q.Content)
	default:
		return h.svc.Search(r.Context(), q)
	}
}

// Create godoc
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Param body body models.SaveArticleRequest true "Article fields"
// @Success 201 {object} models.Article
// @Failure 400 {string} string "validation error"
// @Security ApiKeyAuth
// @Router /api/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in article create", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	article, err := h.svc.Create(r.Context(), req)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.WithCtx(r.Context()).Info("article created",
		zap.Int("id", article.ID),
		zap.String("title", article.Title),
	)
	helpers.JSON(w, http.StatusCreated, article)
}

// Update godoc
// @Summary Replace an article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param body body models.SaveArticleRequest true "Article fields"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "article not found"
// @Security ApiKeyAuth
// @Router /api/articles/{id} [put]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req models.SaveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	article, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			helpers.Error(w, http.StatusNotFound, "article not found")
			return
		}
		helpers.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	helpers.JSON(w, http.StatusOK, article)
}

// Delete godoc
// @Summary Delete an article
// @Tags articles
// @Param id path int true "Article ID"
// @Success 204 {string} string "deleted"
// @Security ApiKeyAuth
// @Router /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		helpers.Error(w, http.StatusInternalServerError, "failed to delete article")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLikes godoc
// @Summary Read the like counter for an article
// @Tags likes
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {integer} int
// @Router /api/articles/{id}/likes [get]
func (h *ArticleHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}
	helpers.JSON(w, http.StatusOK, likesResponse{ArticleID: id, Likes: h.likes.Get(id)})
}

type likesResponse struct {
	ArticleID int   `json:"article_id"`
	Likes     int64 `json:"likes"`
}

// AddLike godoc
// @Summary Increment the like counter for an article
// @Tags likes
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {integer} int
// @Router /api/articles/{id}/likes [post]
func (h *ArticleHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}
	helpers.JSON(w, http.StatusOK, likesResponse{ArticleID: id, Likes: h.likes.Increment(id)})
}
