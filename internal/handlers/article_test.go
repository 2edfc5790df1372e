package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articleboard/internal/models"
	"articleboard/internal/repository"
	"articleboard/internal/services"
	"articleboard/internal/utils/helpers"
)

type stubArticleService struct {
	articles map[int]*models.Article

	lastSearch models.ArticleSearchQuery
	lastTitle  string
	createErr  error
}

func (s *stubArticleService) ShowArticleDetail(_ context.Context, id int) (*models.Article, error) {
	a, ok := s.articles[id]
	if !ok {
		return nil, repository.ErrArticleNotFound
	}
	return a, nil
}

func (s *stubArticleService) GetAll(_ context.Context) ([]*models.Article, error) {
	var list []*models.Article
	for _, a := range s.articles {
		list = append(list, a)
	}
	return list, nil
}

func (s *stubArticleService) Search(_ context.Context, q models.ArticleSearchQuery) ([]*models.Article, error) {
	s.lastSearch = q
	return nil, nil
}

func (s *stubArticleService) FindByTitle(_ context.Context, title string) ([]*models.Article, error) {
	s.lastTitle = title
	return nil, nil
}
func (s *stubArticleService) FindByName(_ context.Context, name string) ([]*models.Article, error) {
	return nil, nil
}
func (s *stubArticleService) FindByContent(_ context.Context, content string) ([]*models.Article, error) {
	return nil, nil
}

func (s *stubArticleService) Create(_ context.Context, req models.SaveArticleRequest) (*models.Article, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	a := &models.Article{ID: 1, Title: req.Title, Name: req.Name, Content: req.Content}
	s.articles[a.ID] = a
	return a, nil
}

func (s *stubArticleService) Update(_ context.Context, id int, req models.SaveArticleRequest) (*models.Article, error) {
	if _, ok := s.articles[id]; !ok {
		return nil, repository.ErrArticleNotFound
	}
	a := &models.Article{ID: id, Title: req.Title, Name: req.Name, Content: req.Content}
	s.articles[id] = a
	return a, nil
}

func (s *stubArticleService) Delete(_ context.Context, id int) error {
	delete(s.articles, id)
	return nil
}

var _ services.ArticleService = (*stubArticleService)(nil)

func fixtureArticle() *models.Article {
	return &models.Article{
		ID:         1,
		Title:      "Autumn in Kyoto",
		Name:       "Hanako",
		Prefecture: "Kyoto",
		Content:    "The maple leaves turn red in November.",
		PostDate:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		ImagePath:  "/img/kyoto.jpg",
	}
}

func newArticleHandler(articles ...*models.Article) (*ArticleHandler, *stubArticleService) {
	stub := &stubArticleService{articles: map[int]*models.Article{}}
	for _, a := range articles {
		stub.articles[a.ID] = a
	}
	return NewArticleHandler(stub, services.NewLikeCounterService()), stub
}

func TestShowArticleDetail_RendersPage(t *testing.T) {
	h, _ := newArticleHandler(fixtureArticle())

	req := httptest.NewRequest(http.MethodGet, "/showArticleDetail?id=1", nil)
	rec := httptest.NewRecorder()
	h.ShowArticleDetail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Autumn in Kyoto")
	assert.Contains(t, body, "Hanako")
	assert.Contains(t, body, "Kyoto")
	assert.Contains(t, body, "2026-08-29")
}

func TestShowArticleDetail_NotFound(t *testing.T) {
	h, _ := newArticleHandler()

	req := httptest.NewRequest(http.MethodGet, "/showArticleDetail?id=99", nil)
	rec := httptest.NewRecorder()
	h.ShowArticleDetail(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShowArticleDetail_InvalidID(t *testing.T) {
	h, _ := newArticleHandler()

	req := httptest.NewRequest(http.MethodGet, "/showArticleDetail?id=abc", nil)
	rec := httptest.NewRecorder()
	h.ShowArticleDetail(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByID_NotFoundMapsTo404(t *testing.T) {
	h, _ := newArticleHandler()

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/articles/3", nil),
		map[string]string{"id": "3"})
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_PassesFiltersThrough(t *testing.T) {
	h, stub := newArticleHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/articles/search?title=kyoto&content=maple", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ArticleSearchQuery{Title: "kyoto", Content: "maple"}, stub.lastSearch)
}

func TestSearch_SingleFilterUsesFieldFinder(t *testing.T) {
	h, stub := newArticleHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/articles/search?title=kyoto", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kyoto", stub.lastTitle)
	assert.Empty(t, stub.lastSearch.Title, "combined search must not be used for a single filter")
}

func TestCreate_Success(t *testing.T) {
	h, _ := newArticleHandler()

	body := `{"title":"T","name":"N","content":"C","post_date":"2026-08-29"}`
	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp helpers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
}

func TestCreate_InvalidJSON(t *testing.T) {
	h, _ := newArticleHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate_NotFound(t *testing.T) {
	h, _ := newArticleHandler()

	body := `{"title":"T","name":"N","content":"C"}`
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/articles/9", strings.NewReader(body)),
		map[string]string{"id": "9"})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_MissingIDIsNoError(t *testing.T) {
	h, _ := newArticleHandler()

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/articles/9", nil),
		map[string]string{"id": "9"})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLikesEndpoints(t *testing.T) {
	h, _ := newArticleHandler(fixtureArticle())

	get := func() string {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/articles/1/likes", nil),
			map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.GetLikes(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	assert.JSONEq(t, `{"data":{"article_id":1,"likes":0}}`, get())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/articles/1/likes", nil),
		map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.AddLike(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"article_id":1,"likes":1}}`, rec.Body.String())

	assert.JSONEq(t, `{"data":{"article_id":1,"likes":1}}`, get())
}
