package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"articleboard/internal/logger"
	"articleboard/internal/models"
	"articleboard/internal/repository"
)

type ArticleService interface {
	ShowArticleDetail(ctx context.Context, id int) (*models.Article, error)
	GetAll(ctx context.Context) ([]*models.Article, error)
	Search(ctx context.Context, q models.ArticleSearchQuery) ([]*models.Article, error)
	FindByTitle(ctx context.Context, title string) ([]*models.Article, error)
	FindByName(ctx context.Context, name string) ([]*models.Article, error)
	FindByContent(ctx context.Context, content string) ([]*models.Article, error)
	Create(ctx context.Context, req models.SaveArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id int, req models.SaveArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int) error
}

type articleService struct {
	repo   repository.ArticleRepo
	policy *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepo) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{repo: repo, policy: p}
}

// ShowArticleDetail propagates repository.ErrArticleNotFound unchanged; the
// handler turns it into a 404.
func (s *articleService) ShowArticleDetail(ctx context.Context, id int) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("fetching article detail", zap.Int("id", id))

	a, err := s.repo.Load(ctx, id)
	if err != nil {
		log.Warn("article not found (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) GetAll(ctx context.Context) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)

	list, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error("failed to list articles (repo)", zap.Error(err))
		return nil, err
	}
	log.Debug("articles listed", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) Search(ctx context.Context, q models.ArticleSearchQuery) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("searching articles",
		zap.String("title", q.Title),
		zap.String("name", q.Name),
		zap.String("content", q.Content),
	)

	list, err := s.repo.Search(ctx, q)
	if err != nil {
		log.Error("article search failed (repo)", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *articleService) FindByTitle(ctx context.Context, title string) ([]*models.Article, error) {
	return s.repo.FindByTitle(ctx, title)
}

func (s *articleService) FindByName(ctx context.Context, name string) ([]*models.Article, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *articleService) FindByContent(ctx context.Context, content string) ([]*models.Article, error) {
	return s.repo.FindByContent(ctx, content)
}

func (s *articleService) buildArticle(req models.SaveArticleRequest) (*models.Article, error) {
	title := strings.TrimSpace(req.Title)
	name := strings.TrimSpace(req.Name)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}

	postDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.PostDate != "" {
		d, err := time.Parse("2006-01-02", req.PostDate)
		if err != nil {
			return nil, errors.New("post_date must be formatted as YYYY-MM-DD")
		}
		postDate = d
	}

	return &models.Article{
		Title:      title,
		Name:       name,
		Prefecture: strings.TrimSpace(req.Prefecture),
		Content:    s.policy.Sanitize(req.Content),
		PostDate:   postDate,
		ImagePath:  strings.TrimSpace(req.ImagePath),
	}, nil
}

func (s *articleService) Create(ctx context.Context, req models.SaveArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("creating article", zap.String("title", strings.TrimSpace(req.Title)))

	a, err := s.buildArticle(req)
	if err != nil {
		log.Warn("article validation failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Insert(ctx, a)
	if err != nil {
		log.Error("failed to create article (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("article created", zap.Int("id", created.ID))
	return created, nil
}

// Update is a full-record replace keyed by id; the article must exist.
func (s *articleService) Update(ctx context.Context, id int, req models.SaveArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("updating article", zap.Int("id", id))

	if _, err := s.repo.Load(ctx, id); err != nil {
		log.Warn("article to update not found (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	a, err := s.buildArticle(req)
	if err != nil {
		log.Warn("article validation failed", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	a.ID = id

	if err := s.repo.Update(ctx, a); err != nil {
		log.Error("failed to update article (repo)", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("article updated", zap.Int("id", id))
	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id int) error {
	log := logger.WithCtx(ctx)
	log.Info("deleting article", zap.Int("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete article (repo)", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}
