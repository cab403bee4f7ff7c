package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

const msgNewsNotFound = "News not found"

type NewsService struct {
	news  Documents[models.News]
	media storage.Uploader
	log   logging.Logger
	now   func() time.Time
}

func NewNewsService(news Documents[models.News], media storage.Uploader, log logging.Logger) *NewsService {
	return &NewsService{news: news, media: media, log: log, now: time.Now}
}

func (s *NewsService) List(ctx context.Context) ([]models.News, error) {
	return list(ctx, s.news, "news")
}

func (s *NewsService) Get(ctx context.Context, id bson.ObjectID) (*models.News, error) {
	n, err := s.news.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgNewsNotFound, "find news")
	}
	return n, nil
}

func newsCategory(c string) (string, error) {
	c = strings.ToLower(c)
	if c == "" {
		return models.DefaultNewsCategory, nil
	}
	if !models.OneOf(c, models.NewsCategories) {
		return "", apperr.Validation("Validation error", "category must be one of: "+strings.Join(models.NewsCategories, ", "))
	}
	return c, nil
}

func newsDate(d string) (time.Time, error) {
	t, ok := parseDate(d)
	if !ok {
		return time.Time{}, apperr.Validation("Validation error", "date must be a date")
	}
	return t, nil
}

// Create stores a news item; image is optional.
func (s *NewsService) Create(ctx context.Context, req dto.NewsRequest, image *multipart.FileHeader) (*models.News, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	category, err := newsCategory(req.Category)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n := &models.News{
		ID:          bson.NewObjectID(),
		Title:       req.Title,
		Category:    category,
		Date:        now,
		Description: req.Description,
		Icon:        orDefault(req.Icon, models.DefaultNewsIcon),
		Color:       orDefault(req.Color, models.DefaultNewsColor),
		Link:        orDefault(req.Link, models.DefaultNewsLink),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Date != "" {
		if n.Date, err = newsDate(req.Date); err != nil {
			return nil, err
		}
	}

	if image != nil {
		obj, err := storage.Save(ctx, s.media, "news", image, storage.Image)
		if err != nil {
			return nil, err
		}
		n.Image, n.ImageKey = obj.URL, obj.Key
	}

	if err := s.news.Insert(ctx, n); err != nil {
		removeMedia(ctx, s.media, s.log, n.ImageKey)
		return nil, apperr.Internal("insert news", err)
	}
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id bson.ObjectID, req dto.NewsUpdateRequest, image *multipart.FileHeader) (*models.News, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	current, err := s.news.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgNewsNotFound, "find news")
	}

	set := bson.M{}
	setIf(set, "title", req.Title)
	setIf(set, "description", req.Description)
	setIf(set, "icon", req.Icon)
	setIf(set, "color", req.Color)
	setIf(set, "link", req.Link)
	if req.Category != nil {
		c, err := newsCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		set["category"] = c
	}
	if req.Date != nil && *req.Date != "" {
		d, err := newsDate(*req.Date)
		if err != nil {
			return nil, err
		}
		set["date"] = d
	}

	var uploaded string
	if image != nil {
		obj, err := storage.Save(ctx, s.media, "news", image, storage.Image)
		if err != nil {
			return nil, err
		}
		uploaded = obj.Key
		set["image"] = obj.URL
		set["image_key"] = obj.Key
	}
	if len(set) == 0 {
		return nil, apperr.Validation("No updatable fields provided")
	}

	n, err := s.news.UpdateFields(ctx, id, set)
	if err != nil {
		removeMedia(ctx, s.media, s.log, uploaded)
		return nil, lookupErr(err, msgNewsNotFound, "update news")
	}
	if uploaded != "" {
		removeMedia(ctx, s.media, s.log, current.ImageKey)
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id bson.ObjectID) error {
	n, err := s.news.DeleteByID(ctx, id)
	if err != nil {
		return lookupErr(err, msgNewsNotFound, "delete news")
	}
	removeMedia(ctx, s.media, s.log, n.ImageKey)
	return nil
}
