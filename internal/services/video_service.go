package services

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

const (
	msgVideoNotFound   = "Video not found"
	defaultVideoStatus = "pending"
)

type VideoService struct {
	videos Documents[models.Video]
	media  storage.Uploader
	log    logging.Logger
	now    func() time.Time
}

func NewVideoService(videos Documents[models.Video], media storage.Uploader, log logging.Logger) *VideoService {
	return &VideoService{videos: videos, media: media, log: log, now: time.Now}
}

func (s *VideoService) List(ctx context.Context) ([]models.Video, error) {
	return list(ctx, s.videos, "videos")
}

func (s *VideoService) Get(ctx context.Context, id bson.ObjectID) (*models.Video, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgVideoNotFound, "find video")
	}
	return v, nil
}

// View counts a view and returns the video with its new count.
func (s *VideoService) View(ctx context.Context, id bson.ObjectID) (*models.Video, error) {
	v, err := s.videos.Increment(ctx, id, "views")
	if err != nil {
		return nil, lookupErr(err, msgVideoNotFound, "count view")
	}
	return v, nil
}

func (s *VideoService) Create(ctx context.Context, req dto.VideoRequest, file *multipart.FileHeader) (*models.Video, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperr.Validation("Video file is required")
	}

	obj, err := storage.Save(ctx, s.media, "videos", file, storage.Video)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	v := &models.Video{
		ID:         bson.NewObjectID(),
		Title:      req.Title,
		Instructor: req.Instructor,
		Category:   req.Category,
		Duration:   req.Duration,
		Status:     normalizeStatus(req.Status, models.VideoStatuses, defaultVideoStatus),
		VideoFile:  obj.URL,
		FileKey:    obj.Key,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.videos.Insert(ctx, v); err != nil {
		removeMedia(ctx, s.media, s.log, obj.Key)
		return nil, apperr.Internal("insert video", err)
	}
	return v, nil
}

func (s *VideoService) Update(ctx context.Context, id bson.ObjectID, req dto.VideoUpdateRequest, file *multipart.FileHeader) (*models.Video, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	current, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgVideoNotFound, "find video")
	}

	set := bson.M{}
	setIf(set, "title", req.Title)
	setIf(set, "instructor", req.Instructor)
	setIf(set, "category", req.Category)
	setIf(set, "duration", req.Duration)
	if req.Status != nil {
		set["status"] = normalizeStatus(*req.Status, models.VideoStatuses, defaultVideoStatus)
	}

	var uploaded string
	if file != nil {
		obj, err := storage.Save(ctx, s.media, "videos", file, storage.Video)
		if err != nil {
			return nil, err
		}
		uploaded = obj.Key
		set["videoFile"] = obj.URL
		set["file_key"] = obj.Key
	}
	if len(set) == 0 {
		return nil, apperr.Validation("No updatable fields provided")
	}

	v, err := s.videos.UpdateFields(ctx, id, set)
	if err != nil {
		removeMedia(ctx, s.media, s.log, uploaded)
		return nil, lookupErr(err, msgVideoNotFound, "update video")
	}
	if uploaded != "" {
		removeMedia(ctx, s.media, s.log, current.FileKey)
	}
	return v, nil
}

func (s *VideoService) Delete(ctx context.Context, id bson.ObjectID) (*models.Video, error) {
	v, err := s.videos.DeleteByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgVideoNotFound, "delete video")
	}
	removeMedia(ctx, s.media, s.log, v.FileKey)
	return v, nil
}
