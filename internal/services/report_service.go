package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

const (
	msgReportNotFound = "Report not found"
	maxReportFiles    = 5
	trackingAttempts  = 3
)

type ReportService struct {
	reports Documents[models.Report]
	media   storage.Uploader
	log     logging.Logger
	now     func() time.Time
}

func NewReportService(reports Documents[models.Report], media storage.Uploader, log logging.Logger) *ReportService {
	return &ReportService{reports: reports, media: media, log: log, now: time.Now}
}

// NewTrackingID returns an id of the form RPT-XXXXXXXX (upper-case hex).
func NewTrackingID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RPT-" + strings.ToUpper(id[:8])
}

func (s *ReportService) List(ctx context.Context) ([]models.Report, error) {
	return list(ctx, s.reports, "reports")
}

func (s *ReportService) Get(ctx context.Context, id bson.ObjectID) (*models.Report, error) {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgReportNotFound, "find report")
	}
	return r, nil
}

// Track discloses only the status of the report with trackingID.
func (s *ReportService) Track(ctx context.Context, trackingID string) (*dto.ReportTrackResponse, error) {
	r, err := s.reports.FindBy(ctx, "trackingId", strings.ToUpper(strings.TrimSpace(trackingID)))
	if err != nil {
		return nil, lookupErr(err, msgReportNotFound, "track report")
	}
	return &dto.ReportTrackResponse{TrackingID: r.TrackingID, Status: r.Status}, nil
}

// Create files a report with up to five attached images.
func (s *ReportService) Create(ctx context.Context, req dto.ReportRequest, files []*multipart.FileHeader) (*models.Report, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if len(files) > maxReportFiles {
		return nil, apperr.Validation("At most 5 files are allowed")
	}
	for _, fh := range files {
		if err := storage.Accept(fh, storage.Image); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	r := &models.Report{
		ID:            bson.NewObjectID(),
		ComplaintType: req.ComplaintType,
		Anonymous:     req.Anonymous,
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         strings.ToLower(req.Email),
		VictimName:    req.VictimName,
		VictimAge:     req.VictimAge,
		Address:       req.Address,
		District:      req.District,
		Description:   req.Description,
		Files:         []string{},
		Status:        models.DefaultReportStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, fh := range files {
		obj, err := storage.Save(ctx, s.media, "reports", fh, storage.Image)
		if err != nil {
			removeMedia(ctx, s.media, s.log, r.FileKeys...)
			return nil, err
		}
		r.Files = append(r.Files, obj.URL)
		r.FileKeys = append(r.FileKeys, obj.Key)
	}

	for attempt := 0; ; attempt++ {
		r.TrackingID = NewTrackingID()
		err := s.reports.Insert(ctx, r)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt+1 >= trackingAttempts {
			removeMedia(ctx, s.media, s.log, r.FileKeys...)
			return nil, apperr.Internal("insert report", err)
		}
	}
}

func (s *ReportService) Update(ctx context.Context, id bson.ObjectID, req dto.ReportUpdateRequest) (*models.Report, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if !models.OneOf(*req.Status, models.ReportStatuses) {
		return nil, apperr.Validation("Validation error", "status must be one of: "+strings.Join(models.ReportStatuses, ", "))
	}

	r, err := s.reports.UpdateFields(ctx, id, bson.M{"status": *req.Status})
	if err != nil {
		return nil, lookupErr(err, msgReportNotFound, "update report")
	}
	return r, nil
}

func (s *ReportService) Delete(ctx context.Context, id bson.ObjectID) error {
	r, err := s.reports.DeleteByID(ctx, id)
	if err != nil {
		return lookupErr(err, msgReportNotFound, "delete report")
	}
	removeMedia(ctx, s.media, s.log, r.FileKeys...)
	return nil
}
