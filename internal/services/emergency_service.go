package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/models"
)

const msgEmergencyNotFound = "Emergency not found"

type EmergencyService struct {
	emergencies Documents[models.Emergency]
	now         func() time.Time
}

func NewEmergencyService(emergencies Documents[models.Emergency]) *EmergencyService {
	return &EmergencyService{emergencies: emergencies, now: time.Now}
}

func (s *EmergencyService) List(ctx context.Context) ([]models.Emergency, error) {
	return list(ctx, s.emergencies, "emergencies")
}

func (s *EmergencyService) Get(ctx context.Context, id bson.ObjectID) (*models.Emergency, error) {
	e, err := s.emergencies.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgEmergencyNotFound, "find emergency")
	}
	return e, nil
}

// Create raises an alert on behalf of reportedBy, filling the defaults the
// mobile client relies on.
func (s *EmergencyService) Create(ctx context.Context, req dto.EmergencyRequest, reportedBy *bson.ObjectID) (*models.Emergency, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := &models.Emergency{
		ID:            bson.NewObjectID(),
		EmergencyType: req.EmergencyType,
		Location:      orDefault(req.Location, models.DefaultEmergencyLocation),
		FullAddress:   req.FullAddress,
		CurrentTime:   req.CurrentTime,
		Details:       orDefault(req.Details, models.DefaultEmergencyDetails),
		Priority:      orDefault(req.Priority, models.DefaultEmergencyPriority),
		Status:        models.DefaultEmergencyStatus,
		ReportedBy:    reportedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.CurrentDate != "" {
		d, ok := parseDate(req.CurrentDate)
		if !ok {
			return nil, apperr.Validation("Validation error", "currentDate must be a date")
		}
		e.CurrentDate = &d
	}

	if err := s.emergencies.Insert(ctx, e); err != nil {
		return nil, apperr.Internal("insert emergency", err)
	}
	return e, nil
}

func (s *EmergencyService) Update(ctx context.Context, id bson.ObjectID, req dto.EmergencyUpdateRequest) (*models.Emergency, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}

	set := bson.M{}
	setIf(set, "status", req.Status)
	setIf(set, "priority", req.Priority)
	setIf(set, "details", req.Details)
	setIf(set, "location", req.Location)
	setIf(set, "fullAddress", req.FullAddress)
	if len(set) == 0 {
		return nil, apperr.Validation("No updatable fields provided")
	}

	e, err := s.emergencies.UpdateFields(ctx, id, set)
	if err != nil {
		return nil, lookupErr(err, msgEmergencyNotFound, "update emergency")
	}
	return e, nil
}

func (s *EmergencyService) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := s.emergencies.DeleteByID(ctx, id); err != nil {
		return lookupErr(err, msgEmergencyNotFound, "delete emergency")
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
