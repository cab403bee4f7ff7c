package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/models"
)

const msgHelplineNotFound = "Request not found"

type HelplineService struct {
	requests Documents[models.Helpline]
	now      func() time.Time
}

func NewHelplineService(requests Documents[models.Helpline]) *HelplineService {
	return &HelplineService{requests: requests, now: time.Now}
}

func (s *HelplineService) List(ctx context.Context) ([]models.Helpline, error) {
	return list(ctx, s.requests, "helpline requests")
}

func (s *HelplineService) Get(ctx context.Context, id bson.ObjectID) (*models.Helpline, error) {
	h, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgHelplineNotFound, "find helpline request")
	}
	return h, nil
}

func (s *HelplineService) Create(ctx context.Context, req dto.HelplineRequest) (*models.Helpline, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	h := &models.Helpline{
		ID:        bson.NewObjectID(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.requests.Insert(ctx, h); err != nil {
		return nil, apperr.Internal("insert helpline request", err)
	}
	return h, nil
}

func (s *HelplineService) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := s.requests.DeleteByID(ctx, id); err != nil {
		return lookupErr(err, msgHelplineNotFound, "delete helpline request")
	}
	return nil
}
