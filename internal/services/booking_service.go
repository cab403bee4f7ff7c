package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
)

const (
	msgBookingNotFound  = "Booking not found"
	msgBookingDuplicate = "Booking with this CNIC already exists"
)

type BookingService struct {
	bookings Documents[models.Booking]
	now      func() time.Time
}

func NewBookingService(bookings Documents[models.Booking]) *BookingService {
	return &BookingService{bookings: bookings, now: time.Now}
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return list(ctx, s.bookings, "bookings")
}

func (s *BookingService) Get(ctx context.Context, id bson.ObjectID) (*models.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBookingNotFound, "find booking")
	}
	return b, nil
}

// Create books a service. A CNIC may hold one booking; the unique index
// settles concurrent submissions.
func (s *BookingService) Create(ctx context.Context, req dto.BookingRequest) (*models.Booking, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	var details []string
	if !models.OneOf(req.Qualification, models.Qualifications) {
		details = append(details, "qualification must be one of: "+strings.Join(models.Qualifications, ", "))
	}
	if !models.OneOf(req.Service, models.BookingServices) {
		details = append(details, "service must be one of: "+strings.Join(models.BookingServices, ", "))
	}
	if len(details) > 0 {
		return nil, apperr.Validation("Validation error", details...)
	}

	switch _, err := s.bookings.FindBy(ctx, "cnic", req.CNIC); {
	case err == nil:
		return nil, apperr.Conflict(msgBookingDuplicate)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Internal("find booking by cnic", err)
	}

	now := s.now().UTC()
	b := &models.Booking{
		ID:            bson.NewObjectID(),
		Name:          req.Name,
		FatherName:    req.FatherName,
		CNIC:          req.CNIC,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Qualification: req.Qualification,
		Service:       req.Service,
		Address:       req.Address,
		Province:      req.Province,
		Division:      req.Division,
		District:      req.District,
		Tehsil:        req.Tehsil,
		Status:        models.BookingStatuses[0],
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.bookings.Insert(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict(msgBookingDuplicate)
		}
		return nil, apperr.Internal("insert booking", err)
	}
	return b, nil
}

func (s *BookingService) Update(ctx context.Context, id bson.ObjectID, req dto.BookingUpdateRequest) (*models.Booking, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if req.Status != nil && !models.OneOf(*req.Status, models.BookingStatuses) {
		return nil, apperr.Validation("Validation error", "status must be one of: "+strings.Join(models.BookingStatuses, ", "))
	}

	set := bson.M{}
	setIf(set, "status", req.Status)
	setIf(set, "phone", req.Phone)
	setIf(set, "whatsapp", req.WhatsApp)
	setIf(set, "address", req.Address)
	if len(set) == 0 {
		return nil, apperr.Validation("No updatable fields provided")
	}

	b, err := s.bookings.UpdateFields(ctx, id, set)
	if err != nil {
		return nil, lookupErr(err, msgBookingNotFound, "update booking")
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := s.bookings.DeleteByID(ctx, id); err != nil {
		return lookupErr(err, msgBookingNotFound, "delete booking")
	}
	return nil
}
