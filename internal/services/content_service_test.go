package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/apperr"
	"github.com/Fazeelit/mohafizbackend/internal/logging"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
	"github.com/Fazeelit/mohafizbackend/internal/storage"
)

func upload(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func collection[T any](uniques ...[]string) *repository.Collection[T] {
	return repository.NewCollection[T](repository.NewMemoryStore[T](uniques...))
}

func TestBookService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	media := storage.NewMemory("https://cdn.example")
	svc := NewBookService(collection[models.Book](), media, logging.Nop())
	admin := bson.NewObjectID()

	_, err := svc.Create(ctx, dto.BookRequest{Title: "T", Author: "A", Category: "C", Language: "L"}, nil, &admin)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err), "file is required")

	_, err = svc.Create(ctx, dto.BookRequest{Title: "T", Author: "A", Category: "C", Language: "L"}, upload(t, "b.png", "image/png", 4), &admin)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err), "only PDFs")

	book, err := svc.Create(ctx, dto.BookRequest{Title: "T", Author: "A", Category: "C", Language: "L", Status: "ACTIVE"}, upload(t, "b.pdf", "application/pdf", 4), &admin)
	require.NoError(t, err)
	assert.Equal(t, "active", book.Status)
	assert.Equal(t, &admin, book.CreatedBy)
	assert.True(t, media.Has(book.FileKey))
	assert.Equal(t, "https://cdn.example/"+book.FileKey, book.FileURL)

	for i := 1; i <= 2; i++ {
		b, err := svc.Download(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), b.Downloads)
	}

	bogus := "bogus"
	updated, err := svc.Update(ctx, book.ID, dto.BookUpdateRequest{Status: &bogus}, upload(t, "c.pdf", "application/pdf", 4))
	require.NoError(t, err)
	assert.Equal(t, "available", updated.Status)
	assert.NotEqual(t, book.FileKey, updated.FileKey)
	assert.False(t, media.Has(book.FileKey), "old pdf removed")
	assert.True(t, media.Has(updated.FileKey))

	require.NoError(t, svc.Delete(ctx, book.ID))
	assert.Equal(t, 0, media.Len())
	_, err = svc.Get(ctx, book.ID)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestBookService_StorageDisabled(t *testing.T) {
	svc := NewBookService(collection[models.Book](), storage.Disabled{}, logging.Nop())

	_, err := svc.Create(context.Background(), dto.BookRequest{Title: "T", Author: "A", Category: "C", Language: "L"}, upload(t, "b.pdf", "application/pdf", 4), nil)
	assert.Equal(t, apperr.KindUnavailable, kindOf(t, err))
}

func TestVideoService_DefaultsAndViews(t *testing.T) {
	ctx := context.Background()
	svc := NewVideoService(collection[models.Video](), storage.NewMemory("https://cdn.example"), logging.Nop())

	v, err := svc.Create(ctx, dto.VideoRequest{Title: "T", Instructor: "I", Category: "C", Duration: "10:00"}, upload(t, "v.mp4", "video/mp4", 8))
	require.NoError(t, err)
	assert.Equal(t, "pending", v.Status)

	viewed, err := svc.View(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), viewed.Views)

	_, err = svc.Update(ctx, v.ID, dto.VideoUpdateRequest{}, nil)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	deleted, err := svc.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, deleted.ID)
}

func TestEmergencyService_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := NewEmergencyService(collection[models.Emergency]())
	user := bson.NewObjectID()

	_, err := svc.Create(ctx, dto.EmergencyRequest{FullAddress: "Street 1"}, &user)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	e, err := svc.Create(ctx, dto.EmergencyRequest{EmergencyType: "Fire", FullAddress: "Street 1", CurrentDate: "2025-01-02"}, &user)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultEmergencyLocation, e.Location)
	assert.Equal(t, models.DefaultEmergencyDetails, e.Details)
	assert.Equal(t, models.DefaultEmergencyPriority, e.Priority)
	assert.Equal(t, models.DefaultEmergencyStatus, e.Status)
	assert.Equal(t, &user, e.ReportedBy)
	require.NotNil(t, e.CurrentDate)
	assert.Equal(t, 2025, e.CurrentDate.Year())

	_, err = svc.Create(ctx, dto.EmergencyRequest{EmergencyType: "Fire", FullAddress: "x", CurrentDate: "yesterday"}, &user)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	resolved := "Resolved"
	updated, err := svc.Update(ctx, e.ID, dto.EmergencyUpdateRequest{Status: &resolved})
	require.NoError(t, err)
	assert.Equal(t, "Resolved", updated.Status)
	assert.Equal(t, "Fire", updated.EmergencyType)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func validBooking(cnic string) dto.BookingRequest {
	return dto.BookingRequest{
		Name: "N", FatherName: "F", CNIC: cnic, Phone: "03001234567", WhatsApp: "03001234567",
		Qualification: "BA", Service: "Child Counseling", Address: "A", Province: "Punjab",
		Division: "Lahore", District: "Lahore", Tehsil: "City",
	}
}

func TestBookingService(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(collection[models.Booking]([]string{"cnic"}))

	b, err := svc.Create(ctx, validBooking("3520212345671"))
	require.NoError(t, err)
	assert.Equal(t, "Pending", b.Status)

	_, err = svc.Create(ctx, validBooking("3520212345671"))
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, e.Kind)
	assert.Equal(t, "Booking with this CNIC already exists", e.Message)

	bad := validBooking("1")
	bad.Qualification = "PhD"
	bad.Service = "Other"
	_, err = svc.Create(ctx, bad)
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Len(t, e.Details, 2)

	done := "Completed"
	updated, err := svc.Update(ctx, b.ID, dto.BookingUpdateRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, "Completed", updated.Status)

	unknown := "Cancelled"
	_, err = svc.Update(ctx, b.ID, dto.BookingUpdateRequest{Status: &unknown})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
}

func TestNewsService(t *testing.T) {
	ctx := context.Background()
	media := storage.NewMemory("https://cdn.example")
	svc := NewNewsService(collection[models.News](), media, logging.Nop())

	n, err := svc.Create(ctx, dto.NewsRequest{Title: "T", Description: "D"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNewsCategory, n.Category)
	assert.Equal(t, models.DefaultNewsIcon, n.Icon)
	assert.Equal(t, models.DefaultNewsColor, n.Color)
	assert.Equal(t, models.DefaultNewsLink, n.Link)
	assert.False(t, n.Date.IsZero())
	assert.Empty(t, n.Image)

	_, err = svc.Create(ctx, dto.NewsRequest{Title: "T", Description: "D", Category: "gossip"}, nil)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	withImage, err := svc.Create(ctx, dto.NewsRequest{Title: "T", Description: "D", Category: "Events"}, upload(t, "i.jpg", "image/jpeg", 4))
	require.NoError(t, err)
	assert.Equal(t, "events", withImage.Category)
	assert.True(t, media.Has(withImage.ImageKey))

	require.NoError(t, svc.Delete(ctx, withImage.ID))
	assert.False(t, media.Has(withImage.ImageKey))
}

func validReport() dto.ReportRequest {
	return dto.ReportRequest{
		ComplaintType: "Abuse", Anonymous: true, Name: "Reporter", Phone: "03001234567",
		VictimName: "V", VictimAge: 10, Address: "A", District: "D", Description: "desc",
	}
}

func TestReportService(t *testing.T) {
	ctx := context.Background()
	media := storage.NewMemory("https://cdn.example")
	svc := NewReportService(collection[models.Report]([]string{"trackingId"}), media, logging.Nop())

	r, err := svc.Create(ctx, validReport(), []*multipart.FileHeader{upload(t, "1.png", "image/png", 4), upload(t, "2.jpg", "image/jpeg", 4)})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^RPT-[0-9A-F]{8}$`), r.TrackingID)
	assert.Empty(t, r.Name, "anonymous reports drop the reporter")
	assert.Len(t, r.Files, 2)
	assert.Equal(t, "Pending", r.Status)

	tracked, err := svc.Track(ctx, " "+r.TrackingID+" ")
	require.NoError(t, err)
	assert.Equal(t, dto.ReportTrackResponse{TrackingID: r.TrackingID, Status: "Pending"}, *tracked)

	status := "In Progress"
	_, err = svc.Update(ctx, r.ID, dto.ReportUpdateRequest{Status: &status})
	require.NoError(t, err)
	tracked, err = svc.Track(ctx, r.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", tracked.Status)

	closed := "Closed"
	_, err = svc.Update(ctx, r.ID, dto.ReportUpdateRequest{Status: &closed})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.Equal(t, 0, media.Len())

	_, err = svc.Track(ctx, "RPT-00000000")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestReportService_FileLimits(t *testing.T) {
	ctx := context.Background()
	media := storage.NewMemory("https://cdn.example")
	svc := NewReportService(collection[models.Report](), media, logging.Nop())

	files := make([]*multipart.FileHeader, 6)
	for i := range files {
		files[i] = upload(t, "f.png", "image/png", 1)
	}
	_, err := svc.Create(ctx, validReport(), files)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	_, err = svc.Create(ctx, validReport(), []*multipart.FileHeader{upload(t, "f.png", "image/png", 1), upload(t, "f.pdf", "application/pdf", 1)})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Equal(t, 0, media.Len(), "nothing is uploaded when any file is rejected")
}

func TestNewTrackingID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := NewTrackingID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestHelplineService(t *testing.T) {
	ctx := context.Background()
	svc := NewHelplineService(collection[models.Helpline]())

	_, err := svc.Create(ctx, dto.HelplineRequest{Name: "N", Phone: "P", Email: "bad", Subject: "S", Message: "M"})
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	h, err := svc.Create(ctx, dto.HelplineRequest{Name: "N", Phone: "P", Email: "N@X.com", Subject: "S", Message: "M"})
	require.NoError(t, err)
	assert.Equal(t, "n@x.com", h.Email)

	got, err := svc.Get(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "S", got.Subject)

	require.NoError(t, svc.Delete(ctx, h.ID))
	err = svc.Delete(ctx, h.ID)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Request not found", e.Message)
}
