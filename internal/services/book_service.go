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

const msgBookNotFound = "Book not found"

type BookService struct {
	books Documents[models.Book]
	media storage.Uploader
	log   logging.Logger
	now   func() time.Time
}

func NewBookService(books Documents[models.Book], media storage.Uploader, log logging.Logger) *BookService {
	return &BookService{books: books, media: media, log: log, now: time.Now}
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return list(ctx, s.books, "books")
}

func (s *BookService) Get(ctx context.Context, id bson.ObjectID) (*models.Book, error) {
	b, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBookNotFound, "find book")
	}
	return b, nil
}

// Download counts a download and returns the book with its new count.
func (s *BookService) Download(ctx context.Context, id bson.ObjectID) (*models.Book, error) {
	b, err := s.books.Increment(ctx, id, "downloads")
	if err != nil {
		return nil, lookupErr(err, msgBookNotFound, "count download")
	}
	return b, nil
}

// Create uploads the PDF and stores the book. createdBy is the admin
// performing the upload.
func (s *BookService) Create(ctx context.Context, req dto.BookRequest, file *multipart.FileHeader, createdBy *bson.ObjectID) (*models.Book, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperr.Validation("PDF file is required")
	}

	obj, err := storage.Save(ctx, s.media, "books", file, storage.PDF)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b := &models.Book{
		ID:        bson.NewObjectID(),
		Title:     req.Title,
		Author:    req.Author,
		Category:  req.Category,
		Language:  req.Language,
		FileURL:   obj.URL,
		FileKey:   obj.Key,
		Status:    normalizeStatus(req.Status, models.BookStatuses, models.BookStatuses[0]),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.books.Insert(ctx, b); err != nil {
		removeMedia(ctx, s.media, s.log, obj.Key)
		return nil, apperr.Internal("insert book", err)
	}
	return b, nil
}

// Update applies the allow-listed fields and, when file is given, replaces
// the stored PDF.
func (s *BookService) Update(ctx context.Context, id bson.ObjectID, req dto.BookUpdateRequest, file *multipart.FileHeader) (*models.Book, error) {
	if err := dto.Validate(&req); err != nil {
		return nil, err
	}
	current, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, msgBookNotFound, "find book")
	}

	set := bson.M{}
	setIf(set, "title", req.Title)
	setIf(set, "author", req.Author)
	setIf(set, "category", req.Category)
	setIf(set, "language", req.Language)
	if req.Status != nil {
		set["status"] = normalizeStatus(*req.Status, models.BookStatuses, models.BookStatuses[0])
	}

	var uploaded string
	if file != nil {
		obj, err := storage.Save(ctx, s.media, "books", file, storage.PDF)
		if err != nil {
			return nil, err
		}
		uploaded = obj.Key
		set["file"] = obj.URL
		set["file_key"] = obj.Key
	}
	if len(set) == 0 {
		return nil, apperr.Validation("No updatable fields provided")
	}

	b, err := s.books.UpdateFields(ctx, id, set)
	if err != nil {
		removeMedia(ctx, s.media, s.log, uploaded)
		return nil, lookupErr(err, msgBookNotFound, "update book")
	}
	if uploaded != "" {
		removeMedia(ctx, s.media, s.log, current.FileKey)
	}
	return b, nil
}

func (s *BookService) Delete(ctx context.Context, id bson.ObjectID) error {
	b, err := s.books.DeleteByID(ctx, id)
	if err != nil {
		return lookupErr(err, msgBookNotFound, "delete book")
	}
	removeMedia(ctx, s.media, s.log, b.FileKey)
	return nil
}
