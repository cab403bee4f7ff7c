package server

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Fazeelit/mohafizbackend/bootstrap"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/repository"
)

// Stores is one Store per collection.
type Stores struct {
	Accounts    repository.Store[models.Account]
	Books       repository.Store[models.Book]
	Videos      repository.Store[models.Video]
	Emergencies repository.Store[models.Emergency]
	Bookings    repository.Store[models.Booking]
	News        repository.Store[models.News]
	Reports     repository.Store[models.Report]
	Helplines   repository.Store[models.Helpline]
}

func MongoStores(db *mongo.Database) Stores {
	return Stores{
		Accounts:    repository.NewMongoStore[models.Account](db.Collection(repository.AccountsCollection)),
		Books:       repository.NewMongoStore[models.Book](db.Collection(repository.BooksCollection)),
		Videos:      repository.NewMongoStore[models.Video](db.Collection(repository.VideosCollection)),
		Emergencies: repository.NewMongoStore[models.Emergency](db.Collection(repository.EmergenciesCollection)),
		Bookings:    repository.NewMongoStore[models.Booking](db.Collection(repository.BookingsCollection)),
		News:        repository.NewMongoStore[models.News](db.Collection(repository.NewsCollection)),
		Reports:     repository.NewMongoStore[models.Report](db.Collection(repository.ReportsCollection)),
		Helplines:   repository.NewMongoStore[models.Helpline](db.Collection(repository.HelplineCollection)),
	}
}

// MemoryStores backs every collection with a MemoryStore carrying the same
// unique constraints EnsureIndexes creates in Mongo. Test-only.
func MemoryStores() Stores {
	u := bootstrap.MemoryUniques()
	return Stores{
		Accounts:    repository.NewMemoryStore[models.Account](u[repository.AccountsCollection]),
		Books:       repository.NewMemoryStore[models.Book](),
		Videos:      repository.NewMemoryStore[models.Video](),
		Emergencies: repository.NewMemoryStore[models.Emergency](),
		Bookings:    repository.NewMemoryStore[models.Booking](u[repository.BookingsCollection]),
		News:        repository.NewMemoryStore[models.News](),
		Reports:     repository.NewMemoryStore[models.Report](u[repository.ReportsCollection]),
		Helplines:   repository.NewMemoryStore[models.Helpline](),
	}
}

// WithTimeout wraps every store so each call is bounded by d.
func (s Stores) WithTimeout(d time.Duration) Stores {
	return Stores{
		Accounts:    repository.WithTimeout(s.Accounts, d),
		Books:       repository.WithTimeout(s.Books, d),
		Videos:      repository.WithTimeout(s.Videos, d),
		Emergencies: repository.WithTimeout(s.Emergencies, d),
		Bookings:    repository.WithTimeout(s.Bookings, d),
		News:        repository.WithTimeout(s.News, d),
		Reports:     repository.WithTimeout(s.Reports, d),
		Helplines:   repository.WithTimeout(s.Helplines, d),
	}
}
