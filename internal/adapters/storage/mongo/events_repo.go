package mongo

import (
	"context"
	"strings"
	"time"

	"eventhorizon/internal/domain/events"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo struct {
	col *mongo.Collection
}

func NewEventsRepo(db *mongo.Database) *EventsRepo {
	return &EventsRepo{col: db.Collection("events")}
}

// eventDoc es el documento persistido. Usamos el id de dominio como _id.
type eventDoc struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Organizer   string `bson:"organizer"`

	Date      string `bson:"date"`
	StartTime string `bson:"start_time"`
	EndTime   string `bson:"end_time"`
	Timezone  string `bson:"timezone,omitempty"`

	LocationType string `bson:"location_type"`
	City         string `bson:"city,omitempty"`
	Country      string `bson:"country,omitempty"`
	Venue        string `bson:"venue,omitempty"`

	Tags     []string `bson:"tags,omitempty"`
	Category string   `bson:"category"`

	Price       string `bson:"price"`
	PriceAmount string `bson:"price_amount,omitempty"`

	Views       int64  `bson:"views"`
	Status      string `bson:"status"`
	SubmittedBy string `bson:"submitted_by"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.col.InsertOne(ctx, toDoc(e))
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, ErrNotFound
	}

	var doc eventDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return events.Event{}, ErrNotFound
	}
	if err != nil {
		return events.Event{}, err
	}
	return fromDoc(doc), nil
}

func (r *EventsRepo) ListByStatus(ctx context.Context, status events.EventStatus) ([]events.Event, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.list(ctx, filter)
}

func (r *EventsRepo) ListBySubmitter(ctx context.Context, userID string) ([]events.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	return r.list(ctx, bson.M{"submitted_by": userID})
}

func (r *EventsRepo) UpdateStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": strings.TrimSpace(id)},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventsRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	after := options.After
	res := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": strings.TrimSpace(id)},
		bson.M{"$inc": bson.M{"views": 1}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	)

	var doc eventDoc
	if err := res.Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return doc.Views, nil
}

func (r *EventsRepo) list(ctx context.Context, filter bson.M) ([]events.Event, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]events.Event, 0)
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, fromDoc(doc))
	}
	return out, cur.Err()
}

func toDoc(e events.Event) eventDoc {
	return eventDoc{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Organizer:    e.Organizer,
		Date:         e.Date,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Timezone:     e.Timezone,
		LocationType: string(e.LocationType),
		City:         e.City,
		Country:      e.Country,
		Venue:        e.Venue,
		Tags:         e.Tags,
		Category:     e.Category,
		Price:        string(e.Price),
		PriceAmount:  e.PriceAmount,
		Views:        e.Views,
		Status:       string(e.Status),
		SubmittedBy:  e.SubmittedBy,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func fromDoc(d eventDoc) events.Event {
	return events.Event{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Organizer:    d.Organizer,
		Date:         d.Date,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		Timezone:     d.Timezone,
		LocationType: events.LocationType(d.LocationType),
		City:         d.City,
		Country:      d.Country,
		Venue:        d.Venue,
		Tags:         d.Tags,
		Category:     d.Category,
		Price:        events.PriceTier(d.Price),
		PriceAmount:  d.PriceAmount,
		Views:        d.Views,
		Status:       events.EventStatus(d.Status),
		SubmittedBy:  d.SubmittedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
