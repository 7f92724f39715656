// Package mongostore implements the repositories on MongoDB for
// STORE_DRIVER=mongo. Multi-document writes need a replica set.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

const (
	colUsers    = "users"
	colServices = "services"
	colRules    = "availability_rules"
	colSettings = "availability_settings"
	colBookings = "bookings"
	colAudit    = "audit_logs"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the repositories rely on. The partial
// unique index on bookings is the storage guard against double booking.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colServices: {
			{Keys: bson.D{{Key: "providerId", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		colRules: {
			{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "position", Value: 1}}},
		},
		colBookings: {
			{
				Keys: bson.D{
					{Key: "providerId", Value: 1},
					{Key: "bookingDate", Value: 1},
					{Key: "startTime", Value: 1},
				},
				Options: options.Index().
					SetName("bookings_active_slot").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{
						"status": bson.M{"$in": bson.A{
							string(booking.StatusPending),
							string(booking.StatusConfirmed),
							string(booking.StatusCompleted),
						}},
					}),
			},
			{Keys: bson.D{{Key: "seekerId", Value: 1}}},
		},
		colAudit: {
			{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for col, idx := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}

// ======================================================
// Users
// ======================================================

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := s.db.Collection(colUsers).InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"name":      u.Name,
			"bio":       u.Bio,
			"timezone":  u.Timezone,
			"updatedAt": u.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.db.Collection(colUsers).FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ======================================================
// Services
// ======================================================

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = models.NewID()
	}
	now := time.Now().UTC()
	svc.CreatedAt, svc.UpdatedAt = now, now

	_, err := s.db.Collection(colServices).InsertOne(ctx, svc)
	return err
}

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.db.Collection(colServices).FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Store) UpdateService(ctx context.Context, svc *models.Service) error {
	svc.UpdatedAt = time.Now().UTC()

	res, err := s.db.Collection(colServices).UpdateOne(ctx,
		bson.M{"_id": svc.ID},
		bson.M{"$set": bson.M{
			"title":            svc.Title,
			"shortDescription": svc.ShortDescription,
			"description":      svc.Description,
			"category":         svc.Category,
			"pricing":          svc.Pricing,
			"active":           svc.Active,
			"updatedAt":        svc.UpdatedAt,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	res, err := s.db.Collection(colServices).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) ListServices(ctx context.Context, f catalog.Filter) ([]models.Service, error) {
	filter := bson.M{}
	if f.ProviderID != "" {
		filter["providerId"] = f.ProviderID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.ActiveOnly {
		filter["active"] = true
	}
	if f.Query != "" {
		re := containsRegex(f.Query)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"shortDescription": re},
			bson.M{"description": re},
		}
	}

	cur, err := s.db.Collection(colServices).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	services := []models.Service{}
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func containsRegex(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}

// ======================================================
// Availability
// ======================================================

func (s *Store) ListRules(ctx context.Context, providerID string) ([]availability.Rule, error) {
	cur, err := s.db.Collection(colRules).Find(ctx,
		bson.M{"providerId": providerID},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var rows []models.AvailabilityRule
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return availability.RulesFromModels(rows)
}

func (s *Store) ReplaceAllRules(ctx context.Context, providerID string, rules []availability.Rule) error {
	docs := make([]interface{}, 0, len(rules))
	now := time.Now().UTC()
	for i, rule := range rules {
		m := availability.RuleToModel(providerID, rule)
		m.ID = models.NewID()
		m.Position = i
		m.CreatedAt = now
		docs = append(docs, m)
	}

	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		col := s.db.Collection(colRules)
		if _, err := col.DeleteMany(sc, bson.M{"providerId": providerID}); err != nil {
			return fmt.Errorf("delete rules: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := col.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert rules: %w", err)
		}
		return nil
	})
}

func (s *Store) GetSettings(ctx context.Context, providerID string) (availability.Settings, error) {
	var row models.AvailabilitySettings
	err := s.db.Collection(colSettings).FindOne(ctx, bson.M{"_id": providerID}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return availability.Settings{}, availability.ErrSettingsNotFound
	}
	if err != nil {
		return availability.Settings{}, err
	}
	return availability.SettingsFromModel(row), nil
}

func (s *Store) SetSettings(ctx context.Context, providerID string, st availability.Settings) error {
	row := availability.SettingsToModel(providerID, st)
	row.UpdatedAt = time.Now().UTC()

	_, err := s.db.Collection(colSettings).ReplaceOne(ctx,
		bson.M{"_id": providerID}, row, options.Replace().SetUpsert(true))
	return err
}

// ======================================================
// Bookings
// ======================================================

func (s *Store) ListActiveBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{
		"providerId":  providerID,
		"bookingDate": date,
		"status":      bson.M{"$ne": string(booking.StatusCancelled)},
	}, bson.D{{Key: "startTime", Value: 1}})
}

// CreateBooking checks for overlapping active bookings and inserts in one
// transaction. The partial unique index rejects a concurrent insert of the
// same start.
func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = models.NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.UpdatedAt = b.CreatedAt

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		col := s.db.Collection(colBookings)

		n, err := col.CountDocuments(sc, bson.M{
			"providerId": b.ProviderID,
			"status":     bson.M{"$ne": string(booking.StatusCancelled)},
			"startAt":    bson.M{"$lt": b.EndAt},
			"endAt":      bson.M{"$gt": b.StartAt},
		})
		if err != nil {
			return err
		}
		if n > 0 {
			return booking.ErrSlotTaken
		}

		_, err = col.InsertOne(sc, b)
		return err
	})

	if mongo.IsDuplicateKeyError(err) {
		return booking.ErrSlotTaken
	}
	return err
}

func (s *Store) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := s.db.Collection(colBookings).FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

var statusTimestampField = map[booking.Status]string{
	booking.StatusConfirmed: "confirmedAt",
	booking.StatusCompleted: "completedAt",
	booking.StatusCancelled: "cancelledAt",
}

func (s *Store) SetStatus(ctx context.Context, id string, from, to booking.Status, at time.Time) error {
	set := bson.M{"status": string(to), "updatedAt": at}
	if field, ok := statusTimestampField[to]; ok {
		set[field] = at
	}

	res, err := s.db.Collection(colBookings).UpdateOne(ctx,
		bson.M{"_id": id, "status": string(from)},
		bson.M{"$set": set})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		if _, err := s.GetBooking(ctx, id); err != nil {
			return err
		}
		return booking.ErrStaleStatus
	}
	return nil
}

func (s *Store) ListBookingsForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"providerId": providerID}, newestFirst)
}

func (s *Store) ListBookingsForSeeker(ctx context.Context, seekerID string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"seekerId": seekerID}, newestFirst)
}

var newestFirst = bson.D{{Key: "bookingDate", Value: -1}, {Key: "startTime", Value: -1}}

func (s *Store) findBookings(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	cur, err := s.db.Collection(colBookings).Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ======================================================
// Audit
// ======================================================

func (s *Store) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	if l.ID == "" {
		l.ID = models.NewID()
	}
	_, err := s.db.Collection(colAudit).InsertOne(ctx, l)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	filter := bson.M{"providerId": q.ProviderID}
	if q.Action != "" {
		filter["action"] = q.Action
	}
	if q.Entity != "" {
		filter["entity"] = q.Entity
	}

	created := bson.M{}
	if !q.From.IsZero() {
		created["$gte"] = q.From
	}
	if !q.To.IsZero() {
		created["$lt"] = q.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	col := s.db.Collection(colAudit)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(q.Offset))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ======================================================
// Transactions
// ======================================================

func (s *Store) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

var (
	_ user.Repository         = (*Store)(nil)
	_ catalog.Repository      = (*Store)(nil)
	_ availability.Repository = (*Store)(nil)
	_ booking.Repository      = (*Store)(nil)
	_ audit.Store             = (*Store)(nil)
)
