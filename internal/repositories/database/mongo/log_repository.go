// Package mongo stores the parking log in a MongoDB collection. Event types
// use the GIRIS/CIKIS wire codes of the first mobile release; amounts are
// decimal strings rather than that release's floating-point price.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/repositories"
	"github.com/SscSPs/parkmate_app/internal/utils/id"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// Collection name constants.
const colLogs = "logs"

// logRecordDoc is the stored document. Amounts are decimal strings.
type logRecordDoc struct {
	ID        string    `bson:"_id"`
	Type      string    `bson:"type"`
	Pin       string    `bson:"pin"`
	Timestamp time.Time `bson:"timestamp"`
	Duration  *int64    `bson:"duration,omitempty"`
	Amount    *string   `bson:"amount,omitempty"`
}

func toDoc(m models.LogRecord) logRecordDoc {
	doc := logRecordDoc{
		ID:        m.RecordID,
		Type:      m.EventType,
		Pin:       m.Pin,
		Timestamp: m.Timestamp,
		Duration:  m.DurationMinutes,
	}
	if m.Amount != nil {
		s := m.Amount.String()
		doc.Amount = &s
	}
	return doc
}

func fromDoc(doc logRecordDoc) (models.LogRecord, error) {
	m := models.LogRecord{
		RecordID:        doc.ID,
		EventType:       doc.Type,
		Pin:             doc.Pin,
		Timestamp:       doc.Timestamp,
		DurationMinutes: doc.Duration,
	}
	if doc.Amount != nil {
		a, err := decimal.NewFromString(*doc.Amount)
		if err != nil {
			return models.LogRecord{}, fmt.Errorf("amount %q: %w", *doc.Amount, err)
		}
		m.Amount = &a
	}
	return m, nil
}

// LogRepository implements the log store over a MongoDB collection.
type LogRepository struct {
	col *mongo.Collection
}

// NewLogRepository returns a store over db's logs collection.
func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{col: db.Collection(colLogs)}
}

var _ portsrepo.LogStore = (*LogRepository)(nil)

// Migrate creates the indexes used by the history views.
func (r *LogRepository) Migrate(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "pin", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("parkmate/mongo: migrate %s indexes: %w", colLogs, err)
	}
	return nil
}

func (r *LogRepository) Append(ctx context.Context, rec domain.LogRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.RecordID = id.New()
	if _, err := r.col.InsertOne(ctx, toDoc(mapping.ToModelLogRecord(rec))); err != nil {
		return "", fmt.Errorf("parkmate/mongo: insert log record: %w", err)
	}
	return rec.RecordID, nil
}

func (r *LogRepository) ReadAll(ctx context.Context) ([]domain.LogRecord, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("parkmate/mongo: find log records: %w", err)
	}
	defer cur.Close(ctx)

	var stored []models.LogRecord
	for cur.Next(ctx) {
		var doc logRecordDoc
		if err := cur.Decode(&doc); err != nil {
			repositories.SkipMalformed(ctx, cur.Current.Lookup("_id").String(), err)
			continue
		}
		m, err := fromDoc(doc)
		if err != nil {
			repositories.SkipMalformed(ctx, doc.ID, err)
			continue
		}
		stored = append(stored, m)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("parkmate/mongo: iterate log records: %w", err)
	}
	return repositories.DecodeLogRecords(ctx, stored), nil
}

func (r *LogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("parkmate/mongo: delete log records: %w", err)
	}
	return nil
}
