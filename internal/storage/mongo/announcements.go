package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// announcementDoc — представление объявления в коллекции.
// Первичный ключ — строковый UUID в _id; порядок сырого скана — порядок _id.
type announcementDoc struct {
	ID              string    `bson:"_id"`
	Title           string    `bson:"title"`
	Content         string    `bson:"content"`
	Categories      []string  `bson:"categories"`
	Status          string    `bson:"status"`
	PublicationDate time.Time `bson:"publication_date"`
	LastUpdate      time.Time `bson:"last_update"`
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toDoc(a models.Announcement) announcementDoc {
	return announcementDoc{
		ID:              a.ID,
		Title:           a.Title,
		Content:         a.Content,
		Categories:      a.Categories,
		Status:          string(a.Status),
		PublicationDate: toMS(a.PublicationDate),
		LastUpdate:      toMS(a.LastUpdate),
	}
}

func fromDoc(d announcementDoc) models.Announcement {
	return models.Announcement{
		ID:              d.ID,
		Title:           d.Title,
		Content:         d.Content,
		Categories:      d.Categories,
		Status:          models.Status(d.Status),
		PublicationDate: d.PublicationDate.UTC(),
		LastUpdate:      d.LastUpdate.UTC(),
	}
}

// AnnouncementByID возвращает объявление по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) AnnouncementByID(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "storage/mongo/AnnouncementByID"

	var doc announcementDoc
	if err := m.announcements.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := fromDoc(doc)
	return &out, nil
}

// CreateAnnouncement сохраняет объявление условной записью: вставка проходит,
// только если ключа ещё нет. При дубликате _id — storage.ErrConflict;
// существующая запись никогда не перезаписывается молча.
func (m *Mongo) CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error) {
	const op = "storage/mongo/CreateAnnouncement"

	doc := toDoc(a)
	if _, err := m.announcements.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	out := fromDoc(doc)
	return &out, nil
}

// UpdateAnnouncement применяет частичное обновление и возвращает запись
// целиком после изменения. last_update обновляется всегда, независимо от
// состава патча; publication_date не изменяется. Если записи нет —
// storage.ErrNotFound.
func (m *Mongo) UpdateAnnouncement(ctx context.Context, id string, patch models.AnnouncementPatch) (*models.Announcement, error) {
	const op = "storage/mongo/UpdateAnnouncement"

	set := bson.D{{Key: "last_update", Value: toMS(time.Now())}}

	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}

	if patch.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *patch.Content})
	}

	if len(patch.Categories) > 0 {
		set = append(set, bson.E{Key: "categories", Value: patch.Categories})
	}

	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*patch.Status)})
	}

	var doc announcementDoc
	err := m.announcements.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := fromDoc(doc)
	return &out, nil
}

// DeleteAnnouncement удаляет запись по ключу.
// Если записи нет — storage.ErrNotFound.
func (m *Mongo) DeleteAnnouncement(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteAnnouncement"

	res, err := m.announcements.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ScanAnnouncements читает до limit СЫРЫХ документов в порядке _id, начиная
// с позиции за startKey, и применяет predicate к прочитанному окну.
// Семантика повторяет скан с пост-фильтрацией: отсечка лимита происходит до
// предиката, поэтому страница может быть короче лимита (и даже пустой) при
// наличии дальнейших совпадений. LastKey непустой, если сырой скан упёрся в
// лимит — независимо от того, сколько записей прошло предикат.
func (m *Mongo) ScanAnnouncements(ctx context.Context, limit int64, startKey string, predicate models.ScanPredicate) (*models.ScanResult, error) {
	const op = "storage/mongo/ScanAnnouncements"

	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}

	filter := bson.D{}
	if startKey != "" {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$gt", Value: startKey}}})
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := m.announcements.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var (
		raw     int64
		lastKey string
		items   []models.Announcement
	)
	for cur.Next(ctx) {
		var doc announcementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		raw++
		lastKey = doc.ID

		item := fromDoc(doc)
		if predicate == nil || predicate(item) {
			items = append(items, item)
		}
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	res := models.ScanResult{Items: items}
	// Позиция возобновления выдаётся только если окно было заполнено:
	// неполное окно означает конец таблицы.
	if raw == limit {
		res.LastKey = lastKey
	}

	return &res, nil
}
