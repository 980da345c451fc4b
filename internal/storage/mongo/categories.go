package mongo

import (
	"context"
	"fmt"

	"github.com/avoronova/announcements-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// categoryDoc — представление категории в коллекции.
type categoryDoc struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Slug        string `bson:"slug"`
	Description string `bson:"description"`
}

// CreateCategory сохраняет категорию безусловной записью.
// Уникальность slug атомарно не защищена: одновременное создание одинаковых
// slug может дать дубликаты (принятая гонка текущего дизайна).
func (m *Mongo) CreateCategory(ctx context.Context, c models.Category) (*models.Category, error) {
	const op = "storage/mongo/CreateCategory"

	doc := categoryDoc{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}

	if _, err := m.categories.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return &c, nil
}

// ListCategories возвращает все категории, отсортированные по имени.
func (m *Mongo) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "storage/mongo/ListCategories"

	cur, err := m.categories.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.Category
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		out = append(out, models.Category{
			ID:          doc.ID,
			Name:        doc.Name,
			Slug:        doc.Slug,
			Description: doc.Description,
		})
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}
