package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/avoronova/announcements-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	announcementsCollection = "announcements"
	categoriesCollection    = "categories"
	defaultDBName           = "announcements"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	announcements *mongodriver.Collection
	categories    *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		announcements: db.Collection(announcementsCollection),
		categories:    db.Collection(categoriesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы announcements-сервиса:
//   - categories.name — листинг категорий по имени;
//   - categories.slug — точечный поиск по slug (НЕ уникальный: уникальность
//     slug в текущем дизайне только рекомендательная).
//
// Скану объявлений достаточно встроенного индекса по _id.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_asc"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_idx"),
		},
	}

	_, err := m.categories.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}
	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
