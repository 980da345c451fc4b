package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/avoronova/announcements-service/internal/models"
	"github.com/avoronova/announcements-service/pkg/log"
)

// ListAnnouncements — страница объявлений поверх сырого скана хранилища.
//
// Алгоритм:
//  1. лимит приводится к [Default, Max];
//  2. page_token (если задан) декодируется в позицию возобновления скана;
//  3. хранилище читает до лимита СЫРЫХ записей и применяет предикат фильтра
//     к прочитанному окну — страница может быть короче лимита (и даже
//     пустой) при наличии дальнейших совпадений;
//  4. записи страницы сортируются по publication_date по убыванию;
//  5. позиция возобновления (если есть) кодируется в NextPageToken.
//
// Порядок гарантирован только внутри страницы: каждая страница сортируется
// независимо над произвольным подмножеством неупорядоченного скана, глобальной
// хронологии между страницами нет (известное ограничение скан-пагинации).
// Токен валиден только для того фильтра, с которым был выдан; смена фильтра
// требует начать с пустого токена.
//
// Ошибки:
//   - ErrInvalidToken — битый page_token, пагинацию начинать заново;
//   - ErrUnavailable — отказ хранилища (внутри не ретраится).
func (s *Service) ListAnnouncements(ctx context.Context, opts models.ListOptions) (*models.Page, error) {
	const op = "service/listing/ListAnnouncements"

	lg := log.From(ctx).With("op", op)

	limit := s.limitOrDefault(opts.Limit)

	var startKey string
	if strings.TrimSpace(opts.PageToken) != "" {
		key, err := decodePageToken(opts.PageToken)
		if err != nil {
			lg.Warn("invalid page token")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		startKey = key
	}

	predicate := compileFilter(opts.Filter)

	res, err := s.storage.ScanAnnouncements(ctx, limit, startKey, predicate)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			lg.Warn("scan cancelled", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
		}

		lg.Error("storage error on ScanAnnouncements", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}

	items := res.Items
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublicationDate.After(items[j].PublicationDate)
	})

	page := models.Page{Items: items}
	if res.LastKey != "" {
		page.NextPageToken = encodePageToken(res.LastKey)
	}

	return &page, nil
}
