package client

import (
	"context"
	"fmt"
)

// Pager — постраничная навигация поверх ListAnnouncements.
//
// Контроллер ведёт карту «номер страницы -> токен»: страница 1 всегда
// соответствует пустому токену (началу сканирования), токены последующих
// страниц запоминаются по мере посещения. Смена фильтра сбрасывает
// состояние полностью — токены не переживают смену предиката.
//
// Pager НЕ безопасен для конкурентного использования: это сессионное
// состояние одного потребителя.
type Pager struct {
	client *Client
	limit  int32

	categories []string
	status     string

	page    int            // текущая страница, 1-based
	tokens  map[int]string // номер страницы -> токен для её запроса
	hasNext bool           // известен ли токен страницы page+1
}

// NewPager создаёт контроллер на первой странице с заданным лимитом.
// limit <= 0 означает «лимит по умолчанию на стороне сервера».
func NewPager(c *Client, limit int32) *Pager {
	return &Pager{
		client: c,
		limit:  limit,
		page:   1,
		tokens: map[int]string{1: ""},
	}
}

// Page возвращает номер текущей страницы (1-based).
func (p *Pager) Page() int {
	return p.page
}

// HasNext сообщает, известен ли токен следующей страницы.
// Обратите внимание: из-за фильтрации после просмотра окна записей
// следующая страница может оказаться пустой — наличие токена означает
// «сканирование не завершено», а не «дальше точно есть элементы».
func (p *Pager) HasNext() bool {
	return p.hasNext
}

// HasPrev сообщает, возможен ли переход назад.
func (p *Pager) HasPrev() bool {
	return p.page > 1
}

// SetFilter меняет активный фильтр и сбрасывает навигацию на страницу 1.
func (p *Pager) SetFilter(categories []string, status string) {
	p.categories = append([]string(nil), categories...)
	p.status = status
	p.reset()
}

// SetLimit меняет размер страницы; токены считаются недействительными,
// навигация начинается заново.
func (p *Pager) SetLimit(limit int32) {
	p.limit = limit
	p.reset()
}

// Fetch загружает текущую страницу и запоминает токен следующей.
func (p *Pager) Fetch(ctx context.Context) (*AnnouncementList, error) {
	const op = "client/Pager.Fetch"

	token, ok := p.tokens[p.page]
	if !ok {
		// Токен текущей страницы неизвестен (например, состояние
		// устарело) — отступаем к ближайшей известной позиции,
		// но никогда не отправляем выдуманный токен.
		p.retreatToKnown()
		token = p.tokens[p.page]
	}

	list, err := p.client.ListAnnouncements(ctx, ListParams{
		Limit:      p.limit,
		PageToken:  token,
		Categories: p.categories,
		Status:     p.status,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if list.NextPageToken != "" {
		p.tokens[p.page+1] = list.NextPageToken
		p.hasNext = true
	} else {
		// Сканирование завершено: токенов дальше текущей страницы нет.
		delete(p.tokens, p.page+1)
		p.hasNext = false
	}

	return list, nil
}

// Next переходит на следующую страницу и загружает её.
// Если токен следующей страницы неизвестен, контроллер перезагружает
// текущую страницу (политика: не запрашивать страницу без валидного токена).
func (p *Pager) Next(ctx context.Context) (*AnnouncementList, error) {
	if _, ok := p.tokens[p.page+1]; ok {
		p.page++
	}

	return p.Fetch(ctx)
}

// Prev переходит на предыдущую страницу и загружает её.
// На первой странице просто перезагружает её.
func (p *Pager) Prev(ctx context.Context) (*AnnouncementList, error) {
	if p.page > 1 {
		p.page--
	}

	return p.Fetch(ctx)
}

// Refresh перечитывает текущую страницу с нуля по её токену.
// Ожидается после успешной мутации (create/update/delete): контроллер
// не пытается инкрементально латать закэшированную страницу.
func (p *Pager) Refresh(ctx context.Context) (*AnnouncementList, error) {
	// Токены страниц правее текущей могли устареть после мутации.
	for n := range p.tokens {
		if n > p.page+1 {
			delete(p.tokens, n)
		}
	}

	return p.Fetch(ctx)
}

// reset возвращает контроллер в исходное состояние (страница 1, пустая карта).
func (p *Pager) reset() {
	p.page = 1
	p.tokens = map[int]string{1: ""}
	p.hasNext = false
}

// retreatToKnown отступает к ближайшей странице с известным токеном.
// Страница 1 известна всегда.
func (p *Pager) retreatToKnown() {
	for p.page > 1 {
		if _, ok := p.tokens[p.page]; ok {
			return
		}
		p.page--
	}
}
