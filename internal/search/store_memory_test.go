// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// memoryRepository is an in-memory [Repository] evaluating predicates with Matches.
type memoryRepository struct {
	mu sync.Mutex

	records   []Record
	favorites map[string]map[string]struct{}
	logs      []LogEntry
	users     []UserHit
	lists     []ListHit

	queryErr     error
	favoriteErr  error
	appendErr    error
	directoryErr error

	queryCalls    int
	favoriteCalls int
	suggestCalls  int
}

var _ Repository = (*memoryRepository)(nil)

func newMemoryRepository(records ...Record) *memoryRepository {
	return &memoryRepository{
		records:   records,
		favorites: make(map[string]map[string]struct{}),
	}
}

func (repository *memoryRepository) favorite(userID string, contentIDs ...string) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.favorites[userID] == nil {
		repository.favorites[userID] = make(map[string]struct{})
	}
	for _, id := range contentIDs {
		repository.favorites[userID][id] = struct{}{}
	}
}

func (repository *memoryRepository) setRecords(records ...Record) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.records = records
}

func (repository *memoryRepository) queries() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.queryCalls
}

func (repository *memoryRepository) entries() []LogEntry {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return slices.Clone(repository.logs)
}

func (repository *memoryRepository) Query(_ context.Context, predicates []Predicate, order SortOrder, offset, limit int) ([]Record, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.queryCalls++
	if repository.queryErr != nil {
		return nil, 0, repository.queryErr
	}

	var matched []Record
	for _, record := range repository.records {
		if matchesAll(record, predicates) {
			matched = append(matched, record)
		}
	}
	slices.SortFunc(matched, order.Compare)

	return window(matched, offset, limit), len(matched), nil
}

func (repository *memoryRepository) FavoriteState(_ context.Context, requesterID string, ids []string) (map[string]struct{}, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.favoriteCalls++
	if repository.favoriteErr != nil {
		return nil, repository.favoriteErr
	}

	set := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := repository.favorites[requesterID][id]; ok {
			set[id] = struct{}{}
		}
	}
	return set, nil
}

func (repository *memoryRepository) AppendQueryLog(_ context.Context, entry LogEntry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.appendErr != nil {
		return repository.appendErr
	}
	repository.logs = append(repository.logs, entry)
	return nil
}

// CountQueries returns every group unsorted; ranking is the aggregator's job.
func (repository *memoryRepository) CountQueries(_ context.Context, since time.Time, _ int) ([]QueryCount, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	counts := make(map[string]int)
	for _, entry := range repository.logs {
		if entry.CreatedAt.Before(since) || strings.TrimSpace(entry.Query) == "" {
			continue
		}
		counts[entry.Query]++
	}

	var result []QueryCount
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	return result, nil
}

func (repository *memoryRepository) SuggestContent(_ context.Context, prefix string, limit int) ([]Record, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.suggestCalls++
	needle := foldCase(prefix)

	var matched []Record
	for _, record := range repository.records {
		if strings.HasPrefix(foldCase(record.Title), needle) || strings.HasPrefix(foldCase(record.Author), needle) {
			matched = append(matched, record)
		}
	}
	slices.SortFunc(matched, ResolveSort(SortPopularity, false).Compare)

	return capped(matched, limit), nil
}

func (repository *memoryRepository) SuggestAuthors(_ context.Context, prefix string, limit int) ([]AuthorCount, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.suggestCalls++
	needle := foldCase(prefix)

	works := make(map[string]int)
	for _, record := range repository.records {
		if strings.HasPrefix(foldCase(record.Author), needle) {
			works[record.Author]++
		}
	}

	var authors []AuthorCount
	for author, count := range works {
		authors = append(authors, AuthorCount{Author: author, Works: count})
	}
	slices.SortFunc(authors, func(a, b AuthorCount) int {
		if result := cmp.Compare(b.Works, a.Works); result != 0 {
			return result
		}
		return strings.Compare(a.Author, b.Author)
	})

	return capped(authors, limit), nil
}

func (repository *memoryRepository) SearchUsers(_ context.Context, text string, offset, limit int) ([]UserHit, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.directoryErr != nil {
		return nil, 0, repository.directoryErr
	}

	needle := foldCase(text)
	var matched []UserHit
	for _, user := range repository.users {
		if strings.Contains(foldCase(user.Username), needle) || strings.Contains(foldCase(user.DisplayName), needle) {
			matched = append(matched, user)
		}
	}
	return window(matched, offset, limit), len(matched), nil
}

func (repository *memoryRepository) SearchLists(_ context.Context, text string, offset, limit int) ([]ListHit, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.directoryErr != nil {
		return nil, 0, repository.directoryErr
	}

	needle := foldCase(text)
	var matched []ListHit
	for _, list := range repository.lists {
		if strings.Contains(foldCase(list.Name), needle) {
			matched = append(matched, list)
		}
	}
	return window(matched, offset, limit), len(matched), nil
}

func matchesAll(record Record, predicates []Predicate) bool {
	for _, predicate := range predicates {
		if !predicate.Matches(record) {
			return false
		}
	}
	return true
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

// # Fixtures

var fixtureTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func yearPtr(year int) *int { return &year }

func ratingPtr(rating float64) *float64 { return &rating }

// catalogue returns a small, varied catalogue. Every call returns fresh slices.
func catalogue() []Record {
	return []Record{
		{
			ID: "c01", Title: "One Piece", Author: "Eiichiro Oda", Synopsis: "Pirates chase the One Piece.",
			Genres: []string{"Acción", "Aventura", "Comedia"}, Year: yearPtr(1997), Rating: 9.2,
			Status: StatusOngoing, Type: TypeManga, FavoriteCount: 900, ViewCount: 5000, UpdatedAt: fixtureTime,
		},
		{
			ID: "c02", Title: "One Punch Man", Author: "ONE", Synopsis: "A hero who wins with one punch.",
			Genres: []string{"Acción", "Comedia"}, Year: yearPtr(2012), Rating: 8.7,
			Status: StatusOngoing, Type: TypeManga, FavoriteCount: 700, ViewCount: 4000, UpdatedAt: fixtureTime.Add(-time.Hour),
		},
		{
			ID: "c03", Title: "Solo Leveling", AltTitle: "Na Honjaman Level Up", Author: "Chugong",
			Genres: []string{"Acción", "Fantasía"}, Year: yearPtr(2018), Rating: 8.9,
			Status: StatusCompleted, Type: TypeManhwa, FavoriteCount: 800, ViewCount: 6000, UpdatedAt: fixtureTime.Add(-2 * time.Hour),
		},
		{
			ID: "c04", Title: "Monster", Author: "Naoki Urasawa", Synopsis: "A surgeon hunts the one he saved.",
			Genres: []string{"Misterio", "Psicológico", "Thriller"}, Year: yearPtr(1994), Rating: 9.2,
			Status: StatusCompleted, Type: TypeManga, FavoriteCount: 650, ViewCount: 2500, UpdatedAt: fixtureTime.Add(-3 * time.Hour),
		},
		{
			ID: "c05", Title: "Tian Guan Ci Fu", Author: "Mo Xiang Tong Xiu",
			Genres: []string{"Fantasía", "Romance"}, Year: nil, Rating: 9.0,
			Status: StatusOngoing, Type: TypeManhua, FavoriteCount: 500, ViewCount: 3000, UpdatedAt: fixtureTime.Add(-4 * time.Hour),
		},
		{
			ID: "c06", Title: "Cowboy Bebop", Author: "Hajime Yatate",
			Genres: []string{"Acción", "Ciencia ficción"}, Year: yearPtr(1998), Rating: 8.9,
			Status: StatusCompleted, Type: TypeAnime, FavoriteCount: 800, ViewCount: 3500, UpdatedAt: fixtureTime.Add(-5 * time.Hour),
		},
		{
			ID: "c07", Title: "Blue Lock", Author: "Muneyuki Kaneshiro",
			Genres: []string{"Deportes", "Drama"}, Year: yearPtr(2018), Rating: 8.1,
			Status: StatusHiatus, Type: TypeManga, FavoriteCount: 400, ViewCount: 4500, UpdatedAt: fixtureTime.Add(-6 * time.Hour),
		},
		{
			ID: "c08", Title: "Berserk", Author: "Kentaro Miura",
			Genres: []string{"Acción", "Terror", "Tragedia"}, Year: nil, Rating: 9.4,
			Status: StatusCancelled, Type: TypeManga, FavoriteCount: 850, ViewCount: 3900, UpdatedAt: fixtureTime.Add(-7 * time.Hour),
		},
	}
}
