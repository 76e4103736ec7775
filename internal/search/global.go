// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yomira-search/internal/platform/constants"
	"github.com/taibuivan/yomira-search/internal/platform/validate"
	"github.com/taibuivan/yomira-search/pkg/pagination"
)

// GlobalScope selects the entity types covered by a global search.
type GlobalScope string

const (
	GlobalAll     GlobalScope = "all"
	GlobalContent GlobalScope = "content"
	GlobalUsers   GlobalScope = "users"
	GlobalLists   GlobalScope = "lists"
)

// Section is the result block of one entity type.
type Section[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// newSection builds a section whose HasMore reports matches beyond offset+len(items).
func newSection[T any](items []T, total, offset int) *Section[T] {
	if items == nil {
		items = []T{}
	}
	return &Section[T]{
		Items:   items,
		Total:   total,
		HasMore: total > offset+len(items),
	}
}

// GlobalResults groups global search sections. Sections outside the scope are nil.
type GlobalResults struct {
	Content *Section[Result]  `json:"content,omitempty"`
	Users   *Section[UserHit] `json:"users,omitempty"`
	Lists   *Section[ListHit] `json:"lists,omitempty"`
	Total   int               `json:"total"`
}

/*
GlobalSearch runs one text query across content, users and lists.

Description: With scope "all" the three sub-searches run concurrently on their first
page with reduced caps (content 5, users 3, lists 3); any failure fails the whole
call. A single scope runs only that sub-search with the requested pagination. The
content sub-search goes through the cached search path.

Parameters:
  - context: context.Context
  - text: string (2 to 200 characters after trimming)
  - scope: string (all, content, users, lists; empty means all)
  - page: int
  - pageSize: int
  - requesterID: string (Empty for anonymous callers)

Returns:
  - *GlobalResults: One section per searched entity type and the summed total
  - error: VALIDATION_ERROR for short text or an unknown scope, or data source failures
*/
func (service *Service) GlobalSearch(context context.Context, text, scope string, page, pageSize int, requesterID string) (results *GlobalResults, err error) {
	defer func(startTime time.Time) { recordRequest("global", startTime, err) }(time.Now())

	text = strings.TrimSpace(text)
	if scope == "" {
		scope = string(GlobalAll)
	}

	// 1. Validate the request
	validator := &validate.Validator{}
	validator.MinLen(fieldQuery, text, constants.GlobalMinQueryLength)
	validator.MaxLen(fieldQuery, text, constants.MaxQueryLength)
	validator.OneOf(fieldScope, scope, string(GlobalAll), string(GlobalContent), string(GlobalUsers), string(GlobalLists))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Fan out
	results = &GlobalResults{}
	switch GlobalScope(scope) {
	case GlobalAll:
		err = service.searchAll(context, text, requesterID, results)
	case GlobalContent:
		results.Content, err = service.contentSection(context, text, pagination.Normalize(page, pageSize), requesterID)
	case GlobalUsers:
		results.Users, err = service.userSection(context, text, pagination.Normalize(page, pageSize))
	case GlobalLists:
		results.Lists, err = service.listSection(context, text, pagination.Normalize(page, pageSize))
	}
	if err != nil {
		return nil, err
	}

	// 3. Aggregate
	if results.Content != nil {
		results.Total += results.Content.Total
	}
	if results.Users != nil {
		results.Total += results.Users.Total
	}
	if results.Lists != nil {
		results.Total += results.Lists.Total
	}

	service.queryLog.Dispatch(LogEntry{
		Query:       text,
		Scope:       scope,
		RequesterID: requesterID,
		ResultCount: results.Total,
	})

	return results, nil
}

// searchAll runs the capped first page of every entity type concurrently.
func (service *Service) searchAll(ctx context.Context, text, requesterID string, results *GlobalResults) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		section, err := service.contentSection(groupCtx, text, pagination.Params{Page: 1, Limit: constants.GlobalContentLimit}, requesterID)
		results.Content = section
		return err
	})

	group.Go(func() error {
		section, err := service.userSection(groupCtx, text, pagination.Params{Page: 1, Limit: constants.GlobalUserLimit})
		results.Users = section
		return err
	})

	group.Go(func() error {
		section, err := service.listSection(groupCtx, text, pagination.Params{Page: 1, Limit: constants.GlobalListLimit})
		results.Lists = section
		return err
	})

	return group.Wait()
}

func (service *Service) contentSection(ctx context.Context, text string, params pagination.Params, requesterID string) (*Section[Result], error) {
	query := Query{Text: text, Page: params.Page, PageSize: params.Limit}.Normalize()

	page, err := service.searchContent(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	return newSection(page.Items, page.Meta.Total, query.Params().Offset()), nil
}

func (service *Service) userSection(ctx context.Context, text string, params pagination.Params) (*Section[UserHit], error) {
	users, total, err := service.directory.SearchUsers(ctx, text, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return newSection(users, total, params.Offset()), nil
}

func (service *Service) listSection(ctx context.Context, text string, params pagination.Params) (*Section[ListHit], error) {
	lists, total, err := service.directory.SearchLists(ctx, text, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return newSection(lists, total, params.Offset()), nil
}
