// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-search/internal/platform/request"
	"github.com/taibuivan/yomira-search/internal/platform/respond"
	"github.com/taibuivan/yomira-search/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for search.
// It translates query strings into [Service] calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new search [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with every search endpoint. All routes are public;
// a verified bearer token only adds favorite state to content results.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.search)
	router.Get("/suggest", handler.suggest)
	router.Get("/trending", handler.trending)
	router.Get("/global", handler.global)

	return router
}

// # Endpoints

/*
GET /api/v1/search.

Description: Faceted content search with cached result pages.

Request:
  - q: string (Free text over title, alt title, author, synopsis)
  - genres / exclude: []string (Repeated or comma-separated)
  - type: string (manga, manhwa, manhua, anime)
  - status: string (ongoing, completed, hiatus, cancelled)
  - year, year_from, year_to: int
  - rating, rating_from, rating_to: float
  - author: string
  - sort: string (relevance, popularity, rating, latest, alphabetical, year)
  - page, limit: int

Malformed numbers are ignored rather than rejected.

Response:
  - 200: ResultPage
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	query := Query{
		Text:          requestutil.String(request, "q"),
		Genres:        requestutil.List(request, "genres"),
		ExcludeGenres: requestutil.List(request, "exclude"),
		Type:          Type(requestutil.String(request, "type")),
		Status:        Status(requestutil.String(request, "status")),
		Year:          requestutil.Int(request, "year"),
		YearFrom:      requestutil.Int(request, "year_from"),
		YearTo:        requestutil.Int(request, "year_to"),
		Rating:        requestutil.Float(request, "rating"),
		RatingFrom:    requestutil.Float(request, "rating_from"),
		RatingTo:      requestutil.Float(request, "rating_to"),
		Author:        requestutil.String(request, "author"),
		Sort:          SortMode(requestutil.String(request, "sort")),
		Page:          params.Page,
		PageSize:      params.Limit,
	}

	page, err := handler.service.Search(request.Context(), query, requestutil.RequesterID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
GET /api/v1/search/suggest.

Request:
  - q: string (Prefix)
  - scope: string (all, content, author, genre)

Response:
  - 200: []Suggestion
  - 400: VALIDATION_ERROR (Unknown scope)
*/
func (handler *Handler) suggest(writer http.ResponseWriter, request *http.Request) {
	suggestions, err := handler.service.Suggest(request.Context(),
		requestutil.String(request, "q"),
		requestutil.String(request, "scope"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestions)
}

/*
GET /api/v1/search/trending.

Request:
  - window: string (day, week, month; default week)
  - limit: int (default 10, max 100)

Response:
  - 200: []TrendingQuery
  - 400: VALIDATION_ERROR (Unknown window)
*/
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	limit := 0
	if n := requestutil.Int(request, "limit"); n != nil {
		limit = *n
	}

	ranking, err := handler.service.Trending(request.Context(), requestutil.String(request, "window"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ranking)
}

/*
GET /api/v1/search/global.

Request:
  - q: string (At least 2 characters)
  - scope: string (all, content, users, lists; default all)
  - page, limit: int (Ignored for scope=all)

Response:
  - 200: GlobalResults
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) global(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	results, err := handler.service.GlobalSearch(request.Context(),
		requestutil.String(request, "q"),
		requestutil.String(request, "scope"),
		params.Page,
		params.Limit,
		requestutil.RequesterID(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}
