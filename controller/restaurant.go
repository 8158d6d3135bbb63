package controller

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/samber/lo"
	"github.com/tsingjyujing/vireview/analytics"
	"github.com/tsingjyujing/vireview/controller/dao"
	"github.com/tsingjyujing/vireview/text"
	"github.com/tsingjyujing/vireview/utils"
)

// User-facing messages of the restaurant report.
const (
	MessageRestaurantNotFound = "Restaurant ID not found."
	MessageMissingBasicInfo   = "This restaurant does not have enough basic information to show detailed data."
	MessageNotEnoughReviews   = "This restaurant does not have enough review data to show detailed analysis."
)

// restaurantReport loads a restaurant with its reviews and analyzes them.
func (c *Controller) restaurantReport(ctx context.Context, restaurantID string) (*analytics.Report, error) {
	restaurant, err := c.queries.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	reviews, err := c.queries.ListReviewsByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return analytics.Analyze(
		analytics.Restaurant{
			ID:          restaurant.ID,
			Name:        restaurant.Name,
			Address:     restaurant.Address,
			OpeningTime: restaurant.OpeningTime,
			Price:       restaurant.Price,
		},
		lo.Map(reviews, func(r dao.Review, _ int) analytics.Review {
			return toAnalyticsReview(r)
		}),
		analytics.Options{IsStopWord: c.pipeline.Lexicon.IsStopWord},
	)
}

func toAnalyticsReview(r dao.Review) analytics.Review {
	out := analytics.Review{
		Normalized: r.Normalized,
		Label:      r.Label,
		Date:       analytics.ParseDate(r.ReviewedAt),
	}
	if r.Rating.Valid {
		rating := r.Rating.Float64
		out.Rating = &rating
	}
	return out
}

// reportStatus maps a report error to its HTTP status and message.
func reportStatus(err error) (int, string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound, MessageRestaurantNotFound
	case errors.Is(err, analytics.ErrMissingBasicInfo):
		return http.StatusUnprocessableEntity, MessageMissingBasicInfo
	case errors.Is(err, analytics.ErrNotEnoughReviews):
		return http.StatusUnprocessableEntity, MessageNotEnoughReviews
	}
	return http.StatusInternalServerError, err.Error()
}

func (c *Controller) GetRestaurant(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	report, err := c.restaurantReport(ctx, echoCtx.Param("restaurant_id"))
	if err != nil {
		status, message := reportStatus(err)
		return utils.EchoHandleMessage(echoCtx, err, status, message)
	}
	return echoCtx.JSON(http.StatusOK, report)
}

type CompareItem struct {
	ID     string            `json:"id"`
	Report *analytics.Report `json:"report,omitempty"`
	Status string            `json:"status,omitempty"`
}

// CompareRestaurants reports two restaurants side by side; each one fails
// independently.
func (c *Controller) CompareRestaurants(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	ids := lo.Compact(lo.Map(strings.Split(echoCtx.QueryParam("ids"), ","), func(id string, _ int) string {
		return strings.TrimSpace(id)
	}))
	if len(ids) != 2 {
		return utils.EchoHandleGenericError(echoCtx, fmt.Errorf("query parameter 'ids' needs exactly 2 restaurant IDs, got %d", len(ids)), http.StatusBadRequest)
	}
	items := make([]CompareItem, 0, len(ids))
	for _, id := range ids {
		report, err := c.restaurantReport(ctx, id)
		if err != nil {
			status, message := reportStatus(err)
			if status == http.StatusInternalServerError {
				return utils.EchoHandleInternalError(echoCtx, err)
			}
			items = append(items, CompareItem{ID: id, Status: message})
			continue
		}
		items = append(items, CompareItem{ID: id, Report: report})
	}
	return echoCtx.JSON(http.StatusOK, items)
}

type RestaurantItem struct {
	ID          string `json:"id" jsonschema:"the restaurant ID"`
	Name        string `json:"name" jsonschema:"the restaurant name"`
	Address     string `json:"address" jsonschema:"the restaurant address"`
	OpeningTime string `json:"opening_time" jsonschema:"the opening hours"`
	Price       string `json:"price" jsonschema:"the price range"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchRestaurants matches names regardless of case and accents.
func (c *Controller) SearchRestaurants(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	query := text.FoldAccents(echoCtx.QueryParam("q"))
	if query == "" {
		return utils.EchoHandleGenericError(echoCtx, echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required"), http.StatusBadRequest)
	}
	n, err := strconv.Atoi(echoCtx.QueryParam("n"))
	if err != nil || n <= 0 {
		n = 10
	}
	restaurants, err := c.queries.SearchRestaurants(ctx, dao.SearchRestaurantsParams{Query: likeEscaper.Replace(query), Limit: int64(n)})
	if err != nil {
		return utils.EchoHandleSQLError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, lo.Map(restaurants, func(r dao.Restaurant, _ int) RestaurantItem {
		return RestaurantItem{ID: r.ID, Name: r.Name, Address: r.Address, OpeningTime: r.OpeningTime, Price: r.Price}
	}))
}

func (c *Controller) SuggestRestaurants(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	n, err := strconv.Atoi(echoCtx.QueryParam("n"))
	if err != nil || n <= 0 {
		n = 5
	}
	ids, err := c.queries.ListRestaurantIDs(ctx)
	if err != nil {
		return utils.EchoHandleSQLError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, analytics.Suggest(ids, n, analytics.SuggestionSeed))
}

func (c *Controller) SummarizeRestaurant(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	if c.summarizer == nil {
		return utils.EchoHandleGenericError(echoCtx, errors.New("summarization model is not configured"), http.StatusNotImplemented)
	}
	restaurantID := echoCtx.Param("restaurant_id")
	if _, err := c.queries.GetRestaurant(ctx, restaurantID); err != nil {
		status, message := reportStatus(err)
		return utils.EchoHandleMessage(echoCtx, err, status, message)
	}
	reviews, err := c.queries.ListReviewsByRestaurantID(ctx, restaurantID)
	if err != nil {
		return utils.EchoHandleSQLError(echoCtx, err)
	}
	if len(reviews) == 0 {
		return utils.EchoHandleMessage(echoCtx, analytics.ErrNotEnoughReviews, http.StatusUnprocessableEntity, MessageNotEnoughReviews)
	}
	summary, err := c.summarizer.Summarize(ctx, lo.Map(reviews, func(r dao.Review, _ int) string {
		return r.Comment
	}))
	if err != nil {
		return utils.EchoHandleInternalError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, map[string]string{"id": restaurantID, "summary": summary})
}
