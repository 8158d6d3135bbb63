package controller

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/samber/lo"
	"github.com/tsingjyujing/vireview/controller/dao"
	"github.com/tsingjyujing/vireview/text"
	"github.com/tsingjyujing/vireview/utils"
)

// ImportRecord is one review row of a restaurant export.
type ImportRecord struct {
	RestaurantID string
	Restaurant   string
	Address      string
	OpeningTime  string
	Price        string
	Rating       sql.NullFloat64
	Comment      string
	Label        string
	Normalized   string
	Date         string
}

type ImportStats struct {
	Restaurants int `json:"restaurants"`
	Reviews     int `json:"reviews"`
	Normalized  int `json:"normalized"`
	Classified  int `json:"classified"`
	Failed      int `json:"failed"`
}

var importColumns = []string{"IDRestaurant", "Restaurant", "Address", "Time", "Price", "Rating", "Comment", "label", "clean_Comment", "date"}

// ReadImportCSV reads an export with a header row. IDRestaurant and Comment
// are required; the other columns may be missing.
func ReadImportCSV(r io.Reader) ([]ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{"IDRestaurant", "Comment"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", required)
		}
	}
	unknown := lo.Filter(lo.Keys(index), func(name string, _ int) bool {
		return name != "" && !lo.Contains(importColumns, name)
	})
	if len(unknown) > 0 {
		logger.WithField("columns", unknown).Debug("Ignoring unknown csv columns")
	}

	records := make([]ImportRecord, 0, 256)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		record := ImportRecord{
			RestaurantID: field("IDRestaurant"),
			Restaurant:   field("Restaurant"),
			Address:      field("Address"),
			OpeningTime:  field("Time"),
			Price:        field("Price"),
			Comment:      field("Comment"),
			Label:        field("label"),
			Normalized:   field("clean_Comment"),
			Date:         field("date"),
		}
		if record.RestaurantID == "" {
			return nil, fmt.Errorf("csv line %d: empty IDRestaurant", line)
		}
		if rating := field("Rating"); rating != "" {
			value, err := strconv.ParseFloat(rating, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: invalid Rating %q: %w", line, rating, err)
			}
			record.Rating = sql.NullFloat64{Float64: value, Valid: true}
		}
		records = append(records, record)
	}
	return records, nil
}

// Import stores restaurants and their reviews, replacing the reviews of every
// restaurant present in records. Missing normalized text is computed with the
// pipeline and missing labels with the classifier.
func (c *Controller) Import(ctx context.Context, records []ImportRecord) (ImportStats, error) {
	stats := ImportStats{}
	records = lo.Filter(records, func(r ImportRecord, _ int) bool {
		return strings.TrimSpace(r.Comment) != ""
	})

	pending := lo.Filter(lo.Range(len(records)), func(i int, _ int) bool {
		return records[i].Normalized == ""
	})
	results := c.pipeline.NormalizeStrings(ctx, lo.Map(pending, func(i int, _ int) string {
		return records[i].Comment
	}))
	failed := make(map[int]bool)
	for j, result := range results {
		i := pending[j]
		if result.Err != nil {
			logger.WithError(result.Err).WithField("restaurant_id", records[i].RestaurantID).Warn("Failed to normalize review")
			failed[i] = true
			continue
		}
		records[i].Normalized = result.Normalized
		stats.Normalized++
	}
	stats.Failed = len(failed)

	unlabeled := lo.Filter(lo.Range(len(records)), func(i int, _ int) bool {
		return records[i].Label == "" && !failed[i]
	})
	if len(unlabeled) > 0 {
		labels, err := c.classifier.Predict(ctx, lo.Map(unlabeled, func(i int, _ int) string {
			return records[i].Normalized
		}))
		if err != nil {
			return stats, fmt.Errorf("classify imported reviews: %w", err)
		}
		for j, label := range labels {
			records[unlabeled[j]].Label = label
		}
		stats.Classified = len(labels)
	}

	restaurantIDs := lo.Uniq(lo.Map(records, func(r ImportRecord, _ int) string { return r.RestaurantID }))
	byRestaurant := lo.GroupBy(records, func(r ImportRecord) string { return r.RestaurantID })
	inserted, err := utils.WithTx(ctx, c.db, nil, func(tx *sql.Tx) (int, error) {
		queries := dao.New(tx)
		count := 0
		for _, id := range restaurantIDs {
			group := byRestaurant[id]
			info := group[0]
			err := queries.UpsertRestaurant(ctx, dao.UpsertRestaurantParams{
				ID:          id,
				Name:        info.Restaurant,
				NameFolded:  text.FoldAccents(info.Restaurant),
				Address:     info.Address,
				OpeningTime: info.OpeningTime,
				Price:       info.Price,
			})
			if err != nil {
				return 0, err
			}
			if err := queries.DeleteReviewsByRestaurantID(ctx, id); err != nil {
				return 0, err
			}
			for _, r := range group {
				_, err := queries.NewReview(ctx, dao.NewReviewParams{
					RestaurantID: id,
					Comment:      r.Comment,
					Normalized:   r.Normalized,
					Label:        r.Label,
					Rating:       r.Rating,
					ReviewedAt:   r.Date,
				})
				if err != nil {
					return 0, err
				}
				count++
			}
		}
		return count, nil
	})
	if err != nil {
		return stats, err
	}
	stats.Restaurants = len(restaurantIDs)
	stats.Reviews = inserted
	logger.WithField("restaurants", stats.Restaurants).WithField("reviews", stats.Reviews).Info("Imported reviews")
	return stats, nil
}

// ImportRestaurants accepts a multipart CSV export under the "file" field.
func (c *Controller) ImportRestaurants(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	fileHeader, err := echoCtx.FormFile("file")
	if err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.EchoHandleInternalError(echoCtx, err)
	}
	defer file.Close()
	records, err := ReadImportCSV(file)
	if err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	stats, err := c.Import(ctx, records)
	if err != nil {
		return utils.EchoHandleInternalError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, stats)
}
