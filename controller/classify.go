package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/samber/lo"
	"github.com/tsingjyujing/vireview/controller/dao"
	"github.com/tsingjyujing/vireview/models"
	"github.com/tsingjyujing/vireview/text"
	"github.com/tsingjyujing/vireview/utils"
)

// MinReviewLength is the shortest review, in characters, that POST /classify
// keeps. Uploaded files are classified line by line without this filter.
const MinReviewLength = 2

type ReviewsRequest struct {
	Reviews []string `json:"reviews" jsonschema:"the raw review texts"`
}

type NormalizedReview struct {
	Review     string `json:"review" jsonschema:"the raw review"`
	Normalized string `json:"normalized" jsonschema:"the normalized token stream"`
	Error      string `json:"error,omitempty" jsonschema:"why the review could not be normalized"`
}

type ClassifiedReview struct {
	NormalizedReview
	Label    string `json:"label,omitempty" jsonschema:"the predicted sentiment label"`
	Language string `json:"language,omitempty" jsonschema:"the detected language of the review"`
}

type ClassifyResponse struct {
	RunID         string             `json:"run_id" jsonschema:"the ID of the stored classification run"`
	Results       []ClassifiedReview `json:"results" jsonschema:"one result per classified review, in input order"`
	PositiveCount int                `json:"positive_count"`
	NegativeCount int                `json:"negative_count"`
	FailedCount   int                `json:"failed_count"`
}

func (c *Controller) Normalize(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	param := ReviewsRequest{}
	if err := echoCtx.Bind(&param); err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	results := lo.Map(c.pipeline.NormalizeStrings(ctx, param.Reviews), func(r text.BatchResult, _ int) NormalizedReview {
		return toNormalizedReview(r)
	})
	return echoCtx.JSON(http.StatusOK, results)
}

func (c *Controller) Classify(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	param := ReviewsRequest{}
	if err := echoCtx.Bind(&param); err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	reviews := lo.Filter(param.Reviews, func(r string, _ int) bool {
		return utf8.RuneCountInString(r) >= MinReviewLength
	})
	return c.respondClassification(echoCtx, ctx, reviews, "api")
}

func (c *Controller) respondClassification(echoCtx *echo.Context, ctx context.Context, reviews []string, source string) error {
	response, err := c.ClassifyReviews(ctx, reviews, source)
	if errors.Is(err, errNoReviews) {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	if err != nil {
		return utils.EchoHandleInternalError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, response)
}

// ClassifyReviews normalizes and labels reviews and records the run. A review that fails normalization is
// reported with its error; a classifier failure fails the whole call.
func (c *Controller) ClassifyReviews(ctx context.Context, reviews []string, source string) (*ClassifyResponse, error) {
	if len(reviews) == 0 {
		return nil, errNoReviews
	}
	batch := c.pipeline.NormalizeStrings(ctx, reviews)
	results := make([]ClassifiedReview, len(batch))
	docs := make([]string, 0, len(batch))
	docIndex := make([]int, 0, len(batch))
	for i, r := range batch {
		results[i] = ClassifiedReview{NormalizedReview: toNormalizedReview(r)}
		if c.pipeline.Detector != nil {
			results[i].Language = c.pipeline.Detector.DetectName(r.Input)
		}
		if r.Err != nil {
			continue
		}
		docs = append(docs, r.Normalized)
		docIndex = append(docIndex, i)
	}
	labels, err := c.classifier.Predict(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("classify reviews: %w", err)
	}
	if len(labels) != len(docs) {
		return nil, fmt.Errorf("classifier returned %d labels for %d reviews", len(labels), len(docs))
	}
	for j, label := range labels {
		results[docIndex[j]].Label = label
	}

	response := &ClassifyResponse{
		RunID:         uuid.NewString(),
		Results:       results,
		PositiveCount: lo.Count(labels, models.LabelPositive),
		NegativeCount: lo.Count(labels, models.LabelNegative),
		FailedCount:   len(batch) - len(docs),
	}
	err = c.queries.NewClassificationRun(ctx, dao.NewClassificationRunParams{
		ID:            response.RunID,
		Source:        source,
		ReviewCount:   int64(len(results)),
		PositiveCount: int64(response.PositiveCount),
		NegativeCount: int64(response.NegativeCount),
		FailedCount:   int64(response.FailedCount),
	})
	if err != nil {
		return nil, fmt.Errorf("store classification run: %w", err)
	}
	logger.WithField("run_id", response.RunID).WithField("reviews", len(results)).Debug("Classified reviews")
	return response, nil
}

func toNormalizedReview(r text.BatchResult) NormalizedReview {
	out := NormalizedReview{Review: r.Input, Normalized: r.Normalized}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

func (c *Controller) ClassifyUpload(echoCtx *echo.Context) error {
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
	reviews, err := ReadUploadedReviews(fileHeader.Filename, file)
	if err != nil {
		return utils.EchoHandleGenericError(echoCtx, err, http.StatusBadRequest)
	}
	return c.respondClassification(echoCtx, ctx, reviews, "upload:"+fileHeader.Filename)
}

func (c *Controller) GetClassificationRun(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	run, err := c.queries.GetClassificationRun(ctx, echoCtx.Param("run_id"))
	if err != nil {
		return utils.EchoHandleSQLError(echoCtx, err)
	}
	return echoCtx.JSON(http.StatusOK, run)
}

func (c *Controller) ListClassificationRuns(echoCtx *echo.Context) error {
	ctx := echoCtx.Request().Context()
	n, err := strconv.Atoi(echoCtx.QueryParam("n"))
	if err != nil || n <= 0 {
		n = 20
	}
	runs, err := c.queries.ListClassificationRuns(ctx, int64(n))
	if err != nil {
		return utils.EchoHandleSQLError(echoCtx, err)
	}
	if runs == nil {
		runs = []dao.ClassificationRun{}
	}
	return echoCtx.JSON(http.StatusOK, runs)
}
