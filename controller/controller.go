package controller

import (
	"database/sql"
	_ "embed"
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/tsingjyujing/vireview/controller/dao"
	"github.com/tsingjyujing/vireview/models"
	"github.com/tsingjyujing/vireview/text"
	"github.com/tsingjyujing/vireview/utils"
)

//go:embed sqlc/schema.sql
var ddl string

// GetDDL returns the sqlite schema.
func GetDDL() string {
	return ddl
}

var logger = utils.Logger

var errNoReviews = errors.New("no reviews to classify")

type Controller struct {
	db         *sql.DB
	queries    dao.Queries
	pipeline   *text.Pipeline
	classifier models.Classifier
	summarizer models.SummarizationModel
}

// NewController wires the HTTP handlers. summarizer may be nil, which
// disables restaurant summaries.
func NewController(db *sql.DB, pipeline *text.Pipeline, classifier models.Classifier, summarizer models.SummarizationModel) (*Controller, error) {
	if pipeline == nil || classifier == nil {
		return nil, errors.New("controller needs a pipeline and a classifier")
	}
	return &Controller{
		db:         db,
		queries:    *dao.New(db),
		pipeline:   pipeline,
		classifier: classifier,
		summarizer: summarizer,
	}, nil
}

// Close closes all resources held by the controller
func (c *Controller) Close() error {
	if err := c.db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database")
		return err
	}
	logger.Info("Controller resources closed successfully")
	return nil
}

// RegisterRoutes mounts the API under group, normally /api/v1.
func (c *Controller) RegisterRoutes(group *echo.Group) {
	group.POST("/normalize", c.Normalize)

	classifyGroup := group.Group("/classify")
	classifyGroup.POST("", c.Classify)
	classifyGroup.POST("/upload", c.ClassifyUpload)
	classifyGroup.GET("/runs", c.ListClassificationRuns)
	classifyGroup.GET("/runs/:run_id", c.GetClassificationRun)

	restaurantGroup := group.Group("/restaurant")
	restaurantGroup.POST("/import", c.ImportRestaurants)
	restaurantGroup.GET("/search", c.SearchRestaurants)
	restaurantGroup.GET("/suggest", c.SuggestRestaurants)
	restaurantGroup.GET("/compare", c.CompareRestaurants)
	restaurantGroup.GET("/:restaurant_id", c.GetRestaurant)
	restaurantGroup.GET("/:restaurant_id/summary", c.SummarizeRestaurant)
}

// Health always answers {"status":"ok"}.
func Health(echoCtx *echo.Context) error {
	return echoCtx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
