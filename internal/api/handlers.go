package api

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"creanalytics/server/internal/analytics"
	"creanalytics/server/internal/geometry"
	"creanalytics/server/internal/models"
)

const serviceName = "CRE Analytics API"

// DataStore is the read side the handlers depend on.
type DataStore interface {
	Market(id int) (models.Market, bool)
	Property(id int) (models.Property, bool)
	PropertiesByMarket(marketID int) []models.Property
	LatestPerformance(marketID int) (models.MarketPerformance, bool)
	PerformanceInRange(marketID int, start, end *models.Date) []models.MarketPerformance
	Markets() []models.Market
	Counts() (markets, properties int)
}

type Handler struct {
	store     DataStore
	logger    *logrus.Logger
	overviews *lru.Cache
}

type overviewQuery struct {
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	IncludeTrends bool   `form:"include_trends,default=true"`
}

type listingQuery struct {
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order,default=desc"`
	Limit         int    `form:"limit,default=10" binding:"min=1,max=100"`
	Offset        int    `form:"offset,default=0" binding:"min=0"`
	PropertyClass string `form:"property_class"`
	BBox          string `form:"bbox"`
}

type filterQuery struct {
	PropertyClass string `form:"property_class"`
	BBox          string `form:"bbox"`
}

func NewHandler(store DataStore, logger *logrus.Logger, cacheSize int) (*Handler, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	overviews, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create overview cache: %w", err)
	}

	return &Handler{
		store:     store,
		logger:    logger,
		overviews: overviews,
	}, nil
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Commercial Real Estate Analytics API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"markets":              "/api/markets",
			"market_overview":      "/api/markets/{market_id}",
			"property_performance": "/api/properties/{property_id}/market-performance",
			"market_properties":    "/api/markets/{market_id}/properties",
			"market_geojson":       "/api/markets/{market_id}/properties/geojson",
			"health":               "/api/health",
		},
	})
}

func (h *Handler) Health(c *gin.Context) {
	markets, properties := h.store.Counts()
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:     "healthy",
		Service:    serviceName,
		Markets:    markets,
		Properties: properties,
	})
}

func (h *Handler) GetMarketOverview(c *gin.Context) {
	marketID, ok := pathID(c, "market_id")
	if !ok {
		return
	}

	var query overviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		validationFailed(c, bindingDetails(err)...)
		return
	}

	start, end, details := parseDateRange(query.StartDate, query.EndDate)
	if len(details) > 0 {
		validationFailed(c, details...)
		return
	}

	cacheKey := overviewCacheKey(marketID, start, end, query.IncludeTrends)
	if cached, ok := h.overviews.Get(cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	market, found := h.store.Market(marketID)
	if !found {
		notFound(c, fmt.Sprintf("Market %d not found", marketID))
		return
	}

	latest, found := h.store.LatestPerformance(marketID)
	if !found {
		notFound(c, fmt.Sprintf("No performance data found for market %d", marketID))
		return
	}

	response := &models.MarketOverviewResponse{
		MarketID:          market.MarketID,
		MarketName:        market.MarketName,
		City:              market.City,
		State:             market.State,
		MarketType:        market.MarketType,
		LatestPerformance: latest,
	}
	if query.IncludeTrends {
		response.Trends = analytics.ComputeTrends(market.Performance)
	}
	if start != nil || end != nil {
		response.PerformanceHistory = h.store.PerformanceInRange(marketID, start, end)
	}

	h.overviews.Add(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetPropertyMarketPerformance(c *gin.Context) {
	propertyID, ok := pathID(c, "property_id")
	if !ok {
		return
	}

	property, found := h.store.Property(propertyID)
	if !found {
		notFound(c, fmt.Sprintf("Property %d not found", propertyID))
		return
	}

	benchmark, found := h.store.LatestPerformance(property.MarketID)
	if !found {
		notFound(c, fmt.Sprintf("No market data found for property's market (market_id: %d)", property.MarketID))
		return
	}

	variances, err := analytics.AnalyzeProperty(property, benchmark)
	if err != nil {
		h.computationFailed(c, err)
		return
	}

	verdict := analytics.Summarize(variances)
	c.JSON(http.StatusOK, models.PropertyMarketPerformanceResponse{
		Property:                  property,
		MarketBenchmark:           benchmark,
		VarianceAnalysis:          variances,
		OverallPerformanceSummary: verdict.Message(),
		OverallPerformance:        verdict,
	})
}

func (h *Handler) GetMarketProperties(c *gin.Context) {
	marketID, ok := pathID(c, "market_id")
	if !ok {
		return
	}

	var query listingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		validationFailed(c, bindingDetails(err)...)
		return
	}

	var details []FieldError
	sortKey, err := analytics.ParseSortKey(query.SortBy)
	if err != nil {
		details = append(details, FieldError{Field: "sort_by", Message: err.Error()})
	}
	sortOrder, err := analytics.ParseSortOrder(query.SortOrder)
	if err != nil {
		details = append(details, FieldError{Field: "sort_order", Message: err.Error()})
	}
	filter, filterDetails := buildFilter(query.PropertyClass, query.BBox)
	details = append(details, filterDetails...)
	if len(details) > 0 {
		validationFailed(c, details...)
		return
	}

	market, benchmark, ok := h.marketWithBenchmark(c, marketID)
	if !ok {
		return
	}

	summaries, err := analytics.SummarizeProperties(filter.Apply(h.store.PropertiesByMarket(marketID)), benchmark)
	if err != nil {
		h.computationFailed(c, err)
		return
	}

	analytics.SortSummaries(summaries, sortKey, sortOrder)
	page, pagination := analytics.Paginate(summaries, query.Offset, query.Limit)

	c.JSON(http.StatusOK, models.MarketPropertiesResponse{
		MarketID:        market.MarketID,
		MarketName:      market.MarketName,
		MarketBenchmark: benchmark,
		Properties:      page,
		TotalCount:      pagination.Total,
		Pagination:      pagination,
	})
}

func (h *Handler) GetMarketPropertiesGeoJSON(c *gin.Context) {
	marketID, ok := pathID(c, "market_id")
	if !ok {
		return
	}

	var query filterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		validationFailed(c, bindingDetails(err)...)
		return
	}

	filter, details := buildFilter(query.PropertyClass, query.BBox)
	if len(details) > 0 {
		validationFailed(c, details...)
		return
	}

	_, benchmark, ok := h.marketWithBenchmark(c, marketID)
	if !ok {
		return
	}

	properties := filter.Apply(h.store.PropertiesByMarket(marketID))
	summaries, err := analytics.SummarizeProperties(properties, benchmark)
	if err != nil {
		h.computationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, geometry.PropertyCollection(properties, summaries))
}

// marketWithBenchmark resolves a market and its latest performance, writing a
// not found response when either is missing.
func (h *Handler) marketWithBenchmark(c *gin.Context, marketID int) (models.Market, models.MarketPerformance, bool) {
	market, found := h.store.Market(marketID)
	if !found {
		notFound(c, fmt.Sprintf("Market %d not found", marketID))
		return models.Market{}, models.MarketPerformance{}, false
	}

	benchmark, found := h.store.LatestPerformance(marketID)
	if !found {
		notFound(c, fmt.Sprintf("No performance data found for market %d", marketID))
		return models.Market{}, models.MarketPerformance{}, false
	}

	return market, benchmark, true
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		validationFailed(c, FieldError{Field: name, Message: "must be an integer"})
		return 0, false
	}
	return id, true
}

func parseDateRange(startRaw, endRaw string) (start, end *models.Date, details []FieldError) {
	parse := func(field, raw string) *models.Date {
		if raw == "" {
			return nil
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			details = append(details, FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
			return nil
		}
		return &d
	}

	start = parse("start_date", startRaw)
	end = parse("end_date", endRaw)
	return start, end, details
}

func buildFilter(propertyClass, bbox string) (*models.PropertyFilter, []FieldError) {
	filter := &models.PropertyFilter{PropertyClass: propertyClass}
	if bbox == "" {
		return filter, nil
	}

	bound, err := geometry.ParseBound(bbox)
	if err != nil {
		return nil, []FieldError{{Field: "bbox", Message: err.Error()}}
	}
	filter.Bound = &bound
	return filter, nil
}

func overviewCacheKey(marketID int, start, end *models.Date, includeTrends bool) string {
	bound := func(d *models.Date) string {
		if d == nil {
			return "-"
		}
		return d.String()
	}
	return fmt.Sprintf("%d|%s|%s|%t", marketID, bound(start), bound(end), includeTrends)
}

