package models

type MarketOverviewResponse struct {
	MarketID           int                 `json:"market_id"`
	MarketName         string              `json:"market_name"`
	City               string              `json:"city"`
	State              string              `json:"state"`
	MarketType         string              `json:"market_type"`
	LatestPerformance  MarketPerformance   `json:"latest_performance"`
	Trends             []MarketTrend       `json:"trends"`
	PerformanceHistory []MarketPerformance `json:"performance_history"`
}

type PropertyMarketPerformanceResponse struct {
	Property                  Property              `json:"property"`
	MarketBenchmark           MarketPerformance     `json:"market_benchmark"`
	VarianceAnalysis          []PerformanceVariance `json:"variance_analysis"`
	OverallPerformanceSummary string                `json:"overall_performance_summary"`
	OverallPerformance        Verdict               `json:"overall_performance"`
}

type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

type MarketPropertiesResponse struct {
	MarketID        int               `json:"market_id"`
	MarketName      string            `json:"market_name"`
	MarketBenchmark MarketPerformance `json:"market_benchmark"`
	Properties      []PropertySummary `json:"properties"`
	TotalCount      int               `json:"total_count"`
	Pagination      Pagination        `json:"pagination"`
}

type MarketListResponse struct {
	Markets    []MarketListItem `json:"markets"`
	TotalCount int              `json:"total_count"`
	Query      string           `json:"query,omitempty"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Markets    int    `json:"markets"`
	Properties int    `json:"properties"`
}
