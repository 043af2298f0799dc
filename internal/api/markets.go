package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"

	"creanalytics/server/internal/models"
)

// marketSource exposes market names and cities to the fuzzy matcher.
type marketSource []models.Market

func (s marketSource) String(i int) string {
	return strings.ToLower(s[i].MarketName + " " + s[i].City)
}

func (s marketSource) Len() int { return len(s) }

// ListMarkets returns the market catalog. With q set, only markets whose name
// or city fuzzily match are returned, best match first.
func (h *Handler) ListMarkets(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	markets := h.store.Markets()

	if query != "" {
		matches := fuzzy.FindFrom(strings.ToLower(query), marketSource(markets))
		matched := make([]models.Market, 0, len(matches))
		for _, m := range matches {
			matched = append(matched, markets[m.Index])
		}
		markets = matched

		h.logger.WithFields(logrus.Fields{
			"query":   query,
			"matches": len(markets),
		}).Debug("Searched markets")
	}

	items := make([]models.MarketListItem, 0, len(markets))
	for _, m := range markets {
		items = append(items, m.ListItem())
	}

	c.JSON(http.StatusOK, models.MarketListResponse{
		Markets:    items,
		TotalCount: len(items),
		Query:      query,
	})
}
