package calculator

import (
	"math"

	"github.com/mmynk/groupbuy/internal/models"
)

// Summary is one row of the group-buy list.
type Summary struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	CreatedAt  int64   `json:"createdAt"`
	OrderCount int     `json:"orderCount"`
	Total      float64 `json:"total"`
}

// DetailView is everything the detail screen shows for one group buy.
// Total, Collected and Progress cover all orders; the Filtered* fields cover
// only the orders matching the search query and feed the table footer.
type DetailView struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	CreatedAt        int64          `json:"createdAt"`
	OrderCount       int            `json:"orderCount"`
	Total            float64        `json:"total"`
	Collected        float64        `json:"collected"`
	Progress         float64        `json:"progress"`
	ProgressRounded  int            `json:"progressRounded"`
	Query            string         `json:"query,omitempty"`
	Orders           []models.Order `json:"orders"`
	FilteredQuantity int            `json:"filteredQuantity"`
	FilteredTotal    float64        `json:"filteredTotal"`
}

// Summarize builds the list row for a group buy.
func Summarize(gb models.GroupBuy) Summary {
	return Summary{
		ID:         gb.ID,
		Title:      gb.Title,
		CreatedAt:  gb.CreatedAt,
		OrderCount: ItemCount(gb.Orders),
		Total:      Total(gb.Orders),
	}
}

// SummarizeAll builds list rows in collection order.
func SummarizeAll(c models.Collection) []Summary {
	rows := make([]Summary, 0, len(c))
	for _, gb := range c {
		rows = append(rows, Summarize(gb))
	}
	return rows
}

// Detail builds the detail view of gb filtered by query.
func Detail(gb models.GroupBuy, query string) DetailView {
	filtered := Filter(gb.Orders, query)
	if filtered == nil {
		filtered = []models.Order{}
	}
	progress := ProgressPercent(gb.Orders)

	return DetailView{
		ID:               gb.ID,
		Title:            gb.Title,
		CreatedAt:        gb.CreatedAt,
		OrderCount:       ItemCount(gb.Orders),
		Total:            Total(gb.Orders),
		Collected:        Collected(gb.Orders),
		Progress:         progress,
		ProgressRounded:  int(math.Round(progress)),
		Query:            query,
		Orders:           filtered,
		FilteredQuantity: QuantitySum(filtered),
		FilteredTotal:    Total(filtered),
	}
}
