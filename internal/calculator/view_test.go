package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/groupbuy/internal/models"
)

func TestSummarize(t *testing.T) {
	gb := models.GroupBuy{ID: "g1", Title: "Friday Tea", CreatedAt: 1700000000000, Orders: sampleOrders()}

	s := Summarize(gb)
	if s.ID != "g1" || s.Title != "Friday Tea" || s.CreatedAt != 1700000000000 {
		t.Errorf("Summarize() identity fields = %+v", s)
	}
	if s.OrderCount != 3 {
		t.Errorf("OrderCount = %d, want 3", s.OrderCount)
	}
	if math.Abs(s.Total-325) > 0.001 {
		t.Errorf("Total = %v, want 325", s.Total)
	}

	rows := SummarizeAll(models.Collection{gb, {ID: "g2", Title: "Lunch", Orders: []models.Order{}}})
	if len(rows) != 2 || rows[0].ID != "g1" || rows[1].ID != "g2" {
		t.Errorf("SummarizeAll() = %+v, want g1 then g2", rows)
	}
}

func TestDetail(t *testing.T) {
	gb := models.GroupBuy{ID: "g1", Title: "Friday Tea", Orders: sampleOrders()}

	t.Run("filter only narrows footer", func(t *testing.T) {
		d := Detail(gb, "latte")
		if len(d.Orders) != 2 {
			t.Fatalf("Orders = %d, want 2", len(d.Orders))
		}
		if d.FilteredQuantity != 5 {
			t.Errorf("FilteredQuantity = %d, want 5", d.FilteredQuantity)
		}
		if math.Abs(d.FilteredTotal-295) > 0.001 {
			t.Errorf("FilteredTotal = %v, want 295", d.FilteredTotal)
		}
		if math.Abs(d.Total-325) > 0.001 {
			t.Errorf("Total = %v, want 325", d.Total)
		}
		if d.ProgressRounded != 31 {
			t.Errorf("ProgressRounded = %d, want 31", d.ProgressRounded)
		}
	})

	t.Run("empty group buy", func(t *testing.T) {
		d := Detail(models.GroupBuy{ID: "g2", Title: "Empty"}, "")
		if d.Orders == nil {
			t.Error("Orders should be an empty slice, not nil")
		}
		if d.Progress != 0 || d.ProgressRounded != 0 {
			t.Errorf("progress = %v/%d, want 0", d.Progress, d.ProgressRounded)
		}
	})
}
