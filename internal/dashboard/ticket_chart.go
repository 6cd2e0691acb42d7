package dashboard

import (
	"fmt"
	"time"

	"comedor-backend/internal/database"
	"comedor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TicketChartPoint struct {
	Label      string `json:"label"` // fecha / inicio de semana / inicio de mes
	Open       int64  `json:"open"`
	InProgress int64  `json:"in_progress"`
	Resolved   int64  `json:"resolved"`
	Closed     int64  `json:"closed"`
	Total      int64  `json:"total"`
}

type TicketChartGrandTotals struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
	Total      int64 `json:"total"`
}

type TicketChartResponse struct {
	Period      string                 `json:"period"` // daily | weekly | monthly
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Origin      string                 `json:"origin,omitempty"`
	Points      []TicketChartPoint     `json:"points"`
	GrandTotals TicketChartGrandTotals `json:"grand_totals"`
}

// GET /api/dashboard/ticket-chart?period=daily&count=7&origin=tray
func TicketChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")
		origin := c.Query("origin", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count inválido")
			}
		}

		now := time.Now()
		loc := now.Location()
		// 00:00 de hoy
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Status string    `gorm:"column:status"`
			Total  int64     `gorm:"column:total"`
		}
		var rows []row

		var trunc string
		switch period {
		case "weekly":
			trunc = "week"
		case "monthly":
			trunc = "month"
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			trunc = "day"
		}

		sql := fmt.Sprintf(`
			SELECT date_trunc('%s', created_at)::date AS bucket,
				   status,
				   COUNT(*) AS total
			FROM tickets
			WHERE created_at >= ? AND created_at < ?
			  AND (? = '' OR origin_module = ?)
			GROUP BY bucket, status
			ORDER BY bucket ASC;
		`, trunc)

		err := database.DB.Raw(sql, start, end.AddDate(0, 0, 1), origin, origin).Scan(&rows).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al agregar los tickets")
		}

		type bucketAgg struct {
			Bucket     time.Time
			Open       int64
			InProgress int64
			Resolved   int64
			Closed     int64
			Total      int64
		}

		buckets := make(map[time.Time]*bucketAgg)

		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket}
				buckets[r.Bucket] = agg
			}

			switch r.Status {
			case string(models.TicketOpen):
				agg.Open += r.Total
			case string(models.TicketInProgress):
				agg.InProgress += r.Total
			case string(models.TicketResolved):
				agg.Resolved += r.Total
			case string(models.TicketClosed):
				agg.Closed += r.Total
			}
		}

		ordered := make([]bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			v.Total = v.Open + v.InProgress + v.Resolved + v.Closed
			ordered = append(ordered, *v)
		}

		// orden por fecha
		for i := 0; i < len(ordered); i++ {
			for j := i + 1; j < len(ordered); j++ {
				if ordered[j].Bucket.Before(ordered[i].Bucket) {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
		}

		points := make([]TicketChartPoint, 0, len(ordered))
		grand := TicketChartGrandTotals{}

		for _, b := range ordered {
			points = append(points, TicketChartPoint{
				Label:      b.Bucket.Format("2006-01-02"),
				Open:       b.Open,
				InProgress: b.InProgress,
				Resolved:   b.Resolved,
				Closed:     b.Closed,
				Total:      b.Total,
			})

			grand.Open += b.Open
			grand.InProgress += b.InProgress
			grand.Resolved += b.Resolved
			grand.Closed += b.Closed
			grand.Total += b.Total
		}

		resp := TicketChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Origin:      origin,
			Points:      points,
			GrandTotals: grand,
		}

		return c.JSON(resp)
	}
}
