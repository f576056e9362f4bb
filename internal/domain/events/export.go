package events

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ExportCSV escribe el listado (por status, o todo si status vacío) como CSV.
// Pensado para el export de admin; el formato es plano, una fila por evento.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, status EventStatus) error {
	evs, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "title", "organizer", "date", "start_time", "end_time", "timezone",
		"location_type", "city", "country", "venue", "category", "tags",
		"price", "price_amount", "views", "status", "submitted_by",
	}); err != nil {
		return err
	}

	for _, e := range evs {
		row := []string{
			e.ID, e.Title, e.Organizer, e.Date, e.StartTime, e.EndTime, e.Timezone,
			string(e.LocationType), e.City, e.Country, e.Venue, e.Category,
			strings.Join(e.Tags, "|"),
			string(e.Price), e.PriceAmount,
			strconv.FormatInt(e.Views, 10),
			string(e.Status), e.SubmittedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
