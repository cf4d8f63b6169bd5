package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/repositories"
	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/utils"
)

// ManifestService renders the boarding manifest PDF handed to checkers
// before departure.
type ManifestService struct {
	Trips        repositories.TripRepository
	Routes       repositories.RouteRepository
	Reservations repositories.ReservationRepository
	RequestID    string
	Loader       func(int64) (manifestData, error)
}

type manifestData struct {
	TripID        int64
	Label         string
	DepartureDate string
	DepartureTime string
	Groups        []GroupedReservation
}

func (s ManifestService) Generate(tripID int64) ([]byte, string, error) {
	data, err := s.loadManifestData(tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "manifest", "generate", fmt.Sprintf("trip_id=%d groups=%d", tripID, len(data.Groups)))
	return buildManifestPDF(data)
}

func (s ManifestService) loadManifestData(tripID int64) (manifestData, error) {
	if s.Loader != nil {
		return s.Loader(tripID)
	}

	var out manifestData
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		return out, err
	}
	routes, err := s.Routes.MapByID()
	if err != nil {
		return out, err
	}
	reservations, err := s.Reservations.ListByTripRecord(tripID)
	if err != nil {
		return out, err
	}

	out.TripID = tripID
	out.Label = fmt.Sprintf("Viaje #%d", tripID)
	if route, ok := routes[trip.RouteID]; ok {
		out.Label = route.Origin + " - " + route.Destination
	}
	if segs, err := models.ParseSegments(trip); err == nil && len(segs) > 0 {
		out.DepartureDate = segs[0].DepartureDate
		out.DepartureTime = segs[0].DepartureTime
	}
	out.Groups = GroupReservations(reservations, map[int64]models.Trip{trip.ID: trip}, routes)
	return out, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Lista de Abordaje", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LISTA DE ABORDAJE")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Viaje: %s", safe(d.Label, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Salida: %s %s", safe(d.DepartureDate, "-"), safe(d.DepartureTime, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Tramo", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Pasajeros", "1", 0, "", false, 0, "")
	pdf.CellFormat(20, 7, "Asientos", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Abordo", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, g := range d.Groups {
		names := make([]string, 0, len(g.Passengers))
		for _, p := range g.Passengers {
			names = append(names, strings.TrimSpace(p.FirstName+" "+p.LastName))
		}
		passengers := strings.Join(names, ", ")
		if passengers == "" {
			passengers = "(sin datos de pasajeros)"
		}
		checked := "No"
		if g.Checked {
			checked = "Si"
		}
		pdf.CellFormat(70, 7, g.Label, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, passengers, "1", 0, "", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", g.Seats), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, checked, "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Generado el %s", utils.FormatDate(utils.NowUTC())))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("manifiesto-%d.pdf", d.TripID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
