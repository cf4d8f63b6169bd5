package services

import (
	"testing"

	"github.com/BetanzosJefferson/routify2-alpha-sub003/internal/domain/models"
)

func TestManifestGenerate(t *testing.T) {
	loader := func(id int64) (manifestData, error) {
		return manifestData{
			TripID:        id,
			Label:         "CityA - CityC",
			DepartureDate: "2025-05-28",
			DepartureTime: "08:00",
			Groups: []GroupedReservation{
				{
					ReservationID: 1,
					Label:         "CityB - CityC",
					Seats:         2,
					Passengers: []models.Passenger{
						{FirstName: "Ana", LastName: "Lopez"},
						{FirstName: "Luis", LastName: "Lopez"},
					},
				},
				{ReservationID: 2, Label: "CityA - CityC", Seats: 1, Checked: true},
			},
		}, nil
	}

	svc := ManifestService{Loader: loader}

	pdf, filename, err := svc.Generate(42)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("Generate returned empty data")
	}
	if filename != "manifiesto-42.pdf" {
		t.Fatalf("filename mismatch: %q", filename)
	}
}
