package seed

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type serviceSeed struct {
	Name        string
	DurationMin int
	Price       int64
}

var defaultServices = []serviceSeed{
	{Name: "Corte Caballero", DurationMin: 30, Price: 30},
	{Name: "Barba", DurationMin: 30, Price: 20},
	{Name: "Corte + Barba", DurationMin: 60, Price: 45},
	{Name: "Corte Niño", DurationMin: 30, Price: 25},
}

var defaultBarbers = []string{
	"Carlos The Blade", "Ana Styles", "Mike Fade", "Tony Razor", "Sarah Cuts",
	"David Edge", "Javier Trim", "Luis Master", "Sofia Scissor", "Rick Classic",
}

// Result counts what a seed run wrote.
type Result struct {
	Services int
	Barbers  int
}

// Run wipes the catalog, appointments included, and recreates the
// default services and barbers.
func Run(ctx context.Context, repo domain.Repository, log *slog.Logger) (Result, error) {
	var res Result

	// --------------------------------------------------
	// 1. Wipe
	// --------------------------------------------------
	barbers, err := repo.ListBarbers(ctx, true)
	if err != nil {
		return res, err
	}
	for _, b := range barbers {
		if _, err := repo.DeleteBarberCascade(ctx, b.ID); err != nil {
			return res, err
		}
	}

	services, err := repo.ListServices(ctx)
	if err != nil {
		return res, err
	}
	for _, s := range services {
		if _, err := repo.DeleteServiceCascade(ctx, s.ID); err != nil {
			return res, err
		}
	}

	log.Info("catalog wiped", "barbers", len(barbers), "services", len(services))

	// --------------------------------------------------
	// 2. Services
	// --------------------------------------------------
	for _, s := range defaultServices {
		if err := repo.CreateService(ctx, &models.Service{
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       decimal.NewFromInt(s.Price),
		}); err != nil {
			return res, err
		}
		res.Services++
	}

	// --------------------------------------------------
	// 3. Barbers
	// --------------------------------------------------
	for _, name := range defaultBarbers {
		if err := repo.CreateBarber(ctx, &models.Barber{Name: name, Active: true}); err != nil {
			return res, err
		}
		res.Barbers++
	}

	log.Info("catalog seeded", "barbers", res.Barbers, "services", res.Services)
	return res, nil
}
