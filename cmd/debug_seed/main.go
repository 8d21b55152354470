package main

import (
	"context"
	"fmt"
	"log"

	"scorebook/core/config"
	"scorebook/core/database"
	"scorebook/core/scoring"
	"scorebook/core/store"
	"scorebook/core/upsert"
	"scorebook/core/utils"
	"scorebook/feature/catalog"
	"scorebook/feature/event"
	"scorebook/feature/golf"
	"scorebook/feature/roster"

	"go.uber.org/zap"
)

// Seeds a small demo store: one golf sport, a nine-hole format at one venue,
// one event with two players and a full card. Run it against an empty
// database to get something to poke at.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	local, err := database.EnsureLocalStorage(db, cfg.Store.Name)
	if err != nil {
		log.Fatal(err)
	}

	s := store.NewGorm(db)
	engine := upsert.New(s, zap.NewNop())
	registry := scoring.NewRegistry(s, engine, zap.NewNop())
	if err := registry.Register(golf.New()); err != nil {
		log.Fatal(err)
	}

	catalogSvc := catalog.NewService(s, engine, registry, zap.NewNop())
	rosterSvc := roster.NewService(s, engine, zap.NewNop())
	eventSvc := event.NewService(s, engine, registry, zap.NewNop())

	ctx := context.Background()

	fmt.Println("=== SEED: catalog ===")
	sport, err := catalogSvc.CreateSport(ctx, catalog.SportInput{Name: "golf"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("sport: %s (%s)\n", sport.Name, sport.ID)

	format, err := catalogSvc.UpsertEventFormatWithDetails(ctx, catalog.FormatInput{
		SportID:    sport.ID,
		Name:       "Nine Hole Medal",
		StageCount: 9,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("format: %s with %d stages\n", format.Format.ID, format.Stages.Inserted)

	venue, err := catalogSvc.CreateVenue(ctx, catalog.VenueInput{
		Name:     "Old Links",
		Location: "by the sea",
	})
	if err != nil {
		log.Fatal(err)
	}
	reg, err := catalogSvc.RegisterVenueEventFormat(ctx, venue.ID, format.Format.ID, catalog.RegistrationInput{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("venue: %s, registration: %s\n", venue.ID, reg.ID)

	fmt.Println("=== SEED: roster ===")
	names := map[string]string{}
	players := make([]string, 0, 2)
	for _, name := range []string{"Ann", "Ben"} {
		p, err := rosterSvc.UpsertParticipant(ctx, roster.ParticipantInput{Name: name})
		if err != nil {
			log.Fatal(err)
		}
		names[p.ID] = name
		players = append(players, p.ID)
		fmt.Printf("participant: %s (%s)\n", name, p.ID)
	}

	fmt.Println("=== SEED: event ===")
	created, err := eventSvc.CreateEventWithDetails(ctx, event.EventInput{
		VenueEventFormatID: reg.ID,
		Name:               "Saturday Medal",
		ParticipantIDs:     players,
	})
	if err != nil {
		log.Fatal(err)
	}

	// A plausible nine-hole card for both players.
	annCard := []float64{4, 5, 3, 4, 4, 5, 3, 4, 4}
	benCard := []float64{5, 5, 4, 4, 5, 6, 3, 5, 4}
	stages := make([]event.StageInput, 0, len(annCard))
	for i := range annCard {
		stages = append(stages, event.StageInput{
			Number: i + 1,
			Scores: []event.ScoreInput{
				{ParticipantID: players[0], RawValue: utils.Ptr(annCard[i]), Completed: utils.Ptr(true)},
				{ParticipantID: players[1], RawValue: utils.Ptr(benCard[i]), Completed: utils.Ptr(true)},
			},
		})
	}
	if _, err := eventSvc.UpsertEventWithDetails(ctx, created.ID, event.EventInput{Stages: stages}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("event: %s (%s)\n", created.ID, "Saturday Medal")

	fmt.Println("=== RESULTS ===")
	results, err := eventSvc.ScoreEvent(ctx, created.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("method: %s\n", results.Method)
	for _, r := range results.Participants {
		fmt.Printf("  #%d %s: %.0f strokes over %d stages\n",
			r.Rank, names[r.ParticipantID], r.TotalRaw, r.StagesCompleted)
	}

	fmt.Println("=== DONE ===")
	fmt.Printf("store %s seeded; export it with: scorebook export\n", local.ID)
}
