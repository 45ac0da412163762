package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	"github.com/zatekoja/venuediscovery/migrations"
	"github.com/zatekoja/venuediscovery/pkg/config"
)

type seedVenue struct {
	name, city, state, zip string
	lat, lng               float64
	tier                   entities.SubscriptionTier
	verification           entities.VerificationStatus
}

var seedVenues = []seedVenue{
	{"The Blue Note Room", "Austin", "TX", "78701", 30.2672, -97.7431, entities.TierPro, entities.VerificationVerified},
	{"Smokehouse Social", "Austin", "TX", "78702", 30.2620, -97.7220, entities.TierFree, entities.VerificationVerified},
	{"Cactus Cafe", "Austin", "TX", "78705", 30.2862, -97.7394, entities.TierFree, entities.VerificationPending},
	{"Honky Tonk Central", "Nashville", "TN", "37201", 36.1612, -86.7775, entities.TierPro, entities.VerificationVerified},
	{"Hattie's Kitchen", "Nashville", "TN", "37203", 36.1527, -86.7898, entities.TierFree, entities.VerificationUnverified},
	{"Preservation Hall", "New Orleans", "LA", "70116", 29.9584, -90.0651, entities.TierEnterprise, entities.VerificationVerified},
	{"Gumbo Shop", "New Orleans", "LA", "70116", 29.9572, -90.0640, entities.TierFree, entities.VerificationVerified},
	{"Lakeside Lounge", "Springfield", "IL", "62701", 39.7817, -89.6501, entities.TierFree, entities.VerificationUnverified},
	{"Riverfront Grill", "Springfield", "MO", "65806", 37.2090, -93.2923, entities.TierPro, entities.VerificationPending},
}

var seedTags = map[entities.EventCategory][][]string{
	entities.CategoryMusic: {{"jazz", "live"}, {"country", "dancing"}, {"blues"}, {"acoustic", "singer-songwriter"}},
	entities.CategoryMeals: {{"bbq", "family"}, {"brunch"}, {"seafood", "cajun"}, {"tasting-menu"}},
	entities.CategoryBoth:  {{"dinner-show", "jazz"}, {"supper-club"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("venue-seed", cfg.Environment)

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	if err := migrations.Apply(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE event_saves, events, venues CASCADE`); err != nil {
			log.Fatal().Err(err).Msg("failed to truncate tables")
		}
	}

	db := goqu.New("postgres", pgClient.DB())
	rng := rand.New(rand.NewSource(42))
	today := time.Now().In(cfg.Trending.Location())
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var eventIDs []string
	for _, v := range seedVenues {
		venueID := uuid.NewString()
		_, err := db.Insert("venues").Rows(goqu.Record{
			"id":                  venueID,
			"name":                v.name,
			"city":                v.city,
			"state":               v.state,
			"zip":                 v.zip,
			"latitude":            v.lat,
			"longitude":           v.lng,
			"subscription_tier":   string(v.tier),
			"verification_status": string(v.verification),
		}).OnConflict(goqu.DoUpdate("name, city, state", goqu.Record{"updated_at": goqu.L("NOW()")})).
			Returning("id").Executor().ScanValContext(ctx, &venueID)
		if err != nil {
			log.Fatal().Err(err).Str("venue", v.name).Msg("failed to upsert venue")
		}

		for i := 0; i < 6; i++ {
			category := []entities.EventCategory{entities.CategoryMusic, entities.CategoryMeals, entities.CategoryBoth}[rng.Intn(3)]
			tagOptions := seedTags[category]
			status := entities.EventStatusActive
			if rng.Intn(10) == 0 {
				status = entities.EventStatusCancelled
			}

			eventID := uuid.NewString()
			date := today.AddDate(0, 0, rng.Intn(21)-3)
			_, err := db.Insert("events").Rows(goqu.Record{
				"id":          eventID,
				"venue_id":    venueID,
				"date":        date.Format("2006-01-02"),
				"category":    string(category),
				"description": fmt.Sprintf("%s night at %s", category, v.name),
				"tags":        pq.Array(tagOptions[rng.Intn(len(tagOptions))]),
				"status":      string(status),
			}).Executor().ExecContext(ctx)
			if err != nil {
				log.Fatal().Err(err).Str("venue", v.name).Msg("failed to insert event")
			}
			eventIDs = append(eventIDs, eventID)
		}
	}

	users := make([]string, 25)
	for i := range users {
		users[i] = uuid.NewString()
	}

	saves := 0
	for _, eventID := range eventIDs {
		for _, userID := range users {
			if rng.Intn(4) != 0 {
				continue
			}
			_, err := db.Insert("event_saves").Rows(goqu.Record{
				"user_id":  userID,
				"event_id": eventID,
			}).OnConflict(goqu.DoNothing()).Executor().ExecContext(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to insert save")
			}
			saves++
		}
	}

	log.Info().
		Int("venues", len(seedVenues)).
		Int("events", len(eventIDs)).
		Int("saves", saves).
		Msg("seeding complete")
}
