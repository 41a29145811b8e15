// Package main implements a standalone seed script that populates the
// quickeats database with demo restaurants, menus, and an active points
// configuration. Re-runs are idempotent: entity IDs are derived
// deterministically from the seed data, and inserts upsert on conflict.
//
// Run: go run scripts/seed_demo_data.go
//
//	(from the repo root, or: cd scripts && go run seed_demo_data.go)
package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func databaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "quickeats"),
		getEnv("DB_PASSWORD", "quickeats"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "quickeats"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// ---------------------------------------------------------------------------
// Deterministic UUID generation
// ---------------------------------------------------------------------------

// deterministicUUID produces a stable UUID-shaped string from a namespace and
// a name so that re-runs always produce the same entity IDs.
func deterministicUUID(namespace, name string) string {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	hex := fmt.Sprintf("%x", h[:16])
	return fmt.Sprintf("%s-%s-4%s-%x%s-%s",
		hex[0:8],
		hex[8:12],
		hex[13:16],
		0x8|(h[8]&0x3),
		hex[17:20],
		hex[20:32],
	)
}

// ---------------------------------------------------------------------------
// Seed data
// ---------------------------------------------------------------------------

type productDef struct {
	Name        string
	Description string
	Price       int64 // minor units
}

type restaurantDef struct {
	Name           string
	Description    string
	CuisineType    string
	Latitude       float64
	Longitude      float64
	DeliveryRadius float64 // km
	DeliveryFee    int64   // minor units
	Products       []productDef
}

// Restaurants are clustered around central Sao Paulo so nearby demo
// addresses fall inside most delivery radii.
var restaurants = []restaurantDef{
	{
		Name:           "Pizzaria Bella Napoli",
		Description:    "Wood-fired pizzas since 1987",
		CuisineType:    "pizza",
		Latitude:       -23.5558,
		Longitude:      -46.6605,
		DeliveryRadius: 5,
		DeliveryFee:    300,
		Products: []productDef{
			{"Margherita", "Tomato, mozzarella, basil", 1000},
			{"Calabresa", "Calabrese sausage and onion", 1200},
			{"Quattro Formaggi", "Four-cheese blend", 1400},
			{"Soda", "Can, 350ml", 500},
		},
	},
	{
		Name:           "Sushi Ueno",
		Description:    "Omakase and delivery combos",
		CuisineType:    "japanese",
		Latitude:       -23.5489,
		Longitude:      -46.6388,
		DeliveryRadius: 8,
		DeliveryFee:    500,
		Products: []productDef{
			{"Combo 20 pieces", "Chef's selection", 4500},
			{"Temaki salmon", "Hand roll with fresh salmon", 1800},
			{"Miso soup", "Traditional miso with tofu", 900},
		},
	},
	{
		Name:           "Burger do Centro",
		Description:    "Smash burgers and fries",
		CuisineType:    "burgers",
		Latitude:       -23.5431,
		Longitude:      -46.6291,
		DeliveryRadius: 3,
		DeliveryFee:    250,
		Products: []productDef{
			{"Classic smash", "Double patty, cheddar, pickles", 2200},
			{"Fries", "Crispy, large portion", 800},
			{"Milkshake", "Vanilla or chocolate", 1200},
		},
	},
	{
		Name:           "Cantina da Vila",
		Description:    "Home-style Brazilian lunch plates",
		CuisineType:    "brazilian",
		Latitude:       -23.5612,
		Longitude:      -46.6823,
		DeliveryRadius: 6,
		DeliveryFee:    350,
		Products: []productDef{
			{"Prato feito", "Rice, beans, steak, salad", 2500},
			{"Feijoada", "Saturday special with sides", 3200},
			{"Fresh juice", "Orange or passion fruit", 700},
		},
	},
}

// ---------------------------------------------------------------------------
// Inserts
// ---------------------------------------------------------------------------

func seedRestaurants(ctx context.Context, pool *pgxpool.Pool) error {
	for _, r := range restaurants {
		restaurantID := deterministicUUID("restaurant", r.Name)

		_, err := pool.Exec(ctx, `
			INSERT INTO restaurants (
				id, name, description, cuisine_type,
				latitude, longitude, delivery_radius_km, delivery_fee, active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
			ON CONFLICT (id) DO UPDATE SET
				description = EXCLUDED.description,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				delivery_radius_km = EXCLUDED.delivery_radius_km,
				delivery_fee = EXCLUDED.delivery_fee,
				updated_at = NOW()
		`, restaurantID, r.Name, r.Description, r.CuisineType,
			r.Latitude, r.Longitude, r.DeliveryRadius, r.DeliveryFee)
		if err != nil {
			return fmt.Errorf("insert restaurant %q: %w", r.Name, err)
		}

		for _, p := range r.Products {
			productID := deterministicUUID("product", r.Name+"/"+p.Name)
			_, err := pool.Exec(ctx, `
				INSERT INTO products (id, restaurant_id, name, description, price, active)
				VALUES ($1, $2, $3, $4, $5, TRUE)
				ON CONFLICT (id) DO UPDATE SET
					description = EXCLUDED.description,
					price = EXCLUDED.price,
					updated_at = NOW()
			`, productID, restaurantID, p.Name, p.Description, p.Price)
			if err != nil {
				return fmt.Errorf("insert product %q: %w", p.Name, err)
			}
		}

		log.Printf("seeded restaurant %q with %d products", r.Name, len(r.Products))
	}
	return nil
}

func seedPointsConfig(ctx context.Context, pool *pgxpool.Pool) error {
	configID := deterministicUUID("points_config", "default")
	_, err := pool.Exec(ctx, `
		INSERT INTO points_config (id, points_per_order, points_per_review, validity_months, active)
		VALUES ($1, 10, 5, 12, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, configID)
	if err != nil {
		return fmt.Errorf("insert points config: %w", err)
	}
	log.Print("seeded active points configuration")
	return nil
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL())
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	if err := seedRestaurants(ctx, pool); err != nil {
		log.Fatalf("seed restaurants: %v", err)
	}
	if err := seedPointsConfig(ctx, pool); err != nil {
		log.Fatalf("seed points config: %v", err)
	}

	log.Print("seed complete")
}
