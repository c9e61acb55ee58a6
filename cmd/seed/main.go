// Command seed loads demo profiles and listings through the repositories so
// that seeded moderation decisions leave the same audit trail as live ones.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"aubri-backend/internal/config"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/repository/postgres"
	"aubri-backend/internal/security"
)

type seedUser struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	AvatarURL string `yaml:"avatar_url"`
	Verified  bool   `yaml:"verified"`
}

type seedProperty struct {
	Owner       string   `yaml:"owner"` // email
	Agent       string   `yaml:"agent"` // email, optional
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Price       float64  `yaml:"price"`
	Location    string   `yaml:"location"`
	Images      []string `yaml:"images"`
	Amenities   []string `yaml:"amenities"`
	Status      string   `yaml:"status"`
}

type seedData struct {
	Users      []seedUser     `yaml:"users"`
	Properties []seedProperty `yaml:"properties"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	seedPath := flag.String("data", "config/seed.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSeed(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db, cfg.QueryTimeout())
	if err := populate(context.Background(), store, data); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	logger.Info("Seed data loaded", "users", len(data.Users), "properties", len(data.Properties))
}

func readSeed(path string) (*seedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data seedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func populate(ctx context.Context, store *postgres.Store, data *seedData) error {
	byEmail := make(map[string]*domain.User, len(data.Users))
	var moderator *domain.User

	for _, su := range data.Users {
		hash, err := security.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.Email, err)
		}
		u := &domain.User{
			Email:     su.Email,
			Name:      su.Name,
			Role:      domain.ParseRole(su.Role),
			AvatarURL: su.AvatarURL,
			Verified:  su.Verified,
		}
		if err := store.ProfileRepository.Create(ctx, u, hash); err != nil {
			return fmt.Errorf("create profile %s: %w", su.Email, err)
		}
		byEmail[u.Email] = u
		if moderator == nil && u.IsAdmin() {
			moderator = u
		}
		logger.Info("Created profile", "email", u.Email, "role", u.Role)
	}

	for _, sp := range data.Properties {
		owner, ok := byEmail[sp.Owner]
		if !ok {
			return fmt.Errorf("property %q: unknown owner %s", sp.Title, sp.Owner)
		}
		p := &domain.Property{
			OwnerID:     owner.ID,
			Title:       sp.Title,
			Description: sp.Description,
			Category:    domain.PropertyCategory(sp.Category),
			Price:       sp.Price,
			Location:    sp.Location,
			Images:      sp.Images,
			Amenities:   sp.Amenities,
			Status:      domain.PropertyStatusPending,
		}
		if agent, ok := byEmail[sp.Agent]; ok {
			p.AgentID = agent.ID
		}
		if err := store.PropertyRepository.Create(ctx, p); err != nil {
			return fmt.Errorf("create property %q: %w", sp.Title, err)
		}

		target := domain.PropertyStatus(sp.Status)
		if target == domain.PropertyStatusApproved || target == domain.PropertyStatusRejected {
			if moderator == nil {
				return fmt.Errorf("property %q: seeding status %s needs an admin user", sp.Title, target)
			}
			ev := &domain.ModerationEvent{
				PropertyID: p.ID,
				ActorID:    moderator.ID,
				From:       domain.PropertyStatusPending,
				To:         target,
			}
			if err := store.PropertyRepository.UpdateStatus(ctx, ev); err != nil {
				return fmt.Errorf("moderate property %q: %w", sp.Title, err)
			}
		}
		logger.Info("Created property", "title", p.Title, "status", sp.Status)
	}
	return nil
}
