// Command main runs the database seeder for Vinyls.
package main

import (
	"flag"
	"log"

	"vinyls/internal/config"
	"vinyls/internal/database"
	"vinyls/internal/seed"
)

func main() {
	numUsers := flag.Int("users", seed.DefaultOptions.Users, "Number of users to create")
	vinylsPerUser := flag.Int("vinyls", seed.DefaultOptions.VinylsPerUser, "Number of vinyls per user")
	followsPerUser := flag.Int("follows", seed.DefaultOptions.FollowsPerUser, "Number of follows per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (faster, dev only)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Users:          *numUsers,
		VinylsPerUser:  *vinylsPerUser,
		FollowsPerUser: *followsPerUser,
		SkipBcrypt:     *skipBcrypt,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.Run()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users (password: password123)", len(users))
}
