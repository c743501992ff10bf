// Seeder command for populating demo panchayaths, agents and daily notes so
// the report view has something to show.
//
// SAFETY: This command ONLY runs when:
//   - APP_ENV=development
//   - --confirm flag is provided
//
// Usage:
//
//	APP_ENV=development go run cmd/seed/main.go --agents 12 --confirm
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/db"
	"panchayath-ops/internal/models"
	"panchayath-ops/internal/util"
)

var names = []string{
	"Anitha", "Biju", "Chandran", "Devika", "Faizal", "Geetha",
	"Hari", "Indira", "Jayan", "Kavitha", "Lakshmi", "Manoj",
	"Nisha", "Omana", "Pradeep", "Rajani", "Suresh", "Thulasi",
}

var mobileSeq = 9000000000

func nextMobile() string {
	mobileSeq++
	return fmt.Sprintf("%d", mobileSeq)
}

func main() {
	agentCount := flag.Int("agents", 12, "Number of agents to seed per panchayath")
	confirm := flag.Bool("confirm", false, "Confirm seeding (required)")
	flag.Parse()

	if os.Getenv("APP_ENV") != "development" {
		log.Fatalf("ERROR: Seeder can only run in development environment (set APP_ENV=development).")
	}
	if !*confirm {
		log.Fatalf("ERROR: --confirm flag is required to run seeder.")
	}

	cfg := config.Load()
	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	panchayaths := []struct {
		name  string
		wards int32
	}{
		{"Kadakkal", 23},
		{"Chithara", 21},
	}

	for _, p := range panchayaths {
		var panchayathID string
		err := db.DB.QueryRow(`
			INSERT INTO panchayaths (name, number_of_wards)
			VALUES ($1, $2)
			RETURNING id
		`, p.name, p.wards).Scan(&panchayathID)
		if err != nil {
			log.Fatalf("Failed to seed panchayath %s: %v", p.name, err)
		}
		log.Printf("Seeded panchayath %s (%d wards)", p.name, p.wards)

		seedAgents(panchayathID, p.wards, *agentCount)
	}

	log.Printf("Seeding complete")
}

func seedAgents(panchayathID string, wards int32, count int) {
	today := util.StartOfDay(time.Now())

	for i := 0; i < count; i++ {
		role := models.AgentRoles[i%len(models.AgentRoles)]
		name := names[i%len(names)]
		mobile := nextMobile()
		ward := int32(i%int(wards)) + 1

		var err error
		if role == models.RoleCoordinator {
			rating := float64(5 + i%5)
			_, err = db.DB.Exec(`
				INSERT INTO coordinators (name, mobile_number, ward, panchayath_id, rating)
				VALUES ($1, $2, $3, $4, $5)
			`, name, mobile, ward, panchayathID, rating)
		} else {
			_, err = db.DB.Exec(fmt.Sprintf(`
				INSERT INTO %s (name, mobile_number, ward, panchayath_id)
				VALUES ($1, $2, $3, $4)
			`, role.TableName()), name, mobile, ward, panchayathID)
		}
		if err != nil {
			log.Printf("WARNING: Failed to seed %s %s: %v", role, name, err)
			continue
		}

		// Alternate between fully active agents, agents trailing off, and
		// fully inactive agents so the report shows a mix. leaveDays is the
		// number of most recent days without activity.
		leaveDays := []int{0, 2, 10}[i%3]
		for d := 1; d <= 10; d++ {
			date := today.AddDate(0, 0, -d)
			isLeave := d <= leaveDays
			activity := ""
			if !isLeave {
				activity = fmt.Sprintf("Ward %d visits", ward)
			}
			if err := models.UpsertDailyNote(mobile, date, isLeave, activity); err != nil {
				log.Printf("WARNING: Failed to seed note for %s: %v", mobile, err)
			}
		}
	}

	log.Printf("Seeded %d agents for panchayath %s", count, panchayathID)
}
