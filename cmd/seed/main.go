package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"revivecare/database"
	"revivecare/internal/cache"
	"revivecare/internal/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numDoctors := seedCmd.Int("doctors", utils.DefaultNumDoctors, "Number of test doctors to create")
	numPatients := seedCmd.Int("patients", utils.DefaultNumPatients, "Number of test patients to create")

	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	startIndex := checkCmd.Int("start", 1, "Start index for email check")
	endIndex := checkCmd.Int("end", 1000, "End index for email check")

	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	deleteStart := deleteCmd.Int("start", 1, "Start index for account deletion")
	deleteEnd := deleteCmd.Int("end", 1000, "End index for account deletion")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		connect()

		log.Printf("Seeding %d doctors and %d patients", *numDoctors, *numPatients)
		if _, err := utils.SeedDemoData(database.DB, *numDoctors, *numPatients); err != nil {
			log.Fatalf("Error seeding data: %v", err)
		}
		log.Printf("All test accounts use the password %q", utils.TestAccountPassword)

	case "check":
		checkCmd.Parse(os.Args[2:])
		connect()

		duplicates, err := utils.CheckForDuplicateEmails(database.DB, *startIndex, *endIndex)
		if err != nil {
			log.Fatalf("Error checking for duplicate emails: %v", err)
		}
		log.Printf("Found %d existing test emails", len(duplicates))

	case "delete":
		deleteCmd.Parse(os.Args[2:])
		connect()

		// The API caches doctors in Redis; drop the deleted ones there too.
		var rdb *redis.Client
		if os.Getenv("USE_CACHE") == "true" {
			rc, err := cache.NewRedisClient()
			if err != nil {
				log.Printf("Warning: Redis unavailable, cached doctors expire on their own: %v", err)
			} else {
				defer rc.Close()
				rdb = rc.Client()
			}
		}

		if _, err := utils.DeleteTestAccounts(database.DB, rdb, *deleteStart, *deleteEnd); err != nil {
			log.Fatalf("Error deleting test accounts: %v", err)
		}

	case "stats":
		connect()

		counts, err := utils.GetTableCounts(database.DB)
		if err != nil {
			log.Fatalf("Error getting stats: %v", err)
		}
		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)

		log.Println("Database statistics:")
		for _, table := range tables {
			log.Printf("   %s: %d rows", table, counts[table])
		}

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func connect() {
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
}

func printHelp() {
	fmt.Println("Database utility tool for ReViveCare")
	fmt.Println("\nUsage:")
	fmt.Println("  seed COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Create test doctors and patients with sample history")
	fmt.Println("               Options:")
	fmt.Println("                 --doctors=N     Number of test doctors (default: 5)")
	fmt.Println("                 --patients=N    Number of test patients (default: 50)")
	fmt.Println("")
	fmt.Println("  check        List test emails that already exist")
	fmt.Println("               Options:")
	fmt.Println("                 --start=N       Start index (default: 1)")
	fmt.Println("                 --end=N         End index (default: 1000)")
	fmt.Println("")
	fmt.Println("  delete       Delete test doctors and patients in an index range")
	fmt.Println("               Options:")
	fmt.Println("                 --start=N       Start index (default: 1)")
	fmt.Println("                 --end=N         End index (default: 1000)")
	fmt.Println("")
	fmt.Println("  stats        Show row counts per table")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  seed seed --doctors=3 --patients=30")
	fmt.Println("  seed delete --start=1 --end=30")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_DRIVER    postgres (default) or sqlite")
	fmt.Println("  DB_PATH      SQLite file when DB_DRIVER=sqlite (default: revivecare.db)")
	fmt.Println("  DB_HOST      Database host (default: localhost)")
	fmt.Println("  DB_PORT      Database port (default: 5432)")
	fmt.Println("  DB_USER      Database user (default: postgres)")
	fmt.Println("  DB_PASSWORD  Database password (default: postgres)")
	fmt.Println("  DB_NAME      Database name (default: revivecare)")
	fmt.Println("  DB_SSLMODE   Database SSL mode (default: disable)")
	fmt.Println("  DB_TIMEZONE  Database timezone (default: Asia/Kolkata)")
	fmt.Println("  USE_CACHE    Set to true to clear cached doctors on delete (uses REDIS_URL)")
}
