package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/staydesk/backoffice-api/internal/config"
	"github.com/staydesk/backoffice-api/internal/database"
)

func main() {
	var dbURLFlag, only string
	var keepActivity bool
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&only, "only", "", "comma separated collections to clear (default: all)")
	flag.BoolVar(&keepActivity, "keep-activity", false, "leave the activity log untouched")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Build minimal database config without loading full app config
	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	colls := database.Collections()
	if only != "" {
		colls = strings.Split(only, ",")
	}
	if keepActivity {
		kept := colls[:0]
		for _, c := range colls {
			if c != database.CollectionActivity {
				kept = append(kept, c)
			}
		}
		colls = kept
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("Connected to database. Truncating %s...\n", strings.Join(colls, ", "))
	if err := database.Truncate(ctx, db, colls...); err != nil {
		log.Fatalf("failed to truncate collections: %v", err)
	}

	fmt.Println("Data cleared (tables truncated, identities reset).")
}
