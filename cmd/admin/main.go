package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"workly/internal/config"
	"workly/internal/database"
	"workly/internal/logctx"
	"workly/internal/seed"
	"workly/internal/storage"
	"workly/internal/store"
)

func main() {
	var (
		migrateOnly = flag.Bool("migrate", false, "create or update the schema and exit")
		seedDemo    = flag.Bool("seed", false, "load the demo employer, job, applicant, resume and application")
		archives    = flag.String("archives", "", "list archived deletions under this prefix (e.g. deletions/employer/)")
		limit       = flag.Int("limit", 50, "maximum number of archives to list")
	)
	flag.Parse()

	if !*migrateOnly && !*seedDemo && strings.TrimSpace(*archives) == "" {
		flag.Usage()
		log.Fatal("nothing to do: pass -migrate, -seed or -archives")
	}

	cfg := config.MustLoad()
	logger := logctx.NewLogger(cfg.IsDevelopment())
	ctx := context.Background()

	if *migrateOnly || *seedDemo {
		db, err := database.InitDatabase(cfg.Database)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		logger.Info("schema up to date")

		if *seedDemo {
			res, err := seed.Run(ctx, store.New(db, store.WithLogger(logger)), logger)
			if err != nil {
				log.Fatalf("seed: %v", err)
			}
			fmt.Printf("employer=%d job=%d applicant=%d resume=%d application=%d\n",
				res.EmployerID, res.JobID, res.ApplicantID, res.ResumeID, res.ApplicationID)
		}
	}

	if prefix := strings.TrimSpace(*archives); prefix != "" {
		if err := cfg.ValidateStorage(); err != nil {
			log.Fatalf("invalid storage config: %v", err)
		}
		client, err := storage.NewClient(cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		objects, err := client.ListObjects(ctx, prefix, *limit)
		if err != nil {
			log.Fatalf("list archives: %v", err)
		}
		for _, obj := range objects {
			fmt.Printf("%s\t%d\t%s\n", obj.LastModified.UTC().Format("2006-01-02T15:04:05Z"), obj.Size, obj.Key)
		}
	}
}
