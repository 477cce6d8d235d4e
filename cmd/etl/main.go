package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"salesetl/internal/metrics"
	"salesetl/internal/pipeline"
	"salesetl/internal/warehouse"
)

// The three upstream exports keep their original file names; the run
// fails loudly if any is missing.
const (
	marketplaceFile = "Amazon Sale Report.csv"
	wholesaleFile   = "International sale Report.csv"
	masterFile      = "Sale Report.csv"
)

func main() {
	var (
		dataDir      string
		artifactsDir string
		httpAddr     string
	)
	flag.StringVar(&dataDir, "data", "./data", "directory holding the three source reports")
	flag.StringVar(&artifactsDir, "artifacts", "./artifacts", "directory for run manifests")
	flag.StringVar(&httpAddr, "http", ":9090", "http listen for /metrics")
	flag.Parse()

	// local dev convenience; the file is optional
	_ = godotenv.Load()

	dbCfg, err := warehouse.ConfigFromEnv()
	if err != nil {
		log.Fatalf("warehouse config: %v", err)
	}

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Fatalf("open warehouse: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping warehouse: %v", err)
	}

	mreg := metrics.NewRegistry()
	go func() {
		http.Handle("/metrics", mreg.Handler())
		_ = http.ListenAndServe(httpAddr, nil)
	}()

	cfg := pipeline.Config{
		MarketplacePath: filepath.Join(dataDir, marketplaceFile),
		WholesalePath:   filepath.Join(dataDir, wholesaleFile),
		MasterPath:      filepath.Join(dataDir, masterFile),
		ArtifactsDir:    artifactsDir,
	}

	m, err := pipeline.Run(context.Background(), cfg, warehouse.NewLoader(db), mreg)
	if err != nil {
		log.Fatalf("run %s failed: %v", m.RunID, err)
	}
	log.Printf("run %s complete: %d rows loaded into %s", m.RunID, m.RowsLoaded, warehouse.TableName)
}
