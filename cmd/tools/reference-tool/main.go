// cmd/tools/reference-tool/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/database"
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/validation"
	"career-assessment-workers/internal/reference"
	"career-assessment-workers/pkg/registry"

	ma "career-assessment-workers/internal/workers/assessment/match-careers"
	nr "career-assessment-workers/internal/workers/assessment/notify-results"
	sa "career-assessment-workers/internal/workers/assessment/score-assessment"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	vNorms := validateCmd.String("norms", "configs/norms.yaml", "Path to norms YAML")
	vCatalog := validateCmd.String("catalog", "configs/careers.json", "Path to career catalog JSON")
	vRegistry := validateCmd.String("registry", "configs/activity-registry.json", "Path to activity registry")

	seedCmd := flag.NewFlagSet("seed-norms", flag.ExitOnError)
	sNorms := seedCmd.String("norms", "configs/norms.yaml", "Path to norms YAML")
	sConfig := seedCmd.String("config", "configs/config.yaml", "Path to service config (database.postgres)")

	indexCmd := flag.NewFlagSet("index-catalog", flag.ExitOnError)
	iCatalog := indexCmd.String("catalog", "configs/careers.json", "Path to career catalog JSON")
	iConfig := indexCmd.String("config", "configs/config.yaml", "Path to service config (database.elasticsearch)")
	iIndex := indexCmd.String("index", "", "Index name (defaults to reference.catalog_index)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		err = validate(*vNorms, *vCatalog, *vRegistry)

	case "seed-norms":
		seedCmd.Parse(os.Args[2:])
		err = seedNorms(ctx, *sNorms, *sConfig)

	case "index-catalog":
		indexCmd.Parse(os.Args[2:])
		err = indexCatalog(ctx, *iCatalog, *iConfig, *iIndex)

	case "help":
		help()
		return

	default:
		help()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func validate(normsPath, catalogPath, registryPath string) error {
	norms, err := reference.LoadNormsFile(normsPath)
	if err != nil {
		return err
	}
	fmt.Printf("Norms OK: %d entries\n", norms.Len())

	catalog, err := reference.LoadCatalogFile(catalogPath)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog OK: %d careers\n", catalog.Len())

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate([]string{sa.TaskType, ma.TaskType, nr.TaskType}, catchableErrorCodes()); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		if _, err := validation.CompileSchema(string(a.InputSchema)); err != nil {
			return fmt.Errorf("activity %s: %w", a.TaskType, err)
		}
	}
	fmt.Printf("Registry OK: %d activities\n", len(reg.Activities))
	return nil
}

func seedNorms(ctx context.Context, normsPath, configPath string) error {
	data, err := os.ReadFile(normsPath)
	if err != nil {
		return apperrors.NewNormsLoadFailedError(normsPath, err)
	}
	entries, err := reference.ParseNormEntries(data)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return err
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer log.Sync()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		return err
	}

	n, err := reference.SeedNormsPostgres(ctx, pg.DB, entries)
	if err != nil {
		log.Error("norm seeding failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	log.Info("norms seeded", map[string]interface{}{"rows": n, "database": cfg.Database.Postgres.Database})
	fmt.Printf("Seeded %d norm rows into %s\n", n, cfg.Database.Postgres.Database)
	return nil
}

func indexCatalog(ctx context.Context, catalogPath, configPath, index string) error {
	catalog, err := reference.LoadCatalogFile(catalogPath)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return err
	}
	if index == "" {
		index = cfg.Reference.CatalogIndex
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer log.Sync()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	if err := es.Ping(ctx); err != nil {
		return err
	}

	n, err := reference.IndexCatalog(ctx, es.Client, index, catalog)
	if err != nil {
		log.Error("catalog indexing failed", map[string]interface{}{"index": index, "error": err.Error()})
		return err
	}
	log.Info("catalog indexed", map[string]interface{}{"careers": n, "index": index})
	fmt.Printf("Indexed %d careers into %s\n", n, index)
	return nil
}

// catchableErrorCodes lists the BPMN error codes workers throw.
func catchableErrorCodes() []string {
	set := map[string]bool{}
	for _, code := range apperrors.BPMNErrorMapping {
		set[code] = true
	}
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func help() {
	fmt.Print(`
Usage: reference-tool <command> [flags]

Commands:
  validate       Validate norms, career catalog and activity registry files
  seed-norms     Replace the normative_data table with a norms file
  index-catalog  Index a career catalog file into Elasticsearch
  help           Show this help message

Examples:
  reference-tool validate -norms configs/norms.yaml -catalog configs/careers.json
  reference-tool seed-norms -norms configs/norms.yaml -config configs/config.yaml
  reference-tool index-catalog -catalog configs/careers.json -index careers

Use 'reference-tool <command> -h' for more information about a command.
` + "\n")
}
