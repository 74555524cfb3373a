package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/cyklop/vb-liga-manager-sub000/internal/infrastructure/repository/memory"
	"github.com/cyklop/vb-liga-manager-sub000/internal/infrastructure/repository/postgres"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
)

var log *logging.Logger

func main() {
	_ = godotenv.Load()
	log = logging.New(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL")), logging.FormatConsole).Named("migration")
	defer func() {
		_ = log.Sync()
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal("DB_URL is required")
	}

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	args := os.Args[2:]
	if cmd == "seed" {
		runSeed(dbURL)
		return
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		fatal("resolve migrations dir", "error", err)
	}
	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		fatal("create migrator", "error", err)
	}
	defer closeMigrator(m)

	switch cmd {
	case "up":
		applied(m.Up(), "schema up to date", "source", sourceURL)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			fatal("parse down steps", "error", err)
		}
		applied(m.Steps(-steps), "rolled back migrations", "steps", steps)
	case "goto":
		target, err := parseTarget(firstArg(args, "goto requires a target version"))
		if err != nil {
			fatal("parse target version", "error", err)
		}
		applied(m.Migrate(target), "migrated", "version", target)
	case "force":
		version, err := parseVersion(firstArg(args, "force requires a version"))
		if err != nil {
			fatal("parse version", "error", err)
		}
		if err := m.Force(version); err != nil {
			fatal("force version", "version", version, "error", err)
		}
		log.Info("forced version", "version", version)
	case "version":
		printVersion(m)
	default:
		printUsage()
		os.Exit(2)
	}
}

// runSeed loads SEED_FILE (or the built-in leagues) into an empty schema.
func runSeed(dbURL string) {
	seedFile := strings.TrimSpace(os.Getenv("SEED_FILE"))
	seed := memory.DefaultSeed()
	if seedFile != "" {
		loaded, err := memory.LoadSeed(seedFile)
		if err != nil {
			fatal("load seed file", "path", seedFile, "error", err)
		}
		seed = loaded
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		fatal("connect database", "error", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := postgres.BootstrapSeed(ctx, db, seed); err != nil {
		fatal("seed database", "error", err)
	}
	log.Info("seed applied", "leagues", len(seed.Leagues), "teams", len(seed.Teams), "seed_file", seedFile)
}

func printVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return
	}
	if err != nil {
		fatal("read version", "error", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
}

func applied(err error, msg string, args ...any) {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migration changes")
		return
	}
	if err != nil {
		fatal("run migration", "error", err)
	}
	log.Info(msg, args...)
}

func firstArg(args []string, missing string) string {
	if len(args) == 0 {
		fatal(missing)
	}
	return args[0]
}

func fatal(msg string, args ...any) {
	log.Error(msg, args...)
	_ = log.Sync()
	os.Exit(1)
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		log.Warn("close migration db", "error", dbErr)
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|goto|force|version|seed> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	for _, example := range []string{"up", "down 1", "goto 1760000100", "force 1760000200", "version", "seed"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, example)
	}
}
