// Command useradmin creates an ADMIN account in the user database.
//
// Usage:
//
//	useradmin -d postgres://... -email root@example.com -name Root
//
// The password is read twice from the terminal without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/usermgmt/internal/flagx"
	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
	"github.com/dmitrijs2005/usermgmt/internal/useradmin"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	var email, name string
	if _, err := flagx.Parse("useradmin", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "admin email")
		fs.StringVar(&name, "name", "", "admin display name")
	}); err != nil {
		return fmt.Errorf("flags error: %w", err)
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	us := services.NewUserService(db, m, cfg, logger)

	_, err = useradmin.NewBootstrap(us, os.Stdin, os.Stdout).Run(ctx, email, name)
	return err
}
