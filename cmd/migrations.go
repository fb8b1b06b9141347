package cmd

import (
	"context"
	"fmt"

	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/utils"
)

func RunMigrations() error {
	pgConfig := pgConfigFromEnv()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(pgConfig.GetConnectionString())
	if err := migrater.Run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running migrations: %v", err))
		return err
	}

	return nil
}
