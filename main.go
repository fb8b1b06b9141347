package main

import (
	"flag"
	"log"
	"os"

	"github.com/navikt/isdialogmote-sub002/cmd"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run migrations")
	shouldRunWorker := flag.Bool("worker", false, "Run the task queue worker and the probe server")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the periodic jobs on cron expressions")
	flag.Parse()

	compiledConfig := cmd.CompiledConfig{Version: Version}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Printf("error running migrations: %v", err)
			os.Exit(1)
		}
	}

	if *shouldRunWorker {
		if err := cmd.RunWorker(compiledConfig.Version); err != nil {
			log.Printf("error running worker: %v", err)
			os.Exit(1)
		}
	}

	if *shouldRunScheduler {
		if err := cmd.RunJobScheduler(compiledConfig.Version); err != nil {
			log.Printf("error running job scheduler: %v", err)
			os.Exit(1)
		}
	}
}
