package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zonesync/internal/config"
	"zonesync/internal/localzone"
	"zonesync/internal/provider"
	"zonesync/internal/sync"
)

var version = "dev"

var (
	configPath string
	doList     bool
	doPush     bool
	doPurge    bool
	doUpdate   bool
	doTransfer bool
	debug      bool
	private    bool
)

var rootCmd = &cobra.Command{
	Use:   "zonesync [flags] [transfer domains...]",
	Short: "reconcile local authoritative zones with the secondary-DNS provider",
	Long: `zonesync compares the zone names in the local zone directory with the
secondary-DNS provider's inventory and pushes, updates, purges or
transfers zones as requested. Positional arguments name the domains to
transfer; with none given, --transfer covers every remote domain.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")
	rootCmd.Flags().BoolVar(&doList, "list", false, "report the remote inventory and the push/purge candidates")
	rootCmd.Flags().BoolVar(&doPush, "push", false, "create remote zones for domains that only exist locally")
	rootCmd.Flags().BoolVar(&doPurge, "purge", false, "delete remote zones that no longer exist locally")
	rootCmd.Flags().BoolVar(&doUpdate, "update", false, "rewrite master IP and transfer frequency on every remote zone")
	rootCmd.Flags().BoolVar(&doTransfer, "transfer", false, "request an immediate transfer (all remote domains, or the named ones)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&private, "private", false, "use the provider's private-network API endpoint")
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if !doList && !doPush && !doPurge && !doUpdate && !doTransfer {
		return fmt.Errorf("nothing to do: pass at least one of --list, --push, --purge, --update, --transfer")
	}
	if len(args) > 0 && !doTransfer {
		return fmt.Errorf("domain arguments are only meaningful with --transfer")
	}

	cfg, err := config.Load(configPath, false)
	if err != nil {
		return err
	}
	if private {
		cfg.API.Private = true
	}
	if cfg.Sync.ZoneDir == "" {
		return fmt.Errorf("sync.zone_dir is not configured")
	}
	if (doPush || doUpdate) && cfg.Sync.MasterIP == "" {
		return fmt.Errorf("sync.master_ip is required for --push and --update")
	}

	local, err := localzone.List(cfg.Sync.ZoneDir, cfg.Sync.MinDomains)
	if err != nil {
		return err
	}
	log.Debugf("local zone directory holds %d domain(s)", len(local))

	client, err := provider.NewClient(cfg.API.Endpoint, cfg.API.User, cfg.API.Key, cfg.API.Private, cfg.API.Timeout())
	if err != nil {
		return err
	}

	engine := sync.New(client, local, cfg.Sync.MasterIP, cfg.Sync.TransferFrequency)
	ctx := context.Background()

	if doPush {
		if err := engine.Push(ctx); err != nil {
			return err
		}
	}
	if doUpdate {
		if err := engine.Update(ctx); err != nil {
			return err
		}
	}
	if doPurge {
		if err := engine.Purge(ctx); err != nil {
			return err
		}
	}
	if doTransfer {
		if err := engine.Transfer(ctx, args); err != nil {
			return err
		}
	}
	if doList {
		if err := engine.Report(ctx, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
