// check-transfer is a monitoring check for a hosted server's monthly
// outbound transfer allocation. It prints a single status line on
// stdout and exits with the severity code: 0 OK, 1 WARNING, 2 CRITICAL,
// 3 UNKNOWN.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zonesync/internal/check"
	"zonesync/internal/config"
	"zonesync/internal/provider"
)

var version = "dev"

var (
	configPath    string
	apiEndpoint   string
	apiUser       string
	apiKey        string
	private       bool
	hostname      string
	hostType      string
	warningPct    float64
	criticalPct   float64
	renewalDay    int
	timeoutSecs   int
	verbosity     int
	projectedCrit bool
	currentCrit   bool
	listHostnames bool
)

var rootCmd = &cobra.Command{
	Use:           "check-transfer",
	Short:         "monitoring check for a server's outbound transfer allocation",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(cmd))
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "config.yaml", "path to configuration file (optional)")
	f.StringVar(&apiEndpoint, "endpoint", "", "provider API endpoint")
	f.StringVar(&apiUser, "user", "", "provider API user")
	f.StringVar(&apiKey, "key", "", "provider API key")
	f.BoolVar(&private, "private", false, "use the provider's private-network API endpoint")
	f.StringVarP(&hostname, "hostname", "H", "", "fully-qualified hostname or numeric server id")
	f.StringVar(&hostType, "type", "", "server inventory: Hardware, VirtualGuests or VirtualDedicatedRacks")
	f.Float64VarP(&warningPct, "warning", "w", 0, "warning threshold, percent of allocation")
	f.Float64VarP(&criticalPct, "critical", "c", 0, "critical threshold, percent of allocation")
	f.IntVar(&renewalDay, "renewal-day", 0, "day of month the billing cycle resets (0 = unknown)")
	f.IntVar(&timeoutSecs, "timeout", 0, "API timeout in seconds")
	f.CountVarP(&verbosity, "verbose", "v", "increase diagnostic detail on failure (repeatable, up to -vvv)")
	f.BoolVar(&projectedCrit, "projected-critical", false, "treat a projected overage as critical")
	f.BoolVar(&currentCrit, "current-critical", false, "treat a current overage as critical")
	f.BoolVar(&listHostnames, "list", false, "print all resolvable hostnames and exit")
}

// unknown reports a failed check. The message stays terse by default;
// each -v adds detail so the status line is still one parseable line.
func unknown(msg string, err error) int {
	if err != nil && verbosity >= 1 {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	fmt.Println(check.StatusLine(check.Unknown, msg, ""))
	return check.Unknown.ExitCode()
}

func run(cmd *cobra.Command) int {
	switch {
	case verbosity >= 3:
		log.SetLevel(log.TraceLevel)
	case verbosity == 2:
		log.SetLevel(log.DebugLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.Load(configPath, true)
	if err != nil {
		return unknown("cannot load configuration", err)
	}

	// Flags beat the config file.
	if apiEndpoint != "" {
		cfg.API.Endpoint = apiEndpoint
	}
	if apiUser != "" {
		cfg.API.User = apiUser
	}
	if apiKey != "" {
		cfg.API.Key = apiKey
	}
	if private {
		cfg.API.Private = true
	}
	if hostType != "" {
		cfg.Check.HostType = hostType
	}
	if timeoutSecs > 0 {
		cfg.API.TimeoutSeconds = timeoutSecs
	}
	if cmd.Flags().Changed("warning") {
		cfg.Check.WarningPercent = &warningPct
	}
	if cmd.Flags().Changed("critical") {
		cfg.Check.CriticalPercent = &criticalPct
	}
	if cmd.Flags().Changed("renewal-day") {
		cfg.Check.RenewalDay = renewalDay
	}

	if err := provider.ValidateHostType(cfg.Check.HostType); err != nil {
		return unknown(err.Error(), nil)
	}

	client, err := provider.NewClient(cfg.API.Endpoint, cfg.API.User, cfg.API.Key, cfg.API.Private, cfg.API.Timeout())
	if err != nil {
		return unknown("cannot build API client", err)
	}

	ctx := context.Background()
	hosts := check.NewHostDirectory(client, cfg.Check.HostType)

	if listHostnames {
		names, err := hosts.Hostnames(ctx)
		if err != nil {
			return unknown("cannot list hostnames", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return check.OK.ExitCode()
	}

	if hostname == "" {
		return unknown("no hostname given (use --hostname, or --list to enumerate)", nil)
	}

	serverID, err := hosts.Resolve(ctx, hostname)
	if err != nil {
		return unknown("cannot resolve host", err)
	}
	log.Infof("resolved %s to server id %d", hostname, serverID)

	trackingID, err := client.MetricTrackingID(ctx, cfg.Check.HostType, serverID)
	if err != nil {
		return unknown("cannot resolve metric tracking object", err)
	}

	snap, err := client.BandwidthSummary(ctx, trackingID)
	if err != nil {
		return unknown("cannot fetch bandwidth summary", err)
	}

	th := check.Thresholds{
		WarningPercent:           cfg.Check.WarningPercent,
		CriticalPercent:          cfg.Check.CriticalPercent,
		RenewalDay:               cfg.Check.RenewalDay,
		CurrentOverageCritical:   currentCrit,
		ProjectedOverageCritical: projectedCrit,
	}
	severity, msg := check.Evaluate(snap, th, time.Now())
	fmt.Println(check.StatusLine(severity, msg, check.PerfData(snap, th)))
	return severity.ExitCode()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(check.StatusLine(check.Unknown, err.Error(), ""))
		os.Exit(check.Unknown.ExitCode())
	}
}
