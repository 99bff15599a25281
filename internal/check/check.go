// Package check classifies a server's transfer usage into a monitoring
// severity and formats the status line the check protocol expects.
package check

import (
	"fmt"
	"time"

	"zonesync/internal/model"
)

// Severity is the status-check result. OK, Warning and Critical are
// ordered; Unknown means the check itself could not be completed and is
// never compared ordinally against the other three.
type Severity int

const (
	OK       Severity = 0
	Warning  Severity = 1
	Critical Severity = 2
	Unknown  Severity = 3
)

func (s Severity) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// ExitCode is the process exit code for this severity.
func (s Severity) ExitCode() int { return int(s) }

// escalate raises s to at least target. Only the ordered subset takes
// part; Unknown passes through untouched on either side.
func (s Severity) escalate(target Severity) Severity {
	if s == Unknown || target == Unknown {
		return s
	}
	if target > s {
		return target
	}
	return s
}

// Thresholds is the evaluation configuration. Nil percent thresholds are
// unset; RenewalDay 0 means no billing-cycle reset day is known.
type Thresholds struct {
	WarningPercent           *float64
	CriticalPercent          *float64
	RenewalDay               int
	CurrentOverageCritical   bool
	ProjectedOverageCritical bool
}

// Evaluate classifies one bandwidth snapshot. The base severity comes
// from the usage percentage; the overage flags may then escalate it, and
// only ever upward. A projected overage is ignored on the renewal day
// itself, when the provider's projection straddles the billing reset.
func Evaluate(snap model.BandwidthSnapshot, th Thresholds, now time.Time) (Severity, string) {
	if snap.Outbound == nil {
		return Unknown, "missing outbound amount"
	}
	if snap.Allocation == nil {
		return Unknown, "missing allocation amount"
	}
	outbound, allocation := *snap.Outbound, *snap.Allocation

	var severity Severity
	var msg string
	usedPct := outbound / allocation * 100

	switch {
	case outbound >= allocation:
		severity = Critical
		msg = fmt.Sprintf("Bandwidth used %.1f over allocation of %.1f", outbound, allocation)
	case th.CriticalPercent != nil && usedPct >= *th.CriticalPercent:
		severity = Critical
		msg = fmt.Sprintf("%.1f%% transfer used, over critical threshold of %g%%.", usedPct, *th.CriticalPercent)
	case th.WarningPercent != nil && usedPct >= *th.WarningPercent:
		severity = Warning
		msg = fmt.Sprintf("%.1f%% transfer used, over warning threshold of %g%%.", usedPct, *th.WarningPercent)
	default:
		severity = OK
		msg = fmt.Sprintf("%.1f%% allocation used", usedPct)
	}

	switch {
	case snap.CurrentlyOverAllocation:
		if th.CurrentOverageCritical {
			severity = severity.escalate(Critical)
		}
		msg += fmt.Sprintf(", currently %.1f over allocation", outbound-allocation)
		if snap.ProjectedUsage != nil {
			msg += fmt.Sprintf(", projected %.1f over allocation", *snap.ProjectedUsage-allocation)
		}
	case snap.ProjectedOverAllocation && now.Day() != th.RenewalDay:
		if th.ProjectedOverageCritical {
			severity = severity.escalate(Critical)
		}
		if snap.ProjectedUsage != nil {
			msg += fmt.Sprintf(", projected to be %.1f over allocation", *snap.ProjectedUsage-allocation)
		} else {
			msg += ", projected to exceed allocation"
		}
	}

	return severity, msg
}

// PerfData renders the performance-data suffix for the status line, or
// "" when the snapshot has no usable amounts.
func PerfData(snap model.BandwidthSnapshot, th Thresholds) string {
	if snap.Outbound == nil || snap.Allocation == nil {
		return ""
	}
	warn, crit := "", ""
	if th.WarningPercent != nil {
		warn = fmt.Sprintf("%.1f", *snap.Allocation**th.WarningPercent/100)
	}
	if th.CriticalPercent != nil {
		crit = fmt.Sprintf("%.1f", *snap.Allocation**th.CriticalPercent/100)
	}
	return fmt.Sprintf("transfer=%.1f;%s;%s;0;%.1f", *snap.Outbound, warn, crit, *snap.Allocation)
}

// StatusLine is the single line the check prints on stdout.
func StatusLine(severity Severity, msg, perfdata string) string {
	line := fmt.Sprintf("TRANSFER %s: %s", severity, msg)
	if perfdata != "" {
		line += " | " + perfdata
	}
	return line
}
