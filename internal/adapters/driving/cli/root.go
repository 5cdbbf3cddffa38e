// Package cli implements the juris command line.
//
// Commands are registered on rootCmd from init functions and talk to the
// core only through the driving ports set by SetServices.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// version is set at build time.
var version = "dev"

// Driving ports, set by SetServices.
var (
	processService   driving.ProcessService
	meetingService   driving.MeetingService
	documentService  driving.DocumentService
	partyService     driving.PartyService
	committeeService driving.CommitteeService
	auditService     driving.AuditService
	settingsService  driving.SettingsService

	metricsRegistry *prometheus.Registry
	configWatcher   ConfigWatcher
)

// Persistent flags.
var (
	actorID      string
	actorRole    string
	verbose      bool
	jsonLogs     bool
	outputFormat string
)

// ConfigWatcher reloads configuration while a server runs.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Services carries everything the commands need.
type Services struct {
	Process   driving.ProcessService
	Meeting   driving.MeetingService
	Document  driving.DocumentService
	Party     driving.PartyService
	Committee driving.CommitteeService
	Audit     driving.AuditService
	Settings  driving.SettingsService

	// Metrics backs GET /metrics when serving. Optional.
	Metrics *prometheus.Registry
	// Watcher reloads the config file during serve. Optional.
	Watcher ConfigWatcher
}

var rootCmd = &cobra.Command{
	Use:   "juris",
	Short: "Legal and disciplinary process workflow",
	Long: `Juris tracks legal and disciplinary processes from registration to archive:
committee meetings, minutes, attached documents and the parties involved.

Every command acts on behalf of an employee, given with --actor (default
$JURIS_ACTOR or $USER) and --role.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		logger.SetJSON(jsonLogs)
	},
}

func init() {
	defaultActor := os.Getenv("JURIS_ACTOR")
	if defaultActor == "" {
		defaultActor = os.Getenv("USER")
	}
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", defaultActor, "employee id to act as")
	rootCmd.PersistentFlags().StringVar(&actorRole, "role", string(domain.RoleOwner), "actor role: owner or supervisor")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: auto, text or json")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices wires the driving ports used by the commands.
func SetServices(s Services) {
	processService = s.Process
	meetingService = s.Meeting
	documentService = s.Document
	partyService = s.Party
	committeeService = s.Committee
	auditService = s.Audit
	settingsService = s.Settings
	metricsRegistry = s.Metrics
	configWatcher = s.Watcher
}

// currentActor builds the actor from the persistent flags.
func currentActor() (domain.Actor, error) {
	if actorID == "" {
		return domain.Actor{}, errors.New("no actor: pass --actor or set JURIS_ACTOR")
	}
	role := domain.Role(actorRole)
	if !role.IsValid() {
		return domain.Actor{}, domain.Errorf(domain.ErrValidation, "unknown role %q", actorRole)
	}
	return domain.Actor{ID: actorID, Role: role}, nil
}
