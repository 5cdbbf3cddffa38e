package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage committee meetings",
	Long:  `Schedule committee meetings for a process and move them through their states.`,
}

var meetingScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a meeting",
	Args:  cobra.NoArgs,
	RunE:  runMeetingSchedule,
}

var meetingStateCmd = &cobra.Command{
	Use:   "state [meeting-id] [state]",
	Short: "Advance or cancel a meeting",
	Long: `Request a new state for a meeting.

Meetings move one step at a time: scheduled, in_progress, concluded. Any
request other than "cancelled" advances by one step; asking for
in_progress or scheduled while in progress leaves the meeting unchanged.
Concluded and cancelled meetings cannot change.`,
	Args: cobra.ExactArgs(2),
	RunE: runMeetingState,
}

var meetingRescheduleCmd = &cobra.Command{
	Use:   "reschedule [meeting-id]",
	Short: "Move a scheduled meeting to a later date",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeetingReschedule,
}

var meetingGetCmd = &cobra.Command{
	Use:   "get [meeting-id]",
	Short: "Show a meeting",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeetingGet,
}

var meetingListCmd = &cobra.Command{
	Use:   "list [process-id]",
	Short: "List the meetings of a process",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeetingList,
}

// Flags for meeting subcommands.
var (
	meetingProcess   string
	meetingCommittee string
	meetingAt        string
	meetingLocation  string
)

func init() {
	meetingScheduleCmd.Flags().StringVar(&meetingProcess, "process", "", "process id")
	meetingScheduleCmd.Flags().StringVar(&meetingCommittee, "committee", "", "approved committee id")
	meetingScheduleCmd.Flags().StringVar(&meetingAt, "at", "", "date and time (RFC 3339 or YYYY-MM-DD HH:MM)")
	meetingScheduleCmd.Flags().StringVar(&meetingLocation, "location", "", "where the meeting takes place")
	for _, name := range []string{"process", "committee", "at", "location"} {
		_ = meetingScheduleCmd.MarkFlagRequired(name)
	}

	meetingRescheduleCmd.Flags().StringVar(&meetingAt, "at", "", "new date and time")
	meetingRescheduleCmd.Flags().StringVar(&meetingLocation, "location", "", "new location (default unchanged)")
	_ = meetingRescheduleCmd.MarkFlagRequired("at")

	meetingCmd.AddCommand(meetingScheduleCmd)
	meetingCmd.AddCommand(meetingStateCmd)
	meetingCmd.AddCommand(meetingRescheduleCmd)
	meetingCmd.AddCommand(meetingGetCmd)
	meetingCmd.AddCommand(meetingListCmd)
	rootCmd.AddCommand(meetingCmd)
}

func runMeetingSchedule(cmd *cobra.Command, _ []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}
	at, err := parseWhen(meetingAt)
	if err != nil {
		return err
	}

	m, err := meetingService.Schedule(cmd.Context(), actor, domain.ScheduleRequest{
		ProcessID:   meetingProcess,
		CommitteeID: meetingCommittee,
		At:          at,
		Location:    meetingLocation,
	})
	if err != nil {
		return fmt.Errorf("failed to schedule meeting: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, m)
	}
	cmd.Printf("Scheduled meeting %s for %s at %s\n", m.ID, formatTime(m.ScheduledAt), m.Location)
	return nil
}

func runMeetingState(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}

	tr, err := meetingService.EditState(cmd.Context(), actor, args[0], domain.MeetingState(args[1]))
	if err != nil {
		return fmt.Errorf("failed to change meeting state: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, tr)
	}
	if !tr.Changed {
		cmd.Printf("Meeting unchanged: %s\n", tr.Message)
		return nil
	}
	cmd.Printf("Meeting %s is now %s\n", tr.Meeting.ID, tr.Meeting.State)
	return nil
}

func runMeetingReschedule(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}
	actor, err := currentActor()
	if err != nil {
		return err
	}
	at, err := parseWhen(meetingAt)
	if err != nil {
		return err
	}

	m, err := meetingService.Reschedule(cmd.Context(), actor, args[0], at, meetingLocation)
	if err != nil {
		return fmt.Errorf("failed to reschedule meeting: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, m)
	}
	cmd.Printf("Rescheduled meeting %s to %s at %s\n", m.ID, formatTime(m.ScheduledAt), m.Location)
	return nil
}

func runMeetingGet(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	actor, err := currentActor()
	if err != nil {
		return err
	}

	m, err := meetingService.Get(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to get meeting: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, m)
	}
	cmd.Printf("Meeting %s\n", m.ID)
	cmd.Printf("  Process:   %s\n", m.ProcessID)
	cmd.Printf("  Committee: %s\n", m.CommitteeID)
	cmd.Printf("  When:      %s\n", formatTime(m.ScheduledAt))
	cmd.Printf("  Location:  %s\n", m.Location)
	cmd.Printf("  State:     %s\n", m.State)
	if m.AtaDocumentID != nil {
		cmd.Printf("  Ata:       %s\n", *m.AtaDocumentID)
	}
	return nil
}

func runMeetingList(cmd *cobra.Command, args []string) error {
	if meetingService == nil {
		return errors.New("meeting service not configured")
	}

	actor, err := currentActor()
	if err != nil {
		return err
	}

	meetings, err := meetingService.ListByProcess(cmd.Context(), actor, args[0])
	if err != nil {
		return fmt.Errorf("failed to list meetings: %w", err)
	}
	if wantJSON(cmd) {
		return printJSON(cmd, meetings)
	}
	if len(meetings) == 0 {
		cmd.Printf("No meetings for process: %s\n", args[0])
		return nil
	}
	for i := range meetings {
		m := &meetings[i]
		cmd.Printf("  %s  %s  %-11s %s\n", m.ID, formatTime(m.ScheduledAt), m.State, m.Location)
	}
	cmd.Printf("\nTotal: %d meetings\n", len(meetings))
	return nil
}
