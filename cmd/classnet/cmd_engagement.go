package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kwatanabe/classnet/internal/engagement"
	"github.com/kwatanabe/classnet/internal/models"
)

func newEngagementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engagement",
		Short: "Score engagement and risk for an archived session",
		Long: `Derive per-participant engagement and risk records from an archived
session. Without --participant every rostered participant is scored.

The participation gap is measured against --reference when given,
otherwise against the session's own cohort average.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, _ := cmd.Flags().GetString("session")
			participantID, _ := cmd.Flags().GetString("participant")
			reference, _ := cmd.Flags().GetFloat64("reference")
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if sessionID == "" {
				return fmt.Errorf("%w: --session is required", models.ErrInvalidParameter)
			}

			archive, err := openArchive(root)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer archive.Close()

			rec, err := archive.Get(context.Background(), sessionID)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("reference") {
				reference = cohortAverage(rec.Participants)
			}

			roster := rec.Participants
			if participantID != "" {
				p, ok := rec.Participant(participantID)
				if !ok {
					return fmt.Errorf("%w: participant %s not in session %s",
						models.ErrInvalidParameter, participantID, sessionID)
				}
				roster = []models.Participant{p}
			}

			records := make([]models.EngagementRecord, len(roster))
			for i, p := range roster {
				records[i] = engagement.Score(engagement.ScoreParams{
					Participant:               p,
					Session:                   rec,
					ReferenceAvgParticipation: reference,
					Timestamp:                 rec.Date,
				})
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			for _, er := range records {
				flags := append(append([]string{}, er.AcademicRiskFlags...), er.SocialRiskFlags...)
				flagNote := "none"
				if len(flags) > 0 {
					flagNote = strings.Join(flags, ",")
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"%-12s risk %5.1f  freq %5.2f/h  position %.3f  trend %-10s flags: %s\n",
					er.ParticipantID, er.OverallRiskScore, er.InteractionFrequency,
					er.SocialNetworkPosition, er.EngagementTrend, flagNote)
			}
			return nil
		},
	}

	cmd.Flags().String("session", "", "Archived session identifier")
	cmd.Flags().String("participant", "", "Score a single participant")
	cmd.Flags().Float64("reference", 0, "Reference average participation score (default: cohort average)")

	return cmd
}

func cohortAverage(participants []models.Participant) float64 {
	if len(participants) == 0 {
		return 0
	}
	var total float64
	for _, p := range participants {
		total += float64(p.ParticipationScore)
	}
	return total / float64(len(participants))
}
