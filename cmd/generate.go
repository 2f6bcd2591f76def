package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codearena/arena/internal/challenge"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Provision challenges without starting the TUI",
	Long: "Requests challenges exactly as a practice session does, including the fall back to\n" +
		"the sample set, and prints them.",
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringP("level", "l", "beginner", "Level: beginner, intermediate or advanced")
	f.IntP("count", "n", 0, "Number of challenges (default: batch size)")
	f.Bool("single", false, "Request one challenge through the single-challenge prompt")
	f.Bool("json", false, "Print challenges as JSON")
	f.Bool("check", false, "Validate every challenge against the challenge schema")
}

type generated struct {
	Provenance challenge.Provenance  `json:"provenance"`
	Challenges []challenge.Challenge `json:"challenges"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("level")
	level, ok := challenge.ParseLevel(raw)
	if !ok {
		return fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", raw)
	}
	count, _ := cmd.Flags().GetInt("count")
	single, _ := cmd.Flags().GetBool("single")
	asJSON, _ := cmd.Flags().GetBool("json")
	check, _ := cmd.Flags().GetBool("check")

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if count > 0 {
		s.BatchSize = count
	}
	logger := setupLogging(s)

	st, err := openStore(s)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	svc, err := buildServices(ctx, s, st.EventRepo(), logger)
	if err != nil {
		return err
	}

	var out generated
	if single {
		one, err := svc.Provision.RequestChallenge(ctx, level)
		if err != nil {
			return err
		}
		out = generated{Provenance: one.Provenance, Challenges: []challenge.Challenge{one.Challenge}}
	} else {
		b, err := svc.Provision.RequestBatch(ctx, level)
		if err != nil {
			return err
		}
		out = generated{Provenance: b.Provenance(), Challenges: b.Challenges()}
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode challenges: %w", err)
		}
	} else {
		printChallenges(w, out)
	}

	if check {
		return checkChallenges(cmd.ErrOrStderr(), out.Challenges)
	}
	return nil
}

func printChallenges(w io.Writer, out generated) {
	fmt.Fprintf(w, "Source: %s\n", out.Provenance.Label())
	fmt.Fprintf(w, "%-3s  %-36s  %-8s  %5s  %s\n", "#", "Title", "Tier", "Tests", "ID")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for i, c := range out.Challenges {
		fmt.Fprintf(w, "%-3d  %-36s  %-8s  %5d  %s\n",
			i+1, truncate(c.Title, 36), c.Difficulty, len(c.TestCases), c.ID)
	}
}

// checkChallenges reports every challenge that fails schema validation.
func checkChallenges(w io.Writer, cs []challenge.Challenge) error {
	var errs []error
	for i, c := range cs {
		if err := challenge.Validate(c); err != nil {
			fmt.Fprintf(w, "✗ %d %s: %v\n", i+1, c.Title, err)
			errs = append(errs, fmt.Errorf("challenge %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	fmt.Fprintf(w, "✓ %d challenge(s) valid\n", len(cs))
	return nil
}
