// cmd/tools/risk-predict/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/artifactstore"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

var (
	artifactsFlag = &cli.StringFlag{
		Name:    "artifacts",
		Usage:   "Directory holding the model artifacts",
		Value:   "./artifacts",
		Sources: cli.EnvVars("ARTIFACTS_DIR"),
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the full assessment as JSON",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs",
	}
)

func applicantFlags() []cli.Flag {
	d := form.Defaults(nil)
	return []cli.Flag{
		&cli.FloatFlag{Name: form.FieldAge, Usage: "Age (18-75)", Value: float64(d.Age)},
		&cli.FloatFlag{Name: form.FieldIncome, Usage: "Annual income (5000-500000)", Value: d.Income},
		&cli.FloatFlag{Name: form.FieldEmploymentExperience, Usage: "Employment experience in years (0-40)", Value: float64(d.EmploymentExperience)},
		&cli.StringFlag{Name: form.FieldHomeOwnership, Usage: "Home ownership (MORTGAGE, OTHER, OWN, RENT)", Value: string(d.HomeOwnership)},
		&cli.FloatFlag{Name: form.FieldLoanAmount, Usage: "Loan amount (1000-500000)", Value: d.LoanAmount},
		&cli.FloatFlag{Name: form.FieldInterestRate, Usage: "Interest rate in percent (5-30)", Value: d.InterestRate},
		&cli.StringFlag{Name: form.FieldPreviousDefaults, Usage: "Previous loan defaults on file (No, Yes)", Value: string(d.PreviousDefaults)},
		&cli.FloatFlag{Name: form.FieldCreditHistoryLength, Usage: "Credit history length in years (0-40)", Value: float64(d.CreditHistoryLength)},
		&cli.FloatFlag{Name: form.FieldCreditScore, Usage: "Credit score (300-850)", Value: float64(d.CreditScore)},
	}
}

func main() {
	cmd := &cli.Command{
		Name:      "risk-predict",
		Usage:     "Estimate the probability that a loan applicant defaults",
		UsageText: "risk-predict --artifacts ./artifacts --income 52000 --homeOwnership MORTGAGE --previousDefaults No",
		Flags:     append([]cli.Flag{artifactsFlag, jsonFlag, debugFlag}, applicantFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			level := "warn"
			if cmd.Bool(debugFlag.Name) {
				level = "debug"
			}
			log := logger.NewZapAdapter(logger.New(level, "console"))

			vars := make(map[string]interface{}, len(form.FieldNames()))
			for _, name := range form.FieldNames() {
				switch name {
				case form.FieldHomeOwnership, form.FieldPreviousDefaults:
					vars[name] = cmd.String(name)
				default:
					vars[name] = cmd.Float(name)
				}
			}
			return predict(ctx, cmd.String(artifactsFlag.Name), vars, cmd.Bool(jsonFlag.Name), os.Stdout, log)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// predict loads the bundle from dir, assesses the applicant in vars and writes
// the result to out.
func predict(ctx context.Context, dir string, vars map[string]interface{}, asJSON bool, out io.Writer, log logger.Logger) error {
	bundle, err := artifactstore.NewStore(artifactstore.NewFileSource(dir), log, "").Load(ctx)
	if err != nil {
		return err
	}

	applicant, err := form.Parse(vars)
	if err != nil {
		return err
	}

	assessment, err := risk.NewAssessor(bundle, log).Assess(ctx, *applicant)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}
	return printAssessment(out, assessment)
}

func printAssessment(out io.Writer, a *models.Assessment) error {
	_, err := fmt.Fprintf(out,
		"Probability of default: %s\nVerdict: %s (%s)\nDecision threshold: %s\nModel: %s\n",
		a.ProbabilityDisplay, a.VerdictLabel, a.VerdictSummary, a.ThresholdDisplay, a.ModelVersion,
	)
	return err
}
