/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/sugarcheck/risk"
	"github.com/humaidq/sugarcheck/routes"
)

var CmdAssess = newAssessCommand()

func newAssessCommand() *cli.Command {
	return &cli.Command{
		Name:  "assess",
		Usage: "Run a single risk assessment from the terminal",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "name to address the result to"},
			&cli.IntFlag{Name: "age", Usage: "age in years (1-100)", Required: true},
			&cli.StringFlag{Name: "gender", Value: string(risk.GenderOther), Usage: "male, female or other"},
			&cli.BoolFlag{Name: "hypertension", Usage: "diagnosed with hypertension"},
			&cli.BoolFlag{Name: "heart-disease", Usage: "diagnosed with heart disease"},
			&cli.StringFlag{Name: "smoking", Value: string(risk.SmokingNoInfo), Usage: "smoking history"},
			&cli.FloatFlag{Name: "bmi", Usage: "body mass index"},
			&cli.FloatFlag{Name: "weight-kg", Usage: "weight in kilograms (with --height-cm instead of --bmi)"},
			&cli.FloatFlag{Name: "height-cm", Usage: "height in centimetres"},
			&cli.FloatFlag{Name: "glucose", Usage: "blood glucose in mg/dL", Required: true},
			&cli.FloatFlag{Name: "hba1c", Usage: "HbA1c in %, estimated from glucose when omitted"},
			&cli.FloatFlag{Name: "insulin", Usage: "insulin in μU/mL"},
			&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
		}, predictorFlags()...),
		Action: runAssess,
	}
}

func assessInput(cmd *cli.Command) (risk.Input, error) {
	in := risk.Input{
		Name:           cmd.String("name"),
		Age:            cmd.Int("age"),
		Gender:         risk.Gender(strings.ToLower(cmd.String("gender"))),
		SmokingHistory: risk.SmokingHistory(cmd.String("smoking")),
		BloodGlucose:   cmd.Float("glucose"),
		HbA1c:          cmd.Float("hba1c"),
	}

	if cmd.Bool("hypertension") {
		in.Hypertension = 1
	}

	if cmd.Bool("heart-disease") {
		in.HeartDisease = 1
	}

	if cmd.IsSet("insulin") {
		insulin := cmd.Float("insulin")
		in.Insulin = &insulin
	}

	switch {
	case cmd.IsSet("weight-kg") && cmd.IsSet("height-cm"):
		bmi, err := risk.BMI(cmd.Float("weight-kg"), cmd.Float("height-cm"))
		if err != nil {
			return risk.Input{}, err
		}
		in.BMI = bmi
	case cmd.IsSet("bmi"):
		in.BMI = cmd.Float("bmi")
	default:
		return risk.Input{}, errBMIRequired
	}

	return in, nil
}

func runAssess(ctx context.Context, cmd *cli.Command) error {
	predictor, _, err := buildPredictor(cmd)
	if err != nil {
		return err
	}

	in, err := assessInput(cmd)
	if err != nil {
		return err
	}

	in, res, err := risk.Assess(ctx, predictor, in)
	if err != nil {
		cliLogger.Error("Assessment failed", "predictor", predictor.Name(), "error", err)
		return err
	}

	out := cmd.Root().Writer

	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(routes.NewPredictResponse(in, res))
	}

	return writeAssessment(out, in, res)
}

// writeAssessment prints a human readable summary.
func writeAssessment(w io.Writer, in risk.Input, res risk.Result) error {
	guidance := risk.GuidanceFor(res.RiskCategory, in.Name)

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", guidance.Title)
	fmt.Fprintf(&b, "Risk:       %s (%.1f%%)\n", res.RiskCategory, res.RiskPercentage)
	fmt.Fprintf(&b, "Predictor:  %s\n", res.Predictor)

	if len(res.Signals) > 0 {
		fmt.Fprintf(&b, "Signals:    %s\n", strings.Join(res.Signals, ", "))
	}

	fmt.Fprintf(&b, "BMI:        %.1f\n", in.BMI)

	if in.HbA1cEstimated {
		fmt.Fprintf(&b, "HbA1c:      %.1f%% (estimated from glucose)\n", in.HbA1c)
	} else {
		fmt.Fprintf(&b, "HbA1c:      %.1f%%\n", in.HbA1c)
	}

	fmt.Fprintf(&b, "\n%s\n\n%s\n", guidance.Description, guidance.RecommendationsFor)

	for _, rec := range guidance.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}

	if guidance.ShowDisclaimer {
		fmt.Fprintf(&b, "\n%s\n", risk.Disclaimer)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
