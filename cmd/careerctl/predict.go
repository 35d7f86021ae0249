package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edu2job/edu2job-server/internal/client"
	"github.com/edu2job/edu2job-server/internal/models"
)

type predictFlags struct {
	degree         string
	major          string
	specialization string
	cgpa           float64
	skills         []string
	certifications []string
	experience     float64
	industry       string
}

func newPredictCmd(flags *globalFlags) *cobra.Command {
	p := &predictFlags{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Submit a profile to the career predictor",
		Long: `Submit an academic profile to the career predictor and print the
recommended roles with their scores.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := flags.newClient()
			if err != nil {
				return err
			}

			cgpa := models.FlexFloat(p.cgpa)
			experience := models.FlexFloat(p.experience)
			resp, err := c.Predict(cmd.Context(), models.PredictionRequest{
				Degree:         p.degree,
				Major:          p.major,
				Specialization: p.specialization,
				CGPA:           &cgpa,
				Skills:         p.skills,
				Certifications: p.certifications,
				Experience:     &experience,
				Industry:       p.industry,
			})
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
					return fmt.Errorf("%w: %s", err, apiErr.Details)
				}
				return err
			}

			if len(resp.Predictions) == 0 {
				cmd.Println("No matching roles found.")
				return nil
			}
			cmd.Println("Recommended roles:")
			for i, pred := range resp.Predictions {
				cmd.Printf("%d. %s (%.1f%%)\n", i+1, pred.Role, pred.Score*100)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p.degree, "degree", "", "degree, e.g. B.Tech")
	cmd.Flags().StringVar(&p.major, "major", "", "major, e.g. CSE")
	cmd.Flags().StringVar(&p.specialization, "specialization", "", "specialization")
	cmd.Flags().Float64Var(&p.cgpa, "cgpa", 0, "CGPA on a 10-point scale")
	cmd.Flags().StringSliceVar(&p.skills, "skills", nil, "comma-separated skills")
	cmd.Flags().StringSliceVar(&p.certifications, "certifications", nil, "comma-separated certifications")
	cmd.Flags().Float64Var(&p.experience, "experience", 0, "years of experience")
	cmd.Flags().StringVar(&p.industry, "industry", "", "preferred industry")

	return cmd
}
