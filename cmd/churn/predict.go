package main

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/churn/internal/cli"
	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/tui"
	"github.com/Veraticus/churn/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func predictCmd() *cobra.Command {
	var (
		noTUI   bool
		asJSON  bool
		initial = model.DefaultCustomer()
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict churn for one customer",
		Long: `Predict churn for one customer.

By default an interactive form is shown. With --no-tui the customer is read
from flags, scored once, and the result is printed.`,
		Example: `  churn predict
  churn predict --no-tui --age 52 --geography Germany --products 1 --active=false
  churn predict --no-tui --json --credit-score 720 --balance 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			rt, _, err := loadRuntime(settings)
			if err != nil {
				return err
			}

			if !noTUI {
				return tui.Run(cmd.Context(), rt,
					tui.WithTheme(themes.GetTheme(settings.TUI.Theme)),
					tui.WithCreditScoreMax(settings.Form.CreditScoreMax),
					tui.WithInitial(initial),
				)
			}

			if err := initial.Validate(settings.Form.CreditScoreMax); err != nil {
				return common.NewUserError("invalid customer", fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
			}
			a, err := rt.Assess(initial)
			if err != nil {
				return common.NewUserError("prediction failed", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderAssessment(a))
			return err
		},
	}

	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "score the customer given by flags without the interactive form")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the assessment as JSON (with --no-tui)")
	customerFlags(cmd.Flags(), &initial)

	return cmd
}

// customerFlags binds one flag per customer field. The values also seed the
// interactive form.
func customerFlags(fs *pflag.FlagSet, c *model.CustomerData) {
	fs.IntVar(&c.CreditScore, "credit-score", c.CreditScore, "credit score")
	fs.StringVar((*string)(&c.Geography), "geography", string(c.Geography), "country (France, Spain, Germany)")
	fs.StringVar((*string)(&c.Gender), "gender", string(c.Gender), "gender (Male, Female)")
	fs.IntVar(&c.Age, "age", c.Age, "age in years (18-100)")
	fs.IntVar(&c.Tenure, "tenure", c.Tenure, "years as a customer (0-10)")
	fs.Float64Var(&c.Balance, "balance", c.Balance, "account balance")
	fs.IntVar(&c.NumOfProducts, "products", c.NumOfProducts, "number of products held (1-4)")
	fs.BoolVar(&c.HasCrCard, "credit-card", c.HasCrCard, "customer has a credit card")
	fs.BoolVar(&c.IsActiveMember, "active", c.IsActiveMember, "customer is an active member")
	fs.Float64Var(&c.EstimatedSalary, "salary", c.EstimatedSalary, "estimated salary")
}
