package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/scoring"
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Show the salary benchmark for a position",
	Run: func(cmd *cobra.Command, _ []string) {
		salary(cmd)
	},
}

func init() {
	rootCmd.AddCommand(salaryCmd)

	salaryCmd.Flags().String("position", "", "position, for example \"Frontend Developer\"")
	salaryCmd.Flags().String("level", "", "seniority level")
	salaryCmd.Flags().String("industry", "", "industry")
	salaryCmd.Flags().String("city", "", "city used for the regional adjustment")
	salaryCmd.Flags().Int("salary", 0, "a monthly salary to place in the band")
	salaryCmd.MarkFlagRequired("position")
	salaryCmd.MarkFlagRequired("level")
}

func salary(cmd *cobra.Command) {
	a := bootstrap()
	defer a.shutdown()

	flags := cmd.Flags()
	var q scoring.BenchmarkQuery
	q.Position, _ = flags.GetString("position")
	q.Level, _ = flags.GetString("level")
	q.Industry, _ = flags.GetString("industry")
	q.City, _ = flags.GetString("city")
	q.Salary, _ = flags.GetInt("salary")

	result, err := scoring.Benchmark(q)
	if errors.Is(err, scoring.ErrNoBenchmark) {
		fmt.Printf("No salary data for %s %s yet.\n", q.Level, q.Position)
		return
	}
	if err != nil {
		a.logger.Fatal("salary benchmark", zap.Error(err))
	}

	a.logger.Debug("salary benchmark",
		zap.Bool("exact", result.Exact),
		zap.Int("rows", result.Rows),
		zap.Float64("adjustment", result.Adjustment),
	)

	b := result.Band
	fmt.Printf("%s %s (%s, %s)\n", q.Level, q.Position, orAny(q.Industry), orAny(q.City))
	fmt.Printf("P25 R$ %d | P50 R$ %d | P75 R$ %d | P90 R$ %d\n", b.P25, b.P50, b.P75, b.P90)
	if result.HasSalary {
		fmt.Println(percentileLabel(result.Percentile))
	}
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func percentileLabel(p int) string {
	switch p {
	case scoring.BelowP25:
		return "Your salary is below the 25th percentile."
	case scoring.AtP90:
		return "Your salary is at the top 10% of the market."
	default:
		return fmt.Sprintf("Your salary is at or above the %dth percentile.", p)
	}
}
