package scoring

import (
	"errors"
	"math"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/utils"
)

// ErrNoBenchmark is returned when no salary row matches the position and level.
var ErrNoBenchmark = errors.New("no salary benchmark for position and level")

const (
	BelowP25 = 0
	AtP25    = 25
	AtP50    = 50
	AtP75    = 75
	AtP90    = 90
)

type BenchmarkQuery struct {
	Position string
	Level    string
	Industry string
	City     string
	// Salary is optional; when positive the result carries its percentile bucket.
	Salary int
}

type BenchmarkResult struct {
	Band catalog.SalaryBand `json:"band"`
	// Exact is true when a row matched all four keys.
	Exact bool `json:"exact"`
	// Rows is the number of table rows the band was derived from.
	Rows       int     `json:"rows"`
	Adjustment float64 `json:"adjustment"`
	Percentile int     `json:"percentile"`
	HasSalary  bool    `json:"has_salary"`
}

// Benchmark looks the query up in the salary table. An exact
// (position, level, industry, city) row wins. Otherwise every row for the
// position and level is brought back to the São Paulo base, averaged, and
// scaled by the regional adjustment of the requested city.
func Benchmark(q BenchmarkQuery) (*BenchmarkResult, error) {
	return benchmark(catalog.SalaryTable, catalog.RegionalAdjustments, q)
}

func benchmark(table []catalog.SalaryBand, regions map[string]float64, q BenchmarkQuery) (*BenchmarkResult, error) {
	position := utils.NormalizeKey(q.Position)
	level := utils.NormalizeKey(q.Level)
	industry := utils.NormalizeKey(q.Industry)
	city := utils.NormalizeKey(q.City)

	var candidates []catalog.SalaryBand
	for _, row := range table {
		if utils.NormalizeKey(row.Position) != position || utils.NormalizeKey(row.Level) != level {
			continue
		}
		if utils.NormalizeKey(row.Industry) == industry && utils.NormalizeKey(row.City) == city {
			result := &BenchmarkResult{Band: row, Exact: true, Rows: 1, Adjustment: 1}
			result.setSalary(q.Salary)
			return result, nil
		}
		candidates = append(candidates, row)
	}

	if len(candidates) == 0 {
		return nil, ErrNoBenchmark
	}

	var p25, p50, p75, p90 float64
	for _, row := range candidates {
		base := regionFactor(regions, row.City)
		p25 += float64(row.P25) / base
		p50 += float64(row.P50) / base
		p75 += float64(row.P75) / base
		p90 += float64(row.P90) / base
	}

	n := float64(len(candidates))
	factor := regionFactor(regions, q.City)
	result := &BenchmarkResult{
		Band: catalog.SalaryBand{
			Position: candidates[0].Position,
			Level:    candidates[0].Level,
			Industry: q.Industry,
			City:     q.City,
			P25:      roundTo100(p25 / n * factor),
			P50:      roundTo100(p50 / n * factor),
			P75:      roundTo100(p75 / n * factor),
			P90:      roundTo100(p90 / n * factor),
		},
		Rows:       len(candidates),
		Adjustment: factor,
	}
	result.setSalary(q.Salary)
	return result, nil
}

func (r *BenchmarkResult) setSalary(salary int) {
	if salary <= 0 {
		return
	}
	r.HasSalary = true
	r.Percentile = PercentileBucket(r.Band, salary)
}

// PercentileBucket returns the highest percentile of the band the salary
// reaches, or BelowP25.
func PercentileBucket(band catalog.SalaryBand, salary int) int {
	switch {
	case salary >= band.P90:
		return AtP90
	case salary >= band.P75:
		return AtP75
	case salary >= band.P50:
		return AtP50
	case salary >= band.P25:
		return AtP25
	default:
		return BelowP25
	}
}

func regionFactor(regions map[string]float64, city string) float64 {
	if f, ok := regions[utils.NormalizeKey(city)]; ok && f > 0 {
		return f
	}
	return 1
}

func roundTo100(v float64) int {
	return int(math.Round(v/100) * 100)
}
