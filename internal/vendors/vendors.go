package vendors

import (
	"fmt"
	"math/rand"
	"sort"
)

// Rating is one historical interaction with a vendor. The three rating
// columns are expected in [1,10]; out-of-range values pass through
// unchanged, scoring does not clamp.
type Rating struct {
	Vendor                 string  `db:"vendor" json:"vendor"`
	InteractionDate        string  `db:"interaction_date" json:"interaction_date"`
	DeliveryPunctuality    float64 `db:"delivery_punctuality" json:"delivery_punctuality"`
	QualityOfGoods         float64 `db:"quality_of_goods" json:"quality_of_goods"`
	ContractTermCompliance float64 `db:"contract_term_compliance" json:"contract_term_compliance"`
	Comments               string  `db:"comments" json:"comments"`
}

// Score is the per-vendor aggregate: the arithmetic mean of each rating
// column and their unweighted overall mean.
type Score struct {
	Vendor                 string  `json:"vendor"`
	DeliveryPunctuality    float64 `json:"delivery_punctuality"`
	QualityOfGoods         float64 `json:"quality_of_goods"`
	ContractTermCompliance float64 `json:"contract_term_compliance"`
	Overall                float64 `json:"overall_score"`
}

type scoreAccum struct {
	delivery   float64
	quality    float64
	compliance float64
	n          int
}

// ScoreRatings aggregates rating rows into per-vendor scores, sorted by
// descending overall score. The sort is stable: vendors tied on overall
// keep their first-appearance order. Empty input yields empty output.
func ScoreRatings(rows []Rating) []Score {
	var order []string
	accums := map[string]*scoreAccum{}
	for _, r := range rows {
		acc, ok := accums[r.Vendor]
		if !ok {
			acc = &scoreAccum{}
			accums[r.Vendor] = acc
			order = append(order, r.Vendor)
		}
		acc.delivery += r.DeliveryPunctuality
		acc.quality += r.QualityOfGoods
		acc.compliance += r.ContractTermCompliance
		acc.n++
	}
	scores := make([]Score, 0, len(order))
	for _, vendor := range order {
		acc := accums[vendor]
		n := float64(acc.n)
		s := Score{
			Vendor:                 vendor,
			DeliveryPunctuality:    acc.delivery / n,
			QualityOfGoods:         acc.quality / n,
			ContractTermCompliance: acc.compliance / n,
		}
		s.Overall = (s.DeliveryPunctuality + s.QualityOfGoods + s.ContractTermCompliance) / 3
		scores = append(scores, s)
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Overall > scores[j].Overall })
	return scores
}

// RadarChart is the chart-ready dataset comparing the top vendors across
// the three rating dimensions.
type RadarChart struct {
	Title  string        `json:"title"`
	Axes   []string      `json:"axes"`
	Range  [2]float64    `json:"range"`
	Series []RadarSeries `json:"series"`
}

type RadarSeries struct {
	Vendor string    `json:"vendor"`
	Values []float64 `json:"values"`
}

var radarAxes = []string{"Delivery punctuality", "Quality of goods", "Contract compliance"}

// BuildRadarChart returns the performance comparison dataset for at most
// the top five scores, or nil when there are none.
func BuildRadarChart(scores []Score) *RadarChart {
	if len(scores) == 0 {
		return nil
	}
	top := scores
	if len(top) > 5 {
		top = top[:5]
	}
	chart := &RadarChart{
		Title: "Top Vendor Performance Comparison",
		Axes:  append([]string(nil), radarAxes...),
		Range: [2]float64{0, 10},
	}
	for _, s := range top {
		chart.Series = append(chart.Series, RadarSeries{
			Vendor: s.Vendor,
			Values: []float64{s.DeliveryPunctuality, s.QualityOfGoods, s.ContractTermCompliance},
		})
	}
	return chart
}

var sampleVendors = []string{"Vendor A", "Vendor B", "Vendor C", "Vendor D", "Vendor E"}

var sampleComments = []string{
	"Exceeded expectations",
	"Met expectations",
	"Minor issues",
	"Below expectations",
}

// SampleRatings generates the demo rating history: ten interactions per
// sample vendor with ratings in 1..10. Deterministic for a given seed.
func SampleRatings(seed int64) []Rating {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]Rating, 0, len(sampleVendors)*10)
	for _, vendor := range sampleVendors {
		for i := 0; i < 10; i++ {
			rows = append(rows, Rating{
				Vendor:                 vendor,
				InteractionDate:        fmt.Sprintf("2024-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1),
				DeliveryPunctuality:    float64(rng.Intn(10) + 1),
				QualityOfGoods:         float64(rng.Intn(10) + 1),
				ContractTermCompliance: float64(rng.Intn(10) + 1),
				Comments:               sampleComments[rng.Intn(len(sampleComments))],
			})
		}
	}
	return rows
}
