package bids

import (
	"sort"
	"strconv"
	"strings"
)

const (
	bidMarker    = "Bid"
	totalCostTag = "Total Cost:"
	leadTimeTag  = "Lead Time:"
)

// BidRecord is one vendor proposal extracted from a freeform bid blob.
// Optional fields are nil when the source text did not carry them; JSON
// omits absent fields rather than writing null.
type BidRecord struct {
	Raw      string   `json:"raw_text"`
	Vendor   *string  `json:"vendor,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Delivery *string  `json:"delivery_time,omitempty"`
}

// Parse splits a freeform blob on the literal "Bid" marker and builds one
// record per non-blank chunk. A field the text does not carry is nil; a
// malformed chunk degrades to a minimal record, never an error. Records
// come back sorted by ascending price, priceless records last, input order
// preserved among ties.
func Parse(blob string) []BidRecord {
	var records []BidRecord
	for _, chunk := range strings.Split(blob, bidMarker) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		rec := BidRecord{Raw: bidMarker + chunk}
		lines := strings.Split(chunk, "\n")
		if first := lines[0]; strings.Contains(first, ":") {
			v := strings.TrimSpace(strings.SplitN(first, ":", 2)[1])
			rec.Vendor = &v
		}
		for _, line := range lines {
			if strings.Contains(line, totalCostTag) {
				rec.Price = parsePrice(strings.TrimSpace(line))
				break
			}
		}
		for _, line := range lines {
			if strings.Contains(line, leadTimeTag) {
				d := strings.TrimSpace(line)
				rec.Delivery = &d
				break
			}
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := records[i].Price, records[j].Price
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})
	return records
}

// parsePrice pulls the dollar amount out of a "Total Cost:" line: the text
// between the first "$" and the next "$" or end of line, commas stripped.
// nil when there is no "$" or the number does not parse.
func parsePrice(line string) *float64 {
	parts := strings.Split(line, "$")
	if len(parts) < 2 {
		return nil
	}
	raw := strings.TrimSpace(strings.ReplaceAll(parts[1], ",", ""))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// BarChart is the chart-ready dataset for comparing bid prices.
type BarChart struct {
	Title    string    `json:"title"`
	YAxis    string    `json:"y_axis"`
	Labels   []string  `json:"labels"`
	Prices   []float64 `json:"prices"`
	Captions []string  `json:"captions"`
}

// BuildBarChart returns the bid comparison dataset, or nil unless every
// record carries both a vendor and a price.
func BuildBarChart(records []BidRecord) *BarChart {
	if len(records) == 0 {
		return nil
	}
	for _, rec := range records {
		if rec.Vendor == nil || rec.Price == nil {
			return nil
		}
	}
	chart := &BarChart{Title: "Bid Comparison", YAxis: "Price ($)"}
	for _, rec := range records {
		chart.Labels = append(chart.Labels, *rec.Vendor)
		chart.Prices = append(chart.Prices, *rec.Price)
		chart.Captions = append(chart.Captions, FormatUSD(*rec.Price))
	}
	return chart
}

// FormatUSD renders a dollar amount with comma grouping and cents,
// e.g. 125000 -> "$125,000.00".
func FormatUSD(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	dot := strings.IndexByte(s, '.')
	whole, cents := s[:dot], s[dot:]
	var b strings.Builder
	rem := len(whole) % 3
	if rem > 0 {
		b.WriteString(whole[:rem])
	}
	for i := rem; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	out := b.String() + cents
	if neg {
		return "$-" + out
	}
	return "$" + out
}
