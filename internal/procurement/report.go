package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/procurement-desk/internal/bids"
	"github.com/joelkehle/procurement-desk/internal/vendors"
)

// DossierData collects everything that goes into a session's dossier.
// VendorScores and Bids are optional appendix material.
type DossierData struct {
	State        *PipelineState
	VendorScores []vendors.Score
	Bids         []bids.BidRecord
	GeneratedAt  time.Time
}

// BuildDossier renders the session's completed stage outputs as one
// markdown document: a metadata header, one section per completed stage in
// workflow order, then vendor performance and parsed-bid appendices when
// that data is present.
func BuildDossier(data DossierData) string {
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# TransGlobal Industries — Procurement Dossier\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Stages completed: %d of %d\n\n", data.State.Len(), len(stageOrder))

	for _, stage := range data.State.Completed() {
		out, _ := data.State.Output(stage)
		fmt.Fprintf(&b, "## %s\n\n", stage.ResultHeading())
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(out))
	}

	if len(data.VendorScores) > 0 {
		fmt.Fprintf(&b, "## Vendor Performance\n\n")
		fmt.Fprintf(&b, "| Vendor | Delivery punctuality | Quality of goods | Contract compliance | Overall |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|\n")
		for _, s := range data.VendorScores {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.1f |\n",
				sanitizeCell(s.Vendor), s.DeliveryPunctuality, s.QualityOfGoods, s.ContractTermCompliance, s.Overall)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(data.Bids) > 0 {
		fmt.Fprintf(&b, "## Parsed Bids\n\n")
		fmt.Fprintf(&b, "| Vendor | Price | Delivery |\n")
		fmt.Fprintf(&b, "|---|---|---|\n")
		for _, rec := range data.Bids {
			price := "—"
			if rec.Price != nil {
				price = bids.FormatUSD(*rec.Price)
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cellOrDash(rec.Vendor), price, cellOrDash(rec.Delivery))
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// sanitizeCell prepares text for use inside a markdown table cell: strips
// newlines and escapes pipe characters that would break the column layout.
func sanitizeCell(s string) string {
	return strings.ReplaceAll(sanitize(s), "|", "\\|")
}

func cellOrDash(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "—"
	}
	return sanitizeCell(*v)
}
