package workbench

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

var _ DossierPDFRenderer = (*ChromiumPDFRenderer)(nil)

func (r *ChromiumPDFRenderer) Render(ctx context.Context, markdown string) ([]byte, error) {
	htmlDoc, err := buildDossierHTML(markdown)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func buildDossierHTML(markdown string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Procurement Dossier</title>" +
		"<style>" +
		"html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;} " +
		"body{font-family:Georgia,'Times New Roman',serif;color:#1c1917;background:#fff;max-width:960px;margin:0 auto;padding:0.6rem;line-height:1.5;} " +
		"h1,h2,h3{font-family:Helvetica,Arial,sans-serif;color:#0c4a6e;} " +
		"h1{font-size:1.5rem;border-bottom:2px solid #0c4a6e;padding-bottom:0.3rem;} " +
		"h2{font-size:1.15rem;margin-top:1.4rem;break-after:avoid;page-break-after:avoid;} " +
		"table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;} " +
		"th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;} " +
		"thead th{background:#f1f5f9;font-weight:700;} " +
		"code,pre{font-family:'Courier New',monospace;font-size:0.85em;} " +
		"@media print{ @page{size:auto;margin:12mm;} body{padding:0;max-width:none;} }" +
		"</style></head><body>" + content.String() + "</body></html>", nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
