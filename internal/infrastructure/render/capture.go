package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const (
	defaultCaptureTimeout = 30 * time.Second
	defaultCaptureScale   = 2.0
	defaultViewportWidth  = 794 // A4 width at 96 DPI
	defaultPageHeightPx   = 1123
)

// CaptureConfig contains configuration for the DOM-capture renderer
type CaptureConfig struct {
	// DefaultTimeout for capture operations
	DefaultTimeout time.Duration
	// Headless mode (default: true)
	Headless bool
	// DisableGPU disables GPU hardware acceleration
	DisableGPU bool
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Scale is the rasterization device scale factor
	Scale float64
	// ViewportWidth in CSS pixels
	ViewportWidth int64
	// BackgroundColor fills the page behind transparent layouts
	BackgroundColor string
	// Logger for debug output
	Logger *zap.Logger
}

// CaptureRequest describes one rasterization
type CaptureRequest struct {
	// HTML is the layout to rasterize
	HTML string
	// MultiPage slices the bitmap into one page per band instead of
	// fitting everything on a single page
	MultiPage bool
	// PageHeightPx is the band height in source CSS pixels
	PageHeightPx int
	// Timeout overrides the default capture timeout
	Timeout time.Duration
}

// Capturer rasterizes a live HTML layout through the Chrome DevTools
// Protocol and paginates the bitmap into a PDF.
type Capturer struct {
	config      *CaptureConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewCapturer creates a chromedp-backed DOM-capture renderer
func NewCapturer(config *CaptureConfig) (*Capturer, error) {
	if config == nil {
		config = &CaptureConfig{}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultCaptureTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultCaptureScale
	}
	if config.ViewportWidth == 0 {
		config.ViewportWidth = defaultViewportWidth
	}
	if config.BackgroundColor == "" {
		config.BackgroundColor = "#ffffff"
	}
	if !config.Headless {
		config.Headless = true
	}
	if !config.DisableGPU {
		config.DisableGPU = true
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.Flag("disable-gpu", config.DisableGPU),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("font-render-hinting", "none"),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Capturer{
		config:      config,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Capture rasterizes the layout and returns PDF bytes. Unlike the
// vector composer there is no per-element degradation: any capture or
// draw failure fails the whole operation.
func (c *Capturer) Capture(ctx context.Context, req *CaptureRequest) ([]byte, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidInput, "capture request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidInput, "HTML content is empty", nil)
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(c.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			c.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	startTime := time.Now()
	html := c.wrapHTML(req.HTML)

	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(c.config.ViewportWidth, 10,
			chromedp.EmulateScale(c.config.Scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("capture timed out after %v", timeout), err)
		}
		return nil, NewRenderError(ErrCodeCaptureFailed, "chromedp capture failed", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, NewRenderError(ErrCodeCaptureFailed, "screenshot decode failed", err)
	}

	var pdfData []byte
	if req.MultiPage {
		pdfData, err = c.paginate(img, req.PageHeightPx)
	} else {
		pdfData, err = c.fitSinglePage(img)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Info("layout captured",
		zap.Int("bytes", len(pdfData)),
		zap.Bool("multi_page", req.MultiPage),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// wrapHTML wraps a fragment in a full document with the configured
// background fill
func (c *Capturer) wrapHTML(html string) string {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html
	}
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\">")
	buf.WriteString("<style>body{margin:0;background:")
	buf.WriteString(c.config.BackgroundColor)
	buf.WriteString(";}</style></head><body>")
	buf.WriteString(html)
	buf.WriteString("</body></html>")
	return buf.String()
}

// fitSinglePage places the whole bitmap on one A4 page preserving
// aspect ratio, centered, shrinking to height when the scaled height
// would exceed the page.
func (c *Capturer) fitSinglePage(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())

	maxW := pageWidth - marginLeft - marginRight
	maxH := pageHeight - marginTop - marginBottom

	w := maxW
	h := srcH * w / srcW
	if h > maxH {
		h = maxH
		w = srcW * h / srcH
	}
	x := (pageWidth - w) / 2
	y := (pageHeight - h) / 2

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	if err := embedPNG(pdf, img, "capture", x, y, w, h); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "pdf serialization failed", err)
	}
	return buf.Bytes(), nil
}

// paginate slices the bitmap into fixed-height horizontal bands, one
// PDF page per band. Each band is fully re-encoded before its page is
// added, so a page never references image data that is not ready yet.
func (c *Capturer) paginate(img image.Image, pageHeightPx int) ([]byte, error) {
	if pageHeightPx <= 0 {
		pageHeightPx = defaultPageHeightPx
	}
	bandHeight := int(float64(pageHeightPx) * c.config.Scale)

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	pdf := gofpdf.New("P", "mm", "A4", "")
	printable := pageWidth - marginLeft - marginRight

	for top, index := 0, 0; top < srcH; top, index = top+bandHeight, index+1 {
		bottom := top + bandHeight
		if bottom > srcH {
			bottom = srcH
		}

		band := image.NewRGBA(image.Rect(0, 0, srcW, bottom-top))
		draw.Draw(band, band.Bounds(), img, image.Pt(bounds.Min.X, bounds.Min.Y+top), draw.Src)

		h := float64(bottom-top) * printable / float64(srcW)
		pdf.AddPage()
		if err := embedPNG(pdf, band, fmt.Sprintf("band-%d", index), marginLeft, marginTop, printable, h); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "pdf serialization failed", err)
	}
	return buf.Bytes(), nil
}

// embedPNG encodes the image and places it on the current page
func embedPNG(pdf *gofpdf.Fpdf, img image.Image, name string, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return NewRenderError(ErrCodeRenderFailed, "band encode failed", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if pdf.Err() {
		return NewRenderError(ErrCodeRenderFailed, "band draw failed", pdf.Error())
	}
	return nil
}

// Close releases the browser allocator
func (c *Capturer) Close() error {
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}
