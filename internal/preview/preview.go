// Package preview drives a headless browser against a rendered treemap page
// to check the hover tooltip and capture screenshots.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ziadkadry99/fundmap/internal/tooltip"
)

// ErrNoBrowser is returned when no local Chrome/Chromium can be found.
// Browsers are never downloaded on demand.
var ErrNoBrowser = errors.New("no local Chrome or Chromium found")

// Options configures the launched browser.
type Options struct {
	Bin            string // explicit browser binary; looked up when empty
	ViewportWidth  int
	ViewportHeight int
}

func (o Options) viewport() (int, int) {
	w, h := o.ViewportWidth, o.ViewportHeight
	if w <= 0 {
		w = 1400
	}
	if h <= 0 {
		h = 1000
	}
	return w, h
}

// Browser is a launched headless browser.
type Browser struct {
	opts     Options
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Available reports whether a browser binary can be found locally.
func Available() bool {
	_, ok := launcher.LookPath()
	return ok
}

// Launch starts a headless browser and connects to it.
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	bin := opts.Bin
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, ErrNoBrowser
		}
		bin = path
	}

	l := launcher.New().Bin(bin).Headless(true).NoSandbox(true).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &Browser{opts: opts, launcher: l, browser: b}, nil
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	return err
}

func (b *Browser) open(ctx context.Context, url string) (*rod.Page, error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", url, err)
	}
	w, h := b.opts.viewport()
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: 1,
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		return nil, fmt.Errorf("waiting for %s: %w", url, err)
	}
	return page, nil
}

// Panel is the tooltip as observed in the browser.
type Panel struct {
	Opacity   string
	Text      string
	DataValue string
}

// Observation is the outcome of hovering one tile and moving away again.
type Observation struct {
	Tile    tooltip.Content
	Entered Panel
	Left    Panel
}

// Hover moves the pointer onto the tile at index, reads the tooltip, moves
// the pointer to the page corner, and reads it again.
func (b *Browser) Hover(ctx context.Context, url string, index int) (Observation, error) {
	var obs Observation

	page, err := b.open(ctx, url)
	if err != nil {
		return obs, err
	}
	defer page.Close()

	tiles, err := page.Elements("#tree-map rect.tile")
	if err != nil {
		return obs, fmt.Errorf("finding tiles: %w", err)
	}
	if index < 0 || index >= len(tiles) {
		return obs, fmt.Errorf("tile %d out of range (%d tiles)", index, len(tiles))
	}
	tile := tiles[index]

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"data-name", &obs.Tile.Name},
		{"data-category", &obs.Tile.Category},
		{"data-value", &obs.Tile.Value},
	} {
		v, err := tile.Attribute(f.name)
		if err != nil {
			return obs, fmt.Errorf("reading %s: %w", f.name, err)
		}
		if v != nil {
			*f.dst = *v
		}
	}

	if err := tile.Hover(); err != nil {
		return obs, fmt.Errorf("hovering tile %d: %w", index, err)
	}
	if obs.Entered, err = readPanel(page); err != nil {
		return obs, err
	}

	if err := page.Mouse.MoveTo(proto.Point{X: 0, Y: 0}); err != nil {
		return obs, fmt.Errorf("moving pointer away: %w", err)
	}
	if obs.Left, err = readPanel(page); err != nil {
		return obs, err
	}
	return obs, nil
}

func readPanel(page *rod.Page) (Panel, error) {
	var p Panel
	el, err := page.Element("#tooltip")
	if err != nil {
		return p, fmt.Errorf("finding tooltip: %w", err)
	}
	res, err := el.Eval(`() => this.style.opacity`)
	if err != nil {
		return p, fmt.Errorf("reading tooltip opacity: %w", err)
	}
	p.Opacity = res.Value.Str()

	res, err = el.Eval(`() => this.textContent`)
	if err != nil {
		return p, fmt.Errorf("reading tooltip text: %w", err)
	}
	p.Text = res.Value.Str()

	v, err := el.Attribute("data-value")
	if err != nil {
		return p, fmt.Errorf("reading tooltip data-value: %w", err)
	}
	if v != nil {
		p.DataValue = *v
	}
	return p, nil
}

// Verify checks an observation against the tooltip rules: visible with the
// tile's content after entering, hidden after leaving.
func Verify(obs Observation) error {
	want := tooltip.Render(tooltip.Enter(0, 0, obs.Tile))

	var problems []string
	if obs.Entered.Opacity != "1" {
		problems = append(problems, fmt.Sprintf("opacity after enter = %q, want 1", obs.Entered.Opacity))
	}
	if strings.TrimSpace(obs.Entered.Text) != want.Text {
		problems = append(problems, fmt.Sprintf("text after enter = %q, want %q", obs.Entered.Text, want.Text))
	}
	if obs.Entered.DataValue != want.DataValue {
		problems = append(problems, fmt.Sprintf("data-value = %q, want %q", obs.Entered.DataValue, want.DataValue))
	}
	if obs.Left.Opacity != "0" {
		problems = append(problems, fmt.Sprintf("opacity after leave = %q, want 0", obs.Left.Opacity))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Screenshot captures the full page at url as PNG.
func (b *Browser) Screenshot(ctx context.Context, url string) ([]byte, error) {
	page, err := b.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	png, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return png, nil
}
