package fit_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ziadkadry99/diagram-zoom/internal/dom"
	"github.com/ziadkadry99/diagram-zoom/internal/dom/htmldoc"
	"github.com/ziadkadry99/diagram-zoom/internal/fit"
	"github.com/ziadkadry99/diagram-zoom/internal/geom"
)

func TestCompute(t *testing.T) {
	p := fit.DefaultParams()
	tests := []struct {
		name      string
		container geom.Size
		bbox      geom.Box
		wantMode  fit.Mode
		wantScale float64
		wantAt    geom.Point
	}{
		{
			name:      "wide content limited by width",
			container: geom.Size{Width: 800, Height: 600},
			bbox:      geom.Box{Width: 400, Height: 100},
			wantMode:  fit.Formula,
			wantScale: 1.96,
			wantAt:    geom.Point{X: 400, Y: 300},
		},
		{
			name:      "tall content limited by height",
			container: geom.Size{Width: 1000, Height: 500},
			bbox:      geom.Box{X: 50, Y: 50, Width: 100, Height: 1000},
			wantMode:  fit.Formula,
			wantScale: 0.49,
			wantAt:    geom.Point{X: 500, Y: 250},
		},
		{
			name:      "floor applies",
			container: geom.Size{Width: 10, Height: 10},
			bbox:      geom.Box{Width: 100000, Height: 1},
			wantMode:  fit.Formula,
			wantScale: 0.01,
			wantAt:    geom.Point{X: 5, Y: 5},
		},
		{
			name:      "empty container",
			container: geom.Size{Width: 0, Height: 600},
			bbox:      geom.Box{Width: 400, Height: 100},
			wantMode:  fit.Native,
		},
		{
			name:      "zero width bbox",
			container: geom.Size{Width: 800, Height: 600},
			bbox:      geom.Box{Width: 0, Height: 100},
			wantMode:  fit.Native,
		},
		{
			name:      "non-finite bbox",
			container: geom.Size{Width: 800, Height: 600},
			bbox:      geom.Box{Width: math.Inf(1), Height: 100},
			wantMode:  fit.Native,
		},
		{
			name:      "NaN bbox",
			container: geom.Size{Width: 800, Height: 600},
			bbox:      geom.Box{Width: 100, Height: math.NaN()},
			wantMode:  fit.Native,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fit.Compute(tt.container, tt.bbox, p)
			if got.Mode != tt.wantMode {
				t.Fatalf("Mode = %v, want %v", got.Mode, tt.wantMode)
			}
			if tt.wantMode != fit.Formula {
				return
			}
			if math.Abs(got.Scale-tt.wantScale) > 1e-9 {
				t.Errorf("Scale = %v, want %v", got.Scale, tt.wantScale)
			}
			if got.Anchor != tt.wantAt {
				t.Errorf("Anchor = %+v, want %+v", got.Anchor, tt.wantAt)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	for mode, want := range map[fit.Mode]string{fit.Skipped: "skipped", fit.Formula: "formula", fit.Native: "native"} {
		if mode.String() != want {
			t.Errorf("%d.String() = %q, want %q", mode, mode.String(), want)
		}
	}
}

// recorder is a viewer.Instance that logs calls and fails or panics on
// request.
type recorder struct {
	calls   []string
	failOn  string
	panicOn string
	zoomAt  geom.Point
	scale   float64
}

func (r *recorder) do(op string) error {
	r.calls = append(r.calls, op)
	if op == r.panicOn {
		panic("boom")
	}
	if op == r.failOn {
		return errors.New("failed")
	}
	return nil
}

func (r *recorder) Zoom(scale float64, at geom.Point) error {
	r.scale, r.zoomAt = scale, at
	return r.do("zoom")
}
func (r *recorder) ResetZoom() error   { return r.do("resetZoom") }
func (r *recorder) ResetPan() error    { return r.do("resetPan") }
func (r *recorder) Center() error      { return r.do("center") }
func (r *recorder) Fit() error         { return r.do("fit") }
func (r *recorder) DisableZoom() error { return r.do("disableZoom") }
func (r *recorder) DisablePan() error  { return r.do("disablePan") }
func (r *recorder) Destroy() error     { return r.do("destroy") }

const diagram = `<html><body>
<div class="mermaid" style="width: 800px; height: 600px">
  <svg viewBox="0 0 1000 1000"><g><rect x="0" y="0" width="400" height="100"></rect></g></svg>
</div>
<div class="mermaid" id="blank" style="width: 800px; height: 600px"><svg></svg></div>
</body></html>`

// diagramSVG returns the i-th diagram graphic of a fresh document.
func diagramSVG(t *testing.T, i int) dom.Element {
	t.Helper()
	doc, err := htmldoc.ParseString(diagram)
	if err != nil {
		t.Fatal(err)
	}
	svgs := doc.QueryAll(dom.TagWithin("mermaid", "svg"))
	if len(svgs) <= i {
		t.Fatalf("document has %d diagrams, want more than %d", len(svgs), i)
	}
	return svgs[i]
}

func TestContentBoxPrefersGroup(t *testing.T) {
	svg := diagramSVG(t, 0)
	box, ok := fit.ContentBox(svg)
	if !ok {
		t.Fatal("ContentBox reported no geometry")
	}
	if box != (geom.Box{Width: 400, Height: 100}) {
		t.Errorf("ContentBox = %+v, want the group's box", box)
	}
}

func TestApplyFormula(t *testing.T) {
	svg := diagramSVG(t, 0)
	rec := &recorder{}
	res := fit.Apply(svg, rec, fit.DefaultParams())
	if res.Mode != fit.Formula {
		t.Fatalf("Mode = %v, want formula", res.Mode)
	}
	if got := strings.Join(rec.calls, ","); got != "resetZoom,resetPan,zoom,center" {
		t.Errorf("calls = %s", got)
	}
	if math.Abs(rec.scale-1.96) > 1e-9 {
		t.Errorf("scale = %v, want 1.96", rec.scale)
	}
	if rec.zoomAt != (geom.Point{X: 400, Y: 300}) {
		t.Errorf("zoom anchor = %+v", rec.zoomAt)
	}
}

func TestApplyIsAbsolute(t *testing.T) {
	svg := diagramSVG(t, 0)
	rec := &recorder{}
	first := fit.Apply(svg, rec, fit.DefaultParams())
	second := fit.Apply(svg, rec, fit.DefaultParams())
	if first != second {
		t.Errorf("repeated fits differ: %+v then %+v", first, second)
	}
}

func TestApplyFallsBackToNative(t *testing.T) {
	tests := []struct {
		name    string
		rec     *recorder
		diagram int
		want    string
	}{
		{"no geometry", &recorder{}, 1, "fit,center"},
		{"zoom error", &recorder{failOn: "zoom"}, 0, "resetZoom,resetPan,zoom,fit,center"},
		{"reset panic", &recorder{panicOn: "resetZoom"}, 0, "resetZoom,fit,center"},
		{"native failures are ignored", &recorder{failOn: "zoom", panicOn: "fit"}, 0, "resetZoom,resetPan,zoom,fit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fit.Apply(diagramSVG(t, tt.diagram), tt.rec, fit.DefaultParams())
			if res.Mode != fit.Native {
				t.Errorf("Mode = %v, want native", res.Mode)
			}
			if got := strings.Join(tt.rec.calls, ","); got != tt.want {
				t.Errorf("calls = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplySkipped(t *testing.T) {
	doc, err := htmldoc.ParseString(diagram)
	if err != nil {
		t.Fatal(err)
	}
	detached := doc.CreateElement("svg")
	rec := &recorder{}
	if res := fit.Apply(detached, rec, fit.DefaultParams()); res.Mode != fit.Skipped {
		t.Errorf("detached svg: Mode = %v, want skipped", res.Mode)
	}
	if res := fit.Apply(nil, rec, fit.DefaultParams()); res.Mode != fit.Skipped {
		t.Errorf("nil svg: Mode = %v, want skipped", res.Mode)
	}
	if res := fit.Apply(doc.Query(dom.Tag("svg")), nil, fit.DefaultParams()); res.Mode != fit.Skipped {
		t.Errorf("nil viewer: Mode = %v, want skipped", res.Mode)
	}
	if len(rec.calls) != 0 {
		t.Errorf("unexpected calls: %v", rec.calls)
	}
}

func TestContentBoxFollowsNodeTransforms(t *testing.T) {
	doc, err := htmldoc.ParseString(`<html><body>
<div class="mermaid" style="width: 800px; height: 600px">
<svg viewBox="-8 -8 616 316"><g class="root">
  <g class="node" transform="translate(50,25)"><rect x="-50" y="-25" width="100" height="50"></rect></g>
  <g class="node" transform="translate(550,275)"><rect x="-50" y="-25" width="100" height="50"></rect></g>
  <path d="M50,50 C50,150 550,150 550,250"></path>
</g></svg></div></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	svg := doc.Query(dom.TagWithin("mermaid", "svg"))
	box, ok := fit.ContentBox(svg)
	if !ok {
		t.Fatal("ContentBox reported no geometry")
	}
	if box != (geom.Box{Width: 600, Height: 300}) {
		t.Errorf("ContentBox = %+v, want the span of both nodes", box)
	}
	res := fit.Compute(geom.Size{Width: 800, Height: 600}, box, fit.DefaultParams())
	if want := 800.0 / 600 * 0.98; math.Abs(res.Scale-want) > 1e-9 {
		t.Errorf("scale = %v, want %v", res.Scale, want)
	}
}
