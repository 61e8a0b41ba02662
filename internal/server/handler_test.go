package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	stdgif "image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	cat := hexagram.NewCatalog()
	if err := cat.Err(); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	e := echo.New()
	e.Use(RequestID())
	NewHandler(cat, divine.MethodImage).Register(e)
	return e
}

func pngBytes(t *testing.T, v uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestHealthz(t *testing.T) {
	e := testServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestCast_BrightImage(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/cast", bytes.NewReader(pngBytes(t, 250)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp CastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Method != "image" {
		t.Errorf("method: %q", resp.Method)
	}
	if resp.Primary.Number != 1 {
		t.Errorf("primary: %d, want 1 for an all-bright image", resp.Primary.Number)
	}
	if len(resp.Lines) != 6 {
		t.Errorf("lines: %d", len(resp.Lines))
	}
	for _, l := range resp.Lines {
		if l.Current != "yang" {
			t.Errorf("line %d current: %q", l.Position, l.Current)
		}
	}
	if resp.ChangingLines == nil {
		t.Error("changing_lines must serialize as an array, not null")
	}
	if resp.Interpretation.Description == "" {
		t.Error("interpretation missing")
	}
}

func TestCast_MethodOverride(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/cast?method=yarrow", bytes.NewReader(pngBytes(t, 120)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp CastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Method != "yarrow" {
		t.Errorf("method: %q", resp.Method)
	}
}

func TestCast_BadMethod(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/cast?method=bones", bytes.NewReader(pngBytes(t, 120)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: %d", rec.Code)
	}
}

func TestCast_EmptyBody(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/cast", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: %d", rec.Code)
	}
}

func TestCast_CorruptImage(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/cast", bytes.NewReader([]byte("not an image")))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: %d", rec.Code)
	}
}

func TestHexagramEndpoint(t *testing.T) {
	e := testServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/hexagrams/64", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp HexagramResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Number != 64 || resp.NameEn == "" || len(resp.Lines) != 6 {
		t.Errorf("entry: %+v", resp)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/hexagrams/65", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("out of range status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/hexagrams/many", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric status: %d", rec.Code)
	}
}

func TestProbeGif(t *testing.T) {
	palette := color.Palette{color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}}
	var frames []*image.Paletted
	for i := 0; i < 3; i++ {
		frames = append(frames, image.NewPaletted(image.Rect(0, 0, 6, 5), palette))
	}
	var gifBuf bytes.Buffer
	if err := stdgif.EncodeAll(&gifBuf, &stdgif.GIF{Image: frames, Delay: []int{5, 5, 5}}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/gif/probe", bytes.NewReader(gifBuf.Bytes()))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp ProbeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Animated || resp.Frames != 3 || resp.Width != 6 || resp.Height != 5 {
		t.Errorf("probe: %+v", resp)
	}
}

func TestProbeGif_NotGif(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/gif/probe", bytes.NewReader(pngBytes(t, 50)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: %d", rec.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := testServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("no request id generated")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "caller-chosen")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "caller-chosen" {
		t.Errorf("request id: %q", got)
	}
}
