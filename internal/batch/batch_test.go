package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/hexcast-cli/internal/divine"
	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
	"github.com/AnyUserName/hexcast-cli/internal/history"
)

func writeTestPNG(t *testing.T, path string, v uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755)
	writeTestPNG(t, filepath.Join(dir, "a.png"), 100)
	writeTestPNG(t, filepath.Join(dir, "sub", "b.png"), 100)
	writeTestPNG(t, filepath.Join(dir, ".hidden", "c.png"), 100)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources: %d, want 2", len(sources))
	}
	keys := map[string]bool{}
	for _, s := range sources {
		keys[s.Key] = true
		if s.Size == 0 {
			t.Errorf("%s: zero size", s.Key)
		}
	}
	if !keys["a"] || !keys["sub/b"] {
		t.Errorf("keys: %v", keys)
	}
}

func TestRun_CastsEveryImage(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "bright.png"), 250)
	writeTestPNG(t, filepath.Join(dir, "dark.png"), 5)

	cat := hexagram.NewCatalog()
	runner := New(Config{InputDir: dir, Method: divine.MethodImage, Workers: 2}, cat)

	sum, err := runner.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sum.Readings) != 2 {
		t.Fatalf("readings: %d", len(sum.Readings))
	}
	if sum.Failed != 0 {
		t.Errorf("failed: %d", sum.Failed)
	}
	// All-bright casts Qian, all-dark casts Kun.
	if sum.HexagramCounts[1] != 1 || sum.HexagramCounts[2] != 1 {
		t.Errorf("counts: %v", sum.HexagramCounts)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "good.png"), 200)
	os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644)

	runner := New(Config{InputDir: dir, Method: divine.MethodImage}, hexagram.NewCatalog())
	sum, err := runner.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Failed != 1 {
		t.Errorf("failed: %d, want 1", sum.Failed)
	}
}

func TestRun_AllFailed(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "bad.png"), []byte("junk"), 0o644)

	runner := New(Config{InputDir: dir, Method: divine.MethodImage}, hexagram.NewCatalog())
	if _, err := runner.Run(); err == nil {
		t.Error("all-failed run did not error")
	}
}

func TestRun_EmptyDir(t *testing.T) {
	runner := New(Config{InputDir: t.TempDir(), Method: divine.MethodImage}, hexagram.NewCatalog())
	if _, err := runner.Run(); err == nil {
		t.Error("empty dir did not error")
	}
}

func TestRun_SavesHistory(t *testing.T) {
	dir := t.TempDir()
	histDir := filepath.Join(t.TempDir(), "hist")
	writeTestPNG(t, filepath.Join(dir, "a.png"), 240)

	runner := New(Config{
		InputDir:   dir,
		Method:     divine.MethodCoins,
		Save:       true,
		HistoryDir: histDir,
	}, hexagram.NewCatalog())
	if _, err := runner.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	records, err := (history.Store{Dir: histDir}).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records: %d", len(records))
	}
	if records[0].Method != "coins" {
		t.Errorf("method: %q", records[0].Method)
	}
}
