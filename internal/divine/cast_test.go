package divine

import (
	"testing"

	"github.com/AnyUserName/hexcast-cli/internal/hexagram"
)

func testCatalog(t *testing.T) *hexagram.Catalog {
	t.Helper()
	cat := hexagram.NewCatalog()
	if err := cat.Err(); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func TestCast_BrightImageAllYang(t *testing.T) {
	pix := solidPix(12, 12, 250)
	res, err := Cast(pix, 12, 12, MethodImage, testCatalog(t))
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	for i, s := range res.Lines {
		if s.Current != Yang {
			t.Errorf("line %d: %q, want yang", i+1, s.Current)
		}
	}
	if res.Primary.Number != 1 {
		t.Errorf("primary: got %d, want 1 (Qian)", res.Primary.Number)
	}
}

func TestCast_DarkImageAllYin(t *testing.T) {
	pix := solidPix(12, 12, 5)
	res, err := Cast(pix, 12, 12, MethodImage, testCatalog(t))
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	for i, s := range res.Lines {
		if s.Current != Yin {
			t.Errorf("line %d: %q, want yin", i+1, s.Current)
		}
	}
	if res.Primary.Number != 2 {
		t.Errorf("primary: got %d, want 2 (Kun)", res.Primary.Number)
	}
}

func TestCast_BandOrientation(t *testing.T) {
	// Bright top half, dark bottom half: the image top becomes the
	// hexagram's upper lines.
	const w, h = 8, 12
	pix := solidPix(w, h, 250)
	copy(pix[w*(h/2)*4:], solidPix(w, h/2, 5))

	res, err := Cast(pix, w, h, MethodImage, testCatalog(t))
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	for i := 0; i < 3; i++ {
		if res.Lines[i].Current != Yin {
			t.Errorf("bottom line %d: %q, want yin", i+1, res.Lines[i].Current)
		}
	}
	for i := 3; i < 6; i++ {
		if res.Lines[i].Current != Yang {
			t.Errorf("upper line %d: %q, want yang", i+1, res.Lines[i].Current)
		}
	}
}

func TestCast_Deterministic(t *testing.T) {
	pix := make([]byte, 24*24*4)
	for i := range pix {
		pix[i] = byte(i * 13)
	}
	cat := testCatalog(t)

	for _, m := range []Method{MethodImage, MethodCoins, MethodYarrow} {
		a, err := Cast(pix, 24, 24, m, cat)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		b, err := Cast(pix, 24, 24, m, cat)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if a.Primary.Number != b.Primary.Number {
			t.Errorf("%s: primary %d vs %d", m, a.Primary.Number, b.Primary.Number)
		}
		for i := range a.Lines {
			if a.Lines[i].Value != b.Lines[i].Value {
				t.Errorf("%s line %d: %d vs %d", m, i+1, a.Lines[i].Value, b.Lines[i].Value)
			}
		}
		if len(a.ChangingLines) != len(b.ChangingLines) {
			t.Errorf("%s: changing count %d vs %d", m, len(a.ChangingLines), len(b.ChangingLines))
		}
	}
}

func TestCast_ValidLineValues(t *testing.T) {
	pix := make([]byte, 30*30*4)
	for i := range pix {
		pix[i] = byte(i * 31)
	}
	cat := testCatalog(t)

	for _, m := range []Method{MethodImage, MethodCoins, MethodYarrow} {
		res, err := Cast(pix, 30, 30, m, cat)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		for i, s := range res.Lines {
			if s.Value < OldYin || s.Value > OldYang {
				t.Errorf("%s line %d: value %d", m, i+1, s.Value)
			}
		}
	}
}

func TestCast_TransformedDiffersFromPrimary(t *testing.T) {
	cat := testCatalog(t)
	// Scan seeds until yarrow produces at least one changing line; with
	// p(change) around 1/4 per line this never needs many attempts.
	for seed := 0; seed < 64; seed++ {
		pix := make([]byte, 16)
		pix[0] = byte(seed)
		res, err := Cast(pix, 2, 2, MethodYarrow, cat)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(res.ChangingLines) == 0 {
			if res.Transformed != nil {
				t.Fatalf("seed %d: transformed set with no changing lines", seed)
			}
			continue
		}
		if res.Transformed == nil {
			t.Fatalf("seed %d: %d changing lines but no transformed", seed, len(res.ChangingLines))
		}
		if res.Transformed.Number == res.Primary.Number {
			t.Fatalf("seed %d: transformed equals primary (%d)", seed, res.Primary.Number)
		}
		return
	}
	t.Fatal("no seed in 0..63 produced a changing line")
}

func TestCast_ChangingLinesAscending(t *testing.T) {
	cat := testCatalog(t)
	pix := make([]byte, 16)
	for seed := 0; seed < 32; seed++ {
		pix[0] = byte(seed * 8)
		res, err := Cast(pix, 2, 2, MethodCoins, cat)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for i := 1; i < len(res.ChangingLines); i++ {
			if res.ChangingLines[i] <= res.ChangingLines[i-1] {
				t.Fatalf("changing lines not ascending: %v", res.ChangingLines)
			}
		}
		for _, p := range res.ChangingLines {
			if !res.Lines[p-1].Changing {
				t.Fatalf("position %d listed but line not changing", p)
			}
		}
	}
}

func TestCast_UnknownMethod(t *testing.T) {
	if _, err := Cast(make([]byte, 16), 2, 2, Method("runes"), testCatalog(t)); err == nil {
		t.Error("unknown method accepted")
	}
}

func TestBandRange(t *testing.T) {
	// 6 bands over 20 rows: floor height 3, last band absorbs the rest.
	for b := 0; b < 5; b++ {
		s, e := bandRange(20, b)
		if s != b*3 || e != b*3+3 {
			t.Errorf("band %d: [%d, %d)", b, s, e)
		}
	}
	s, e := bandRange(20, 5)
	if s != 15 || e != 20 {
		t.Errorf("band 5: [%d, %d), want [15, 20)", s, e)
	}
}

func TestYarrow_LineValuesOnly(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 200; i++ {
		v := yarrowLine(rng)
		switch v {
		case OldYin, YoungYang, YoungYin, OldYang:
		default:
			t.Fatalf("draw %d: value %d", i, v)
		}
	}
}

func TestMod4Or4(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 1, 8: 4, 44: 4, 47: 3}
	for in, want := range cases {
		if got := mod4or4(in); got != want {
			t.Errorf("mod4or4(%d): got %d, want %d", in, got, want)
		}
	}
}
