package locale

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinLanguagesValid(t *testing.T) {
	table, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	for _, code := range BuiltinCodes() {
		l, err := table.Get(code)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", code, err)
		}
		if l.Source != SourceBuiltin {
			t.Errorf("%s: source = %s, want builtin", code, l.Source.SourceName())
		}
		if len(l.Triggers.Tip) == 0 || len(l.Triggers.Caution) == 0 || len(l.Triggers.Info) == 0 {
			t.Errorf("%s: missing triggers: %+v", code, l.Triggers)
		}
		if len(l.WeekMarkers) == 0 {
			t.Errorf("%s: no week markers", code)
		}
		if l.DurationPattern() == nil || l.ProceduresPattern() == nil {
			t.Errorf("%s: label patterns not compiled", code)
		}
	}
}

func TestGetNormalizesCode(t *testing.T) {
	table, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	for _, code := range []string{"EN", "en-US", " en ", "en_GB"} {
		l, err := table.Get(code)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", code, err)
		}
		if l.Code != "en" {
			t.Errorf("Get(%q).Code = %q, want en", code, l.Code)
		}
	}

	if _, err := table.Get("xx"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("Get(xx) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestResolveFallsBack(t *testing.T) {
	table, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}

	l, err := table.Resolve("fr", "en")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if l.Code != "en" {
		t.Fatalf("Resolve(fr, en).Code = %q, want en", l.Code)
	}

	if _, err := table.Resolve("fr", "de"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("Resolve(fr, de) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestLoadUserDirOverridesAndAdds(t *testing.T) {
	dir := t.TempDir()

	vi := `code: vi
name: Tiếng Việt
triggers:
  tip: ["💡 Mẹo"]
  caution: ["⚠️ Lưu ý"]
  info: ["Thông tin y tế"]
week_markers: ["🕐"]
titles:
  tip: Mẹo phục hồi
  caution: Lưu ý
  info: Thông tin y tế
labels:
  duration: Thời gian phục hồi khuyến nghị
  procedures: Thủ thuật áp dụng
`
	en := `code: en
name: English (clinic)
triggers:
  tip: ["TIP>"]
  caution: ["CAUTION>"]
  info: ["NOTICE>"]
titles:
  tip: Clinic tip
  caution: Clinic caution
  info: Clinic notice
`
	if err := os.WriteFile(filepath.Join(dir, "vi.yaml"), []byte(vi), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "en.yml"), []byte(en), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := table.Codes()
	want := []string{"en", "ja", "ko", "vi", "zh"}
	if len(got) != len(want) {
		t.Fatalf("Codes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Codes() = %v, want %v", got, want)
		}
	}

	l, err := table.Get("en")
	if err != nil {
		t.Fatalf("Get(en) error = %v", err)
	}
	if l.Titles.Tip != "Clinic tip" || l.Source != SourceUser {
		t.Fatalf("user en not applied: %+v (source %s)", l.Titles, l.Source.SourceName())
	}
	if l.DurationPattern() != nil {
		t.Fatal("expected no duration pattern when label is empty")
	}
}

func TestLoadRejectsInvalidLanguage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("code: bad\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for language without titles")
	}
}

func TestLoadMissingDir(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(table.Codes()) != len(BuiltinCodes()) {
		t.Fatalf("Codes() = %v", table.Codes())
	}
}

func TestLabelPatterns(t *testing.T) {
	table, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}
	en, _ := table.Get("en")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"duration stops at comma", "Recommended recovery period: 2 weeks, then massage", "Recommended recovery period: 2 weeks"},
		{"duration full width colon", "Recommended recovery period：10 days", "Recommended recovery period：10 days"},
		{"duration stops at period", "Recommended recovery period: 3 weeks.", "Recommended recovery period: 3 weeks"},
		{"duration keeps decimal point", "Recommended recovery period: 1.5 weeks.", "Recommended recovery period: 1.5 weeks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := en.DurationPattern().FindString(tt.input)
			if got != tt.want {
				t.Fatalf("match = %q, want %q", got, tt.want)
			}
		})
	}

	got := en.ProceduresPattern().FindString("Avoid saunas (Applicable procedures: rhinoplasty, lifting).")
	if got != "(Applicable procedures: rhinoplasty, lifting)" {
		t.Fatalf("procedures match = %q", got)
	}

	ko, _ := table.Get("ko")
	got = ko.ProceduresPattern().FindString("붓기 관리 （적용 시술: 코성형）")
	if got != "（적용 시술: 코성형）" {
		t.Fatalf("ko procedures match = %q", got)
	}
}
