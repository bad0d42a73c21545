package locale_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/campus-ai/tutor/locale"
)

func writeBundle(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write bundle: %v", err)
	}
}

func newProvider(t *testing.T, cfg locale.Config) *locale.Provider {
	t.Helper()
	p, err := locale.NewProvider(&cfg)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return p
}

func TestParseBundle(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
		key  string
		want string
	}{
		{
			name: "json nested lookup",
			ext:  ".json",
			data: `{"tutor": {"greeting": "Hello!"}}`,
			key:  "tutor.greeting",
			want: "Hello!",
		},
		{
			name: "yaml nested lookup",
			ext:  ".yaml",
			data: "tutor:\n  greeting: Bonjour!\n",
			key:  "tutor.greeting",
			want: "Bonjour!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := locale.ParseBundle("test", tt.ext, []byte(tt.data))
			if err != nil {
				t.Fatalf("ParseBundle failed: %v", err)
			}
			got, ok := b.Lookup(tt.key)
			if !ok || got != tt.want {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, true)", tt.key, got, ok, tt.want)
			}
		})
	}
}

func TestParseBundle_UnknownFormat(t *testing.T) {
	_, err := locale.ParseBundle("test", ".toml", []byte("x = 1"))
	if !errors.Is(err, locale.ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}

func TestBundle_Lookup_Missing(t *testing.T) {
	b, err := locale.ParseBundle("test", ".json", []byte(`{"tutor": {"greeting": "hi"}}`))
	if err != nil {
		t.Fatalf("ParseBundle failed: %v", err)
	}

	if _, ok := b.Lookup("tutor.missing"); ok {
		t.Error("missing key should not resolve")
	}
	if _, ok := b.Lookup("tutor.greeting.deeper"); ok {
		t.Error("descending through a string should not resolve")
	}
}

func TestProvider_BuiltinDefaults(t *testing.T) {
	p := newProvider(t, locale.Config{})

	if got := p.T("tutor.error", nil); got == "" || got == "tutor.error" {
		t.Errorf("built-in default for tutor.error should resolve, got %q", got)
	}
	if got := p.T("tutor.nope", nil); got != "tutor.nope" {
		t.Errorf("unknown key should echo back, got %q", got)
	}
	if p.Locale() != locale.DefaultTag {
		t.Errorf("got locale %q, want %q", p.Locale(), locale.DefaultTag)
	}
}

func TestProvider_BundleOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en.json", `{"tutor": {"greeting": "Welcome to Campus!"}}`)

	p := newProvider(t, locale.Config{Dir: dir})

	if got := p.T("tutor.greeting", nil); got != "Welcome to Campus!" {
		t.Errorf("got %q, want bundle value", got)
	}
	// Keys absent from the bundle still fall back.
	if got := p.T("tutor.error", nil); got == "tutor.error" {
		t.Errorf("missing bundle key should fall back to defaults, got %q", got)
	}
}

func TestProvider_Placeholders(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en.json", `{"tutor": {"greeting": "Hello {{name}}, welcome {{name}}!"}}`)

	p := newProvider(t, locale.Config{Dir: dir})

	got := p.T("tutor.greeting", map[string]any{"name": "Dara"})
	if got != "Hello Dara, welcome Dara!" {
		t.Errorf("got %q", got)
	}
}

func TestProvider_SetLocale(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "km.yaml", "tutor:\n  greeting: ជំរាបសួរ!\n")

	p := newProvider(t, locale.Config{Dir: dir})

	var notified []string
	p.Subscribe(func(tag string) { notified = append(notified, tag) })

	if err := p.SetLocale("km"); err != nil {
		t.Fatalf("SetLocale failed: %v", err)
	}
	if got := p.T("tutor.greeting", nil); got != "ជំរាបសួរ!" {
		t.Errorf("got %q, want Khmer greeting", got)
	}
	if len(notified) != 1 || notified[0] != "km" {
		t.Errorf("got notifications %v, want [km]", notified)
	}

	// Same tag again is a no-op.
	if err := p.SetLocale("km"); err != nil {
		t.Fatalf("SetLocale failed: %v", err)
	}
	if len(notified) != 1 {
		t.Errorf("no-op switch must not notify, got %v", notified)
	}
}

func TestProvider_SetLocale_Unknown(t *testing.T) {
	p := newProvider(t, locale.Config{})

	err := p.SetLocale("xx")
	if !errors.Is(err, locale.ErrUnknownLocale) {
		t.Errorf("got %v, want ErrUnknownLocale", err)
	}
	if p.Locale() != locale.DefaultTag {
		t.Errorf("failed switch must not change the locale, got %q", p.Locale())
	}
}

func TestProvider_Tags(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "km.json", `{}`)
	writeBundle(t, dir, "fr.yml", "tutor: {}\n")
	writeBundle(t, dir, "notes.txt", "ignored")

	p := newProvider(t, locale.Config{Dir: dir})

	want := []string{"en", "fr", "km"}
	got := p.Tags()
	if len(got) != len(want) {
		t.Fatalf("got tags %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got tags %v, want %v", got, want)
			break
		}
	}
}

func TestProvider_Reload(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en.json", `{"tutor": {"greeting": "old"}}`)

	p := newProvider(t, locale.Config{Dir: dir})
	if got := p.T("tutor.greeting", nil); got != "old" {
		t.Fatalf("got %q, want old", got)
	}

	writeBundle(t, dir, "en.json", `{"tutor": {"greeting": "new"}}`)
	if err := p.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if got := p.T("tutor.greeting", nil); got != "new" {
		t.Errorf("got %q, want new", got)
	}
}

func TestProvider_MissingDir(t *testing.T) {
	p := newProvider(t, locale.Config{Dir: filepath.Join(t.TempDir(), "absent")})

	if got := p.T("tutor.greeting", nil); got == "tutor.greeting" {
		t.Errorf("defaults should still apply with a missing dir, got %q", got)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := locale.DefaultConfig()
	cfg.Merge(&locale.Config{Dir: "/tmp/locales", Watch: true})

	if cfg.Dir != "/tmp/locales" {
		t.Errorf("got dir %q", cfg.Dir)
	}
	if cfg.Default != locale.DefaultTag {
		t.Errorf("unset default must survive merge, got %q", cfg.Default)
	}
	if !cfg.Watch {
		t.Error("watch flag lost in merge")
	}
}
