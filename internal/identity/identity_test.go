package identity

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en_US.UTF-8", "en-US"},
		{"am_ET", "am-ET"},
		{"fr", "fr"},
		{"C", DefaultLocale},
		{"", DefaultLocale},
		{"!!", DefaultLocale},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "English"},
		{"am-ET", "Amharic"},
		{"es_ES.UTF-8", "Spanish"},
		{"", "English"},
	}
	for _, tt := range tests {
		if got := LanguageName(tt.in); got != tt.want {
			t.Errorf("LanguageName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatic(t *testing.T) {
	p := NewStatic("Abebe Bikila", "am_ET.UTF-8")
	u := p.Current()
	if u.DisplayName != "Abebe Bikila" || u.Locale != "am-ET" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.FirstName() != "Abebe" {
		t.Fatalf("FirstName = %q", u.FirstName())
	}
}

func TestStaticFallsBackToEnvironment(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	p := NewStatic("", "")
	u := p.Current()
	if u.DisplayName == "" {
		t.Fatal("expected a display name from the system")
	}
	if u.Locale != "de-DE" {
		t.Fatalf("Locale = %q, want de-DE", u.Locale)
	}
}

func TestNativeName(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"es", "español"},
		{"en", "English"},
		{"", "English"},
		{"POSIX", "English"},
	}
	for _, tt := range tests {
		if got := NativeName(tt.locale); got != tt.want {
			t.Errorf("NativeName(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
