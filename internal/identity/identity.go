// Package identity supplies the current learner's display name and locale.
package identity

import (
	"os"
	"os/user"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLocale is used when nothing better is known.
const DefaultLocale = "en"

// User is the learner the application is running for.
type User struct {
	DisplayName string
	Locale      string // BCP 47 tag, e.g. "en", "am-ET"
}

// FirstName returns the first word of the display name.
func (u User) FirstName() string {
	if f := strings.Fields(u.DisplayName); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Provider returns the current user. Implementations are read-only.
type Provider interface {
	Current() User
}

// Static is a Provider with a fixed user.
type Static struct {
	user User
}

var _ Provider = (*Static)(nil)

// NewStatic returns a provider for the given name and locale. Empty values
// fall back to the operating system account and environment.
func NewStatic(name, locale string) *Static {
	if name == "" {
		name = systemName()
	}
	if locale == "" {
		locale = envLocale()
	}
	return &Static{user: User{DisplayName: name, Locale: Normalize(locale)}}
}

func (s *Static) Current() User { return s.user }

// Normalize converts POSIX locale strings such as "en_US.UTF-8" into a
// canonical BCP 47 tag. Unparseable input yields DefaultLocale.
func Normalize(locale string) string {
	tag, ok := parse(locale)
	if !ok {
		return DefaultLocale
	}
	return tag.String()
}

// LanguageName returns the English name of the locale's language, e.g.
// "Amharic" for "am-ET". It is "English" for unknown locales.
func LanguageName(locale string) string {
	tag, ok := parse(locale)
	if !ok {
		return "English"
	}
	base, _ := tag.Base()
	name := display.English.Languages().Name(base)
	if name == "" {
		return "English"
	}
	return name
}

// NativeName returns the language's name in that language, e.g. "español".
func NativeName(locale string) string {
	tag, ok := parse(locale)
	if !ok {
		return "English"
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return LanguageName(locale)
}

func parse(locale string) (language.Tag, bool) {
	s := strings.TrimSpace(locale)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(s)
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

func systemName() string {
	if u, err := user.Current(); err == nil {
		if u.Name != "" {
			return u.Name
		}
		if u.Username != "" {
			return u.Username
		}
	}
	if n := os.Getenv("USER"); n != "" {
		return n
	}
	return "Student"
}

func envLocale() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return DefaultLocale
}
