package chart

import (
	"strings"

	"golang.org/x/text/language"
)

// TwelveHourLayout is the time-of-day layout for locales on a 12-hour clock.
const TwelveHourLayout = "3:04:05 PM"

// regions whose conventional clock is 12-hour
var twelveHourRegions = func() map[language.Region]bool {
	m := map[language.Region]bool{}
	for _, code := range []string{
		"US", "CA", "AU", "NZ", "IN", "PH", "PK", "BD", "EG", "SA",
		"JO", "MY", "KR", "TW", "CO", "SV", "HN", "NI",
	} {
		m[language.MustParseRegion(code)] = true
	}
	return m
}()

// LocaleFromEnv returns the POSIX locale name that governs time formatting,
// checking LC_ALL, LC_TIME and LANG in that order.
func LocaleFromEnv(getenv func(string) string) string {
	for _, k := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// ParseLocale turns a POSIX locale name such as "en_US.UTF-8" or a BCP 47
// tag such as "en-US" into a language tag. "C" and "POSIX" yield Und.
func ParseLocale(name string) language.Tag {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// LayoutForLocale picks the hours:minutes:seconds layout conventional for
// the locale: TwelveHourLayout for 12-hour regions, DefaultTimeLayout
// otherwise. A bare language ("en") resolves to its most likely region.
func LayoutForLocale(name string) string {
	tag := ParseLocale(name)
	if tag == language.Und {
		return DefaultTimeLayout
	}
	region, conf := tag.Region()
	if conf == language.No || !twelveHourRegions[region] {
		return DefaultTimeLayout
	}
	return TwelveHourLayout
}
