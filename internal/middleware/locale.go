package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"studio/internal/infra/geoip"
)

const localeKey contextKey = "locale"

var supportedLocales = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.Indonesian,
	language.Spanish,
	language.Portuguese,
	language.Japanese,
})

// countryLocales maps a visitor country to a locale when the request carries
// no usable Accept-Language header.
var countryLocales = map[string]string{
	"ID": "id",
	"ES": "es",
	"MX": "es",
	"BR": "pt",
	"PT": "pt",
	"JP": "ja",
}

// Locale resolves the request locale from, in order, the X-Locale header, the
// Accept-Language header, and the visitor's country. resolver may be nil.
func Locale(resolver geoip.CountryResolver, defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r, resolver, defaultLocale)
			ctx := context.WithValue(r.Context(), localeKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(r *http.Request, resolver geoip.CountryResolver, defaultLocale string) string {
	if explicit := r.Header.Get("X-Locale"); explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			matched, _, _ := supportedLocales.Match(tag)
			if base, conf := matched.Base(); conf != language.No {
				return base.String()
			}
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			matched, _, conf := supportedLocales.Match(tags...)
			if conf > language.No {
				if base, bconf := matched.Base(); bconf != language.No {
					return base.String()
				}
			}
		}
	}

	if resolver != nil {
		if country, err := resolver.CountryCode(clientIPForRateLimit(r)); err == nil {
			if locale, ok := countryLocales[strings.ToUpper(country)]; ok {
				return locale
			}
		}
	}

	return defaultLocale
}

// LocaleFromContext returns the locale placed by Locale, or "".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok {
		return v
	}
	return ""
}

