package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/gin-gonic/gin"
)

// LanguageLookup returns the stored language preference of a user, or "" if none.
type LanguageLookup func(ctx context.Context, userID string) (string, error)

// Locale resolves the response language from Accept-Language. When no supported
// language is requested the translator's fallback is used.
func Locale(translator *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale, explicit := translator.ResolveAcceptLanguage(c.GetHeader("Accept-Language"))
		setLocale(c, locale, explicit)
		c.Next()
	}
}

// StoredLanguage runs after authentication. If the client did not ask for a
// language explicitly, the user's saved language preference wins.
func StoredLanguage(translator *i18n.Translator, lookup LanguageLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if explicit, _ := c.Get(string(localeExplicitKey)); explicit == true {
			c.Next()
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok || lookup == nil {
			c.Next()
			return
		}
		lang, err := lookup(c.Request.Context(), userID)
		if err != nil {
			GetLoggerFromContext(c).Debug("Could not load stored language", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if translator.Supported(lang) {
			setLocale(c, lang, false)
		}
		c.Next()
	}
}

func setLocale(c *gin.Context, locale string, explicit bool) {
	c.Set(string(localeKey), locale)
	c.Set(string(localeExplicitKey), explicit)
	c.Request = c.Request.WithContext(WithLocale(c.Request.Context(), locale))
}

// WithLocale returns a copy of ctx carrying locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// GetLocale returns the resolved locale, or "" when the Locale middleware did not run.
func GetLocale(c *gin.Context) string {
	if v, ok := c.Get(string(localeKey)); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if s, ok := c.Request.Context().Value(localeKey).(string); ok {
		return s
	}
	return ""
}
