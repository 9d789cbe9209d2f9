// Package i18n holds the English and Turkish message catalog and the
// validator translations used in API error responses.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	tr_translations "github.com/go-playground/validator/v10/translations/tr"
)

// Translator resolves locales and renders catalog and validation messages.
type Translator struct {
	uni      *ut.UniversalTranslator
	fallback string
}

// New builds a Translator whose fallback locale is defaultLocale ("en" or "tr").
func New(defaultLocale string) (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, tr.New())

	for locale, messages := range catalog {
		trans, ok := uni.GetTranslator(locale)
		if !ok {
			return nil, fmt.Errorf("i18n: locale %q not registered", locale)
		}
		for key, text := range messages {
			if err := trans.Add(string(key), text, false); err != nil {
				return nil, fmt.Errorf("i18n: add %s/%s: %w", locale, key, err)
			}
		}
	}

	if _, ok := catalog[defaultLocale]; !ok {
		defaultLocale = "en"
	}
	return &Translator{uni: uni, fallback: defaultLocale}, nil
}

// Supported reports whether locale has a catalog.
func (t *Translator) Supported(locale string) bool {
	_, ok := catalog[locale]
	return ok
}

// Fallback returns the locale used when nothing else matches.
func (t *Translator) Fallback() string {
	return t.fallback
}

// ResolveAcceptLanguage picks the best supported locale from an
// Accept-Language header. The second result is false when nothing matched.
func (t *Translator) ResolveAcceptLanguage(header string) (string, bool) {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if t.Supported(base) {
			return base, true
		}
	}
	return t.fallback, false
}

// Message renders key in locale, falling back to the default locale and
// finally to the key itself.
func (t *Translator) Message(locale string, key MessageKey) string {
	for _, l := range []string{locale, t.fallback} {
		trans, ok := t.uni.GetTranslator(l)
		if !ok {
			continue
		}
		if msg, err := trans.T(string(key)); err == nil {
			return msg
		}
	}
	return string(key)
}

// RegisterValidatorTranslations installs the English and Turkish validator
// messages on v.
func (t *Translator) RegisterValidatorTranslations(v *validator.Validate) error {
	enTrans, _ := t.uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return fmt.Errorf("i18n: register en validator translations: %w", err)
	}
	trTrans, _ := t.uni.GetTranslator("tr")
	if err := tr_translations.RegisterDefaultTranslations(v, trTrans); err != nil {
		return fmt.Errorf("i18n: register tr validator translations: %w", err)
	}
	return nil
}

// ValidationMessages renders the field errors in err for locale. It returns
// nil when err is not a validator.ValidationErrors.
func (t *Translator) ValidationMessages(locale string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	trans, ok := t.uni.GetTranslator(locale)
	if !ok {
		trans, _ = t.uni.GetTranslator(t.fallback)
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Translate(trans))
	}
	return out
}
