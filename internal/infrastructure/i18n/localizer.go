package i18n

import (
	"golang.org/x/text/language"
)

const (
	MissingName             = "MissingName"
	MissingPrice            = "MissingPrice"
	PriceNotANumber         = "PriceNotANumber"
	PriceNotGreaterThanZero = "PriceNotGreaterThanZero"
	MissingStock            = "MissingStock"
	StockNotAnInteger       = "StockNotAnInteger"
	StockNotGreaterThanZero = "StockNotGreaterThanZero"
)

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		MissingName:             "Please enter a name",
		MissingPrice:            "Please enter a price value",
		PriceNotANumber:         "The value entered for the price must be a number",
		PriceNotGreaterThanZero: "The price must be greater than zero",
		MissingStock:            "Please enter a stock value",
		StockNotAnInteger:       "The value entered for the stock must be an integer",
		StockNotGreaterThanZero: "The stock must be greater than zero",
	},
	language.French: {
		MissingName:             "Veuillez saisir un nom",
		MissingPrice:            "Veuillez saisir un prix",
		PriceNotANumber:         "La valeur saisie pour le prix doit être un nombre",
		PriceNotGreaterThanZero: "Le prix doit être supérieur à zéro",
		MissingStock:            "Veuillez saisir un stock",
		StockNotAnInteger:       "La valeur saisie pour le stock doit être un entier",
		StockNotGreaterThanZero: "Le stock doit être supérieur à zéro",
	},
}

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

// Localizer resolves message keys for one locale.
type Localizer struct {
	tag      language.Tag
	messages map[string]string
}

// New picks the closest supported locale; unknown or malformed locales fall back to English.
func New(locale string) *Localizer {
	_, idx := language.MatchStrings(matcher, locale)
	tag := supported[idx]
	return &Localizer{tag: tag, messages: catalogs[tag]}
}

func (l *Localizer) Locale() string { return l.tag.String() }

// Lookup returns the message for key, the English message when the locale lacks it, or key itself.
func (l *Localizer) Lookup(key string) string {
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	if msg, ok := catalogs[language.English][key]; ok {
		return msg
	}
	return key
}
