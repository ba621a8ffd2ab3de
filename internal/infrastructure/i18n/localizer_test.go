package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNewMatchesLocale(t *testing.T) {
	cases := map[string]string{
		"":          "en",
		"en-US":     "en",
		"fr":        "fr",
		"fr-CA":     "fr",
		"de":        "en",
		"not a tag": "en",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			base, _ := language.Make(New(in).Locale()).Base()
			assert.Equal(t, want, base.String())
		})
	}
}

func TestLookup(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Please enter a name", en.Lookup(MissingName))
	assert.Equal(t, "The price must be greater than zero", en.Lookup(PriceNotGreaterThanZero))

	fr := New("fr")
	assert.Equal(t, "Veuillez saisir un nom", fr.Lookup(MissingName))

	assert.Equal(t, "UnknownKey", fr.Lookup("UnknownKey"))
}

func TestCatalogsAreComplete(t *testing.T) {
	for tag, messages := range catalogs {
		for key := range catalogs[language.English] {
			assert.NotEmpty(t, messages[key], "%s lacks %s", tag, key)
		}
	}
}
