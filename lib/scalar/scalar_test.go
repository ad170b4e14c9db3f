package scalar

import (
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"strings"
	"testing"

	"github.com/bxcodec/faker/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func requireInvalid(t *testing.T, err error, kind Kind, raw string) {
	t.Helper()
	require.Error(t, err, raw)
	var perr *errs.ParseError
	require.ErrorAs(t, err, &perr, raw)
	require.Equal(t, errs.InvalidFormat, perr.Code, raw)
	require.Equal(t, string(kind), perr.Expected, raw)
	require.Equal(t, raw, perr.Raw)
}

func TestParseEmail(t *testing.T) {
	valid := []string{
		"ada@example.com",
		"ada.lovelace+work@mail.example.co.uk",
		"  ada@example.org ",
		"x@y.z",
	}
	for _, raw := range valid {
		email, err := ParseEmail(raw)
		require.NoError(t, err, raw)
		require.Equal(t, strings.TrimSpace(raw), email.String())
	}

	email, err := ParseEmail("Ada@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "example.com", email.Domain())

	invalidInputs := []string{
		"not-an-email",
		"",
		"@example.com",
		"ada@",
		"ada@localhost",
		"ada@@example.com",
		"ada@ex@ample.com",
		"ada@.example.com",
		"ada@example..com",
		"ada@example.com.",
		"ada love@example.com",
	}
	for _, raw := range invalidInputs {
		_, err := ParseEmail(raw)
		requireInvalid(t, err, KindEmail, raw)
	}
}

// generated inputs: success iff the documented grammar holds
func TestParseEmailGrammar(t *testing.T) {
	locals := []string{"", "a", "a.b", "a@b"}
	domains := []string{"", "x", "x.y", ".x", "x.", "x..y", "x.y.z"}
	for _, local := range locals {
		for _, domain := range domains {
			raw := local + "@" + domain
			expectOk := local != "" &&
				!strings.Contains(local, "@") &&
				strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") &&
				!strings.HasSuffix(domain, ".") &&
				!strings.Contains(domain, "..")
			_, err := ParseEmail(raw)
			require.Equal(t, expectOk, err == nil, raw)
		}
	}
}

func TestParsePhone(t *testing.T) {
	testCases := []struct {
		raw      string
		region   string
		expected string
	}{
		{raw: "+1 650-555-0100", region: "US", expected: "+16505550100"},
		{raw: "(650) 555-0100", region: "US", expected: "+16505550100"},
		{raw: "650.555.0100", region: "", expected: "+16505550100"},
		{raw: "+44 20 7946 0958", region: "US", expected: "+442079460958"},
		{raw: "020 7946 0958", region: "GB", expected: "+442079460958"},
		{raw: "+49 30 901820", region: "US", expected: "+4930901820"},
	}
	for _, test := range testCases {
		phone, err := ParsePhone(test.raw, test.region)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.expected, phone.String())
	}

	for _, raw := range []string{"", "not a phone", "12", "+1 2"} {
		_, err := ParsePhone(raw, "US")
		requireInvalid(t, err, KindPhone, raw)
	}
}

func TestParseURL(t *testing.T) {
	for _, raw := range []string{
		"https://ada.example.com",
		"http://example.com/blog?b=2&a=1",
		"HTTPS://Example.com/path",
	} {
		u, err := ParseURL(raw)
		require.NoError(t, err, raw)
		require.Equal(t, raw, u.String())
	}

	for _, raw := range []string{
		"",
		"www.example.com",
		"ftp://example.com",
		"mailto:ada@example.com",
		"https://",
		"javascript:alert(1)",
	} {
		_, err := ParseURL(raw)
		requireInvalid(t, err, KindURL, raw)
	}
}

func TestGeneratedScalars(t *testing.T) {
	for n := 0; n < 200; n++ {
		raw := faker.Email()
		email, err := ParseEmail(raw)
		require.NoError(t, err, raw)
		require.Equal(t, raw, email.String())

		raw = faker.URL()
		u, err := ParseURL(raw)
		require.NoError(t, err, raw)
		require.NotEmpty(t, u.Host(), raw)
	}
}

func TestURLNormalized(t *testing.T) {
	a, err := ParseURL("HTTPS://Example.COM:443/blog?b=2&a=1#top")
	require.NoError(t, err)
	b, err := ParseURL("https://example.com/blog?a=1&b=2")
	require.NoError(t, err)
	require.Equal(t, b.Normalized(), a.Normalized())
	require.Equal(t, "example.com", a.Host())
}

func TestURLComparesByValue(t *testing.T) {
	a, err := ParseURL("https://example.com/blog?b=2&a=1")
	require.NoError(t, err)
	b, err := ParseURL(" https://example.com/blog?b=2&a=1 ")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.True(t, a == b)
	require.Empty(t, cmp.Diff(a, b))

	c, err := ParseURL("https://example.com/blog?a=1&b=2")
	require.NoError(t, err)
	require.NotEqual(t, a, c)
	require.False(t, a.Equal(c))
	require.Equal(t, a.Normalized(), c.Normalized())
}

func TestParseLocale(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{raw: "en_US", expected: "en_US"},
		{raw: "en-US", expected: "en_US"},
		{raw: "EN_us", expected: "en_US"},
		{raw: "de", expected: "de"},
		{raw: "in_ID", expected: "in_ID"},
		{raw: "zh_TW", expected: "zh_TW"},
	}
	for _, test := range testCases {
		loc, err := ParseLocale(test.raw)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.expected, loc.String())
	}

	loc, err := ParseLocale("pt-br")
	require.NoError(t, err)
	require.Equal(t, "pt", loc.Language())
	require.Equal(t, "BR", loc.Country())

	for _, raw := range []string{"", "xx_US", "en_ZZ", "klingon", "en_"} {
		_, err := ParseLocale(raw)
		require.Error(t, err, raw)
		require.True(t, errs.IsParseCode(err, errs.InvalidFormat), raw)
	}
}

func TestLocaleTable(t *testing.T) {
	for lang := range interfaceLanguages {
		_, err := NewLocale(lang, "US")
		require.NoError(t, err, lang)
	}
	for _, lang := range []string{"xx", "qq", "zz", "eng"} {
		_, err := NewLocale(lang, "")
		require.Error(t, err, lang)
	}
}

func TestScalarJSON(t *testing.T) {
	email, err := ParseEmail("ada@example.com")
	require.NoError(t, err)
	url, err := ParseURL("https://example.com")
	require.NoError(t, err)
	locale, err := ParseLocale("en_US")
	require.NoError(t, err)

	out, err := json.Marshal(map[string]any{"email": email, "url": url, "locale": locale})
	require.NoError(t, err)
	require.JSONEq(t, `{"email":"ada@example.com","url":"https://example.com","locale":"en_US"}`, string(out))

	var decoded Email
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &decoded))
	require.NoError(t, json.Unmarshal([]byte(`"ada@example.com"`), &decoded))
	require.Equal(t, email, decoded)
}

func FuzzParseEmail(f *testing.F) {
	f.Add("ada@example.com")
	f.Add("not-an-email")
	f.Fuzz(func(t *testing.T, raw string) {
		email, err := ParseEmail(raw)
		if err != nil {
			return
		}
		again, err := ParseEmail(email.String())
		if err != nil || again != email {
			t.Fatal(fmt.Sprintf("reparse of %q differs", raw))
		}
	})
}
