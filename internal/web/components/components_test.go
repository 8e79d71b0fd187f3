package components

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/web"
)

func TestLandingPageSections(t *testing.T) {
	c := web.DefaultContent(config.Site{})
	var b strings.Builder
	require.NoError(t, LandingPage(c, FormState{}, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)).Render(&b))
	html := b.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	for _, id := range []string{`id="hero"`, `id="about"`, `id="guides"`, `id="join"`, `id="join-form"`} {
		assert.Contains(t, html, id)
	}
	assert.Contains(t, html, "SQL Foundations Cheatsheet")
	assert.Contains(t, html, "Python Fundamentals Cheatsheet")
	assert.Contains(t, html, "© 2026 Data with Dylan")
	assert.Contains(t, html, `href="https://www.youtube.com/@DataWithDylan"`)
	assert.Contains(t, html, `/static/js/join-form.js`)
	assert.Contains(t, html, `/static/js/reveal.js`)
}

func TestJoinFormRendersErrorsAndValues(t *testing.T) {
	c := web.DefaultContent(config.Site{})
	form := FormState{
		Email:     "bad@",
		FirstName: "Sam",
		Interests: map[signups.Interest]bool{signups.InterestSQL: true},
		Errors:    map[string]string{"email": signups.MsgEmailInvalid, "consent": signups.MsgConsentRequired},
		Status:    FormError,
		Message:   "Please fix the highlighted fields.",
	}

	var b strings.Builder
	require.NoError(t, JoinForm(c, form).Render(&b))
	html := b.String()

	assert.Contains(t, html, `value="bad@"`)
	assert.Contains(t, html, `value="Sam"`)
	assert.Contains(t, html, `value="sql" checked`)
	assert.NotContains(t, html, `value="python" checked`)
	assert.Contains(t, html, signups.MsgEmailInvalid)
	assert.Contains(t, html, signups.MsgConsentRequired)
	assert.Contains(t, html, `aria-invalid="true"`)
	assert.Contains(t, html, "form-status form-status-error")
	assert.Contains(t, html, "Please fix the highlighted fields.")
}

func TestJoinFormSuccessClearsValues(t *testing.T) {
	c := web.DefaultContent(config.Site{})
	var b strings.Builder
	require.NoError(t, JoinForm(c, FormState{
		Email:   "a@example.com",
		Consent: true,
		Status:  FormSuccess,
		Message: "You're in!",
	}).Render(&b))
	html := b.String()

	assert.NotContains(t, html, `value="a@example.com"`)
	assert.Contains(t, html, "form-status form-status-success")
	assert.Contains(t, html, "You&#39;re in!")
}

func TestJoinFormIdleHidesErrors(t *testing.T) {
	c := web.DefaultContent(config.Site{})
	var b strings.Builder
	require.NoError(t, JoinForm(c, FormState{}).Render(&b))
	html := b.String()

	assert.Contains(t, html, `id="error-email" class="field-error" data-field="email" hidden`)
	assert.NotContains(t, html, "aria-invalid")
}

func TestDefaultContentOverrides(t *testing.T) {
	c := web.DefaultContent(config.Site{Title: "Other", HeadshotURL: "/me.jpg"})
	assert.Equal(t, "Other", c.Title)
	assert.Equal(t, "/me.jpg", c.HeadshotURL)
	assert.Equal(t, "https://www.youtube.com/@DataWithDylan", c.YouTubeURL)
}

func TestLinksFollowExternalFlag(t *testing.T) {
	c := web.DefaultContent(config.Site{})
	var b strings.Builder
	require.NoError(t, PageNav(c).Render(&b))
	html := b.String()

	assert.Contains(t, html, `<a href="#about">About</a>`)
	assert.Contains(t, html, `<a href="https://www.youtube.com/@DataWithDylan" target="_blank" rel="noreferrer">YouTube</a>`)
}

func TestOpenGraphURLsAreAbsolute(t *testing.T) {
	render := func(c web.Content) string {
		var b strings.Builder
		require.NoError(t, LandingPage(c, FormState{}, time.Now()).Render(&b))
		return b.String()
	}

	html := render(web.DefaultContent(config.Site{}))
	assert.NotContains(t, html, `og:image`)
	assert.NotContains(t, html, `og:url`)

	html = render(web.DefaultContent(config.Site{BaseURL: "https://datawithdylan.com/"}))
	assert.Contains(t, html, `<meta property="og:image" content="https://datawithdylan.com/static/images/headshot.svg">`)
	assert.Contains(t, html, `<meta property="og:url" content="https://datawithdylan.com/">`)

	html = render(web.DefaultContent(config.Site{HeadshotURL: "https://cdn.example.com/me.jpg"}))
	assert.Contains(t, html, `<meta property="og:image" content="https://cdn.example.com/me.jpg">`)
}

func TestContentAbsolute(t *testing.T) {
	c := web.Content{BaseURL: "https://example.com/sub"}
	assert.Equal(t, "https://example.com/static/x.png", c.Absolute("/static/x.png"))
	assert.Equal(t, "https://example.com/sub/x.png", c.Absolute("x.png"))
	assert.Equal(t, "https://a.test/y", c.Absolute("https://a.test/y"))
	assert.Equal(t, "", c.Absolute(""))
	assert.Equal(t, "", web.Content{}.Absolute("/static/x.png"))
}
