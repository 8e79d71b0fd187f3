package components

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/datawithdylan/site/internal/web"
)

func PageNav(c web.Content) g.Node {
	return Header(
		Class("nav"),
		Div(
			Class("nav-left"),
			Div(Class("logo-dot")),
			Span(Class("nav-title"), g.Text(c.Title)),
		),
		Nav(
			Class("nav-links"),
			g.Group(g.Map(c.Nav, func(l web.Link) g.Node {
				return linkTo(l, "", g.Text(l.Label))
			})),
			A(Href("#join"), Class("nav-cta"), g.Text("Join the list")),
		),
	)
}

func HeroSection(c web.Content) g.Node {
	return Section(
		ID("hero"),
		Class("section section-hero reveal"),
		Div(
			Class("hero-content"),
			P(Class("eyebrow"), g.Text(c.HeroEyebrow)),
			H1(
				Class("hero-title"),
				g.Text(c.HeroLead),
				Span(Class("accent"), g.Text(c.HeroAccent)),
				g.Text(c.HeroTail),
			),
			P(Class("hero-subtitle"), g.Text(c.HeroSubtitle)),
			Div(
				Class("hero-cta-row"),
				A(Href("#join"), Class("btn btn-primary"), g.Text("Get the cheat sheets")),
				linkTo(web.Link{Href: c.YouTubeURL, External: true}, "btn btn-ghost", g.Text("Visit the YouTube channel")),
			),
			P(
				Class("hero-trust"),
				g.Text("✅ Join a community of data learners growing with "),
				linkTo(web.Link{Href: c.ChannelURL, External: true}, "", g.Text(c.Title)),
			),
		),
		Div(
			Class("hero-card"),
			Div(Class("hero-tag"), g.Text(c.HeroCardTag)),
			Ul(
				Class("hero-list"),
				g.Group(g.Map(c.HeroCardItems, func(item string) g.Node {
					return Li(g.Text(item))
				})),
			),
		),
	)
}

func AboutSection(c web.Content) g.Node {
	return Section(
		ID("about"),
		Class("section reveal"),
		Div(
			Class("section-inner about-grid"),
			Div(
				Class("about-photo-wrap"),
				Img(Src(c.HeadshotURL), Alt(c.AboutName), Class("about-photo"), g.Attr("loading", "lazy")),
			),
			Div(
				Class("section-text"),
				P(Class("eyebrow"), g.Text("ABOUT ME")),
				H2(Class("section-title"), g.Text(c.Title)),
				g.Group(g.Map(c.AboutParagraphs, func(p string) g.Node {
					return P(Class("body-copy"), g.Text(p))
				})),
			),
		),
	)
}

func GuidesSection(c web.Content) g.Node {
	return Section(
		ID("guides"),
		Class("section reveal"),
		Div(
			Class("section-inner"),
			P(Class("eyebrow"), g.Text("Free resources")),
			H2(Class("section-title"), g.Text("Choose your starting point (or grab both)")),
			Div(
				Class("cards-grid"),
				g.Group(g.Map(c.Resources, resourceCard)),
			),
		),
	)
}

func resourceCard(r web.Resource) g.Node {
	return Article(
		Class("resource-card"),
		Div(Class("resource-icon"), g.Attr("aria-hidden", "true"), g.Text(r.Icon)),
		H3(g.Text(r.Title)),
		P(g.Text(r.Summary)),
		Ul(
			Class("card-list"),
			g.Group(g.Map(r.Bullets, func(b string) g.Node {
				return Li(g.Text(b))
			})),
		),
		A(
			Href("#join"),
			Class("btn btn-secondary"),
			g.Attr("data-interest", string(r.Interest)),
			g.Text(r.CTA),
		),
	)
}

// PageFooter renders the copyright line for the given year.
func PageFooter(c web.Content, year int) g.Node {
	return Footer(
		Class("footer"),
		Span(g.Text("© "+strconv.Itoa(year)+" "+c.Title)),
		Span(g.Text(c.FooterTagline)),
	)
}

// linkTo opens external links in a new tab.
func linkTo(l web.Link, class string, children ...g.Node) g.Node {
	return A(
		Href(l.Href),
		g.If(class != "", Class(class)),
		g.If(l.External, Target("_blank")),
		g.If(l.External, Rel("noreferrer")),
		g.Group(children),
	)
}

// LandingPage assembles every section into a full document.
func LandingPage(c web.Content, form FormState, now time.Time) g.Node {
	return Layout(
		PageConfig{
			Title:       c.Title + " · Free Python & SQL cheat sheets",
			Description: c.Description,
			OGImage:     c.Absolute(c.HeadshotURL),
			URL:         c.Absolute("/"),
		},
		PageNav(c),
		Main(
			Class("sections"),
			HeroSection(c),
			AboutSection(c),
			GuidesSection(c),
			JoinSection(c, form),
		),
		PageFooter(c, now.Year()),
	)
}
