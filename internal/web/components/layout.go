package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	// OGImage and URL must be absolute; empty values are left out.
	OGImage string
	URL     string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Data with Dylan"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				g.If(config.Description != "", Meta(Name("description"), Content(config.Description))),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.If(config.OGImage != "", Meta(g.Attr("property", "og:image"), Content(config.OGImage))),
				g.If(config.URL != "", Meta(g.Attr("property", "og:url"), Content(config.URL))),

				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Div(Class("page"), g.Group(content)),

				Script(Src("/static/js/reveal.js"), Defer()),
				Script(Src("/static/js/join-form.js"), Defer()),
			),
		),
	})
}
