// Package web holds the landing page copy and its embedded static assets.
package web

import (
	"embed"
	"io/fs"
	"net/url"
	"strings"

	"github.com/datawithdylan/site/internal/config"
	"github.com/datawithdylan/site/internal/domain/signups"
)

//go:embed static
var staticFS embed.FS

// Static returns the asset tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Link is an anchor in the nav or a call to action.
type Link struct {
	Label    string
	Href     string
	External bool
}

// Resource is one free guide card.
type Resource struct {
	Icon     string
	Title    string
	Summary  string
	Bullets  []string
	CTA      string
	Interest signups.Interest
}

// InterestOption is a checkbox on the join form.
type InterestOption struct {
	Interest signups.Interest
	Label    string
}

// Content is all of the copy on the landing page.
type Content struct {
	Title       string
	Description string
	YouTubeURL  string
	ChannelURL  string
	HeadshotURL string
	BaseURL     string

	Nav []Link

	HeroEyebrow   string
	HeroLead      string
	HeroAccent    string
	HeroTail      string
	HeroSubtitle  string
	HeroCardTag   string
	HeroCardItems []string

	AboutName       string
	AboutParagraphs []string

	Resources []Resource

	JoinEyebrow   string
	JoinTitle     string
	JoinBody      string
	JoinButton    string
	JoinSmall     string
	ConsentLabel  string
	InterestLabel []InterestOption

	FooterTagline string
}

// DefaultContent returns the page copy with site overrides applied.
func DefaultContent(site config.Site) Content {
	c := Content{
		Title:       "Data with Dylan",
		Description: "Free beginner-friendly Python and SQL cheat sheets, visual explainers and practice problems.",
		YouTubeURL:  "https://www.youtube.com/@DataWithDylan",
		ChannelURL:  "https://www.youtube.com/@data_with_dylan",
		HeadshotURL: "/static/images/headshot.svg",

		HeroEyebrow:  "🚀 Python · SQL · Data Science",
		HeroLead:     "Jumpstart your",
		HeroAccent:   " Data Science Journey",
		HeroTail:     " for Free.",
		HeroSubtitle: "Get beginner-friendly Python and SQL cheat sheets, visual explainers, and practice problems designed for busy students and early-career data folks.",
		HeroCardTag:  "What you’ll get",
		HeroCardItems: []string{
			"📌 Step-by-step examples in Python + SQL",
			"🧠 Intuition-first explanations (not just formulas)",
			"📝 Practice problems with solutions",
			"📬 New resources sent straight to your inbox",
		},

		AboutName: "Dylan Song",
		AboutParagraphs: []string{
			"I'm Dylan, studying Informatics and Business at the University of Washington! I make beginner-friendly tutorials on Python, SQL, Excel, and data science on YouTube.",
			"I started this email list for people who don't just want to watch tutorials. They want more guided practice and resources that reinforce the concepts and supplement their learning.",
			"By joining, you'll get structured tips, mini-projects, cheat sheets, and behind-the-scenes insights that help you actually apply what you learn and stay consistent on your data science journey.",
		},

		Resources: []Resource{
			{
				Icon:    "🗄️",
				Title:   "SQL Foundations Cheatsheet",
				Summary: "SELECTs, JOINs, GROUP BY, window functions, and the patterns you'll actually see in interviews and real projects.",
				Bullets: []string{
					"From basic SELECTs to intermediate queries",
					"Visual diagrams to understand joins",
					"Practice questions with answers",
				},
				CTA:      "Get the SQL guide",
				Interest: signups.InterestSQL,
			},
			{
				Icon:    "🐍",
				Title:   "Python Fundamentals Cheatsheet",
				Summary: "Variables, data types, loops, functions, and real examples so you can actually build things instead of memorizing syntax.",
				Bullets: []string{
					"Core concepts in under 10 minutes per section",
					"Beginner-friendly practice problems",
					"Perfect supplement to my Python videos",
				},
				CTA:      "Get the Python guide",
				Interest: signups.InterestPython,
			},
		},

		JoinEyebrow:  "Join the newsletter",
		JoinTitle:    "Get the cheat sheets & new lessons in your inbox",
		JoinBody:     "Drop your email below and I'll send you the guides! You'll also get occasional newsletters with exclusive resources that I only share with my email subscribers, including sneak-peek previews of my upcoming videos, more practice problems, and personal insights from my own learning journey.",
		JoinButton:   "📬 Send me the cheat sheets",
		JoinSmall:    "No spam. Unsubscribe any time with one click.",
		ConsentLabel: "Yes, email me the guides and the occasional newsletter.",
		InterestLabel: []InterestOption{
			{Interest: signups.InterestPython, Label: "I'm into Python"},
			{Interest: signups.InterestSQL, Label: "I'm into SQL"},
		},

		FooterTagline: "Built for data science learners 👨‍💻📊",
	}

	if site.Title != "" {
		c.Title = site.Title
	}
	if site.YouTubeURL != "" {
		c.YouTubeURL = site.YouTubeURL
	}
	if site.HeadshotURL != "" {
		c.HeadshotURL = site.HeadshotURL
	}
	c.BaseURL = strings.TrimRight(site.BaseURL, "/")

	c.Nav = []Link{
		{Label: "About", Href: "#about"},
		{Label: "Free Guides", Href: "#guides"},
		{Label: "YouTube", Href: c.YouTubeURL, External: true},
	}
	return c
}

// Absolute resolves ref against BaseURL. Already absolute refs are returned
// as is; relative ones yield "" when no BaseURL is configured.
func (c Content) Absolute(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return ref
	}
	if c.BaseURL == "" {
		return ""
	}
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil || !base.IsAbs() {
		return ""
	}
	return base.ResolveReference(u).String()
}
