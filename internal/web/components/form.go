package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/datawithdylan/site/internal/domain/signups"
	"github.com/datawithdylan/site/internal/web"
)

// FormStatus selects how the status line under the join form is styled.
type FormStatus string

const (
	FormIdle    FormStatus = ""
	FormSuccess FormStatus = "success"
	FormError   FormStatus = "error"
)

// FormState carries submitted values, per-field errors and the overall result
// back into the join form when it is rendered by the server.
type FormState struct {
	Email     string
	FirstName string
	Interests map[signups.Interest]bool
	Consent   bool
	Errors    map[string]string
	Status    FormStatus
	Message   string
}

func JoinSection(c web.Content, form FormState) g.Node {
	return Section(
		ID("join"),
		Class("section section-join reveal"),
		Div(
			Class("section-inner join-inner"),
			Div(
				P(Class("eyebrow"), g.Text(c.JoinEyebrow)),
				H2(Class("section-title"), g.Text(c.JoinTitle)),
				P(Class("body-copy"), g.Text(c.JoinBody)),
			),
			JoinForm(c, form),
		),
	)
}

func JoinForm(c web.Content, form FormState) g.Node {
	// A successful submission clears the inputs.
	if form.Status == FormSuccess {
		form = FormState{Status: form.Status, Message: form.Message}
	}

	return Form(
		ID("join-form"),
		Class("join-form"),
		Action("/subscribe#join"),
		Method("post"),
		g.Attr("data-endpoint", "/api/subscribe"),
		g.Attr("novalidate"),

		Input(Type("hidden"), Name("source"), Value("landing")),

		Label(
			Class("input-label"),
			For("join-email"),
			g.Text("Email"),
		),
		Input(
			ID("join-email"),
			Type("email"),
			Name("email"),
			Required(),
			AutoComplete("email"),
			Placeholder("you@example.com"),
			Value(form.Email),
			invalidAttrs("email", form.Errors),
		),
		fieldError("email", form.Errors),

		Label(
			Class("input-label"),
			For("join-first-name"),
			g.Text("First name "),
			Span(Class("optional"), g.Text("(optional)")),
		),
		Input(
			ID("join-first-name"),
			Type("text"),
			Name("first_name"),
			AutoComplete("given-name"),
			MaxLength("100"),
			Placeholder("Dylan"),
			Value(form.FirstName),
			invalidAttrs("first_name", form.Errors),
		),
		fieldError("first_name", form.Errors),

		Div(
			Class("input-row"),
			g.Group(g.Map(c.InterestLabel, func(opt web.InterestOption) g.Node {
				return Label(
					Class("checkbox"),
					Input(
						Type("checkbox"),
						Name("interests"),
						Value(string(opt.Interest)),
						g.If(form.Interests[opt.Interest], Checked()),
					),
					Span(g.Text(opt.Label)),
				)
			})),
		),

		Label(
			Class("checkbox checkbox-consent"),
			Input(
				ID("join-consent"),
				Type("checkbox"),
				Name("consent"),
				Value("yes"),
				Required(),
				g.If(form.Consent, Checked()),
				invalidAttrs("consent", form.Errors),
			),
			Span(g.Text(c.ConsentLabel)),
		),
		fieldError("consent", form.Errors),

		Button(
			Type("submit"),
			Class("btn btn-primary btn-full"),
			g.Text(c.JoinButton),
		),

		Div(
			ID("join-status"),
			Class(statusClass(form.Status)),
			g.Attr("role", "status"),
			g.Attr("aria-live", "polite"),
			g.If(form.Message != "", g.Text(form.Message)),
		),

		P(Class("small-print"), g.Text(c.JoinSmall)),
	)
}

func fieldError(field string, errs map[string]string) g.Node {
	msg := errs[field]
	return P(
		ID("error-"+field),
		Class("field-error"),
		g.Attr("data-field", field),
		g.If(msg == "", g.Attr("hidden")),
		g.Text(msg),
	)
}

func invalidAttrs(field string, errs map[string]string) g.Node {
	if errs[field] == "" {
		return nil
	}
	return g.Group([]g.Node{
		g.Attr("aria-invalid", "true"),
		g.Attr("aria-describedby", "error-"+field),
	})
}

func statusClass(s FormStatus) string {
	switch s {
	case FormSuccess:
		return "form-status form-status-success"
	case FormError:
		return "form-status form-status-error"
	default:
		return "form-status"
	}
}
