package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"countrydata/cli/internal/countries"
	"countrydata/cli/internal/dataset"
	"countrydata/cli/internal/render"
	"countrydata/cli/internal/view"
)

// PageTitle is the <title> of the landing page.
const PageTitle = "Country Data Dashboard"

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.json-key { color: #2563eb; font-weight: 600; }
.json-string { color: #059669; }
.json-number { color: #d97706; }
.json-boolean { color: #7c3aed; }
.json-null { color: #6b7280; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="get" action="/">
<select name="country">
{{range .Options}}<option value="{{.Value}}"{{if .Disabled}} disabled{{end}}{{if eq .Value $.Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<select name="view">
<option value="table"{{if eq .View "table"}} selected{{end}}>Table</option>
<option value="json"{{if eq .View "json"}} selected{{end}}>JSON</option>
</select>
<button type="submit">Get Country Details</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Output}}<div class="data">{{.Output}}</div>{{end}}
<p>API: <code>POST /get_country_data</code> with <code>{"countryName": "..."}</code></p>
</body>
</html>
`))

type indexPage struct {
	Title    string
	Options  []countries.Option
	Selected string
	View     string
	Error    string
	Output   template.HTML
}

// Index serves the landing page. With ?country=<name> it also renders that country,
// as a table or as highlighted JSON per ?view=.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Title:    PageTitle,
		Options:  countries.Options(h.countries),
		Selected: r.URL.Query().Get("country"),
		View:     "table",
	}
	mode, ok := view.ParseMode(r.URL.Query().Get("view"))
	if ok {
		page.View = mode.String()
	}

	if page.Selected != "" {
		out, err := h.renderCountry(r, page.Selected, mode)
		switch {
		case errors.Is(err, dataset.ErrNotFound):
			page.Error = view.FetchFailedPrefix + MsgNotFound
		case err != nil:
			h.log.Error("render country page", "country", page.Selected, "error", err)
			page.Error = view.FetchFailedPrefix + MsgInternal
		default:
			page.Output = out
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, page); err != nil {
		h.log.Error("render index", "error", err)
	}
}

func (h *Handler) renderCountry(r *http.Request, name string, mode render.Mode) (template.HTML, error) {
	rec, err := h.src.Lookup(r.Context(), name)
	if err != nil {
		return "", err
	}
	out, err := (&render.Renderer{Decorator: render.HTMLDecorator{}}).Render(rec, mode)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	render.WriteHTML(&buf, out)
	return template.HTML(buf.String()), nil
}
