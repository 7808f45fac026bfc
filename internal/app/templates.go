package app

import (
	"fmt"
	"html/template"
)

var funcMap = template.FuncMap{
	"pct": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
}

// parsePage builds one page template on top of the shared layout
func parsePage(name, body string) (*template.Template, error) {
	t, err := template.New(name).Funcs(funcMap).Parse(tmplBase + tmplCounter + body)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	return t, nil
}

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/site.css">
</head>
<body>
<nav><a class="brand" href="/">{{.Organization}}</a><a href="/?tab=upcoming">Upcoming</a><a href="/?tab=past">Past</a><a href="/api/subscribe">Subscribe</a></nav>
<main>{{template "content" .}}</main>
<footer>&copy; {{.Organization}}</footer>
<script src="/static/counter.js" defer></script>
</body>
</html>{{end}}
`

const tmplCounter = `
{{define "counter"}}<div class="counter{{if .Split}} split{{end}}" data-counter-id="{{.ID}}" data-target="{{.Target}}"{{if .Plus}} data-plus="true"{{end}}>
{{if .Icon}}<span class="icon">{{.Icon}}</span>{{end}}
{{if .Split}}<div class="digits">{{range .Digits}}<span class="digit">{{.}}</span>{{end}}</div>{{else}}<span class="val">0</span>{{end}}
<span class="lbl">{{.Label}}</span>
</div>{{end}}
`

const tmplEvents = `
{{define "content"}}
<section class="stats">{{range .Stats}}{{template "counter" .}}{{end}}</section>

<h1>{{.Heading}}</h1>
<div class="tabs">{{range .Tabs}}<a href="{{.URL}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</div>

<div class="timeline">
<div class="timeline-track"><span class="timeline-fill" style="width:{{pct .Progress}}"></span></div>
{{range .Years}}<a class="year{{if .Active}} active{{end}}" href="{{.URL}}" title="{{.Label}}">{{.Short}}</a>{{end}}
</div>
<p class="dim">Showing {{.Summary}}</p>

{{if .Events}}<div class="cards">
{{range .Events}}<article class="event">
{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}" loading="lazy">{{end}}
<span class="tag">{{.Category}}</span>
<h2>{{.Title}}</h2>
<p class="meta">{{.Date}}{{if .Time}} · {{.Time}}{{end}}</p>
<p class="meta">{{.Location}}</p>
<p>{{.Description}}</p>
{{if $.IsPast}}{{if .Attendees}}<p class="dim">{{.Attendees}} attendees{{if .Speakers}} · {{.Speakers}} speakers{{end}}</p>{{end}}
{{if .DetailsLink}}<a class="btn" href="{{.DetailsLink}}">View Details</a>{{end}}
{{else if .RegistrationLink}}<a class="btn" href="{{.RegistrationLink}}" target="_blank" rel="noopener">Register Now</a>{{end}}
</article>{{end}}
</div>{{else}}<p class="empty">{{.EmptyMessage}}</p>{{end}}

<section class="contact">
<h2>Contact</h2>
<address>{{.Contact.Organization}}<br>{{range .Contact.Address}}{{.}}<br>{{end}}</address>
<p><a href="mailto:{{.Contact.Email}}">{{.Contact.Email}}</a> · {{.Contact.Phone}}</p>
{{if .Contact.RegistrationForm}}<a class="btn" href="{{.Contact.RegistrationForm}}" target="_blank" rel="noopener">Register</a>{{end}}
{{if .Contact.MapEmbedURL}}<iframe class="map" src="{{.Contact.MapEmbedURL}}" loading="lazy" title="Map"></iframe>{{end}}
</section>
{{end}}
`

const tmplDetail = `
{{define "content"}}
<div class="splash" aria-hidden="true"><div class="splash-logo"><h1>ACM</h1><p>× PCCOER</p></div></div>
<a class="btn back" href="/">&larr; Back to Events</a>
<header class="hero">
{{if .Event.HeroImage}}<img src="{{.Event.HeroImage}}" alt="{{.Event.Title}}">{{end}}
<h1>{{.Event.Title}}</h1>
<p class="meta">{{.Event.Date}}{{if .Event.Time}} · {{.Event.Time}}{{end}} · {{.Event.Location}}</p>
<p>{{.Event.Description}}</p>
</header>

<section class="stats">{{range .Counters}}{{template "counter" .}}{{end}}</section>

<section class="overview">
<h2>Overview</h2>
{{if .Event.SummaryImage}}<img src="{{.Event.SummaryImage}}" alt="{{.Event.Title}} summary" loading="lazy">{{end}}
<p>{{.Event.FullDescription}}</p>
{{if .Event.Website}}<a class="btn" href="{{.Event.Website}}" target="_blank" rel="noopener">Visit Website</a>{{end}}
</section>

{{if .Event.Gallery}}<section class="gallery">
<h2>Gallery</h2>
{{range .Event.Gallery}}<img src="{{.}}" alt="" loading="lazy">{{end}}
</section>{{end}}
{{end}}
`

const tmplNotFound = `
{{define "content"}}
<section class="not-found">
<h1>{{.Heading}}</h1>
<p>{{.Message}}</p>
<a class="btn" href="{{.BackURL}}">{{.BackLabel}}</a>
</section>
{{end}}
`
