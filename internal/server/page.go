package server

import "html/template"

type checkbox struct {
	Key      string
	Label    string
	Checked  bool
	Disabled bool
}

type pageData struct {
	Options   []checkbox
	Label     string
	Structure template.HTML
	Snippet   string
	Source    string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MIME structure picker</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
ul.mime-structure li.group { font-weight: bold; }
ul.mime-structure li.content { font-weight: normal; }
pre { background: #f4f4f4; padding: 1rem; }
</style>
</head>
<body>
<h1>MIME structure picker</h1>
<form method="get" action="/">
{{ range .Options }}<label><input type="checkbox" name="{{ .Key }}"{{ if .Checked }} checked{{ end }}{{ if .Disabled }} disabled{{ end }} onchange="this.form.submit()"> {{ .Label }}</label><br>
{{ end }}<noscript><button type="submit">Update</button></noscript>
</form>
<h2>{{ .Label }}</h2>
{{ .Structure }}
<h2>Dependency</h2>
<pre id="snippet" data-source="{{ .Source }}">{{ .Snippet }}</pre>
<script>
fetch("/api/dependency").then(r => r.json()).then(d => {
  document.getElementById("snippet").textContent = d.snippet;
}).catch(() => {});
</script>
</body>
</html>
`))
