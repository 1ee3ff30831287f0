package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Route Finder with Traffic Optimization</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; min-height: 100vh; }
aside { width: 280px; padding: 1rem; background: #f4f4f4; }
main { flex: 1; padding: 1rem; }
label, input, button { display: block; width: 100%; margin-bottom: .5rem; }
.error { color: #b00020; }
iframe { width: 800px; height: 500px; border: 1px solid #ccc; }
</style>
</head>
<body>
<aside>
<h2>Input Locations</h2>
<form method="post" action="/routes">
<label for="start">Enter Start Location</label>
<input id="start" name="start" type="text" value="{{.Start}}">
<label for="end">Enter End Location</label>
<input id="end" name="end" type="text" value="{{.End}}">
<button type="submit">Find Routes</button>
</form>
</aside>
<main>
<h1>Route Finder with Traffic Optimization</h1>
{{if .Error}}<p class="error">Error: {{.Error}}</p>{{end}}
{{with .Result}}
<p><strong>Start Coordinates</strong>: {{.Start.Coordinates}}</p>
<p><strong>End Coordinates</strong>: {{.End.Coordinates}}</p>
{{if .Selection.Empty}}<p>No routes found</p>{{else}}<p>{{len .Selection.Candidates}} candidate route(s), best route score {{index .Selection.Scores .Selection.BestIndex}}</p>{{end}}
{{end}}
{{if .HasMap}}<iframe src="/map" title="Route map"></iframe>{{end}}
</main>
</body>
</html>
`))

type pageData struct {
	Start  string
	End    string
	Error  string
	Result any
	HasMap bool
}

func writePage(log *zap.Logger, w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Warn("render page failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}
