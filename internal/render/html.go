package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
)

// DefaultOutput is the fixed output document name, overwritten on each run.
const DefaultOutput = "voyager2_neptune.html"

const plotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var docTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlyJS}}"></script>
<style>html, body { margin: 0; background: black; } #flyby { width: 100vw; height: 100vh; }</style>
</head>
<body>
<div id="flyby"></div>
<script>
var figure = {{.Figure}};
Plotly.newPlot("flyby", figure.data, figure.layout, {responsive: true}).then(function() {
	Plotly.addFrames("flyby", figure.frames);
});
</script>
</body>
</html>
`))

type docData struct {
	Title    string
	PlotlyJS string
	Figure   template.JS
}

// WriteHTML renders the figure into a single HTML document on w.
func WriteHTML(w io.Writer, title string, fig *Figure) error {
	payload, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("marshalling figure: %w", err)
	}
	return docTemplate.Execute(w, docData{
		Title:    title,
		PlotlyJS: plotlyCDN,
		Figure:   template.JS(payload),
	})
}

// WriteFile writes the document to path, replacing any previous run's output.
func WriteFile(path, title string, fig *Figure) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output document: %w", err)
	}
	if err := WriteHTML(f, title, fig); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
