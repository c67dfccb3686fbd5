package render

import (
	"html/template"
	"strconv"
)

var funcMap = template.FuncMap{
	// num prints coordinates without trailing zeros. NaN and Inf print as-is.
	"num": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
}

var templates = template.Must(template.New("fundmap").Funcs(funcMap).Parse(pageTemplate + treemapTemplate + legendTemplate))

const pageTemplate = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="fundmap">
<meta name="render-id" content="{{.RenderID}}">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; margin: 24px; color: #1f2328; }
#title { margin: 0 0 4px; font-size: 28px; }
#description { margin: 0 0 16px; color: #59636e; }
#description p { margin: 0; }
#tree-map text { pointer-events: none; }
#tooltip { position: fixed; opacity: 0; pointer-events: none; white-space: pre-line; background: rgba(255, 255, 255, 0.95); border: 1px solid #d0d7de; border-radius: 4px; padding: 6px 8px; font-size: 12px; box-shadow: 0 2px 6px rgba(0, 0, 0, 0.15); }
#legend { display: block; margin-top: 16px; }
#legend text { font-size: 12px; }
</style>
</head>
<body>
<h1 id="title">{{.Title}}</h1>
<div id="description">{{.Description}}</div>
{{template "treemap" .Chart}}
<div id="tooltip" style="position: fixed; opacity: 0"></div>
{{template "legend" .Legend}}
<script>
(function () {
  var tooltip = document.getElementById('tooltip');
  var offset = {{.TooltipOffset}};
  var tiles = document.querySelectorAll('#tree-map rect.tile');
  tiles.forEach(function (tile) {
    tile.addEventListener('mouseenter', function (evt) {
      var name = tile.getAttribute('data-name');
      var category = tile.getAttribute('data-category');
      var value = tile.getAttribute('data-value') || '';
      tooltip.style.opacity = 1;
      tooltip.style.top = (evt.clientY - offset) + 'px';
      tooltip.style.left = (evt.clientX + offset) + 'px';
      tooltip.setAttribute('data-value', value);
      tooltip.textContent = 'Name: ' + name + '\nCategory: ' + category + '\nValue: ' + value;
    });
    tile.addEventListener('mouseleave', function () {
      tooltip.style.opacity = 0;
    });
  });
})();
</script>
</body>
</html>
{{end}}`

const treemapTemplate = `{{define "treemap"}}<svg id="tree-map" width="{{num .Width}}" height="{{num .Height}}">
{{range .Tiles}}<rect class="tile" data-name="{{.Name}}" data-category="{{.Category}}"{{if .HasValue}} data-value="{{.Value}}"{{end}} x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" stroke="black" fill="{{.Fill}}"></rect>
{{end}}{{range .Labels}}<text x="{{num .X}}" y="{{num .Y}}" font-size="11px" fill="white">{{.Text}}</text>
{{end}}</svg>{{end}}`

const legendTemplate = `{{define "legend-body"}}{{range .Items}}<rect class="legend-item" x="{{num .SwatchX}}" y="{{num .SwatchY}}" width="{{num .SwatchSize}}" height="{{num .SwatchSize}}" fill="{{.Color}}"></rect>
{{end}}{{range .Items}}<text x="{{num .LabelX}}" y="{{num .LabelY}}" fill="black">{{.Category}}</text>
{{end}}{{end}}{{define "legend"}}<svg id="legend" width="{{num .Width}}" height="{{num .Height}}">
{{template "legend-body" .}}</svg>{{end}}{{define "legend-standalone"}}<svg xmlns="http://www.w3.org/2000/svg" id="legend" width="{{num .Width}}" height="{{num .Height}}" font-family="sans-serif" font-size="12">
{{template "legend-body" .}}</svg>
{{end}}`
