package navtree

import (
	"html/template"
	"io"
)

// markupTemplate renders the accessibility contract of a tree. Collapsed
// groups stay in the document behind an inert wrapper.
var markupTemplate = template.Must(template.New("markup").Parse(`
{{- define "tree" -}}
<ul role="tree" aria-label="{{.Label}}"{{if .Filtering}} data-filtering="true"{{end}}>
{{- range .Groups -}}
<li role="none" class="tree-group-container"><ul role="group" id="{{.ID}}">{{template "items" .Items}}</ul></li>
{{- end -}}
</ul>
{{end -}}

{{- define "items" -}}
{{- range . -}}
<li role="none">
<a id="tree-item-{{.ID}}" role="treeitem" href="{{.Href}}" tabindex="{{.TabIndex}}" aria-level="{{.Level}}" aria-setsize="{{.SetSize}}" aria-posinset="{{.PosInSet}}"
{{- if .Current}} aria-current="page"{{end}}
{{- if .Owns}} aria-expanded="{{.Expanded}}" aria-owns="{{.Owns.ID}}"{{end}}
{{- if .External}} data-external="true" target="_blank" rel="noopener noreferrer"{{end}}
{{- if .Description}} data-description="{{.Description}}"{{end}}
{{- if eq .Mark.String "match"}} data-search-match="true"{{end}}
{{- if eq .Mark.String "related"}} data-search-related="true"{{end}}
{{- if eq .Mark.String "hidden"}} data-filtered="true"{{end -}}
><span>{{.Label}}</span>
{{- if .External}}<span class="external-icon" aria-hidden="true">↗</span>{{end}}
{{- if .Owns}}<span class="tree-icon" aria-hidden="true">+</span>{{end -}}
</a>
{{- if .Owns -}}
<div{{if .Owns.Inert}} inert{{end}}><ul id="{{.Owns.ID}}" role="group">{{template "items" .Owns.Items}}</ul></div>
{{- end -}}
</li>
{{- end -}}
{{- end -}}
`))

// WriteMarkup writes t as role-annotated HTML reflecting its current state
func WriteMarkup(w io.Writer, t *Tree) error {
	if t == nil {
		t = &Tree{}
	}
	return markupTemplate.ExecuteTemplate(w, "tree", t)
}
