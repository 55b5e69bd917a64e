package devbackend

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"go-pacha/models"
)

const (
	rdfBase   = "https://api.pachaqutec.com/lugar/"
	schemaOrg = "https://schema.org/"
)

type triple struct {
	subject, predicate, object string
}

func placeTriples(places []models.Lugar) []triple {
	var out []triple
	for _, p := range places {
		s := fmt.Sprintf("%s%d", rdfBase, p.ID)
		out = append(out,
			triple{s, "name", p.Nombre},
			triple{s, "description", p.Descripcion},
			triple{s, "category", p.Categoria},
		)
		if p.ImagenURL != "" {
			out = append(out, triple{s, "image", p.ImagenURL})
		}
		if p.Direccion != "" {
			out = append(out, triple{s, "address", p.Direccion})
		}
	}
	return out
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// RDF renders the catalog as schema.org TouristAttraction data. It reports
// false for an unknown format.
func (b *Backend) RDF(format string) (body, contentType string, ok bool) {
	places := b.Places()
	switch format {
	case "", "turtle":
		var sb strings.Builder
		sb.WriteString("@prefix schema: <" + schemaOrg + "> .\n\n")
		for _, p := range places {
			fmt.Fprintf(&sb, "<%s%d> a schema:TouristAttraction ;\n", rdfBase, p.ID)
			fmt.Fprintf(&sb, "    schema:name %s ;\n", quote(p.Nombre))
			fmt.Fprintf(&sb, "    schema:description %s ;\n", quote(p.Descripcion))
			fmt.Fprintf(&sb, "    schema:category %s .\n\n", quote(p.Categoria))
		}
		return sb.String(), "text/turtle", true

	case "ntriples":
		var sb strings.Builder
		for _, t := range placeTriples(places) {
			fmt.Fprintf(&sb, "<%s> <%s%s> %s .\n", t.subject, schemaOrg, t.predicate, quote(t.object))
		}
		return sb.String(), "application/n-triples", true

	case "jsonld":
		graph := make([]map[string]any, 0, len(places))
		for _, p := range places {
			graph = append(graph, map[string]any{
				"@id":         fmt.Sprintf("%s%d", rdfBase, p.ID),
				"@type":       "TouristAttraction",
				"name":        p.Nombre,
				"description": p.Descripcion,
				"category":    p.Categoria,
			})
		}
		doc, _ := json.MarshalIndent(map[string]any{"@context": schemaOrg, "@graph": graph}, "", "  ")
		return string(doc), "application/ld+json", true

	case "rdfxml":
		var sb strings.Builder
		sb.WriteString(xml.Header)
		sb.WriteString(`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:schema="` + schemaOrg + `">` + "\n")
		for _, p := range places {
			fmt.Fprintf(&sb, "  <schema:TouristAttraction rdf:about=\"%s%d\">\n", rdfBase, p.ID)
			fmt.Fprintf(&sb, "    <schema:name>%s</schema:name>\n", escapeXML(p.Nombre))
			fmt.Fprintf(&sb, "    <schema:description>%s</schema:description>\n", escapeXML(p.Descripcion))
			fmt.Fprintf(&sb, "    <schema:category>%s</schema:category>\n", escapeXML(p.Categoria))
			sb.WriteString("  </schema:TouristAttraction>\n")
		}
		sb.WriteString("</rdf:RDF>\n")
		return sb.String(), "application/rdf+xml", true
	}
	return "", "", false
}

func escapeXML(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
