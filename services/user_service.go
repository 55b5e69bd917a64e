package services

import (
	"context"
	"net/http"
	"net/url"

	"go-pacha/models"
	"go-pacha/utils/errors"
	"golang.org/x/sync/errgroup"
)

// ListUsers returns every registered user.
func (c *APIClient) ListUsers(ctx context.Context) ([]models.Usuario, error) {
	env, err := c.do(ctx, apiRequest{method: http.MethodGet, path: "/usuarios", idempotent: true})
	if err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, errors.Backend(env.message("Error al cargar usuarios"), env.status)
	}
	return list[models.Usuario](env, "usuarios"), nil
}

type CatalogStats struct {
	Categorias int `json:"categorias"`
	Lugares    int `json:"lugares"`
	Usuarios   int `json:"usuarios"`
}

// Stats reads the "count" field of the three collection endpoints concurrently.
func (c *APIClient) Stats(ctx context.Context) (CatalogStats, error) {
	var stats CatalogStats
	g, gctx := errgroup.WithContext(ctx)
	targets := map[string]*int{
		"/categorias": &stats.Categorias,
		"/lugares":    &stats.Lugares,
		"/usuarios":   &stats.Usuarios,
	}
	for path, dst := range targets {
		path, dst := path, dst
		g.Go(func() error {
			env, err := c.do(gctx, apiRequest{method: http.MethodGet, path: path, idempotent: true})
			if err != nil {
				return err
			}
			if !env.httpOK() {
				return errors.Backend("Error cargando estadísticas", env.status)
			}
			env.decode(dst, "count")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CatalogStats{}, err
	}
	return stats, nil
}

// RDFFormat describes a serialization the backend can export.
type RDFFormat struct {
	ID          string
	Name        string
	Extension   string
	ContentType string
}

var RDFFormats = []RDFFormat{
	{ID: "turtle", Name: "Turtle", Extension: "ttl", ContentType: "text/turtle"},
	{ID: "rdfxml", Name: "RDF/XML", Extension: "rdf", ContentType: "application/rdf+xml"},
	{ID: "jsonld", Name: "JSON-LD", Extension: "jsonld", ContentType: "application/ld+json"},
	{ID: "ntriples", Name: "N-Triples", Extension: "nt", ContentType: "application/n-triples"},
}

// LookupRDFFormat finds a known format; unknown ids get a plain-text descriptor.
func LookupRDFFormat(id string) RDFFormat {
	for _, f := range RDFFormats {
		if f.ID == id {
			return f
		}
	}
	return RDFFormat{ID: id, Name: id, Extension: "txt", ContentType: "text/plain"}
}

type RDFDocument struct {
	Format RDFFormat
	Body   string
}

// FetchRDF passes format through to /rdf/data and returns the body untouched.
func (c *APIClient) FetchRDF(ctx context.Context, format string) (RDFDocument, error) {
	path := "/rdf/data?format=" + url.QueryEscape(format)
	env, err := c.do(ctx, apiRequest{method: http.MethodGet, path: path, idempotent: true})
	if err != nil {
		return RDFDocument{}, err
	}
	if !env.httpOK() {
		return RDFDocument{}, errors.Backend("Error al cargar datos RDF", env.status)
	}
	return RDFDocument{Format: LookupRDFFormat(format), Body: string(env.raw)}, nil
}
