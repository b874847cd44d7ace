// Package reasoner is the module's root facade: it wires the triple
// store, the codecs, the reasoners, the SPARQL evaluator, the SHACL
// validator, and the orchestrator into one handle an embedder opens
// once per process.
package reasoner

import (
	"context"
	"io"

	"github.com/vigilgraph/reasoner/codec/jsonld"
	"github.com/vigilgraph/reasoner/codec/turtle"
	"github.com/vigilgraph/reasoner/internal/clog"
	"github.com/vigilgraph/reasoner/orchestrator"
	"github.com/vigilgraph/reasoner/shacl"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Engine is the module's embedding handle: one store plus the
// orchestrator wired over it.
type Engine struct {
	Store        *store.Store
	Graph        store.GraphID
	Orchestrator *orchestrator.Orchestrator
}

type engineConfig struct {
	graph  store.GraphID
	rules  []orchestrator.Rule
	shapes []shacl.Shape
}

// Option configures Open.
type Option func(*engineConfig)

// WithGraph targets a named graph instead of the default one.
func WithGraph(id store.GraphID) Option {
	return func(c *engineConfig) { c.graph = id }
}

// WithRules installs the domain rule set Reason fires against the
// closed store.
func WithRules(rules []orchestrator.Rule) Option {
	return func(c *engineConfig) { c.rules = rules }
}

// WithShapes installs the SHACL shapes graph Reason validates against.
func WithShapes(shapes []shacl.Shape) Option {
	return func(c *engineConfig) { c.shapes = shapes }
}

// Open constructs a fresh in-process Engine: a new Store and interner,
// and an Orchestrator wired over the chosen graph with the given rules
// and shapes.
func Open(opts ...Option) *Engine {
	cfg := engineConfig{graph: store.DefaultGraph}
	for _, opt := range opts {
		opt(&cfg)
	}
	clog.Infof("engine: opening in-process store (graph=%q)", cfg.graph)

	s := store.New()
	return &Engine{
		Store:        s,
		Graph:        cfg.graph,
		Orchestrator: orchestrator.New(s, cfg.graph, cfg.rules, cfg.shapes),
	}
}

// LoadTurtle reads every triple out of r as Turtle and inserts it into
// e's graph with Sensor{source} provenance, returning the count
// inserted. Loading a ready io.Reader is this module's boundary;
// transport concerns (paths, URLs, compression) belong to the caller.
func (e *Engine) LoadTurtle(r io.Reader, source string) (int, error) {
	dec, err := turtle.NewReader(r, term.NewBlankSequence())
	if err != nil {
		return 0, err
	}
	g := e.Store.Graph(e.Graph)
	n := 0
	for {
		tr, err := dec.ReadTriple()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if _, err := g.Insert(tr, store.Sensor(source)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// LoadJSONLD reads every triple out of r as JSON-LD and inserts it into
// e's graph with Sensor{source} provenance, returning the count
// inserted.
func (e *Engine) LoadJSONLD(r io.Reader, source string) (int, error) {
	dec, err := jsonld.NewReader(r)
	if err != nil {
		return 0, err
	}
	g := e.Store.Graph(e.Graph)
	n := 0
	for {
		tr, err := dec.ReadTriple()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if _, err := g.Insert(tr, store.Sensor(source)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// IngestEvent delegates to e.Orchestrator.IngestEvent.
func (e *Engine) IngestEvent(ev orchestrator.DomainEvent) ([]store.TripleID, error) {
	return e.Orchestrator.IngestEvent(ev)
}

// Reason delegates to e.Orchestrator.Reason.
func (e *Engine) Reason(ctx context.Context) (*orchestrator.ReasonReport, error) {
	return e.Orchestrator.Reason(ctx)
}
