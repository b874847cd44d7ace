// Package jsonld implements the JSON-LD 1.1 expansion subset named in
// the wire-format interfaces (@context, @id, @type, @graph, @value,
// @language) by delegating to github.com/piprate/json-gold's
// processor directly, rather than reproducing its RDF expansion rules.
package jsonld

import (
	"encoding/json"
	"io"

	"github.com/piprate/json-gold/ld"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// GraphTriple pairs a decoded triple with the named graph json-gold
// placed it in ("@default" maps to store.DefaultGraph).
type GraphTriple struct {
	Graph  store.GraphID
	Triple store.Triple
}

// Reader decodes a JSON-LD document into a stream of graph-tagged
// triples via json-gold's RDF expansion (ToRDF).
type Reader struct {
	rows []GraphTriple
	pos  int
}

// NewReader parses the JSON-LD document read from r and expands it to
// RDF using json-gold's default options.
func NewReader(r io.Reader) (*Reader, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.InputError, "jsonld: decode document", err)
	}
	return NewReaderFromMap(doc)
}

// NewReaderFromMap builds a Reader directly from an already-unmarshalled
// JSON-LD document (map[string]interface{} or []interface{}), for a
// caller that already has the document in memory and wants to skip the
// json.Decoder round-trip.
func NewReaderFromMap(doc interface{}) (*Reader, error) {
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")

	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, errs.Wrap(errs.InputError, "jsonld: expand to RDF", err)
	}
	dataset, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, errs.New(errs.InputError, "jsonld: expansion did not yield an RDF dataset")
	}

	rd := &Reader{}
	for graphName, quads := range dataset.Graphs {
		gid := store.DefaultGraph
		if graphName != "" && graphName != "@default" {
			gid = store.GraphID(graphName)
		}
		for _, q := range quads {
			tr, err := quadToTriple(q)
			if err != nil {
				return nil, err
			}
			rd.rows = append(rd.rows, GraphTriple{Graph: gid, Triple: tr})
		}
	}
	return rd, nil
}

// ReadGraphTriple returns the next graph-tagged triple, io.EOF once
// exhausted.
func (r *Reader) ReadGraphTriple() (GraphTriple, error) {
	if r.pos >= len(r.rows) {
		return GraphTriple{}, io.EOF
	}
	gt := r.rows[r.pos]
	r.pos++
	return gt, nil
}

// ReadTriple returns the next triple regardless of graph, for callers
// that only care about the default graph's content.
func (r *Reader) ReadTriple() (store.Triple, error) {
	gt, err := r.ReadGraphTriple()
	return gt.Triple, err
}

// Close releases decoder resources; Reader holds none beyond memory.
func (r *Reader) Close() error { return nil }

func quadToTriple(q *ld.Quad) (store.Triple, error) {
	s, err := nodeToTerm(q.Subject)
	if err != nil {
		return store.Triple{}, err
	}
	p, err := nodeToTerm(q.Predicate)
	if err != nil {
		return store.Triple{}, err
	}
	o, err := nodeToTerm(q.Object)
	if err != nil {
		return store.Triple{}, err
	}
	return store.Triple{Subject: s, Predicate: p, Object: o}, nil
}

func nodeToTerm(n ld.Node) (term.Term, error) {
	switch {
	case ld.IsIRI(n):
		return term.IRI(n.(ld.IRI).Value), nil
	case ld.IsBlankNode(n):
		return term.Blank(n.(ld.BlankNode).Attribute), nil
	case ld.IsLiteral(n):
		lit := n.(ld.Literal)
		switch {
		case lit.Language != "":
			return term.LangLiteral(lit.Value, lit.Language), nil
		case lit.Datatype != "" && lit.Datatype != "http://www.w3.org/2001/XMLSchema#string":
			return term.TypedLiteral(lit.Value, lit.Datatype), nil
		default:
			return term.Literal(lit.Value), nil
		}
	default:
		return term.Term{}, errs.New(errs.InputError, "jsonld: unrecognized RDF node kind")
	}
}

// Writer serializes graph-tagged triples to an expanded JSON-LD
// document via json-gold's FromRDF, without a compaction step: the
// codec's contract is expanded JSON-LD, framing/compaction is left to
// the caller.
type Writer struct {
	w       io.Writer
	dataset *ld.RDFDataset
}

// NewWriter returns a JSON-LD encoder writing the expanded document to
// w at Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, dataset: ld.NewRDFDataset()}
}

// WriteGraphTriple buffers t into the named graph gt.Graph.
func (w *Writer) WriteGraphTriple(gt GraphTriple) error {
	graphName := string(gt.Graph)
	if graphName == "" {
		graphName = "@default"
	}
	q := ld.NewQuad(termToNode(gt.Triple.Subject), termToNode(gt.Triple.Predicate), termToNode(gt.Triple.Object), graphName)
	w.dataset.Graphs[graphName] = append(w.dataset.Graphs[graphName], q)
	return nil
}

// WriteTriple buffers t into the default graph.
func (w *Writer) WriteTriple(t store.Triple) error {
	return w.WriteGraphTriple(GraphTriple{Graph: store.DefaultGraph, Triple: t})
}

// Close expands the buffered dataset back to a JSON-LD document and
// writes it as JSON.
func (w *Writer) Close() error {
	api := ld.NewJsonLdApi()
	opts := ld.NewJsonLdOptions("")
	doc, err := api.FromRDF(w.dataset, opts)
	if err != nil {
		return errs.Wrap(errs.InputError, "jsonld: dataset to document", err)
	}
	enc := json.NewEncoder(w.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errs.Wrap(errs.InputError, "jsonld: write", err)
	}
	return nil
}

func termToNode(t term.Term) ld.Node {
	switch t.Kind {
	case term.KindIRI:
		return ld.NewIRI(t.Lexical)
	case term.KindBlank:
		return ld.NewBlankNode(t.Lexical)
	default:
		lang := t.Lang
		datatype := t.Datatype
		if datatype == "" {
			datatype = "http://www.w3.org/2001/XMLSchema#string"
		}
		return ld.NewLiteral(t.Lexical, datatype, lang)
	}
}
