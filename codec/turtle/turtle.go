// Package turtle implements a streaming decoder and a deterministic
// encoder for the Turtle (RDF 1.1) subset named in the wire-format
// interfaces: prefixed names, IRIs, blank nodes (labeled and anonymous
// "[...]" property lists), predicate-object and object lists via ";"
// and ",", and literals with an optional datatype or language tag.
//
// The decoder is hand-rolled in the shape of a line-oriented N-Quads
// reader (tokenize, parse one statement, yield one or more triples) but
// generalized to Turtle's predicate-object lists and nested blank
// nodes, which N-Quads does not have.
package turtle

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Reader decodes a Turtle document into a stream of triples. Construct
// with NewReader and call ReadTriple until io.EOF.
type Reader struct {
	lex    *lexer
	prefix map[string]string
	blanks *term.BlankSequence

	pending []store.Triple
}

// NewReader returns a Turtle decoder reading from r. blanks scopes the
// blank node labels minted for this document; pass a fresh
// term.NewBlankSequence() per document so that two documents never
// collide on bare "_:b1"-style labels.
func NewReader(r io.Reader, blanks *term.BlankSequence) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.InputError, "turtle: read", err)
	}
	return &Reader{
		lex:    newLexer(string(data)),
		prefix: make(map[string]string),
		blanks: blanks,
	}, nil
}

// ReadTriple returns the next triple in document order. It returns
// io.EOF once the document is exhausted. A single Turtle statement with
// a predicate-object list expands to several triples, queued internally
// and drained before the lexer advances further.
func (d *Reader) ReadTriple() (store.Triple, error) {
	for len(d.pending) == 0 {
		done, err := d.step()
		if err != nil {
			return store.Triple{}, err
		}
		if done {
			return store.Triple{}, io.EOF
		}
	}
	t := d.pending[0]
	d.pending = d.pending[1:]
	return t, nil
}

// Close releases decoder resources; Reader holds none beyond memory.
func (d *Reader) Close() error { return nil }

// step consumes one top-level statement (a "@prefix" directive or a
// subject predicate-object-list "."), appending any resulting triples
// to d.pending. done is true once the lexer is exhausted.
func (d *Reader) step() (done bool, err error) {
	d.lex.skipInsignificant()
	if d.lex.atEOF() {
		return true, nil
	}

	if d.lex.peekKeyword("@prefix") || d.lex.peekKeyword("PREFIX") {
		return false, d.readPrefixDirective()
	}

	subj, err := d.readSubjectTerm()
	if err != nil {
		return false, err
	}
	if err := d.readPredicateObjectList(subj); err != nil {
		return false, err
	}
	d.lex.skipInsignificant()
	if !d.lex.consume('.') {
		return false, errs.New(errs.InputError, "turtle: expected '.' terminating statement")
	}
	return false, nil
}

func (d *Reader) readPrefixDirective() error {
	sparqlStyle := d.lex.peekKeyword("PREFIX")
	d.lex.skipKeyword()
	d.lex.skipInsignificant()
	name, err := d.lex.readPNameNS()
	if err != nil {
		return err
	}
	d.lex.skipInsignificant()
	iri, err := d.lex.readIRIREF()
	if err != nil {
		return err
	}
	d.prefix[name] = iri
	d.lex.skipInsignificant()
	if !sparqlStyle && !d.lex.consume('.') {
		return errs.New(errs.InputError, "turtle: expected '.' terminating @prefix")
	}
	return nil
}

// readSubjectTerm reads an IRI, prefixed name, labeled blank node, or an
// anonymous "[...]" blank node used in subject position.
func (d *Reader) readSubjectTerm() (term.Term, error) {
	d.lex.skipInsignificant()
	switch {
	case d.lex.peek() == '<':
		iri, err := d.lex.readIRIREF()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(d.resolve(iri)), nil
	case d.lex.peek() == '_':
		label, err := d.lex.readBlankLabel()
		if err != nil {
			return term.Term{}, err
		}
		return term.Blank(label), nil
	case d.lex.peek() == '[':
		return d.readAnonBlankSubject()
	default:
		return d.readPrefixedName()
	}
}

// readAnonBlankSubject reads "[ predicateObjectList? ]", minting a fresh
// blank node and emitting its property list as triples with that node
// as subject.
func (d *Reader) readAnonBlankSubject() (term.Term, error) {
	d.lex.mustConsume('[')
	b := term.Blank(d.blanks.Next())
	d.lex.skipInsignificant()
	if d.lex.peek() != ']' {
		if err := d.readPredicateObjectList(b); err != nil {
			return term.Term{}, err
		}
		d.lex.skipInsignificant()
	}
	if !d.lex.consume(']') {
		return term.Term{}, errs.New(errs.InputError, "turtle: expected ']'")
	}
	return b, nil
}

// readPredicateObjectList reads "verb objectList (';' verb objectList)*"
// and appends the resulting triples to d.pending.
func (d *Reader) readPredicateObjectList(subj term.Term) error {
	for {
		d.lex.skipInsignificant()
		pred, err := d.readVerb()
		if err != nil {
			return err
		}
		if err := d.readObjectList(subj, pred); err != nil {
			return err
		}
		d.lex.skipInsignificant()
		if !d.lex.consume(';') {
			return nil
		}
		d.lex.skipInsignificant()
		if d.lex.peek() == '.' || d.lex.peek() == ']' {
			// trailing ';' with nothing following is legal Turtle.
			return nil
		}
	}
}

func (d *Reader) readVerb() (term.Term, error) {
	if d.lex.consumeKeywordRune('a') {
		return term.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), nil
	}
	if d.lex.peek() == '<' {
		iri, err := d.lex.readIRIREF()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(d.resolve(iri)), nil
	}
	return d.readPrefixedName()
}

func (d *Reader) readObjectList(subj, pred term.Term) error {
	for {
		d.lex.skipInsignificant()
		obj, err := d.readObjectTerm()
		if err != nil {
			return err
		}
		d.pending = append(d.pending, store.Triple{Subject: subj, Predicate: pred, Object: obj})
		d.lex.skipInsignificant()
		if !d.lex.consume(',') {
			return nil
		}
	}
}

func (d *Reader) readObjectTerm() (term.Term, error) {
	switch {
	case d.lex.peek() == '<':
		iri, err := d.lex.readIRIREF()
		if err != nil {
			return term.Term{}, err
		}
		return term.IRI(d.resolve(iri)), nil
	case d.lex.peek() == '_':
		label, err := d.lex.readBlankLabel()
		if err != nil {
			return term.Term{}, err
		}
		return term.Blank(label), nil
	case d.lex.peek() == '[':
		return d.readAnonBlankSubject()
	case d.lex.peek() == '"' || d.lex.peek() == '\'':
		return d.readLiteral()
	case isDigit(d.lex.peek()) || d.lex.peek() == '-' || d.lex.peek() == '+':
		return d.readNumericLiteral()
	default:
		return d.readPrefixedName()
	}
}

func (d *Reader) readPrefixedName() (term.Term, error) {
	pname, err := d.lex.readPName()
	if err != nil {
		return term.Term{}, err
	}
	ns, local, _ := strings.Cut(pname, ":")
	base, ok := d.prefix[ns+":"]
	if !ok {
		return term.Term{}, errs.Newf(errs.InputError, "turtle: undeclared prefix %q", ns)
	}
	return term.IRI(base + local), nil
}

func (d *Reader) readLiteral() (term.Term, error) {
	lexical, err := d.lex.readQuoted()
	if err != nil {
		return term.Term{}, err
	}
	if d.lex.consume('@') {
		lang := d.lex.readLangTag()
		return term.LangLiteral(lexical, lang), nil
	}
	if d.lex.peek() == '^' {
		d.lex.mustConsume('^')
		d.lex.mustConsume('^')
		if d.lex.peek() == '<' {
			iri, err := d.lex.readIRIREF()
			if err != nil {
				return term.Term{}, err
			}
			return term.TypedLiteral(lexical, d.resolve(iri)), nil
		}
		dt, err := d.readPrefixedName()
		if err != nil {
			return term.Term{}, err
		}
		return term.TypedLiteral(lexical, dt.Lexical), nil
	}
	return term.Literal(lexical), nil
}

func (d *Reader) readNumericLiteral() (term.Term, error) {
	lit, datatype := d.lex.readNumber()
	return term.TypedLiteral(lit, datatype), nil
}

func (d *Reader) resolve(iri string) string {
	if base, ok := d.prefix[":"]; ok && iri == "" {
		return base
	}
	return iri
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Writer serializes triples deterministically: grouped by subject,
// predicates in lexicographic IRI order within a subject, objects
// sorted by canonical surface form within a predicate, emitted through
// Turtle's predicate-object-list shorthand.
type Writer struct {
	w       io.Writer
	pending map[string][]store.Triple
	order   []string
}

// NewWriter returns a Turtle encoder writing to w. Triples are buffered
// and flushed in canonical order by Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, pending: make(map[string][]store.Triple)}
}

// WriteTriple buffers t for deterministic output at Close.
func (w *Writer) WriteTriple(t store.Triple) error {
	key := t.Subject.String()
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = append(w.pending[key], t)
	return nil
}

// Close flushes all buffered triples in canonical order and reports the
// first write error, if any.
func (w *Writer) Close() error {
	sort.Strings(w.order)
	for _, subj := range w.order {
		triples := w.pending[subj]
		sort.Slice(triples, func(i, j int) bool {
			if triples[i].Predicate.Lexical != triples[j].Predicate.Lexical {
				return triples[i].Predicate.Lexical < triples[j].Predicate.Lexical
			}
			return triples[i].Object.String() < triples[j].Object.String()
		})
		if _, err := fmt.Fprintln(w.w, renderSubject(triples)); err != nil {
			return errs.Wrap(errs.InputError, "turtle: write", err)
		}
	}
	return nil
}

func renderSubject(triples []store.Triple) string {
	var b strings.Builder
	b.WriteString(triples[0].Subject.String())
	lastPred := ""
	for i, t := range triples {
		switch {
		case i == 0:
			b.WriteByte(' ')
			b.WriteString(t.Predicate.String())
			b.WriteByte(' ')
		case t.Predicate.Lexical != lastPred:
			b.WriteString(" ;\n    ")
			b.WriteString(t.Predicate.String())
			b.WriteByte(' ')
		default:
			b.WriteString(", ")
		}
		b.WriteString(t.Object.String())
		lastPred = t.Predicate.Lexical
	}
	b.WriteString(" .")
	return b.String()
}
