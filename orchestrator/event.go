package orchestrator

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
	"github.com/vigilgraph/reasoner/vocab/cyber"
	"github.com/vigilgraph/reasoner/vocab/rdf"
	"github.com/vigilgraph/reasoner/vocab/xsd"
)

// DomainEvent is one of the four sensor event shapes the orchestrator
// accepts. Each translates to a fixed triple star anchored at a freshly
// minted event IRI, per the enumerated variants.
type DomainEvent interface {
	class() string
	triples(event term.Term) []store.Triple
}

// NetworkConnection is a single observed TCP/UDP flow.
type NetworkConnection struct {
	SourceIP  string
	DestIP    string
	Port      int
	Protocol  string
	Timestamp time.Time
}

func (e NetworkConnection) class() string { return cyber.NetworkConnection }

func (e NetworkConnection) triples(event term.Term) []store.Triple {
	return []store.Triple{
		{Subject: event, Predicate: term.IRI(cyber.SourceIP), Object: IPNode(e.SourceIP)},
		{Subject: event, Predicate: term.IRI(cyber.DestIP), Object: IPNode(e.DestIP)},
		{Subject: event, Predicate: term.IRI(cyber.Port), Object: intLiteral(e.Port)},
		{Subject: event, Predicate: term.IRI(cyber.Protocol), Object: term.Literal(e.Protocol)},
		{Subject: event, Predicate: term.IRI(cyber.Timestamp), Object: timeLiteral(e.Timestamp)},
	}
}

// IPNode resolves an IP address to the IRI identifying it as a graph
// resource, so that IOC assertions (":198.51.100.2 rdf:type
// :MaliciousIP") and event triples naming the same address unify under
// triple-pattern matching instead of comparing literal strings.
func IPNode(ip string) term.Term { return term.IRI("urn:ip:" + ip) }

// IPFromNode recovers the address IPNode encoded, for rule Emit
// functions that need the plain string back out of a bound term.
func IPFromNode(t term.Term) string { return strings.TrimPrefix(t.Lexical, "urn:ip:") }

// ProcessExecution is a single observed process launch.
type ProcessExecution struct {
	PID        int
	Executable string
	User       string
	Args       []string
	Timestamp  time.Time
}

func (e ProcessExecution) class() string { return cyber.ProcessExecution }

func (e ProcessExecution) triples(event term.Term) []store.Triple {
	return []store.Triple{
		{Subject: event, Predicate: term.IRI(cyber.PID), Object: intLiteral(e.PID)},
		{Subject: event, Predicate: term.IRI(cyber.Executable), Object: term.Literal(e.Executable)},
		{Subject: event, Predicate: term.IRI(cyber.User), Object: term.Literal(e.User)},
		{Subject: event, Predicate: term.IRI(cyber.Args), Object: term.Literal(strings.Join(e.Args, " "))},
		{Subject: event, Predicate: term.IRI(cyber.Timestamp), Object: timeLiteral(e.Timestamp)},
	}
}

// FileAccess is a single observed file open/read/write/delete.
type FileAccess struct {
	Path      string
	User      string
	Mode      string
	Timestamp time.Time
}

func (e FileAccess) class() string { return cyber.FileAccess }

func (e FileAccess) triples(event term.Term) []store.Triple {
	return []store.Triple{
		{Subject: event, Predicate: term.IRI(cyber.Path), Object: term.Literal(e.Path)},
		{Subject: event, Predicate: term.IRI(cyber.User), Object: term.Literal(e.User)},
		{Subject: event, Predicate: term.IRI(cyber.Mode), Object: term.Literal(e.Mode)},
		{Subject: event, Predicate: term.IRI(cyber.Timestamp), Object: timeLiteral(e.Timestamp)},
	}
}

// UserLogin is a single observed authentication attempt.
type UserLogin struct {
	User      string
	Host      string
	Success   bool
	Timestamp time.Time
}

func (e UserLogin) class() string { return cyber.UserLogin }

func (e UserLogin) triples(event term.Term) []store.Triple {
	return []store.Triple{
		{Subject: event, Predicate: term.IRI(cyber.User), Object: term.Literal(e.User)},
		{Subject: event, Predicate: term.IRI(cyber.Host), Object: term.Literal(e.Host)},
		{Subject: event, Predicate: term.IRI(cyber.Success), Object: boolLiteral(e.Success)},
		{Subject: event, Predicate: term.IRI(cyber.Timestamp), Object: timeLiteral(e.Timestamp)},
	}
}

func intLiteral(n int) term.Term {
	return term.TypedLiteral(strconv.Itoa(n), xsd.Integer)
}

func boolLiteral(b bool) term.Term {
	return term.TypedLiteral(strconv.FormatBool(b), xsd.Boolean)
}

func timeLiteral(t time.Time) term.Term {
	return term.TypedLiteral(t.UTC().Format(time.RFC3339), xsd.DateTime)
}

// newEventIRI mints a fresh event identifier.
func newEventIRI() term.Term {
	return term.IRI("urn:event:" + uuid.NewString())
}

// eventToTriples expands e into its fixed triple star, including the
// rdf:type triple naming e's class, anchored at a freshly minted event
// IRI.
func eventToTriples(e DomainEvent) (term.Term, []store.Triple) {
	event := newEventIRI()
	triples := append([]store.Triple{
		{Subject: event, Predicate: term.IRI(rdf.Type), Object: term.IRI(e.class())},
	}, e.triples(event)...)
	return event, triples
}
