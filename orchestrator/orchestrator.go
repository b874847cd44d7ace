// Package orchestrator wires the triple store, the RDFS and OWL
// reasoners, the SPARQL evaluator, and the SHACL validator into the
// single reasoning pipeline a cyber-defense deployment drives:
// ingest_event, reason, query, validate, clear, snapshot. Reason runs a
// fixed sequence of phases over one store, each phase's output feeding
// the next.
package orchestrator

import (
	"context"
	"sync"

	"github.com/vigilgraph/reasoner/errs"
	"github.com/vigilgraph/reasoner/internal/clog"
	"github.com/vigilgraph/reasoner/internal/rconfig"
	"github.com/vigilgraph/reasoner/reason/owldl"
	"github.com/vigilgraph/reasoner/reason/rdfs"
	"github.com/vigilgraph/reasoner/shacl"
	"github.com/vigilgraph/reasoner/sparql"
	"github.com/vigilgraph/reasoner/store"
	"github.com/vigilgraph/reasoner/term"
)

// Orchestrator holds the shared store, the domain rule set, and the
// shapes graph validate() checks the working graph against.
type Orchestrator struct {
	store  *store.Store
	graph  store.GraphID
	rules  []Rule
	shapes []shacl.Shape
}

// New builds an Orchestrator over graph (store.DefaultGraph is the
// usual choice for a single-tenant deployment), with the given domain
// rules and SHACL shapes.
func New(s *store.Store, graph store.GraphID, rules []Rule, shapes []shacl.Shape) *Orchestrator {
	return &Orchestrator{store: s, graph: graph, rules: rules, shapes: shapes}
}

func (o *Orchestrator) working() *store.Graph { return o.store.Graph(o.graph) }

// IngestEvent translates e into its fixed triple star and inserts it
// with Sensor provenance, returning the ids of every triple written.
func (o *Orchestrator) IngestEvent(e DomainEvent) ([]store.TripleID, error) {
	_, triples := eventToTriples(e)
	g := o.working()
	ids := make([]store.TripleID, 0, len(triples))
	for _, tr := range triples {
		id, err := g.Insert(tr, store.Sensor("orchestrator:ingest_event"))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ReasonReport accompanies the proposed actions reason() returns with
// the informational results a caller may want to surface alongside
// them: whether the ontology closure was consistent, the SHACL
// validation report for the post-closure graph, and any domain rule
// that failed with an InputError rather than firing.
type ReasonReport struct {
	Consistent   bool
	ShaclReport  *shacl.Report
	Actions      []ProposedAction
	RuleFailures []RuleFailure
}

// RuleFailure records a domain rule whose Guard or Emit returned an
// InputError partway through evaluation. Per the error model, a rule
// failing this way is the rule's own problem: it is skipped and every
// other rule (and SHACL validation) still runs to completion.
type RuleFailure struct {
	Rule string
	Err  error
}

// Reason runs the full pipeline: RDFS closure, OWL DL consistency and
// classification (a strict superset of OWL Lite — owldl's tableau
// extends owllite's directly, so running it once covers both fragments
// the spec names), then SHACL validation and domain rule matching
// dispatched concurrently against the closed store (per the design
// note: a sequence of synchronous phases, the read-only tail of which
// is dispatched on a worker pool with explicit cancellation rather than
// run one-at-a-time). An inconsistent ontology does not abort the
// pipeline: RDFS closure already landed, and SHACL/domain rules still
// operate meaningfully over whatever got materialized — the caller
// learns about the inconsistency via ReasonReport.Consistent instead of
// losing every later-phase result to one early error.
func (o *Orchestrator) Reason(ctx context.Context) (*ReasonReport, error) {
	cfg := rconfig.Default()
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ReasoningTimeout)
		defer cancel()
	}

	g := o.working()

	if _, err := rdfs.Close(ctx, g); err != nil {
		return nil, err
	}

	consistent := true
	if _, err := owldl.Close(ctx, g); err != nil {
		kind, ok := errs.KindOf(err)
		if !ok || kind != errs.ConsistencyError {
			return nil, err
		}
		consistent = false
		clog.Warningf("orchestrator: ontology inconsistent, continuing with SHACL/domain rules: %v", err)
	}

	report, actions, failures, err := o.validateAndFire(ctx, g, cfg.WorkerPoolSize)
	if err != nil {
		return nil, err
	}

	return &ReasonReport{Consistent: consistent, ShaclReport: report, Actions: actions, RuleFailures: failures}, nil
}

// validateAndFire runs SHACL validation and every domain rule
// concurrently, bounded to poolSize simultaneous tasks. Rule results
// are collected into a per-rule slot rather than appended under a lock,
// so the final action order matches o.rules's order regardless of which
// goroutine finishes first — Reason stays deterministic given a fixed
// rule set and insertion order even though the phases race. A rule
// whose Guard/Emit fails with an InputError is recorded as a
// RuleFailure and skipped rather than aborting the others; any other
// error (from SHACL validation, pattern evaluation, or a non-InputError
// rule failure) aborts the whole call, since those indicate the store
// or context itself is unusable rather than one rule's bad data.
func (o *Orchestrator) validateAndFire(ctx context.Context, g *store.Graph, poolSize int) (*shacl.Report, []ProposedAction, []RuleFailure, error) {
	if poolSize < 1 {
		poolSize = 1
	}
	sem := make(chan struct{}, poolSize)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	var failures []RuleFailure
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	recordFailure := func(f RuleFailure) {
		mu.Lock()
		failures = append(failures, f)
		mu.Unlock()
	}

	var report *shacl.Report
	ruleResults := make([][]firedAction, len(o.rules))

	dispatch := func(task func()) {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			task()
		}()
	}

	dispatch(func() {
		rep, err := shacl.Validate(ctx, g, o.shapes)
		if err != nil {
			setErr(err)
			return
		}
		report = rep
	})
	for i, rule := range o.rules {
		i, rule := i, rule
		dispatch(func() {
			fired, err := rule.fire(ctx, g)
			if err != nil {
				if kind, ok := errs.KindOf(err); ok && kind == errs.InputError {
					clog.Warningf("orchestrator: rule %q failed, skipping: %v", rule.Name, err)
					recordFailure(RuleFailure{Rule: rule.Name, Err: err})
					return
				}
				setErr(err)
				return
			}
			ruleResults[i] = fired
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, nil, nil, firstErr
	}

	var actions []ProposedAction
	for _, fired := range ruleResults {
		for _, f := range fired {
			clog.Infof("orchestrator: rule %q fired", f.rule)
			actions = append(actions, withEvidence(f.action, f.evidence))
		}
	}
	return report, actions, failures, nil
}

// withEvidence stamps a's Evidence field with ids, returning a new
// value of the same concrete type (ProposedAction variants are plain
// value structs, so this is a field-copy switch rather than a
// reflection-based setter).
func withEvidence(a ProposedAction, ids []store.TripleID) ProposedAction {
	switch v := a.(type) {
	case IsolateHost:
		v.Evidence = ids
		return v
	case BlockConnection:
		v.Evidence = ids
		return v
	case TerminateProcess:
		v.Evidence = ids
		return v
	case Alert:
		v.Evidence = ids
		return v
	default:
		return a
	}
}

// Query runs algebra against the working graph's current state.
func (o *Orchestrator) Query(ctx context.Context, vars []sparql.Var, algebra sparql.Algebra) ([]sparql.Binding, error) {
	return sparql.Select(ctx, o.working(), vars, algebra)
}

// Validate runs SHACL validation of the working graph against the
// orchestrator's shapes, without running the reasoning pipeline.
func (o *Orchestrator) Validate(ctx context.Context) (*shacl.Report, error) {
	return shacl.Validate(ctx, o.working(), o.shapes)
}

// Clear discards every graph in the store. The interner survives, so
// handles stay stable for any view still holding a term.Term.
func (o *Orchestrator) Clear() { o.store.Clear() }

// ReadOnlyView exposes query operations over a graph without its
// mutating Insert method, the shape snapshot() hands back to a caller
// that should not be able to write through it.
type ReadOnlyView struct {
	graph *store.Graph
}

// Match delegates to the underlying graph.
func (v ReadOnlyView) Match(p store.Pattern) *store.Cursor { return v.graph.Match(p) }

// Stats delegates to the underlying graph.
func (v ReadOnlyView) Stats() store.Stats { return v.graph.Stats() }

// Describe delegates to sparql.Describe.
func (v ReadOnlyView) Describe(resource term.Term) []store.Triple {
	return sparql.Describe(v.graph, resource)
}

// Snapshot returns a read-only view over the working graph's current
// state.
func (o *Orchestrator) Snapshot() ReadOnlyView {
	return ReadOnlyView{graph: o.working()}
}
