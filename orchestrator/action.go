package orchestrator

import "github.com/vigilgraph/reasoner/store"

// ProposedAction is one of the four response variants reason() can
// emit. Proposals never execute anything themselves — evidence is
// always the premise closure, the audit trail back to sensor triples.
type ProposedAction interface {
	isProposedAction()
}

// IsolateHost proposes network-isolating a host.
type IsolateHost struct {
	HostIP   string
	Reason   string
	Evidence []store.TripleID
}

func (IsolateHost) isProposedAction() {}

// BlockConnection proposes blocking one src/dst/port flow.
type BlockConnection struct {
	Src      string
	Dst      string
	Port     int
	Reason   string
	Evidence []store.TripleID
}

func (BlockConnection) isProposedAction() {}

// TerminateProcess proposes killing a running process.
type TerminateProcess struct {
	PID      int
	Reason   string
	Evidence []store.TripleID
}

func (TerminateProcess) isProposedAction() {}

// Alert proposes a severity-tagged human-facing notification.
type Alert struct {
	Severity string
	Message  string
	Evidence []store.TripleID
}

func (Alert) isProposedAction() {}
