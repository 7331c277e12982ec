package agents

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/go-agents-orchestration/pkg/observability"

	"github.com/JaimeStill/neurocore/pkg/decode"
)

// NodeStartData is the payload of a node start event.
type NodeStartData struct {
	Node      string `json:"node"`
	Iteration int    `json:"iteration"`
}

// NodeCompleteData is the payload of a node complete event.
type NodeCompleteData struct {
	Node      string `json:"node"`
	Iteration int    `json:"iteration"`
	Error     bool   `json:"error"`
}

// EdgeTransitionData is the payload of an edge transition event.
type EdgeTransitionData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Observer logs graph events and reports node outcomes to a Recorder.
type Observer struct {
	graph    string
	logger   *slog.Logger
	recorder Recorder
}

// NewObserver creates an Observer for the named graph. recorder may be nil.
func NewObserver(graph string, logger *slog.Logger, recorder Recorder) *Observer {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Observer{graph: graph, logger: logger, recorder: recorder}
}

func (o *Observer) OnEvent(ctx context.Context, event observability.Event) {
	switch event.Type {
	case observability.EventNodeStart:
		data, err := decode.FromMap[NodeStartData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode node start data", "error", err)
			return
		}
		o.logger.Debug("node start", "graph", o.graph, "node", data.Node, "iteration", data.Iteration)
	case observability.EventNodeComplete:
		data, err := decode.FromMap[NodeCompleteData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode node complete data", "error", err)
			return
		}
		o.recorder.ObserveNode(o.graph, data.Node, data.Error)
		o.logger.Debug("node complete", "graph", o.graph, "node", data.Node, "iteration", data.Iteration, "error", data.Error)
	case observability.EventEdgeTransition:
		data, err := decode.FromMap[EdgeTransitionData](event.Data)
		if err != nil {
			o.logger.Error("failed to decode edge transition data", "error", err)
			return
		}
		o.logger.Debug("edge transition", "graph", o.graph, "from", data.From, "to", data.To)
	default:
		o.logger.Debug("unhandled event", "type", event.Type, "source", event.Source)
	}
}
