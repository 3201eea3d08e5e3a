package game

// State is the orchestrator's position in its turn cycle.
type State uint8

const (
	AwaitingInput State = iota
	DispatchingCommand
	ApplyingMove
	EngineThinking
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case DispatchingCommand:
		return "dispatching-command"
	case ApplyingMove:
		return "applying-move"
	case EngineThinking:
		return "engine-thinking"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}
