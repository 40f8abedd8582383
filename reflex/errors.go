package reflex

import "errors"

var (
	// ErrNoLegalMove means the engine offered no legal move for the agent.
	ErrNoLegalMove = errors.New("no legal move")
	// ErrUnresolvedPosition means a successor could not be snapped to a cell.
	ErrUnresolvedPosition = errors.New("successor position not cell-aligned")
	// ErrNotRegistered means ChooseAction ran before RegisterInitialState.
	ErrNotRegistered = errors.New("agent initial state not registered")
	// ErrWeightMismatch means a weight table does not cover exactly the
	// features its variant declares.
	ErrWeightMismatch = errors.New("weight table does not match declared features")
	// ErrUnknownFeature means an extractor produced a feature its variant
	// did not declare.
	ErrUnknownFeature = errors.New("feature not declared by variant")
)
