package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric summarizes one ChooseAction call.
type DecisionMetric struct {
	Agent       int
	Variant     string
	StartTime   time.Time
	Duration    time.Duration
	Budget      time.Duration
	Evaluations int
	TieSize     int
	Endgame     bool
}

// OverBudget reports whether the decision took longer than its budget.
func (m DecisionMetric) OverBudget() bool {
	return m.Budget > 0 && m.Duration > m.Budget
}

type Collector interface {
	Start(agent int, variant string, budget time.Duration)
	AddEvaluation()
	SetTieSize(size int)
	SetEndgame(value bool)
	Complete() DecisionMetric
	// Records returns every completed decision in order.
	Records() []DecisionMetric
}

type collector struct {
	agent       int
	variant     string
	budget      time.Duration
	startTime   time.Time
	evaluations atomic.Int32
	tieSize     atomic.Int32
	endgame     atomic.Bool
	records     []DecisionMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(agent int, variant string, budget time.Duration) {
	m.startTime = time.Now()
	m.agent = agent
	m.variant = variant
	m.budget = budget
	m.evaluations.Store(0)
	m.tieSize.Store(0)
	m.endgame.Store(false)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) SetTieSize(size int) {
	m.tieSize.Store(int32(size))
}

func (m *collector) SetEndgame(value bool) {
	m.endgame.Store(value)
}

func (m *collector) Complete() DecisionMetric {
	metric := DecisionMetric{
		Agent:       m.agent,
		Variant:     m.variant,
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Budget:      m.budget,
		Evaluations: int(m.evaluations.Load()),
		TieSize:     int(m.tieSize.Load()),
		Endgame:     m.endgame.Load(),
	}
	m.records = append(m.records, metric)
	return metric
}

func (m *collector) Records() []DecisionMetric {
	out := make([]DecisionMetric, len(m.records))
	copy(out, m.records)
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(agent int, variant string, budget time.Duration) {}
func (m *dummyCollector) AddEvaluation()                                        {}
func (m *dummyCollector) SetTieSize(size int)                                   {}
func (m *dummyCollector) SetEndgame(value bool)                                 {}
func (m *dummyCollector) Complete() DecisionMetric                              { return DecisionMetric{} }
func (m *dummyCollector) Records() []DecisionMetric                             { return nil }
