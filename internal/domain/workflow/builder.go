package workflow

import (
	"fmt"
	"sort"
)

// StateMachineBuilder collects transitions and builds machines from them
type StateMachineBuilder interface {
	Configure(state State) StateConfiguration

	// Build returns a machine at initial. Later Configure calls do not affect it.
	Build(initial State) StateMachine
}

// StateConfiguration declares the outgoing transitions of one state
type StateConfiguration interface {
	Permit(trigger Trigger, to State) StateConfiguration
}

type transitionTable map[State]map[Trigger]State

type builder struct {
	table transitionTable
}

type stateConfig struct {
	from  State
	table transitionTable
}

type machine struct {
	current State
	table   transitionTable
}

// NewBuilder returns an empty builder
func NewBuilder() StateMachineBuilder {
	return &builder{table: make(transitionTable)}
}

func (b *builder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	if _, ok := b.table[state]; !ok {
		b.table[state] = make(map[Trigger]State)
	}
	return &stateConfig{from: state, table: b.table}
}

func (b *builder) Build(initial State) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initial))
	}

	table := make(transitionTable, len(b.table))
	for state, triggers := range b.table {
		copied := make(map[Trigger]State, len(triggers))
		for trigger, to := range triggers {
			copied[trigger] = to
		}
		table[state] = copied
	}
	return &machine{current: initial, table: table}
}

func (c *stateConfig) Permit(trigger Trigger, to State) StateConfiguration {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", to))
	}
	c.table[c.from][trigger] = to
	return c
}

func (m *machine) CanFire(trigger Trigger) bool {
	_, ok := m.table[m.current][trigger]
	return ok
}

func (m *machine) PermittedTriggers() []Trigger {
	triggers := make([]Trigger, 0, len(m.table[m.current]))
	for trigger := range m.table[m.current] {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
