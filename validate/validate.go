// Package validate is the design-time consistency checker: it
// cross-checks a trigger config against a serialized description of the
// host animation graph, flagging duplicate node bindings and references
// to nodes the graph does not contain. It is tooling, not runtime code.
package validate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/nodefx/component"
	"github.com/milk9111/nodefx/prefabs"
)

// GraphKind is the only graph serialization this checker understands.
const GraphKind = "animator-graph"

// GraphSpec is a dumped description of an animation state machine: its
// name and the full set of node names. Games write it with DumpGraph so
// configs can be linted offline, without a live animation system.
type GraphSpec struct {
	Kind  string   `yaml:"kind"`
	Name  string   `yaml:"name"`
	Nodes []string `yaml:"nodes"`
}

// LoadGraphSpec loads a serialized graph description. A graph of an
// unrecognized kind is a hard failure; silently passing validation
// against data we cannot introspect would hide real config errors.
func LoadGraphSpec(filename string) (*GraphSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("validate: load %s: %w", filename, err)
	}

	var spec GraphSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("validate: unmarshal %s: %w", filename, err)
	}
	if spec.Kind != GraphKind {
		return nil, fmt.Errorf("validate: unrecognized graph kind %q in %s (want %q)", spec.Kind, filename, GraphKind)
	}
	return &spec, nil
}

// DumpGraph writes a graph description for the given machine name and
// node names.
func DumpGraph(filename, name string, nodes []string) error {
	data, err := yaml.Marshal(&GraphSpec{Kind: GraphKind, Name: name, Nodes: nodes})
	if err != nil {
		return fmt.Errorf("validate: marshal graph %q: %w", name, err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("validate: write %s: %w", filename, err)
	}
	return nil
}

// Report collects human-readable configuration errors.
type Report struct {
	Errors []string
}

// OK reports whether validation found no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Check cross-validates a trigger config against the animation graph.
// Duplicate node bindings are checked within entry rules and within exit
// rules separately; each duplicated node yields exactly one error. Every
// config node id missing from the graph yields exactly one "unknown
// node" error carrying the authored name.
func Check(cfg *prefabs.TriggerSpec, graph *GraphSpec) *Report {
	r := &Report{}

	known := make(map[component.NodeID]struct{}, len(graph.Nodes))
	for _, name := range graph.Nodes {
		known[component.HashNodeName(name)] = struct{}{}
	}

	entryNames := make([]string, 0, len(cfg.Entries))
	for _, rule := range cfg.Entries {
		entryNames = append(entryNames, rule.Node)
	}
	exitNames := make([]string, 0, len(cfg.Exits))
	for _, rule := range cfg.Exits {
		exitNames = append(exitNames, rule.Node)
	}

	checkDuplicates(r, "entry", entryNames)
	checkDuplicates(r, "exit", exitNames)
	checkKnown(r, known, entryNames, exitNames)

	return r
}

func checkDuplicates(r *Report, kind string, names []string) {
	seen := make(map[component.NodeID]string, len(names))
	reported := make(map[component.NodeID]struct{})
	for _, name := range names {
		id := component.HashNodeName(name)
		first, dup := seen[id]
		if !dup {
			seen[id] = name
			continue
		}
		if _, done := reported[id]; done {
			continue
		}
		reported[id] = struct{}{}
		if first != name {
			// Distinct names colliding on the same hash: ambiguous
			// dispatch just like a plain duplicate, worse to debug.
			r.errorf("%s rules for %q and %q collide on node id %#x", kind, first, name, uint32(id))
			continue
		}
		r.errorf("duplicate %s rule for node %q", kind, name)
	}
}

func checkKnown(r *Report, known map[component.NodeID]struct{}, entryNames, exitNames []string) {
	reported := make(map[component.NodeID]struct{})
	report := func(kind, name string) {
		id := component.HashNodeName(name)
		if _, ok := known[id]; ok {
			return
		}
		if _, done := reported[id]; done {
			return
		}
		reported[id] = struct{}{}
		r.errorf("%s rule references unknown node %q", kind, name)
	}

	for _, name := range entryNames {
		report("entry", name)
	}
	for _, name := range exitNames {
		report("exit", name)
	}
}
