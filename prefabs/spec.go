// Package prefabs loads authored YAML configs and compiles them into the
// immutable runtime specs the trigger scheduler consumes.
package prefabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/nodefx/component"
)

// TriggerSpec is the authored effect configuration for one trigger
// component: ordered entry and exit rules keyed by node name. Node names
// are resolved to ids when the spec is compiled, not at event time.
type TriggerSpec struct {
	Name    string          `yaml:"name"`
	Entries []EntryRuleSpec `yaml:"entries"`
	Exits   []ExitRuleSpec  `yaml:"exits"`
}

type EntryRuleSpec struct {
	Node          string    `yaml:"node"`
	Effect        string    `yaml:"effect"`
	SpawnDelay    float64   `yaml:"spawn_delay"`
	AbortDeadline float64   `yaml:"abort_deadline"`
	Sound         string    `yaml:"sound"`
	SoundDelay    float64   `yaml:"sound_delay"`
	Volume        *float64  `yaml:"volume"`
	Loop          bool      `yaml:"loop"`
	Shake         ShakeSpec `yaml:"shake"`
}

type ShakeSpec struct {
	Delay     float64 `yaml:"delay"`
	Duration  float64 `yaml:"duration"`
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

type ExitRuleSpec struct {
	Node       string   `yaml:"node"`
	Effect     string   `yaml:"effect"`
	SpawnDelay float64  `yaml:"spawn_delay"`
	Sound      string   `yaml:"sound"`
	SoundDelay float64  `yaml:"sound_delay"`
	Volume     *float64 `yaml:"volume"`
}

// LoadSpec reads and unmarshals a YAML spec file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTriggerSpec loads a trigger config from a YAML file.
func LoadTriggerSpec(filename string) (*TriggerSpec, error) {
	spec, err := LoadSpec[TriggerSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Compile resolves node names to ids and produces the runtime specs.
// Delays must be non-negative; an omitted volume defaults to 1.
func (s *TriggerSpec) Compile() ([]component.EntrySpec, []component.ExitSpec, error) {
	entries := make([]component.EntrySpec, 0, len(s.Entries))
	for i, rule := range s.Entries {
		if rule.Node == "" {
			return nil, nil, fmt.Errorf("prefabs: entry rule %d: node name is empty", i)
		}
		if err := nonNegative(
			field{"spawn_delay", rule.SpawnDelay},
			field{"abort_deadline", rule.AbortDeadline},
			field{"sound_delay", rule.SoundDelay},
			field{"shake.delay", rule.Shake.Delay},
			field{"shake.duration", rule.Shake.Duration},
		); err != nil {
			return nil, nil, fmt.Errorf("prefabs: entry rule %d (%q): %w", i, rule.Node, err)
		}
		entries = append(entries, component.EntrySpec{
			Node:           component.HashNodeName(rule.Node),
			NodeName:       rule.Node,
			Effect:         rule.Effect,
			SpawnDelay:     rule.SpawnDelay,
			AbortDeadline:  rule.AbortDeadline,
			Sound:          rule.Sound,
			SoundDelay:     rule.SoundDelay,
			Volume:         volumeOrDefault(rule.Volume),
			Loop:           rule.Loop,
			ShakeDelay:     rule.Shake.Delay,
			ShakeDuration:  rule.Shake.Duration,
			ShakeFrequency: rule.Shake.Frequency,
			ShakeAmplitude: rule.Shake.Amplitude,
		})
	}

	exits := make([]component.ExitSpec, 0, len(s.Exits))
	for i, rule := range s.Exits {
		if rule.Node == "" {
			return nil, nil, fmt.Errorf("prefabs: exit rule %d: node name is empty", i)
		}
		if err := nonNegative(
			field{"spawn_delay", rule.SpawnDelay},
			field{"sound_delay", rule.SoundDelay},
		); err != nil {
			return nil, nil, fmt.Errorf("prefabs: exit rule %d (%q): %w", i, rule.Node, err)
		}
		exits = append(exits, component.ExitSpec{
			Node:       component.HashNodeName(rule.Node),
			NodeName:   rule.Node,
			Effect:     rule.Effect,
			SpawnDelay: rule.SpawnDelay,
			Sound:      rule.Sound,
			SoundDelay: rule.SoundDelay,
			Volume:     volumeOrDefault(rule.Volume),
		})
	}

	return entries, exits, nil
}

func volumeOrDefault(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

type field struct {
	name  string
	value float64
}

func nonNegative(fields ...field) error {
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", f.name, f.value)
		}
	}
	return nil
}
