// Package audit runs a fixed set of health rules over a parsed blueprint
// and reports findings ranked by severity. Rules only ever observe the
// document; applying a suggested fix is the caller's decision.
package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// Severity orders findings. Errors describe grids that cannot operate,
// warnings describe grids that fly badly, info is advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns the sort weight of a severity, lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Fix identifiers understood by the repair layer.
const (
	FixAddControlBlock = "add_control_block"
	FixAddPowerBlock   = "add_power_block"
)

// Rule identifiers, stable across releases so callers can filter on them.
const (
	RuleMissingControl    = "missing_control"
	RuleMissingPower      = "missing_power"
	RuleThrusterImbalance = "thruster_imbalance"
	RuleUnknownSubtypes   = "unknown_subtypes"
)

// Finding is a single audit result.
type Finding struct {
	RuleID     string   `json:"rule_id"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	FixID      string   `json:"fix_id,omitempty"`
	Affected   []string `json:"affected,omitempty"`
}

// Auditor evaluates every rule against a document. The known predicate
// reports whether a subtype exists in the cost model; rules is the union
// of registered substitution pairs, used to whitelist convertible blocks.
type Auditor struct {
	known func(subtype string) bool
	rules mapping.Lookup
}

// New builds an auditor. Either argument may be nil, in which case the
// corresponding knowledge source is treated as empty.
func New(known func(subtype string) bool, rules mapping.Lookup) *Auditor {
	if known == nil {
		known = func(string) bool { return false }
	}
	return &Auditor{known: known, rules: rules}
}

// Audit runs all rules in their fixed order and returns findings sorted by
// severity, preserving rule order within a severity. It never fails; a
// document with no problems yields an empty slice.
func (a *Auditor) Audit(doc *blueprint.Document) []Finding {
	var findings []Finding
	for _, rule := range []func(*blueprint.Document) *Finding{
		a.checkControl,
		a.checkPower,
		a.checkThrusters,
		a.checkUnknown,
	} {
		if f := rule(doc); f != nil {
			findings = append(findings, *f)
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})
	return findings
}

var controlMarkers = []string{"cockpit", "controlseat", "remotecontrol", "controlstation"}

func (a *Auditor) checkControl(doc *blueprint.Document) *Finding {
	if anyPart(doc, controlMarkers) {
		return nil
	}
	return &Finding{
		RuleID:     RuleMissingControl,
		Severity:   SeverityError,
		Message:    "grid has no cockpit, control seat, or remote control",
		Suggestion: "add a control block so the grid can be piloted",
		FixID:      FixAddControlBlock,
	}
}

var powerMarkers = []string{"battery", "reactor", "hydrogenengine", "solarpanel", "windturbine"}

func (a *Auditor) checkPower(doc *blueprint.Document) *Finding {
	if anyPart(doc, powerMarkers) {
		return nil
	}
	return &Finding{
		RuleID:     RuleMissingPower,
		Severity:   SeverityError,
		Message:    "grid has no power source",
		Suggestion: "add a battery, reactor, or engine",
		FixID:      FixAddPowerBlock,
	}
}

var thrustDirections = []string{"Forward", "Backward", "Up", "Down", "Left", "Right"}

// checkThrusters flags grids whose thrust is badly distributed. Grids with
// fewer than six thrusters are too small to judge and are skipped.
func (a *Auditor) checkThrusters(doc *blueprint.Document) *Finding {
	counts := make(map[string]int, len(thrustDirections))
	total := 0
	for _, part := range doc.Parts {
		if !strings.Contains(strings.ToLower(part.Subtype), "thrust") {
			continue
		}
		total++
		dir := part.Forward
		if dir == "" {
			dir = "Forward"
		}
		counts[dir]++
	}
	if total < 6 {
		return nil
	}

	var missing []string
	min, max := 0, 0
	for _, dir := range thrustDirections {
		n := counts[dir]
		if n == 0 {
			missing = append(missing, dir)
			continue
		}
		if min == 0 || n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if len(missing) > 0 {
		return &Finding{
			RuleID:     RuleThrusterImbalance,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("no thrust in %d direction(s): %s", len(missing), strings.Join(missing, ", ")),
			Suggestion: "add thrusters covering every axis",
			Affected:   missing,
		}
	}
	if min > 0 && float64(max)/float64(min) >= 2.5 {
		return &Finding{
			RuleID:     RuleThrusterImbalance,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("thrust is heavily unbalanced (max %d vs min %d per direction)", max, min),
			Suggestion: "even out thruster counts across directions",
		}
	}
	return nil
}

// checkUnknown reports subtypes that neither the cost model nor any
// registered substitution rule recognizes. Advisory only, modded grids
// legitimately contain such blocks.
func (a *Auditor) checkUnknown(doc *blueprint.Document) *Finding {
	var unknown []string
	seen := make(map[string]bool)
	for _, part := range doc.Parts {
		id := part.Subtype
		if seen[id] {
			continue
		}
		seen[id] = true
		if a.known(id) {
			continue
		}
		if _, ok := a.rules[id]; ok {
			continue
		}
		if a.rules != nil && ruleTarget(a.rules, id) {
			continue
		}
		unknown = append(unknown, id)
	}
	if len(unknown) == 0 {
		return nil
	}
	return &Finding{
		RuleID:   RuleUnknownSubtypes,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("%d subtype(s) not present in the cost model or any rule set", len(unknown)),
		Affected: unknown,
	}
}

func ruleTarget(rules mapping.Lookup, id string) bool {
	for _, target := range rules {
		if target == id {
			return true
		}
	}
	return false
}

func anyPart(doc *blueprint.Document, markers []string) bool {
	for _, part := range doc.Parts {
		lowered := strings.ToLower(part.Subtype)
		for _, marker := range markers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}
