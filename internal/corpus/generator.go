// Package corpus generates synthetic .caffeine blueprint and expectation
// files at parametrized scales for benchmarking the caffeine compiler.
// Generation is deterministic: the same scale always produces byte-identical
// files, so timing differences between runs come from the compiler, not the
// inputs.
package corpus

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// seed fixes the corpus RNG. Never change it casually: doing so invalidates
// every recorded baseline.
const seed = 42

var services = []string{
	"checkout", "auth", "payments", "orders", "inventory", "shipping",
	"notifications", "analytics", "search", "recommendations", "billing",
	"users", "profiles", "catalog", "cart", "gateway", "messaging",
	"scheduler", "monitoring", "logging", "cache", "storage", "cdn",
	"ml_inference", "etl_pipeline", "data_warehouse", "event_bus",
	"rate_limiter", "circuit_breaker", "load_balancer", "dns_resolver",
	"session_manager", "token_service", "audit_log", "webhook_relay",
	"media_processor", "pdf_generator", "email_sender", "sms_gateway",
	"push_notifications", "feature_flags", "ab_testing", "config_server",
	"secrets_manager", "certificate_authority", "vpn_gateway", "firewall",
	"intrusion_detection", "compliance_checker", "backup_service", "disaster_recovery",
}

var orgs = []string{"acme", "globex", "initech", "hooli", "piedpiper", "waystar", "delos", "massive_dynamic"}

var teams = []string{
	"platform", "payments", "growth", "infrastructure", "mobile",
	"backend", "frontend", "data", "security", "reliability",
	"devops", "sre", "ml", "search", "messaging",
	"identity", "commerce", "analytics", "observability", "networking",
}

var metrics = []string{
	"http.requests", "http.latency.p50", "http.latency.p95", "http.latency.p99",
	"http.errors", "grpc.requests", "grpc.latency", "grpc.errors",
	"db.queries", "db.latency", "db.connections", "db.errors",
	"cache.hits", "cache.misses", "cache.latency", "cache.evictions",
	"queue.messages", "queue.latency", "queue.depth", "queue.errors",
	"cpu.utilization", "memory.usage", "disk.io", "network.throughput",
}

// Scale describes one corpus size point.
type Scale struct {
	Blueprints   int
	FieldsPerBP  int // required fields per blueprint item
	Aliases      int
	Orgs         int
	TeamsPerOrg  int
	ExpectPerSet int // expectations per team/blueprint pairing
}

// Scales maps scale names to their dimensions, smallest to largest.
var Scales = map[string]Scale{
	"small":  {Blueprints: 2, FieldsPerBP: 2, Aliases: 0, Orgs: 1, TeamsPerOrg: 1, ExpectPerSet: 2},
	"medium": {Blueprints: 5, FieldsPerBP: 4, Aliases: 2, Orgs: 2, TeamsPerOrg: 2, ExpectPerSet: 3},
	"large":  {Blueprints: 20, FieldsPerBP: 6, Aliases: 5, Orgs: 3, TeamsPerOrg: 4, ExpectPerSet: 5},
	"huge":   {Blueprints: 50, FieldsPerBP: 9, Aliases: 10, Orgs: 5, TeamsPerOrg: 5, ExpectPerSet: 8},
	"insane": {Blueprints: 50, FieldsPerBP: 9, Aliases: 10, Orgs: 8, TeamsPerOrg: 10, ExpectPerSet: 15},
	"absurd": {Blueprints: 50, FieldsPerBP: 9, Aliases: 10, Orgs: 8, TeamsPerOrg: 20, ExpectPerSet: 25},
}

// ScaleNames returns the known scale names smallest-first.
func ScaleNames() []string {
	return []string{"small", "medium", "large", "huge", "insane", "absurd"}
}

// Generate writes the corpus for one scale under outDir/<scale>/:
// blueprints.caffeine plus expectations/<org>/<team>/*.caffeine files. Any
// existing corpus for the scale is replaced.
func Generate(outDir, scaleName string) error {
	scale, ok := Scales[scaleName]
	if !ok {
		return fmt.Errorf("unknown corpus scale %q (known: %s)", scaleName, strings.Join(ScaleNames(), ", "))
	}

	scaleDir := filepath.Join(outDir, scaleName)
	if err := os.RemoveAll(scaleDir); err != nil {
		return fmt.Errorf("clearing corpus dir %s: %w", scaleDir, err)
	}
	if err := os.MkdirAll(scaleDir, 0o755); err != nil {
		return fmt.Errorf("creating corpus dir %s: %w", scaleDir, err)
	}

	g := &generator{rng: rand.New(rand.NewSource(seed))}

	bpContent, bpNames, bpFields := g.blueprintsFile(scale)
	bpPath := filepath.Join(scaleDir, "blueprints.caffeine")
	if err := os.WriteFile(bpPath, []byte(bpContent), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", bpPath, err)
	}

	for orgIdx := 0; orgIdx < scale.Orgs; orgIdx++ {
		org := orgs[orgIdx%len(orgs)]
		for teamIdx := 0; teamIdx < scale.TeamsPerOrg; teamIdx++ {
			team := teams[teamIdx%len(teams)]
			teamDir := filepath.Join(scaleDir, "expectations", org, team)
			if err := os.MkdirAll(teamDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", teamDir, err)
			}

			// Rotate which blueprint each team targets so expectations
			// spread across the whole blueprint file.
			bp := bpNames[(orgIdx*scale.TeamsPerOrg+teamIdx)%len(bpNames)]
			content := g.expectationsFile(bp, bpFields[bp], scale.ExpectPerSet, team)
			p := filepath.Join(teamDir, bp+".caffeine")
			if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", p, err)
			}
		}
	}

	return nil
}

type generator struct {
	rng *rand.Rand
}

type field struct {
	name string
	typ  string
}

// blueprintsFile produces the blueprint document: type aliases followed by
// blueprint items, each with Requires and Provides blocks.
func (g *generator) blueprintsFile(scale Scale) (string, []string, map[string][]field) {
	var sections []string

	aliases := make([]string, 0, scale.Aliases)
	aliasNames := make([]string, 0, scale.Aliases)
	for i := 0; i < scale.Aliases; i++ {
		name := fmt.Sprintf("_type_%d", i)
		aliasNames = append(aliasNames, name)
		aliases = append(aliases, fmt.Sprintf("%s (Type): %s", name, g.refinementType()))
	}
	if len(aliases) > 0 {
		sections = append(sections, strings.Join(aliases, "\n"))
	}

	names := make([]string, 0, scale.Blueprints)
	fieldsByBP := make(map[string][]field, scale.Blueprints)

	lines := []string{`Blueprints for "SLO"`}
	for i := 0; i < scale.Blueprints; i++ {
		service := services[i%len(services)]
		name := service + "_slo"
		if i >= len(services) {
			name = fmt.Sprintf("%s_slo_%d", service, i/len(services))
		}
		names = append(names, name)

		item, fields := g.blueprintItem(name, scale.FieldsPerBP, aliasNames)
		lines = append(lines, item)
		fieldsByBP[name] = fields
	}
	sections = append(sections, strings.Join(lines, "\n"))

	return strings.Join(sections, "\n\n") + "\n", names, fieldsByBP
}

func (g *generator) blueprintItem(name string, numFields int, aliasNames []string) (string, []field) {
	var lines []string
	lines = append(lines, fmt.Sprintf("  * %q:", name))

	fields := make([]field, 0, numFields)
	for i := 0; i < numFields; i++ {
		f := field{name: fmt.Sprintf("%s_param_%d", name, i)}
		switch {
		case i < 2:
			// The first two fields stay plain Strings so they can be
			// used as template variables in indicator queries.
			f.typ = "String"
		case len(aliasNames) > 0 && g.rng.Float64() < 0.2:
			f.typ = aliasNames[g.rng.Intn(len(aliasNames))]
		default:
			f.typ = g.randomType()
		}
		fields = append(fields, f)
	}

	lines = append(lines, "    Requires {")
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("      %s: %s,", f.name, f.typ))
	}
	lines = append(lines, "    }")

	metric := metrics[g.rng.Intn(len(metrics))]
	envParam := fields[0].name
	svcParam := fields[1].name
	numerator := fmt.Sprintf("sum:%s{$%s->%s$,$%s->%s$}", metric, envParam, envParam, svcParam, svcParam)
	denominator := fmt.Sprintf("sum:%s.total{$%s->%s$}", metric, envParam, envParam)

	lines = append(lines,
		"    Provides {",
		`      vendor: "datadog",`,
		`      evaluation: "numerator / denominator",`,
		"      indicators: {",
		fmt.Sprintf("        numerator: %q,", numerator),
		fmt.Sprintf("        denominator: %q", denominator),
		"      }",
		"    }",
	)

	return strings.Join(lines, "\n"), fields
}

// expectationsFile produces one team's expectation document for a blueprint.
func (g *generator) expectationsFile(blueprint string, fields []field, count int, team string) string {
	lines := []string{fmt.Sprintf("Expectations for %q", blueprint)}

	for i := 0; i < count; i++ {
		lines = append(lines, fmt.Sprintf("  * %q:", fmt.Sprintf("%s_%s_%d", team, blueprint, i)))
		lines = append(lines, "    Provides {")
		for _, f := range fields {
			lines = append(lines, fmt.Sprintf("      %s: %s,", f.name, g.valueForType(f.typ)))
		}
		threshold := 95.0 + g.rng.Float64()*4.99
		windows := []int{7, 30, 90}
		lines = append(lines, fmt.Sprintf("      threshold: %.2f,", threshold))
		lines = append(lines, fmt.Sprintf("      window_in_days: %d", windows[g.rng.Intn(len(windows))]))
		lines = append(lines, "    }")
	}

	return strings.Join(lines, "\n") + "\n"
}

// randomType picks a type of varying complexity: mostly primitives, with
// refinements, collections, and modifiers mixed in.
func (g *generator) randomType() string {
	r := g.rng.Float64()
	switch {
	case r < 0.40:
		return g.simpleType()
	case r < 0.55:
		return g.oneOfType()
	case r < 0.65:
		return g.refinementType()
	case r < 0.80:
		return fmt.Sprintf("List(%s)", g.simpleType())
	default:
		return fmt.Sprintf("Optional(%s)", g.simpleType())
	}
}

func (g *generator) simpleType() string {
	types := []string{"String", "Integer", "Float", "Boolean"}
	return types[g.rng.Intn(len(types))]
}

func (g *generator) oneOfType() string {
	statuses := []string{"active", "inactive", "pending", "archived", "draft", "published"}
	n := 2 + g.rng.Intn(3)
	quoted := make([]string, n)
	for i := 0; i < n; i++ {
		quoted[i] = fmt.Sprintf("%q", statuses[g.rng.Intn(len(statuses))])
	}
	return fmt.Sprintf("String { x | x in { %s } }", strings.Join(quoted, ", "))
}

func (g *generator) refinementType() string {
	low := g.rng.Float64() * 50
	high := 60 + g.rng.Float64()*40
	return fmt.Sprintf("Float { x | x in ( %.1f..%.1f ) }", low, high)
}

// valueForType produces a literal value satisfying the given type string.
func (g *generator) valueForType(typ string) string {
	t := strings.TrimSpace(typ)
	switch {
	case t == "String":
		return fmt.Sprintf("%q", g.randomWord(5+g.rng.Intn(11)))
	case t == "Integer":
		return fmt.Sprintf("%d", 1+g.rng.Intn(10000))
	case t == "Float":
		return fmt.Sprintf("%.2f", 0.01+g.rng.Float64()*99.99)
	case t == "Boolean":
		if g.rng.Intn(2) == 0 {
			return "true"
		}
		return "false"
	case strings.HasPrefix(t, "String { x | x in {"):
		inner := t[strings.Index(t, "{ x | x in {")+len("{ x | x in {") : strings.LastIndex(t, "}")]
		inner = strings.TrimSuffix(strings.TrimSpace(inner), "}")
		vals := strings.Split(inner, ",")
		return strings.TrimSpace(vals[g.rng.Intn(len(vals))])
	case strings.HasPrefix(t, "Float { x | x in ("):
		var low, high float64
		fmt.Sscanf(t, "Float { x | x in ( %f..%f ) }", &low, &high)
		return fmt.Sprintf("%.2f", low+g.rng.Float64()*(high-low))
	case strings.HasPrefix(t, "List("):
		inner := t[5 : len(t)-1]
		n := 1 + g.rng.Intn(4)
		vals := make([]string, n)
		for i := range vals {
			vals[i] = g.valueForType(inner)
		}
		return "[" + strings.Join(vals, ", ") + "]"
	case strings.HasPrefix(t, "Optional("):
		return g.valueForType(t[9 : len(t)-1])
	case strings.HasPrefix(t, "_type_"):
		// Aliases resolve to Float refinements or String one-ofs; a
		// mid-range float satisfies the former and generation only
		// assigns aliases created by refinementType.
		return fmt.Sprintf("%.2f", 60+g.rng.Float64()*10)
	default:
		return `"fallback_value"`
	}
}

func (g *generator) randomWord(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.rng.Intn(len(letters))]
	}
	return string(b)
}
