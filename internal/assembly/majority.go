package assembly

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/betterhouse/syndic/internal/copro"
)

var ErrUnknownMajority = errors.New("assembly: tipo de maioria desconhecido")

// Base define contra o que os tantièmes a favor são comparados.
type Base string

const (
	BaseAgainst   Base = "against"
	BaseExpressed Base = "expressed"
)

// Threshold exige for × Den > Num × base (ou ≥ quando Inclusive).
// Os tantièmes a favor devem ser sempre positivos.
type Threshold struct {
	Base      Base
	Num       int
	Den       int
	Inclusive bool
}

func (t Threshold) holds(res copro.Resolution) bool {
	if res.SharesFor <= 0 {
		return false
	}
	base := res.SharesAgainst
	if t.Base == BaseExpressed {
		base = res.SharesExpressed()
	}
	lhs := res.SharesFor * t.Den
	rhs := base * t.Num
	if t.Inclusive {
		return lhs >= rhs
	}
	return lhs > rhs
}

func (t Threshold) String() string {
	s := fmt.Sprintf("%s:%d/%d", t.Base, t.Num, t.Den)
	if t.Inclusive {
		s += ":inclusive"
	}
	return s
}

// DefaultRules: simples for > contra; absoluta for > metade dos exprimidos;
// unanimidade for ≥ exprimidos.
func DefaultRules() map[copro.MajorityType]Threshold {
	return map[copro.MajorityType]Threshold{
		copro.MajoritySimple:   {Base: BaseAgainst, Num: 1, Den: 1},
		copro.MajorityAbsolute: {Base: BaseExpressed, Num: 1, Den: 2},
		copro.Unanimity:        {Base: BaseExpressed, Num: 1, Den: 1, Inclusive: true},
	}
}

// ParseRules lê "TIPO=base:num/den[:inclusive]" separados por vírgula.
func ParseRules(value string) (map[copro.MajorityType]Threshold, error) {
	rules := make(map[copro.MajorityType]Threshold)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, raw, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("assembly: regra sem '=': %q", item)
		}
		kind := copro.MajorityType(strings.ToUpper(strings.TrimSpace(name)))
		if _, known := DefaultRules()[kind]; !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMajority, kind)
		}
		t, err := parseThreshold(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("assembly: regra %s: %w", kind, err)
		}
		rules[kind] = t
	}
	return rules, nil
}

func parseThreshold(raw string) (Threshold, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Threshold{}, errors.New("formato esperado base:num/den[:inclusive]")
	}
	var t Threshold
	switch Base(strings.ToLower(parts[0])) {
	case BaseAgainst:
		t.Base = BaseAgainst
	case BaseExpressed:
		t.Base = BaseExpressed
	default:
		return Threshold{}, fmt.Errorf("base inválida %q", parts[0])
	}
	num, den, ok := strings.Cut(parts[1], "/")
	if !ok {
		return Threshold{}, fmt.Errorf("razão inválida %q", parts[1])
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return Threshold{}, fmt.Errorf("numerador inválido %q", num)
	}
	d, err := strconv.Atoi(den)
	if err != nil || d <= 0 {
		return Threshold{}, fmt.Errorf("denominador inválido %q", den)
	}
	t.Num, t.Den = n, d
	if len(parts) == 3 {
		if parts[2] != "inclusive" {
			return Threshold{}, fmt.Errorf("modificador inválido %q", parts[2])
		}
		t.Inclusive = true
	}
	return t, nil
}

// Evaluator decide o resultado das resoluções.
type Evaluator struct {
	rules map[copro.MajorityType]Threshold
}

// NewEvaluator aplica overrides sobre as regras padrão.
func NewEvaluator(overrides map[copro.MajorityType]Threshold) *Evaluator {
	rules := DefaultRules()
	for k, v := range overrides {
		rules[k] = v
	}
	return &Evaluator{rules: rules}
}

func (e *Evaluator) Rule(kind copro.MajorityType) (Threshold, bool) {
	t, ok := e.rules[kind]
	return t, ok
}

// Outcome fica pendente enquanto a assembleia não fecha e alguma apuração
// está zerada. Depois vale a regra do tipo de maioria.
func (e *Evaluator) Outcome(res copro.Resolution, closed bool) (copro.VoteStatus, error) {
	rule, ok := e.rules[res.Type]
	if !ok {
		return copro.VotePending, fmt.Errorf("%w: %s", ErrUnknownMajority, res.Type)
	}
	if !closed && (res.SharesFor == 0 || res.SharesAgainst == 0 || res.SharesAbstain == 0) {
		return copro.VotePending, nil
	}
	if rule.holds(res) {
		return copro.VoteAdopted, nil
	}
	return copro.VoteRejected, nil
}
