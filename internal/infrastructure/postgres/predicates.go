package postgres

import (
	"fmt"
	"strings"
)

// Predicates lista de condiciones con sus valores ligados. Las condiciones se
// escriben con '?' y se renumeran a $n al agregarlas, de modo que el texto SQL
// nunca contiene valores del usuario.
type Predicates struct {
	conds []string
	args  []any
}

// Add agrega una condición; debe haber tantos '?' como args.
func (p *Predicates) Add(cond string, args ...any) {
	if n := strings.Count(cond, "?"); n != len(args) {
		panic(fmt.Sprintf("predicates: %q espera %d valores, recibió %d", cond, n, len(args)))
	}
	var b strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' {
			p.args = append(p.args, args[i])
			fmt.Fprintf(&b, "$%d", len(p.args))
			i++
			continue
		}
		b.WriteRune(r)
	}
	p.conds = append(p.conds, b.String())
}

// AddIf agrega la condición solo si ok.
func (p *Predicates) AddIf(ok bool, cond string, args ...any) {
	if ok {
		p.Add(cond, args...)
	}
}

// Where pliega las condiciones sobre WHERE TRUE.
func (p *Predicates) Where() string {
	var b strings.Builder
	b.WriteString(" WHERE TRUE")
	for _, c := range p.conds {
		b.WriteString(" AND ")
		b.WriteString(c)
	}
	return b.String()
}

// Bind agrega un valor fuera del WHERE (LIMIT, OFFSET) y devuelve su placeholder.
func (p *Predicates) Bind(v any) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

// Args valores ligados en orden de aparición.
func (p *Predicates) Args() []any {
	return p.args
}

// Len número de condiciones.
func (p *Predicates) Len() int {
	return len(p.conds)
}

// likePattern escapa los comodines de LIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
