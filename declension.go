package pali

// Decliner computes declension tables from a paradigm table. It holds no
// mutable state and is safe for concurrent use.
type Decliner struct {
	paradigms *ParadigmTable
}

// NewDecliner returns a Decliner over t.
func NewDecliner(t *ParadigmTable) *Decliner {
	return &Decliner{paradigms: t}
}

// Paradigms resolves the paradigms w follows for the gender at genderIdx.
// A paradigm name that does not match the term falls back to the generic
// paradigm of the same ending and gender.
func (d *Decliner) Paradigms(w PaliWord, genderIdx int) []*NounParadigm {
	if d == nil || d.paradigms == nil || genderIdx < 0 || genderIdx >= len(w.Genders) {
		return nil
	}
	g := w.Genders[genderIdx]
	var out []*NounParadigm
	seen := make(map[*NounParadigm]bool)
	for _, name := range w.ParadigmsFor(genderIdx) {
		p := d.paradigms.Resolve(name, w.Term, g)
		if p == nil {
			p = d.paradigms.Resolve(GenericParadigm, w.Term, g)
		}
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Decline returns the declension table of w for the gender at genderIdx.
// When no paradigm resolves, every cell is empty.
func (d *Decliner) Decline(w PaliWord, genderIdx int) Table {
	t := newTable()
	ps := d.Paradigms(w, genderIdx)
	for _, c := range Cases {
		for _, n := range Numbers {
			var forms []string
			for _, p := range ps {
				for _, suffix := range p.cells[cell{c, n}] {
					forms = append(forms, w.WithSuffix(suffix, p.Ending))
				}
			}
			if len(forms) > 0 {
				t[c][n] = unique(forms)
			}
		}
	}
	return t
}

// unique returns a deduplicated slice preserving order.
func unique(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
