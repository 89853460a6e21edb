/*
 * parser.go, part of gostereo.
 *
 * Copyright 2024 The gostereo authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package smiles

import (
	"math"
	"strings"

	chem "github.com/gostereo/gostereo"
)

//elements writable without brackets, two-letter symbols first so the
//tokenizer tries them before their one-letter prefixes.
var organicSubset = []string{"Cl", "Br", "B", "C", "N", "O", "P", "S", "F", "I"}

//lowercase aromatic forms allowed in and out of brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S", "se": "Se",
}

//bracket-only element symbols additionally accepted.
var bracketSymbols = map[string]bool{
	"H": true, "Si": true, "Se": true,
}

const (
	senseNone = iota
	senseAnti //@
	senseClock //@@
)

//a chiral atom's neighbor list in written order. The value -1 marks the
//in-bracket hydrogen; values below ringBase mark a not-yet-closed ring bond.
type chiralRec struct {
	at    *chem.Atom
	sense int
	order []int
}

const ringBase = -100

//a directional (/ or \) single bond, recorded as written: from the atom that
//appeared first. dir is +1 for / and -1 for \.
type dirBond struct {
	bond *chem.Bond
	from *chem.Atom
	dir  int
}

type parser struct {
	in  string
	pos int

	mol      *chem.Molecule
	prev     *chem.Atom
	order    chem.BondOrder //0 = default
	dir      int
	organic  map[int]bool //atoms that get implicit hydrogens by valence
	chirals  map[int]*chiralRec
	dirBonds []dirBond
	rings    map[int]*ringOpen
}

type ringOpen struct {
	at    *chem.Atom
	order chem.BondOrder
	dir   int
	slot  int //placeholder value used in the opener's chiral record
}

type savedState struct {
	prev *chem.Atom
}

func (p *parser) fail(format string, a ...interface{}) *chem.ParseError {
	return chem.NewParseError(p.in, p.pos, format, a...)
}

// Parse turns a SMILES string into a molecular graph. All failures are
// *chem.ParseError.
func Parse(notation string) (*chem.Molecule, error) {
	notation = strings.TrimSpace(notation)
	if notation == "" {
		return nil, chem.NewParseError(notation, -1, "empty notation string")
	}
	p := &parser{
		in:      notation,
		mol:     chem.NewMolecule(),
		organic: make(map[int]bool),
		chirals: make(map[int]*chiralRec),
		rings:   make(map[int]*ringOpen),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.mol, nil
}

func (p *parser) run() error {
	var stack []savedState
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		switch {
		case c == '(':
			if p.prev == nil {
				return p.fail("branch with no preceding atom")
			}
			stack = append(stack, savedState{prev: p.prev})
			p.pos++
		case c == ')':
			if len(stack) == 0 {
				return p.fail("unmatched closing parenthesis")
			}
			if p.order != 0 || p.dir != 0 {
				return p.fail("dangling bond before closing parenthesis")
			}
			p.prev = stack[len(stack)-1].prev
			stack = stack[:len(stack)-1]
			p.pos++
		case c == '.':
			if p.order != 0 || p.dir != 0 {
				return p.fail("bond symbol before dot")
			}
			p.prev = nil
			p.pos++
		case c == '-':
			p.order = chem.Single
			p.pos++
		case c == '=':
			p.order = chem.Double
			p.pos++
		case c == '#':
			p.order = chem.Triple
			p.pos++
		case c == ':':
			p.order = chem.Aromatic
			p.pos++
		case c == '/':
			p.order = chem.Single
			p.dir = 1
			p.pos++
		case c == '\\':
			p.order = chem.Single
			p.dir = -1
			p.pos++
		case c >= '1' && c <= '9':
			if err := p.ring(int(c - '0')); err != nil {
				return err
			}
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.in) || !isDigit(p.in[p.pos+1]) || !isDigit(p.in[p.pos+2]) {
				return p.fail("%% must be followed by two digits")
			}
			n := int(p.in[p.pos+1]-'0')*10 + int(p.in[p.pos+2]-'0')
			if err := p.ring(n); err != nil {
				return err
			}
			p.pos += 3
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}
	if len(stack) != 0 {
		return p.fail("unclosed branch")
	}
	if p.order != 0 || p.dir != 0 {
		return p.fail("dangling bond at end of input")
	}
	for n := range p.rings {
		return p.fail("unclosed ring bond %d", n)
	}
	if p.mol.Len() == 0 {
		return p.fail("no atoms in notation")
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

//connect at to the chain, consuming any pending bond state.
func (p *parser) link(at *chem.Atom, aromatic bool) error {
	if p.prev != nil {
		order := p.order
		if order == 0 {
			order = chem.Single
			if aromatic && p.prev.Aromatic {
				order = chem.Aromatic
			}
		}
		if p.mol.Bonded(p.prev.Index, at.Index) {
			return p.fail("duplicate bond between atoms %d and %d", p.prev.Index, at.Index)
		}
		b := p.mol.NewBond(p.prev, at, order)
		if p.dir != 0 {
			p.dirBonds = append(p.dirBonds, dirBond{bond: b, from: p.prev, dir: p.dir})
		}
		p.noteNeighbor(p.prev, at.Index)
		p.noteNeighbor(at, p.prev.Index)
	} else if p.order != 0 || p.dir != 0 {
		return p.fail("bond symbol with no preceding atom")
	}
	p.order = 0
	p.dir = 0
	p.prev = at
	return nil
}

func (p *parser) noteNeighbor(at *chem.Atom, idx int) {
	if rec, ok := p.chirals[at.Index]; ok {
		rec.order = append(rec.order, idx)
	}
}

func (p *parser) organicAtom() error {
	rest := p.in[p.pos:]
	for _, sym := range organicSubset {
		if strings.HasPrefix(rest, sym) {
			at := p.mol.AddAtom(&chem.Atom{Symbol: sym})
			p.organic[at.Index] = true
			p.pos += len(sym)
			return p.link(at, false)
		}
	}
	//aromatic lowercase, one letter only outside brackets
	if full, ok := aromaticSymbols[string(p.in[p.pos])]; ok {
		at := p.mol.AddAtom(&chem.Atom{Symbol: full, Aromatic: true})
		p.organic[at.Index] = true
		p.pos++
		return p.link(at, true)
	}
	return p.fail("unexpected character %q", p.in[p.pos])
}

func (p *parser) bracketAtom() error {
	start := p.pos
	p.pos++ //consume '['
	//isotope, tolerated and discarded
	for p.pos < len(p.in) && isDigit(p.in[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.in) {
		return p.fail("unterminated bracket atom")
	}
	//element symbol: uppercase letter + optional lowercase, or aromatic form
	var symbol string
	aromatic := false
	c := p.in[p.pos]
	switch {
	case c >= 'A' && c <= 'Z':
		symbol = string(c)
		p.pos++
		if p.pos < len(p.in) && p.in[p.pos] >= 'a' && p.in[p.pos] <= 'z' {
			two := symbol + string(p.in[p.pos])
			if chem.KnownSymbol(two) || bracketSymbols[two] {
				symbol = two
				p.pos++
			}
		}
	case c >= 'a' && c <= 'z':
		sym := string(c)
		if p.pos+1 < len(p.in) {
			if full, ok := aromaticSymbols[sym+string(p.in[p.pos+1])]; ok {
				symbol = full
				aromatic = true
				p.pos += 2
			}
		}
		if symbol == "" {
			full, ok := aromaticSymbols[sym]
			if !ok {
				return p.fail("unknown aromatic symbol %q", sym)
			}
			symbol = full
			aromatic = true
			p.pos++
		}
	default:
		return p.fail("expected element symbol in bracket")
	}
	if !chem.KnownSymbol(symbol) {
		p.pos = start
		return p.fail("unknown element %q", symbol)
	}
	sense := senseNone
	if p.pos < len(p.in) && p.in[p.pos] == '@' {
		sense = senseAnti
		p.pos++
		if p.pos < len(p.in) && p.in[p.pos] == '@' {
			sense = senseClock
			p.pos++
		}
	}
	hcount := 0
	if p.pos < len(p.in) && p.in[p.pos] == 'H' {
		hcount = 1
		p.pos++
		if p.pos < len(p.in) && isDigit(p.in[p.pos]) {
			hcount = int(p.in[p.pos] - '0')
			p.pos++
		}
	}
	charge := 0
	for p.pos < len(p.in) && (p.in[p.pos] == '+' || p.in[p.pos] == '-') {
		sign := 1
		if p.in[p.pos] == '-' {
			sign = -1
		}
		p.pos++
		if p.pos < len(p.in) && isDigit(p.in[p.pos]) {
			charge += sign * int(p.in[p.pos]-'0')
			p.pos++
		} else {
			charge += sign
		}
	}
	//atom class, tolerated and discarded
	if p.pos < len(p.in) && p.in[p.pos] == ':' {
		p.pos++
		if p.pos >= len(p.in) || !isDigit(p.in[p.pos]) {
			return p.fail("atom class must be a number")
		}
		for p.pos < len(p.in) && isDigit(p.in[p.pos]) {
			p.pos++
		}
	}
	if p.pos >= len(p.in) || p.in[p.pos] != ']' {
		return p.fail("unterminated bracket atom")
	}
	p.pos++
	at := p.mol.AddAtom(&chem.Atom{Symbol: symbol, Charge: charge, Implicit: hcount, Aromatic: aromatic})
	if sense != senseNone {
		p.chirals[at.Index] = &chiralRec{at: at, sense: sense}
	}
	if err := p.link(at, aromatic); err != nil {
		return err
	}
	//the in-bracket hydrogen sits right after the preceding atom in the
	//written neighbor order
	if sense != senseNone && hcount == 1 {
		p.chirals[at.Index].order = append(p.chirals[at.Index].order, -1)
	}
	return nil
}

func (p *parser) ring(n int) error {
	if p.prev == nil {
		return p.fail("ring bond with no preceding atom")
	}
	open, ok := p.rings[n]
	if !ok {
		slot := ringBase - n
		p.rings[n] = &ringOpen{at: p.prev, order: p.order, dir: p.dir, slot: slot}
		p.noteNeighbor(p.prev, slot)
		p.order = 0
		p.dir = 0
		return nil
	}
	delete(p.rings, n)
	if open.at.Index == p.prev.Index {
		return p.fail("ring bond %d closed on its opening atom", n)
	}
	order := open.order
	if p.order != 0 {
		if order != 0 && order != p.order {
			return p.fail("conflicting orders for ring bond %d", n)
		}
		order = p.order
	}
	if order == 0 {
		order = chem.Single
		if open.at.Aromatic && p.prev.Aromatic {
			order = chem.Aromatic
		}
	}
	if p.mol.Bonded(open.at.Index, p.prev.Index) {
		return p.fail("duplicate bond via ring closure %d", n)
	}
	b := p.mol.NewBond(open.at, p.prev, order)
	if open.dir != 0 {
		p.dirBonds = append(p.dirBonds, dirBond{bond: b, from: open.at, dir: open.dir})
	}
	if p.dir != 0 {
		p.dirBonds = append(p.dirBonds, dirBond{bond: b, from: p.prev, dir: p.dir})
	}
	//the closure occupies the digit's position in the closing atom's written
	//order, and the opener's reserved slot is resolved now
	p.noteNeighbor(p.prev, open.at.Index)
	if rec, ok := p.chirals[open.at.Index]; ok {
		for i, v := range rec.order {
			if v == open.slot {
				rec.order[i] = p.prev.Index
				break
			}
		}
	}
	p.order = 0
	p.dir = 0
	return nil
}

//finish derives implicit hydrogen counts, validates valences and resolves
//the recorded stereo markers into graph descriptors.
func (p *parser) finish() error {
	for idx := range p.organic {
		at := p.mol.Atom(idx)
		if at.Implicit != 0 {
			continue
		}
		v, ok := chem.DefaultValence(at.Symbol, at.Charge)
		if !ok {
			continue
		}
		used := int(math.Round(at.BondValence()))
		if at.Aromatic && at.Degree() == 2 && at.BondValence() == 3.0 {
			//two aromatic bonds account for the whole ring contribution
			used = 3
		}
		if v > used {
			at.Implicit = v - used
		}
	}
	for _, at := range p.mol.Atoms {
		max := chem.MaxBonds(at.Symbol)
		if max != 0 && at.TotalConnections() > max {
			return chem.NewParseError(p.in, -1, "atom %d (%s) has %d connections, maximum is %d",
				at.Index, at.Symbol, at.TotalConnections(), max)
		}
	}
	if err := p.resolveChirality(); err != nil {
		return err
	}
	return p.resolveBondStereo()
}

func (p *parser) resolveChirality() error {
	for _, rec := range p.chirals {
		at := rec.at
		got := make([]int, 0, len(rec.order))
		for _, v := range rec.order {
			if v == -1 {
				got = append(got, at.Index) //phantom key of the implicit H
			} else {
				got = append(got, v)
			}
		}
		if len(got) != 4 || at.TotalConnections() != 4 {
			//three-coordinate chirality (lone-pair centers) is out of scope;
			//the marker is dropped rather than misread
			continue
		}
		ref := at.RefNeighbors()
		par := chem.OrderParity(ref, got)
		switch {
		case rec.sense == senseAnti && par > 0:
			at.Parity = chem.ParityAnti
		case rec.sense == senseAnti && par < 0:
			at.Parity = chem.ParityClock
		case rec.sense == senseClock && par > 0:
			at.Parity = chem.ParityClock
		default:
			at.Parity = chem.ParityAnti
		}
	}
	return nil
}

//side returns which side of the double-bond axis the far neighbor of db lies
//on, following the written direction: "/" from n to a puts n below (-1).
func side(db dirBond, end *chem.Atom) int {
	if db.from.Index == end.Index {
		return db.dir
	}
	return -db.dir
}

func (p *parser) resolveBondStereo() error {
	for _, b := range p.mol.Bonds {
		if b.Order != chem.Double {
			continue
		}
		var sa, sb int
		var na, nb *chem.Atom
		for _, db := range p.dirBonds {
			for _, end := range []*chem.Atom{b.At1, b.At2} {
				if db.bond.At1.Index != end.Index && db.bond.At2.Index != end.Index {
					continue
				}
				n := db.bond.Cross(end)
				if n.Index == b.Cross(end).Index {
					continue //the double bond partner itself
				}
				s := side(db, end)
				if end.Index == b.At1.Index {
					if na != nil && na.Index != n.Index && sa != -s {
						return chem.NewParseError(p.in, -1, "conflicting bond directions around double bond %d", b.Index)
					}
					if na != nil && na.Index == n.Index && sa != s {
						return chem.NewParseError(p.in, -1, "conflicting bond directions around double bond %d", b.Index)
					}
					if na == nil {
						na, sa = n, s
					}
				} else {
					if nb != nil && nb.Index != n.Index && sb != -s {
						return chem.NewParseError(p.in, -1, "conflicting bond directions around double bond %d", b.Index)
					}
					if nb != nil && nb.Index == n.Index && sb != s {
						return chem.NewParseError(p.in, -1, "conflicting bond directions around double bond %d", b.Index)
					}
					if nb == nil {
						nb, sb = n, s
					}
				}
			}
		}
		if na == nil || nb == nil {
			continue
		}
		st := chem.StereoTrans
		if sa == sb {
			st = chem.StereoCis
		}
		//restate against the reference substituents
		if ra := b.RefSubstituent(b.At1); ra != nil && ra.Index != na.Index {
			st = st.Inverted()
		}
		if rb := b.RefSubstituent(b.At2); rb != nil && rb.Index != nb.Index {
			st = st.Inverted()
		}
		b.Stereo = st
	}
	return nil
}

// RemoveStereo returns a copy of M with every tetrahedral parity and
// double-bond descriptor cleared. The ranking pipeline strips input
// stereochemistry before enumeration so that all configurations are covered,
// not just the stated one.
func RemoveStereo(M *chem.Molecule) *chem.Molecule {
	N := M.Copy()
	for _, at := range N.Atoms {
		at.Parity = chem.ParityNone
	}
	for _, b := range N.Bonds {
		b.Stereo = chem.StereoNone
	}
	return N
}
