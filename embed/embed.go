/*
 * embed.go, part of gostereo.
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

//Package embed generates one 3D conformer per molecule through a
//distance-geometry style constraint refinement.
//
//The embedding is fully deterministic for a given (molecule, seed) pair: the
//initial coordinates come from a rand.Rand built on the given seed and the
//refinement itself has no randomness left. That reproducibility is a hard
//requirement of the ranking pipeline, which is why the seed is an explicit
//parameter and never ambient global state. Embedding can fail for strained
//or overconstrained topologies; that outcome is an *chem.EmbedError and the
//caller is expected to drop the molecule, not abort the run.
package embed

import (
	"math"
	"math/rand"

	chem "github.com/gostereo/gostereo"
	v3 "github.com/gostereo/gostereo/v3"
)

// DefaultSeed is the embedding seed used across the pipeline unless the
// caller picks another; the value follows the reference implementation this
// pipeline reproduces.
const DefaultSeed int64 = 42

const (
	sweeps       = 300  //refinement passes over all constraints
	settleSweeps = 40   //trailing distance-only passes after the last enforcement
	bondTol      = 0.15 //relative deviation allowed on 1-2 distances
	overlapFrac  = 0.55 //fraction of summed vdW radii treated as a clash
	torsionTol   = 30.0 * math.Pi / 180.0
	minChiralVol = 0.1 //Å^3, tetrahedral centers flatter than this fail
)

// New embeds mol, which must already have explicit hydrogens (see
// chem.AddHydrogens), and returns a conformer whose coordinates satisfy the
// bond-length/angle bounds, the assigned tetrahedral parities and the
// assigned double-bond geometries. It returns *chem.EmbedError when the
// refinement cannot satisfy the constraints.
func New(mol *chem.Molecule, seed int64) (*chem.Conformer, error) {
	n := mol.Len()
	if n == 0 {
		return nil, chem.NewEmbedError("empty molecule")
	}
	rng := rand.New(rand.NewSource(seed))
	coords := v3.Zeros(n)
	side := 1.5 * math.Cbrt(float64(n))
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			coords.Set(i, j, (rng.Float64()*2-1)*side)
		}
	}
	if n == 1 {
		conf, _ := chem.NewConformer(mol, v3.Zeros(1))
		return conf, nil
	}
	bm := newBounds(mol)
	refine(mol, coords, bm, rng)
	if err := check(mol, coords, bm); err != nil {
		return nil, errEmbed(err)
	}
	center(coords)
	conf, err := chem.NewConformer(mol, coords)
	if err != nil {
		return nil, err
	}
	return conf, nil
}

func errEmbed(err error) error {
	if e, ok := err.(*chem.EmbedError); ok {
		e.Decorate("embed.New")
		return e
	}
	return err
}

//refine runs the constraint sweeps: pairwise distance corrections with
//chirality and torsion enforcement interleaved. Enforcement stops before the
//last settleSweeps passes, so distance relaxation always has the final word
//and the geometry the checks see satisfies both constraint families.
func refine(mol *chem.Molecule, coords *v3.Matrix, bm *bounds, rng *rand.Rand) {
	n := mol.Len()
	lastEnforce := sweeps - settleSweeps
	for s := 0; s < sweeps; s++ {
		step := 0.5
		if s > sweeps/2 {
			step = 0.25
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				l, u := bm.get(i, j)
				if u >= unbound && l <= 0 {
					continue
				}
				d := v3.Dist(coords, i, coords, j)
				if d < 1e-8 {
					//coincident points, split them apart deterministically
					coords.Set(j, 0, coords.At(j, 0)+0.1+0.01*rng.Float64())
					d = v3.Dist(coords, i, coords, j)
				}
				target := d
				if d < l {
					target = l
				} else if d > u {
					target = u
				} else {
					continue
				}
				f := step * (d - target) / d
				for c := 0; c < 3; c++ {
					delta := f * (coords.At(i, c) - coords.At(j, c)) * 0.5
					coords.Set(i, c, coords.At(i, c)-delta)
					coords.Set(j, c, coords.At(j, c)+delta)
				}
			}
		}
		if s%5 == 4 && s < lastEnforce {
			enforceChirality(mol, coords)
			enforceTorsions(mol, coords)
		}
	}
}

//signedVolume of the tetrahedron spanned by the reference substituents of a
//tetrahedral center, in their reference (ascending-key) order.
func signedVolume(coords *v3.Matrix, refs []int) float64 {
	a := coords.VecView(refs[0])
	b := coords.VecView(refs[1])
	c := coords.VecView(refs[2])
	d := coords.VecView(refs[3])
	ab := v3.Zeros(1)
	ac := v3.Zeros(1)
	ad := v3.Zeros(1)
	ab.Sub(b, a)
	ac.Sub(c, a)
	ad.Sub(d, a)
	return ab.Dot(v3.Cross(ac, ad))
}

//wantPositive maps the parity convention onto the volume sign: ParityAnti
//corresponds to a positive signed volume over the ascending-key reference
//order. The embedder and the conformer checks are the only places that tie
//descriptors to 3D space, so consistency here is all that matters.
func wantPositive(p chem.Parity) bool { return p == chem.ParityAnti }

func enforceChirality(mol *chem.Molecule, coords *v3.Matrix) {
	for _, at := range mol.Atoms {
		if at.Parity == chem.ParityNone || at.TotalConnections() != 4 || at.Implicit != 0 {
			continue
		}
		refs := at.RefNeighbors()
		v := signedVolume(coords, refs)
		if (v > 0) == wantPositive(at.Parity) && math.Abs(v) > minChiralVol {
			continue
		}
		//reflect the first substituent through the plane of the other three
		b := coords.VecView(refs[1])
		c := coords.VecView(refs[2])
		d := coords.VecView(refs[3])
		bc := v3.Zeros(1)
		bd := v3.Zeros(1)
		bc.Sub(c, b)
		bd.Sub(d, b)
		normal := v3.Cross(bc, bd)
		nn := normal.Norm()
		if nn < 1e-8 {
			continue
		}
		normal.Scale(1/nn, normal)
		a := coords.VecView(refs[0])
		ab := v3.Zeros(1)
		ab.Sub(a, b)
		h := ab.Dot(normal) //signed height of a over the bcd plane
		//the triple product over vectors from refs[0] carries the opposite
		//sign of h: positive volume needs refs[0] below the bcd plane
		want := math.Max(0.8, math.Abs(h))
		if wantPositive(at.Parity) {
			want = -want
		}
		//a mirrored height keeps the distances to b, c and d, and the
		//following sweeps re-relax the bond to the center
		shift := v3.Zeros(1)
		shift.Scale(want-h, normal)
		moved := v3.Zeros(1)
		moved.Add(a, shift)
		coords.SetVec(refs[0], moved)
	}
}

func enforceTorsions(mol *chem.Molecule, coords *v3.Matrix) {
	for _, b := range mol.Bonds {
		if b.Stereo == chem.StereoNone {
			continue
		}
		ra := b.RefSubstituent(b.At1)
		rb := b.RefSubstituent(b.At2)
		if ra == nil || rb == nil {
			continue
		}
		want := 0.0 //cis
		if b.Stereo == chem.StereoTrans {
			want = math.Pi
		}
		t := v3.Dihedral(coords.VecView(ra.Index), coords.VecView(b.At1.Index),
			coords.VecView(b.At2.Index), coords.VecView(rb.Index))
		diff := angleDiff(t, want)
		if math.Abs(diff) < 1e-3 {
			continue
		}
		//rotate rb (and nothing else; the distance sweeps re-relax the rest)
		//around the double-bond axis to close the gap
		rotatePoint(coords, rb.Index, b.At1.Index, b.At2.Index, -diff)
	}
}

//angleDiff returns a-b wrapped into (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

//rotatePoint rotates atom p around the axis through atoms i and j by the
//given angle, using the Rodrigues formula.
func rotatePoint(coords *v3.Matrix, p, i, j int, angle float64) {
	axis := v3.Zeros(1)
	axis.Sub(coords.VecView(j), coords.VecView(i))
	an := axis.Norm()
	if an < 1e-8 {
		return
	}
	axis.Scale(1/an, axis)
	rel := v3.Zeros(1)
	rel.Sub(coords.VecView(p), coords.VecView(i))
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	kxr := v3.Cross(axis, rel)
	kdr := axis.Dot(rel)
	out := v3.Zeros(1)
	for c := 0; c < 3; c++ {
		out.Set(0, c, rel.At(0, c)*cosA+kxr.At(0, c)*sinA+axis.At(0, c)*kdr*(1-cosA))
	}
	res := v3.Zeros(1)
	res.Add(out, coords.VecView(i))
	coords.SetVec(p, res)
}

//check verifies the refined geometry: bond lengths within tolerance, no
//steric clash between distant atoms, chirality and double-bond geometry as
//assigned.
func check(mol *chem.Molecule, coords *v3.Matrix, bm *bounds) error {
	for _, b := range mol.Bonds {
		ideal := IdealBondLength(b)
		d := v3.Dist(coords, b.At1.Index, coords, b.At2.Index)
		if math.Abs(d-ideal)/ideal > bondTol {
			return chem.NewEmbedError("bond %d-%d length %.2f Å deviates from ideal %.2f Å",
				b.At1.Index, b.At2.Index, d, ideal)
		}
	}
	n := mol.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			hops := bm.hops[bm.at(i, j)]
			if hops >= 0 && hops < 3 {
				continue
			}
			vdw := chem.SymbolVdwrad(mol.Atom(i).Symbol) + chem.SymbolVdwrad(mol.Atom(j).Symbol)
			if v3.Dist(coords, i, coords, j) < vdw*overlapFrac {
				return chem.NewEmbedError("atoms %d and %d overlap", i, j)
			}
		}
	}
	for _, at := range mol.Atoms {
		if at.Parity == chem.ParityNone || at.TotalConnections() != 4 || at.Implicit != 0 {
			continue
		}
		refs := at.RefNeighbors()
		v := signedVolume(coords, refs)
		if math.Abs(v) < minChiralVol {
			return chem.NewEmbedError("stereocenter %d is flat (volume %.3f)", at.Index, v)
		}
		if (v > 0) != wantPositive(at.Parity) {
			return chem.NewEmbedError("stereocenter %d has the wrong handedness", at.Index)
		}
	}
	for _, b := range mol.Bonds {
		if b.Stereo == chem.StereoNone {
			continue
		}
		ra := b.RefSubstituent(b.At1)
		rb := b.RefSubstituent(b.At2)
		if ra == nil || rb == nil {
			continue
		}
		want := 0.0
		if b.Stereo == chem.StereoTrans {
			want = math.Pi
		}
		t := v3.Dihedral(coords.VecView(ra.Index), coords.VecView(b.At1.Index),
			coords.VecView(b.At2.Index), coords.VecView(rb.Index))
		if math.Abs(angleDiff(t, want)) > torsionTol {
			return chem.NewEmbedError("double bond %d geometry off by %.0f°",
				b.Index, math.Abs(angleDiff(t, want))*180/math.Pi)
		}
	}
	return nil
}

//center translates the coordinates so their centroid is the origin.
func center(coords *v3.Matrix) {
	n := coords.NVecs()
	cen := v3.Zeros(1)
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			cen.Set(0, c, cen.At(0, c)+coords.At(i, c))
		}
	}
	cen.Scale(1/float64(n), cen)
	coords.SubVec(coords, cen)
}
