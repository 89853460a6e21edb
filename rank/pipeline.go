/*
 * pipeline.go, part of gostereo.
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

package rank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chem "github.com/gostereo/gostereo"
	"github.com/gostereo/gostereo/embed"
	"github.com/gostereo/gostereo/enum"
	"github.com/gostereo/gostereo/ff"
	"github.com/gostereo/gostereo/smiles"
	"github.com/gostereo/gostereo/stf"
	v3 "github.com/gostereo/gostereo/v3"
)

// EmbedFunc produces a 3D conformer for a molecule with explicit hydrogens.
type EmbedFunc func(mol *chem.Molecule, seed int64) (*chem.Conformer, error)

// MinimizeFunc relaxes a conformer in place and returns its final energy in
// kcal/mol. frame, when non-nil, receives the coordinates after each
// optimizer step.
type MinimizeFunc func(conf *chem.Conformer, budget int, frame ff.FrameFunc) (float64, error)

// Options configures a pipeline run. The zero value is usable.
type Options struct {
	//Seed for the 3D embedding. Zero means embed.DefaultSeed; every isomer
	//of a run uses the same seed, so results are reproducible.
	Seed int64
	//Workers caps the concurrent per-isomer jobs. Zero means runtime.NumCPU.
	Workers int
	//MinimizeBudget caps the minimizer's major iterations per isomer. Zero
	//means ff.DefaultBudget.
	MinimizeBudget int
	//MaxIsomers truncates the enumeration. Zero means no limit.
	MaxIsomers int
	//Logger receives per-isomer progress and drop reports. Nil means no
	//logging.
	Logger *zap.Logger
	//Diagnostics, when non-nil, receives one Drop per lost isomer. Sends
	//never block; a full channel loses the report, not the run.
	Diagnostics chan<- Drop
	//FrameDir, when non-empty, is a directory where each isomer's
	//minimization path is written as iso_NNN.stf.
	FrameDir string
	//Embed and Minimize replace the built-in stages. Nil picks embed.New
	//and the ff minimizer.
	Embed    EmbedFunc
	Minimize MinimizeFunc
}

func (o *Options) fill() {
	if o.Seed == 0 {
		o.Seed = embed.DefaultSeed
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.MinimizeBudget <= 0 {
		o.MinimizeBudget = ff.DefaultBudget
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Embed == nil {
		o.Embed = embed.New
	}
	if o.Minimize == nil {
		o.Minimize = func(conf *chem.Conformer, budget int, frame ff.FrameFunc) (float64, error) {
			return ff.Setup(conf.Mol).Minimize(conf, budget, frame)
		}
	}
}

//outcome is the per-isomer worker product, indexed by enumeration order so
//worker scheduling cannot reorder anything. Each worker writes only its own
//slot.
type outcome struct {
	ok        bool
	cancelled bool
	notation  string
	energy    float64
	conf      *chem.Conformer
}

// Run executes the whole pipeline on one SMILES string: enumerate the
// stereoisomers of its graph, embed and minimize each one concurrently, and
// rank the survivors by ascending energy. The Result is always non-nil and
// serializable, failure outcomes included; the error, when non-nil, is the
// typed condition that ended the run (*chem.ParseError,
// *chem.NoStableStructure, or the context's error on cancellation).
func Run(ctx context.Context, notation string, opts *Options) (*Result, error) {
	start := time.Now()
	var o Options
	if opts != nil {
		o = *opts
	}
	o.fill()
	res := &Result{InputNotation: notation, RunID: uuid.NewString()}
	log := o.Logger.With(zap.String("run", res.RunID), zap.String("input", notation))

	fail := func(err error) (*Result, error) {
		res.Error = err.Error()
		res.ElapsedSeconds = time.Since(start).Seconds()
		return res, err
	}

	mol, err := smiles.Parse(notation)
	if err != nil {
		log.Warn("input rejected", zap.Error(err))
		return fail(err)
	}
	isomers, err := enum.IsomersWithOptions(mol, &enum.Options{MaxIsomers: o.MaxIsomers})
	if err != nil {
		log.Warn("enumeration failed", zap.Error(err))
		return fail(err)
	}
	res.TotalIsomers = len(isomers)
	log.Debug("enumeration done", zap.Int("isomers", len(isomers)))

	outcomes := make([]outcome, len(isomers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, iso := range isomers {
		i, iso := i, iso
		g.Go(func() error {
			can := smiles.Write(iso)
			//a cancelled isomer is dropped exactly like an embedding
			//failure; the run itself keeps whatever finished in time
			if err := gctx.Err(); err != nil {
				outcomes[i].cancelled = true
				report(o.Diagnostics, Drop{Index: i, Notation: can, Stage: "cancel", Err: err})
				return nil
			}
			out, drop := o.runIsomer(i, iso, can, log)
			if drop != nil {
				log.Info("isomer dropped", zap.Int("isomer", i),
					zap.String("notation", can), zap.String("stage", drop.Stage), zap.Error(drop.Err))
				report(o.Diagnostics, *drop)
				return nil
			}
			out.notation = can
			outcomes[i] = out
			log.Debug("isomer minimized", zap.Int("isomer", i),
				zap.String("notation", can), zap.Float64("energy", out.energy))
			return nil
		})
	}
	g.Wait() //workers never return errors, drops are recorded per slot

	order := make([]int, 0, len(outcomes))
	for i := range outcomes {
		if outcomes[i].ok {
			order = append(order, i)
		} else {
			res.Dropped++
		}
	}
	if len(order) == 0 {
		if err := ctx.Err(); err != nil {
			log.Warn("run cancelled before any isomer finished")
			return fail(err)
		}
		nss := chem.NewNoStableStructure(len(isomers))
		log.Warn("all isomers dropped", zap.Int("total", len(isomers)))
		return fail(nss)
	}
	//ascending energy; equal energies keep enumeration order, which
	//sort.SliceStable guarantees since order was built ascending
	sort.SliceStable(order, func(a, b int) bool {
		return outcomes[order[a]].energy < outcomes[order[b]].energy
	})
	res.Isomers = make([]Isomer, len(order))
	for r, i := range order {
		atoms, bonds := structureRecords(outcomes[i].conf)
		res.Isomers[r] = Isomer{
			Rank:     r + 1,
			Notation: outcomes[i].notation,
			Energy:   outcomes[i].energy,
			Atoms:    atoms,
			Bonds:    bonds,
		}
	}
	res.Success = true
	res.MostStable = &res.Isomers[0]
	res.ElapsedSeconds = time.Since(start).Seconds()
	log.Info("run complete", zap.Int("ranked", len(order)),
		zap.Int("dropped", res.Dropped), zap.Float64("best", res.Isomers[0].Energy))
	return res, nil
}

//runIsomer takes one enumerated isomer through hydrogens, embedding and
//minimization. It touches no state shared with the other workers.
func (o *Options) runIsomer(i int, iso *chem.Molecule, can string, log *zap.Logger) (outcome, *Drop) {
	withH := chem.AddHydrogens(iso)
	conf, err := o.Embed(withH, o.Seed)
	if err != nil {
		return outcome{}, &Drop{Index: i, Notation: can, Stage: "embed", Err: err}
	}
	frame, closeTraj := o.frameFunc(i, conf.Mol.Len(), can, log)
	defer closeTraj()
	e, err := o.Minimize(conf, o.MinimizeBudget, frame)
	if err != nil {
		return outcome{}, &Drop{Index: i, Notation: can, Stage: "minimize", Err: err}
	}
	return outcome{ok: true, energy: e, conf: conf}, nil
}

//frameFunc opens the per-isomer trajectory when FrameDir is set. Trajectory
//trouble is logged and swallowed; it never fails a run.
func (o *Options) frameFunc(i, natoms int, can string, log *zap.Logger) (ff.FrameFunc, func()) {
	if o.FrameDir == "" {
		return nil, func() {}
	}
	if err := os.MkdirAll(o.FrameDir, 0o755); err != nil {
		log.Warn("can't create frame directory", zap.String("dir", o.FrameDir), zap.Error(err))
		return nil, func() {}
	}
	name := filepath.Join(o.FrameDir, fmt.Sprintf("iso_%03d.stf", i))
	w, err := stf.NewWriter(name, natoms, map[string]string{"notation": can})
	if err != nil {
		log.Warn("can't open trajectory", zap.String("file", name), zap.Error(err))
		return nil, func() {}
	}
	return func(coords *v3.Matrix) {
		if err := w.WNext(coords); err != nil {
			log.Warn("frame write failed", zap.String("file", name), zap.Error(err))
		}
	}, w.Close
}

//report sends a Drop without ever blocking the worker.
func report(ch chan<- Drop, d Drop) {
	if ch == nil {
		return
	}
	select {
	case ch <- d:
	default:
	}
}
