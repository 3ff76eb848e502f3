package sim

import (
	"fmt"

	"github.com/soypat/meshcsg/bvh"
	"github.com/soypat/meshcsg/collision"
	"github.com/soypat/meshcsg/embed"
	"github.com/soypat/meshcsg/solver"
)

// Solver binds an embedded tetrahedral lattice to an ADMM solver.Solver
// and drives it forward with per-step pin, floor, obstacle, and
// self-collision constraints assembled from the embedding/collision
// packages. It is the orchestration layer the capi/cmd surfaces call
// into; callers needing direct solver/embedding control can use the
// embed and solver packages without this type.
type Solver struct {
	Opts Options

	Mesh *embed.EmbeddedMesh
	core *solver.Solver

	Obstacle *collision.ObstacleGrid

	faceAdj  [][]int
	tetTree  *bvh.Tree
	faceTree *bvh.Tree

	nthreads int
}

// New embeds facetVerts/facetFaces into a tetrahedral lattice at
// opts.LatticeSubdiv, lumps per-vertex masses from opts.DensityKgm3, and
// constructs the underlying ADMM solver. Youngs/Poisson are collapsed to
// the single stiffness scalar solver.New expects via the shear modulus
// mu = E / (2*(1+nu)); a Poisson's ratio of 0.5 (incompressible) is
// rejected since it would divide by zero in that reduction.
func New(facetVerts [][3]float64, facetFaces [][3]int, opts Options) (*Solver, error) {
	if opts.Poisson <= -1 || opts.Poisson >= 0.5 {
		return nil, fmt.Errorf("sim: poisson ratio %g out of range (-1,0.5)", opts.Poisson)
	}
	mesh, err := embed.Build(facetVerts, facetFaces, opts.LatticeSubdiv)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	mesh.ComputeMasses(opts.DensityKgm3)
	opts.logf(LogLow, "sim: lattice built, %d verts %d tets", len(mesh.LatticeX), len(mesh.LatticeT))

	mu := opts.Youngs / (2 * (1 + opts.Poisson))
	core, err := solver.New(mesh.LatticeX, mesh.LatticeT, mesh.Mass, opts.TimestepS, mu)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	core.Material = opts.ElasticMaterial
	core.Grav = opts.Grav
	core.LinSolver = opts.LinSolver
	core.MaxADMMIter = opts.MaxADMMIters
	core.MaxCGIter = opts.MaxCGIters
	core.MinRes = opts.MinRes
	core.MultPk = opts.MultPk
	core.MultCk = opts.MultCk

	s := &Solver{
		Opts:     opts,
		Mesh:     mesh,
		core:     core,
		nthreads: collision.StripeThreads(opts.MaxThreads),
	}
	if opts.SelfCollision {
		s.faceAdj = collision.FaceAdjacency(mesh.FacetFaces, len(mesh.FacetVerts))
		s.rebuildSelfTrees()
	}
	return s, nil
}

// SetObstacle installs a signed distance field obstacles are tested
// against every step; pass nil to clear it.
func (s *Solver) SetObstacle(sdf collision.SDF3, bbMin, bbMax [3]float64) {
	if sdf == nil {
		s.Obstacle = nil
		return
	}
	s.Obstacle = collision.BuildObstacleGrid(sdf, bbMin, bbMax)
}

// Positions returns the current lattice vertex positions (the
// simulation's kinematic degrees of freedom, not the facet mesh).
func (s *Solver) Positions() [][3]float64 { return s.core.X }

// FacetPositions returns the current facet mesh vertex positions,
// reconstructed from the lattice via the embedding's barycentric
// stencils.
func (s *Solver) FacetPositions() [][3]float64 {
	out := make([][3]float64, len(s.Mesh.FacetVerts))
	for i := range out {
		out[i] = s.Mesh.FacetPosition(i, s.core.X)
	}
	return out
}

func (s *Solver) rebuildSelfTrees() {
	s.tetTree = buildTetTree(s.Mesh.LatticeT, s.core.X)
	s.faceTree = buildFaceTree(s.Mesh.FacetFaces, s.Mesh.FacetVerts)
}

// Step advances the simulation by opts.Substeps sub-steps of
// opts.TimestepS/opts.Substeps each, assembling pin rows from the
// embedding's current pin set and contact rows from the floor, obstacle,
// and self-collision tests enabled in Options. On a per-step numerical
// failure from the underlying solver, Step stops early and returns the
// error; positions already committed by prior sub-steps are kept.
func (s *Solver) Step() error {
	for sub := 0; sub < s.Opts.Substeps; sub++ {
		if err := s.substep(); err != nil {
			s.Opts.logf(LogHigh, "sim: step failed: %v", err)
			return err
		}
	}
	return nil
}

func (s *Solver) substep() error {
	pinRows := s.Mesh.LinearizePins()
	var pins []solver.PinRow
	for _, p := range pinRows {
		pins = append(pins, solver.ExpandPinRow(p)...)
	}

	var contacts []solver.ContactRow
	if s.Opts.Floor {
		for _, r := range collision.FloorTest(s.core.X, s.Opts.FloorZ, s.Opts.CollisionThickness, s.nthreads) {
			contacts = append(contacts, solver.FromCollisionRow(r))
		}
	}
	if s.Obstacle != nil {
		for _, r := range collision.ObstacleTest(s.core.X, s.Obstacle, s.Opts.CollisionThickness, s.nthreads) {
			contacts = append(contacts, solver.FromCollisionRow(r))
		}
	}
	if s.Opts.SelfCollision {
		s.rebuildSelfTrees()
		for _, r := range collision.SelfCollisionTest(s.Mesh, s.core.X, s.tetTree, s.faceTree, s.faceAdj, s.Opts.CollisionThickness, s.nthreads) {
			contacts = append(contacts, solver.FromCollisionRow(r))
		}
	}

	s.Opts.logf(LogDebug, "sim: substep pins=%d contacts=%d", len(pins), len(contacts))
	return s.core.Step(pins, contacts)
}

func buildFaceTree(faces [][3]int, verts [][3]float64) *bvh.Tree {
	boxes := make([]bvh.Box, len(faces))
	for i, f := range faces {
		b := bvh.EmptyBox()
		b = b.Extend(verts[f[0]])
		b = b.Extend(verts[f[1]])
		b = b.Extend(verts[f[2]])
		boxes[i] = b
	}
	return bvh.Init(boxes)
}

func buildTetTree(tets [][4]int, X [][3]float64) *bvh.Tree {
	boxes := make([]bvh.Box, len(tets))
	for i, t := range tets {
		b := bvh.EmptyBox()
		for _, v := range t {
			b = b.Extend(X[v])
		}
		boxes[i] = b
	}
	return bvh.Init(boxes)
}
