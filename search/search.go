// Package search finds the initial value of register A which makes a
// looping program reproduce itself as output.
//
// The programs in question consume the lowest three bits of A on every
// pass through the loop and emit one value derived from them, stopping
// once A is zero. The search therefore builds A three bits at a time,
// starting with the group that produces the last output value and
// working towards the first. Each candidate group is tested by running
// the loop body exactly once. Groups are tried in ascending order, so the
// first complete match is the smallest such value.
package search

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/log"
	"github.com/pkg/errors"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/cpu"
)

// DefaultTrialCycles is the cycle limit applied to each single-pass trial.
const DefaultTrialCycles = 1000

// groupBits is the number of bits of A consumed per output value.
const groupBits = 3

// ErrTooWide is returned when a program needs more bits of A than a
// register can hold.
var ErrTooWide = errors.New("program too long; register A would exceed 256 bits")

// Config defines search parameters.
type Config struct {
	TrialCycles int        // Cycle limit per trial. Defaults to DefaultTrialCycles.
	Logger      log.Logger // Optional logger for search progress.
}

// Result defines the outcome of a search.
type Result struct {
	A      *uint256.Int // Smallest matching value; nil if none was found.
	Found  bool         // Was a value found?
	Trials int          // Number of single-pass trials performed.
}

// Searcher finds the quine value for a single program.
type Searcher struct {
	program arch.Program
	reduced arch.Program
	cycles  int
	log     log.Logger
	trials  int
}

// New creates a searcher for the given program.
// The program must end in a JNZ instruction.
func New(program arch.Program, cfg Config) (*Searcher, error) {
	reduced, err := program.Reduced()
	if err != nil {
		return nil, err
	}

	if len(program)*groupBits > 256 {
		return nil, errors.Wrapf(ErrTooWide, "%d output values", len(program))
	}

	if cfg.TrialCycles <= 0 {
		cfg.TrialCycles = DefaultTrialCycles
	}

	if cfg.Logger == nil {
		cfg.Logger = log.NewNoOpLogger()
	}

	return &Searcher{
		program: program,
		reduced: reduced,
		cycles:  cfg.TrialCycles,
		log:     cfg.Logger,
	}, nil
}

// Run performs the search.
//
// The most significant group is never zero: the loop stops once A is zero,
// so a zero top group can not produce output of full length.
//
// Not finding a value is reported through Result.Found. An error is only
// returned if a trial fails to execute, which means the program itself
// is broken.
func (s *Searcher) Run() (Result, error) {
	s.trials = 0

	var prefix uint256.Int
	a, err := s.find(&prefix, len(s.program)-1)
	if err != nil {
		return Result{Trials: s.trials}, err
	}

	if a == nil {
		s.log.Info("no initial value found",
			log.Int("trials", s.trials),
			log.String("program", s.program.String()))
		return Result{Trials: s.trials}, nil
	}

	s.log.Info("initial value found",
		log.String("a", a.Dec()),
		log.Int("trials", s.trials))

	return Result{A: a, Found: true, Trials: s.trials}, nil
}

// find extends prefix by one group of bits so that the loop body emits
// program[index], then recurses towards index 0. It returns nil if no
// extension of prefix leads to a full match.
//
// A complete prefix is only accepted if the full program reproduces itself.
// Single passes need not consume exactly one group of A, in which case
// matching every pass on its own does not make a quine.
func (s *Searcher) find(prefix *uint256.Int, index int) (*uint256.Int, error) {
	if index < 0 {
		ok, err := Verify(s.program, prefix, s.cycles*len(s.program))
		if err != nil {
			return nil, errors.Wrapf(err, "verify with A=%s", prefix.Dec())
		}

		if !ok {
			s.log.Debug("candidate is not a quine", log.String("a", prefix.Dec()))
			return nil, nil
		}

		return prefix.Clone(), nil
	}

	target := s.program[index]
	leading := index == len(s.program)-1

	var candidate uint256.Int
	for group := uint64(0); group < arch.OpcodeCount; group++ {
		// The loop exits as soon as A is zero, so the most significant
		// group can not be zero without cutting the output short.
		if leading && group == 0 {
			continue
		}

		candidate.Lsh(prefix, groupBits)
		candidate.Or(&candidate, uint256.NewInt(group))

		out, ok, err := s.trial(&candidate)
		if err != nil {
			return nil, err
		}

		if !ok || out != target {
			continue
		}

		s.log.Debug("group matches",
			log.Int("index", index),
			log.Uint64("group", group),
			log.String("candidate", candidate.Dec()))

		a, err := s.find(&candidate, index-1)
		if err != nil || a != nil {
			return a, err
		}
	}

	s.log.Debug("backtracking",
		log.Int("index", index),
		log.String("prefix", prefix.Dec()))

	return nil, nil
}

// trial runs the loop body once with A set to the given value and returns
// the last emitted value. Returns false if nothing was emitted.
func (s *Searcher) trial(a *uint256.Int) (uint8, bool, error) {
	s.trials++

	var regs cpu.Registers
	regs.A.Set(a)

	c := cpu.New(s.reduced, regs, nil)
	if err := c.Run(s.cycles); err != nil {
		return 0, false, errors.Wrapf(err, "trial with A=%s", a.Dec())
	}

	out := c.Output()
	if len(out) == 0 {
		return 0, false, nil
	}

	return out[len(out)-1], true, nil
}

// Verify runs the full program with A set to the given value and B and C
// cleared, and reports whether the output equals the program itself.
// A maxCycles value <= 0 means no limit.
func Verify(program arch.Program, a *uint256.Int, maxCycles int) (bool, error) {
	var regs cpu.Registers
	regs.A.Set(a)

	c := cpu.New(program, regs, nil)
	if err := c.Run(maxCycles); err != nil {
		return false, err
	}

	return !c.Capped() && program.Equal(c.Output()), nil
}
