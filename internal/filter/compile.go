package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/canvas/color"
)

// Op is an instruction opcode.
type Op uint8

const (
	OpNoOp Op = iota
	OpColorMatrix
	OpBlur
	OpMakeShadow
	OpDropShadow
)

func (o Op) String() string {
	switch o {
	case OpNoOp:
		return "NoOp"
	case OpColorMatrix:
		return "ColorMatrix"
	case OpBlur:
		return "Blur"
	case OpMakeShadow:
		return "MakeShadow"
	case OpDropShadow:
		return "DropShadow"
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Instruction is one step of a compiled filter.
type Instruction struct {
	Op     Op
	Matrix ColorMatrix
	// Sigma is the Gaussian standard deviation of blurs and shadows.
	Sigma float64
	// Color is the premultiplied shadow color in the destination space.
	Color  uint32
	DX, DY float64
}

// Overflow returns the padding in pixels the instruction needs around its
// input.
func (in Instruction) Overflow() int {
	switch in.Op {
	case OpBlur, OpMakeShadow:
		return KernelRadius(in.Sigma)
	case OpDropShadow:
		return KernelRadius(in.Sigma) + int(math.Ceil(max(math.Abs(in.DX), math.Abs(in.DY))))
	}
	return 0
}

// Filter is a compiled instruction program.
type Filter struct {
	Instructions []Instruction
	// Parallel splits blur passes over large layers across the shared
	// worker pool. Apply waits for every band before returning.
	Parallel bool
}

// Compile lowers funcs followed by the global alpha into a program. Shadow
// colors are resolved into space.
func Compile(funcs []Function, globalAlpha float32, space color.PredefinedSpace) Filter {
	var (
		f       Filter
		acc     ColorMatrix
		pending bool
	)
	flush := func() {
		if pending {
			f.Instructions = append(f.Instructions, Instruction{Op: OpColorMatrix, Matrix: acc})
			pending = false
		}
	}
	addMatrix := func(m ColorMatrix) {
		switch {
		case !pending:
			acc, pending = m, true
		case acc.NeedsClamp():
			flush()
			f.Instructions = append(f.Instructions, Instruction{Op: OpNoOp})
			acc, pending = m, true
		default:
			acc = acc.Then(m)
		}
	}
	for _, fn := range funcs {
		switch fn.Kind {
		case Blur:
			if KernelRadius(fn.Amount) == 0 {
				continue
			}
			flush()
			f.Instructions = append(f.Instructions, Instruction{Op: OpBlur, Sigma: fn.Amount})
		case DropShadow:
			flush()
			f.Instructions = append(f.Instructions, Instruction{
				Op:    OpDropShadow,
				Sigma: fn.Blur / 2,
				Color: color.Resolve(fn.Color).ToPixel(space),
				DX:    fn.DX,
				DY:    fn.DY,
			})
		default:
			if m, ok := matrixFor(fn); ok {
				addMatrix(m)
			}
		}
	}
	if globalAlpha < 1 {
		addMatrix(OpacityMatrix(float64(max(globalAlpha, 0))))
	}
	flush()
	return f
}

// ShadowFilter returns the program that turns a layer into its shadow: the
// silhouette in c, blurred with sigma.
func ShadowFilter(c uint32, sigma float64) Filter {
	return Filter{Instructions: []Instruction{{Op: OpMakeShadow, Color: c, Sigma: sigma}}}
}

// IsPaintOnly reports whether the program only scales alpha, so that it
// can be folded into the paint alpha instead of running on a layer.
func (f Filter) IsPaintOnly() bool {
	for _, in := range f.Instructions {
		switch in.Op {
		case OpNoOp:
		case OpColorMatrix:
			if _, ok := in.Matrix.AlphaOnly(); !ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Alpha returns the product of the alpha factors of a paint-only program.
func (f Filter) Alpha() float32 {
	a := 1.0
	for _, in := range f.Instructions {
		if in.Op == OpColorMatrix {
			if s, ok := in.Matrix.AlphaOnly(); ok {
				a *= s
			}
		}
	}
	return float32(a)
}

// Overflow returns the total padding the program needs, the sum over its
// instructions.
func (f Filter) Overflow() int {
	n := 0
	for _, in := range f.Instructions {
		n += in.Overflow()
	}
	return n
}
