package layout

import (
	"fmt"

	"github.com/llir/llvm/ir/types"
)

// DataLayout computes sizes and alignments of IR types.
type DataLayout struct {
	calc    *LayoutCalculator
	structs map[*types.StructType]*StructLayout
}

// NewDataLayout creates a data layout for a 64-bit target.
func NewDataLayout() *DataLayout {
	return NewDataLayoutFor(NewLayoutCalculator())
}

// NewDataLayoutFor creates a data layout backed by the given calculator.
func NewDataLayoutFor(calc *LayoutCalculator) *DataLayout {
	return &DataLayout{calc: calc, structs: make(map[*types.StructType]*StructLayout)}
}

// SizeOf returns the allocation size of t in bytes.
func (dl *DataLayout) SizeOf(t types.Type) (int64, error) {
	size, _, err := dl.sizeAlign(t)
	return size, err
}

// AlignOf returns the ABI alignment of t in bytes.
func (dl *DataLayout) AlignOf(t types.Type) (int64, error) {
	_, align, err := dl.sizeAlign(t)
	return align, err
}

// Struct returns the field layout of a struct type. Results are cached per
// type.
func (dl *DataLayout) Struct(st *types.StructType) (*StructLayout, error) {
	if sl, ok := dl.structs[st]; ok {
		return sl, nil
	}
	if st.Opaque {
		return nil, fmt.Errorf("cannot compute layout of opaque struct %s", st)
	}

	fields := make([]FieldInfo, len(st.Fields))
	for i, ft := range st.Fields {
		size, align, err := dl.sizeAlign(ft)
		if err != nil {
			return nil, fmt.Errorf("field %d of %s: %w", i, st, err)
		}
		fields[i] = FieldInfo{
			Name:      fmt.Sprintf("%d", i),
			Type:      ft.String(),
			Size:      size,
			Alignment: align,
		}
		if st.Packed {
			fields[i].Alignment = 1
		}
	}

	sl, err := dl.calc.CalculateStructLayout(st.Name(), fields)
	if err != nil {
		return nil, err
	}
	// Zero-sized structs still occupy one byte when allocated.
	if sl.TotalSize == 0 {
		sl.TotalSize = 1
	}
	dl.structs[st] = sl
	return sl, nil
}

func (dl *DataLayout) sizeAlign(t types.Type) (int64, int64, error) {
	switch t := t.(type) {
	case *types.IntType:
		size := (int64(t.BitSize) + 7) / 8
		align := int64(1)
		for align < size && align < 8 {
			align *= 2
		}
		return alignUp(size, align), align, nil
	case *types.FloatType:
		switch t.Kind {
		case types.FloatKindHalf:
			return 2, 2, nil
		case types.FloatKindFloat:
			return 4, 4, nil
		case types.FloatKindDouble:
			return 8, dl.calc.DoubleAlignment, nil
		default:
			return 16, 16, nil
		}
	case *types.PointerType:
		return dl.calc.TargetPointerSize, dl.calc.TargetPointerSize, nil
	case *types.ArrayType:
		size, align, err := dl.sizeAlign(t.ElemType)
		if err != nil {
			return 0, 0, err
		}
		return size * int64(t.Len), align, nil
	case *types.StructType:
		sl, err := dl.Struct(t)
		if err != nil {
			return 0, 0, err
		}
		return sl.TotalSize, sl.Alignment, nil
	default:
		return 0, 0, fmt.Errorf("type %s has no size", t)
	}
}
