// Package layout answers size and alignment queries for lowered IR types. The
// generator uses it to size managed-heap allocations; the numbers follow the
// x86-64 System V data layout unless a calculator for another pointer width
// is supplied.
package layout

import "fmt"

// StructLayout represents the memory layout of a struct
type StructLayout struct {
	Name       string        // Struct name
	Fields     []FieldInfo   // Field information
	TotalSize  int64         // Total struct size including padding
	Alignment  int64         // Required alignment
	PaddingMap []PaddingInfo // Padding information
}

// FieldInfo contains information about a struct field
type FieldInfo struct {
	Name      string // Field name
	Type      string // Field type name
	Offset    int64  // Offset from struct start
	Size      int64  // Size of the field
	Alignment int64  // Required alignment
}

// PaddingInfo represents padding bytes inserted for alignment
type PaddingInfo struct {
	Offset int64  // Offset where padding starts
	Size   int64  // Number of padding bytes
	Reason string // Reason for padding (e.g., "field alignment", "struct alignment")
}

// LayoutCalculator provides methods to calculate memory layouts
type LayoutCalculator struct {
	TargetPointerSize int64 // Size of pointers on target architecture (8 for x64)
	DoubleAlignment   int64 // ABI alignment of double
	MaxAlignment      int64 // Maximum alignment supported by target
}

// NewLayoutCalculator creates a new layout calculator for x64 architecture
func NewLayoutCalculator() *LayoutCalculator {
	return &LayoutCalculator{
		TargetPointerSize: 8,
		DoubleAlignment:   8,
		MaxAlignment:      16,
	}
}

// CalculateStructLayout calculates the memory layout for a struct
func (lc *LayoutCalculator) CalculateStructLayout(name string, fields []FieldInfo) (*StructLayout, error) {
	if len(fields) == 0 {
		return &StructLayout{
			Name:       name,
			Fields:     []FieldInfo{},
			TotalSize:  0,
			Alignment:  1,
			PaddingMap: []PaddingInfo{},
		}, nil
	}

	var padding []PaddingInfo
	layoutFields := make([]FieldInfo, 0, len(fields))
	currentOffset := int64(0)
	maxAlignment := int64(1)

	for _, field := range fields {
		if field.Size <= 0 {
			return nil, fmt.Errorf("field %s has invalid size: %d", field.Name, field.Size)
		}
		if field.Alignment <= 0 {
			field.Alignment = 1
		}
		if !isPowerOfTwo(field.Alignment) {
			return nil, fmt.Errorf("field %s alignment must be power of 2: %d", field.Name, field.Alignment)
		}
		if field.Alignment > lc.MaxAlignment {
			field.Alignment = lc.MaxAlignment
		}

		if field.Alignment > maxAlignment {
			maxAlignment = field.Alignment
		}

		alignedOffset := alignUp(currentOffset, field.Alignment)
		if alignedOffset > currentOffset {
			padding = append(padding, PaddingInfo{
				Offset: currentOffset,
				Size:   alignedOffset - currentOffset,
				Reason: fmt.Sprintf("alignment for field %s", field.Name),
			})
		}

		field.Offset = alignedOffset
		layoutFields = append(layoutFields, field)
		currentOffset = alignedOffset + field.Size
	}

	totalSize := alignUp(currentOffset, maxAlignment)
	if totalSize > currentOffset {
		padding = append(padding, PaddingInfo{
			Offset: currentOffset,
			Size:   totalSize - currentOffset,
			Reason: "struct alignment",
		})
	}

	return &StructLayout{
		Name:       name,
		Fields:     layoutFields,
		TotalSize:  totalSize,
		Alignment:  maxAlignment,
		PaddingMap: padding,
	}, nil
}

// isPowerOfTwo checks if a number is a power of 2
func isPowerOfTwo(n int64) bool {
	return n > 0 && (n&(n-1)) == 0
}

// alignUp rounds up to the next multiple of alignment
func alignUp(value, alignment int64) int64 {
	if alignment <= 1 {
		return value
	}
	return (value + alignment - 1) & ^(alignment - 1)
}

// GetPaddingBytes returns the total number of padding bytes in the struct
func (sl *StructLayout) GetPaddingBytes() int64 {
	var total int64
	for _, pad := range sl.PaddingMap {
		total += pad.Size
	}
	return total
}

func (sl *StructLayout) String() string {
	return fmt.Sprintf("Struct %s (%d fields, %d bytes, %d padding)",
		sl.Name, len(sl.Fields), sl.TotalSize, sl.GetPaddingBytes())
}
