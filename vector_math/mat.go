package vector_math

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"unsafe"
)

// Mat is a row-major matrix. Transforms built in this package act on column
// vectors, so a point p is transformed as M * p.
type Mat [][]float32

func NewMat(r uint, c uint) (Mat, error) {
	if r == 0 || c == 0 {
		return nil, errors.New("cannot construct 0-sized matrix")
	}
	m := make([][]float32, r)
	for i := range m {
		m[i] = make([]float32, c)
	}
	return m, nil
}

func (m *Mat) Mult(b *Mat) (Mat, error) {
	rowsA, colsA := m.Size()
	rowsB, colsB := b.Size()
	if colsA != rowsB {
		return nil, fmt.Errorf(
			"can't multiply %dx%d matrix with %dx%d matrix, size of columns and rows do not match",
			rowsA, colsA, rowsB, colsB,
		)
	}
	C, _ := NewMat(uint(rowsA), uint(colsB))
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsB; j++ {
			for k := 0; k < colsA; k++ {
				C[i][j] += (*m)[i][k] * (*b)[k][j]
			}
		}
	}
	return C, nil
}

// Chain multiplies the given 4x4 transforms left to right.
func Chain(ms ...Mat) Mat {
	res := NewUnitMat(4)
	for i := range ms {
		next, err := res.Mult(&ms[i])
		if err != nil {
			log.Panicf("chaining transforms: %s", err)
		}
		res = next
	}
	return res
}

// MulVec4 applies a 4x4 matrix to a homogeneous column vector.
func (m *Mat) MulVec4(v Vec4) Vec4 {
	in := [4]float32{v.X, v.Y, v.Z, v.W}
	var out [4]float32
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			out[i] += (*m)[i][k] * in[k]
		}
	}
	return Vec4{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

func (m *Mat) Transpose() Mat {
	mT, _ := NewMat(uint(m.ColCnt()), uint(m.RowCnt()))
	for i := range *m {
		for j := range (*m)[i] {
			mT[j][i] = (*m)[i][j]
		}
	}
	return mT
}

// ApproxEquals compares element wise with an absolute tolerance.
func (m *Mat) ApproxEquals(b *Mat, eps float64) bool {
	rowsA, colsA := m.Size()
	rowsB, colsB := b.Size()
	if rowsA != rowsB || colsA != colsB {
		return false
	}
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsA; j++ {
			if math.Abs(float64((*m)[i][j]-(*b)[i][j])) > eps {
				return false
			}
		}
	}
	return true
}

func (m *Mat) RowCnt() int {
	return len(*m)
}

func (m *Mat) ColCnt() int {
	if len(*m) == 0 {
		return 0
	}
	return len((*m)[0])
}

func (m *Mat) Size() (int, int) {
	return m.RowCnt(), m.ColCnt()
}

func (m *Mat) ByteSize() int {
	return int(unsafe.Sizeof(float32(0))) * m.RowCnt() * m.ColCnt()
}

// Unroll flattens the matrix row by row.
func (m *Mat) Unroll() []float32 {
	cols := m.ColCnt()
	f := make([]float32, m.RowCnt()*cols)
	for i := range f {
		f[i] = (*m)[i/cols][i%cols]
	}
	return f
}

// ColumnMajor flattens the matrix column by column, the layout GLSL expects
// for a mat4.
func (m *Mat) ColumnMajor() []float32 {
	mT := m.Transpose()
	return mT.Unroll()
}

func (m *Mat) ToString() string {
	mStr := strings.Builder{}
	for i := range *m {
		if i > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", (*m)[i]))
	}
	return mStr.String()
}
