package curve

import "fmt"

// Rows are the coefficients of u³, u², u and 1, columns the four control points.
var basisMatrices = [curveTypeMax][4][4]float64{
	CurveTypeCatmullRom: {
		{-1.0 / 2, 3.0 / 2, -3.0 / 2, 1.0 / 2},
		{2.0 / 2, -5.0 / 2, 4.0 / 2, -1.0 / 2},
		{-1.0 / 2, 0, 1.0 / 2, 0},
		{0, 2.0 / 2, 0, 0},
	},
	CurveTypeBSpline: {
		{-1.0 / 6, 3.0 / 6, -3.0 / 6, 1.0 / 6},
		{3.0 / 6, -6.0 / 6, 3.0 / 6, 0},
		{-3.0 / 6, 0, 3.0 / 6, 0},
		{1.0 / 6, 4.0 / 6, 1.0 / 6, 0},
	},
}

// number of control points taken from before a segment's first anchor
var leadingControlPoints = [curveTypeMax]int{
	CurveTypeCatmullRom: 1,
	CurveTypeBSpline:    2,
}

func timeRow(order Order, u float64) [4]float64 {
	switch order {
	case OrderTangent:
		return [4]float64{3 * u * u, 2 * u, 1, 0}
	case OrderNormal:
		return [4]float64{6 * u, 2, 0, 0}
	default:
		return [4]float64{u * u * u, u * u, u, 1}
	}
}

func mustValidBasis(ct CurveType, order Order) {
	if ct < 0 || ct >= curveTypeMax {
		panic(fmt.Errorf("%w: unsupported curve type %d", ErrPrecondition, ct))
	}

	if order < 0 || order >= orderMax {
		panic(fmt.Errorf("%w: unsupported order %d", ErrPrecondition, order))
	}
}

// Weights returns T(u)ᵗ·M, the blend weight of each of the four control points.
func Weights(ct CurveType, order Order, u float64) (w [4]float64) {
	mustValidBasis(ct, order)

	row := timeRow(order, u)
	m := &basisMatrices[ct]

	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			w[j] += row[i] * m[i][j]
		}
	}

	return
}

// Blend writes T(u)ᵗ·M·G into out, G being the rows p0..p3. All slices must
// have len(out) elements. The result is in units of the local parameter u.
func Blend(ct CurveType, order Order, u float64, p0, p1, p2, p3, out []float64) {
	w := Weights(ct, order, u)

	for d := range out {
		out[d] = w[0]*p0[d] + w[1]*p1[d] + w[2]*p2[d] + w[3]*p3[d]
	}
}
