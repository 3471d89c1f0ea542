package layout

import "math"

// Attachment is a pair of normalized attachment points on [0,1]^2: (startX,
// startY) on the source box, (endX, endY) on the target box.
type Attachment struct {
	StartX, StartY, EndX, EndY float64
}

// Attach computes the connector attachment points between a source box
// centred at (srcX, srcY) and a target box centred at (dstX, dstY), given
// the shared box dimensions (w, h), per spec §4.I.
//
// forceBottomTop overrides geometry for class-only or explicitly strat
// connectors, which always draw in the canonical hierarchical bottom→top
// shape regardless of relative position.
func Attach(srcX, srcY, dstX, dstY, w, h float64, horizontal, forceBottomTop bool) Attachment {
	if forceBottomTop {
		return flipIfHorizontal(Attachment{StartX: 0.5, StartY: 1, EndX: 0.5, EndY: 0}, horizontal)
	}

	dx, dy := dstX-srcX, dstY-srcY
	theta := math.Atan2(dy, dx)
	thetaC := math.Atan2(h, w)

	var a Attachment
	switch {
	case theta >= -thetaC && theta <= thetaC:
		a = Attachment{StartX: 1, StartY: 0.5, EndX: 0, EndY: 0.5} // right -> left
	case theta > thetaC && theta <= math.Pi-thetaC:
		a = Attachment{StartX: 0.5, StartY: 1, EndX: 0.5, EndY: 0} // bottom -> top
	case math.Abs(theta) > math.Pi-thetaC:
		a = Attachment{StartX: 0, StartY: 0.5, EndX: 1, EndY: 0.5} // left -> right
	default: // -(pi-thetaC) <= theta < -thetaC
		a = Attachment{StartX: 0.5, StartY: 0, EndX: 0.5, EndY: 1} // top -> bottom
	}
	return flipIfHorizontal(a, horizontal)
}

func flipIfHorizontal(a Attachment, horizontal bool) Attachment {
	if !horizontal {
		return a
	}
	return Attachment{StartX: a.StartY, StartY: a.StartX, EndX: a.EndY, EndY: a.EndX}
}
