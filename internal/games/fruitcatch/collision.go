package fruitcatch

// Classification splits objects into caught and missed. Objects in
// neither list are still in flight.
type Classification struct {
	Caught []FallingObject
	Missed []FallingObject
}

// Classify tests each object against the basket. An object overlapping
// the basket is caught; otherwise it is missed once its top edge is below
// screenHeight. The inputs are not modified.
func Classify(objects []FallingObject, basket Basket, screenHeight float64) Classification {
	var c Classification
	b := basket.Bounds()
	for _, o := range objects {
		switch {
		case o.Bounds().Overlaps(b):
			c.Caught = append(c.Caught, o)
		case o.Y > screenHeight:
			c.Missed = append(c.Missed, o)
		}
	}
	return c
}
