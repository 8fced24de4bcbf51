package document

// WalkFunc is the callback signature for Walk. Returning a non-nil error
// stops the walk and propagates the error.
type WalkFunc func(b *Block) error

// Walk performs a pre-order traversal of a block tree.
func Walk(top []*Block, fn WalkFunc) error {
	for _, b := range top {
		if err := walkBlock(b, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkBlock(b *Block, fn WalkFunc) error {
	if b == nil {
		return nil
	}
	if err := fn(b); err != nil {
		return err
	}
	for _, child := range b.Children {
		if err := walkBlock(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkSpans performs a pre-order traversal of an inline span sequence.
func WalkSpans(spans []Span, fn func(s Span) error) error {
	for _, s := range spans {
		if err := fn(s); err != nil {
			return err
		}
		if err := WalkSpans(s.Children, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every block in the tree matching the predicate, in
// document order.
func FindAll(top []*Block, predicate func(b *Block) bool) []*Block {
	var result []*Block

	//nolint:errcheck // the callback never returns an error
	Walk(top, func(b *Block) error {
		if predicate(b) {
			result = append(result, b)
		}
		return nil
	})

	return result
}
