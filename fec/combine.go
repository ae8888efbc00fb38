package fec

// Combine XORs vectors of the given length. No inputs yield the zero vector.
func Combine(length int, vs ...BitVector) (BitVector, error) {
	out := NewBitVector(length)
	for _, v := range vs {
		if v.n != length {
			return BitVector{}, &LengthError{Want: length, Got: v.n}
		}
		xorBytes(out.data, v.data)
	}
	return out, nil
}
